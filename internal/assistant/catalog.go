package assistant

import (
	"fmt"
	"sort"
	"strings"
)

// Param describes one tool parameter.
type Param struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Required    bool     `json:"required,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// Tool describes one data operation the assistant can invoke.
type Tool struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"parameters"`
}

const (
	dateStartDesc = "Data początkowa w formacie YYYY-MM-DD"
	dateEndDesc   = "Data końcowa w formacie YYYY-MM-DD"
)

var catalog = []Tool{
	{
		Name:        "get_expenses_by_date",
		Description: "Pobiera wydatki użytkownika z określonego przedziału czasowego. Użyj gdy użytkownik pyta o wydatki z konkretnego dnia, tygodnia, miesiąca lub okresu.",
		Params: []Param{
			{Name: "start_date", Type: "string", Description: dateStartDesc, Required: true},
			{Name: "end_date", Type: "string", Description: dateEndDesc, Required: true},
		},
	},
	{
		Name:        "get_expenses_by_category",
		Description: "Pobiera wydatki użytkownika z określonej kategorii w danym okresie. Użyj gdy użytkownik pyta o wydatki na konkretne rzeczy (np. jedzenie, transport, ubrania).",
		Params: []Param{
			{Name: "category", Type: "string", Description: "Nazwa kategorii (np. 'Jedzenie', 'Transport', 'Alkohol')", Required: true},
			{Name: "start_date", Type: "string", Description: dateStartDesc, Required: true},
			{Name: "end_date", Type: "string", Description: dateEndDesc, Required: true},
		},
	},
	{
		Name:        "get_expenses_by_store",
		Description: "Pobiera wydatki użytkownika w określonym sklepie/firmie w danym okresie.",
		Params: []Param{
			{Name: "store_name", Type: "string", Description: "Nazwa sklepu/firmy (np. 'Biedronka', 'Lidl', 'Kaufland')", Required: true},
			{Name: "start_date", Type: "string", Description: dateStartDesc, Required: true},
			{Name: "end_date", Type: "string", Description: dateEndDesc, Required: true},
		},
	},
	{
		Name:        "get_spending_summary",
		Description: "Pobiera podsumowanie wydatków użytkownika (suma, średnia, ilość transakcji) dla określonego okresu.",
		Params: []Param{
			{Name: "start_date", Type: "string", Description: dateStartDesc, Required: true},
			{Name: "end_date", Type: "string", Description: dateEndDesc, Required: true},
			{Name: "group_by", Type: "string", Description: "Sposób grupowania danych", Enum: []string{"day", "week", "month", "category", "store"}},
		},
	},
	{
		Name:        "get_product_history",
		Description: "Pobiera historię zakupów konkretnego produktu (ceny, miejsca zakupu, daty).",
		Params: []Param{
			{Name: "product_name", Type: "string", Description: "Nazwa produktu do wyszukania", Required: true},
			{Name: "limit", Type: "integer", Description: "Maksymalna liczba wyników (domyślnie 10)", Default: 10},
		},
	},
	{
		Name:        "get_budget_status",
		Description: "Pobiera status budżetu/limitów użytkownika dla kategorii.",
		Params: []Param{
			{Name: "category", Type: "string", Description: "Nazwa kategorii (opcjonalna, jeśli puste - zwraca wszystkie)"},
		},
	},
	{
		Name:        "get_most_expensive_purchases",
		Description: "Pobiera najdroższe zakupy użytkownika w określonym okresie.",
		Params: []Param{
			{Name: "start_date", Type: "string", Description: dateStartDesc, Required: true},
			{Name: "end_date", Type: "string", Description: dateEndDesc, Required: true},
			{Name: "limit", Type: "integer", Description: "Liczba wyników (domyślnie 5)", Default: 5},
		},
	},
	{
		Name:        "get_shopping_frequency",
		Description: "Pobiera częstotliwość zakupów w różnych sklepach w określonym okresie.",
		Params: []Param{
			{Name: "start_date", Type: "string", Description: dateStartDesc, Required: true},
			{Name: "end_date", Type: "string", Description: dateEndDesc, Required: true},
		},
	},
	{
		Name:        "compare_periods",
		Description: "Porównuje wydatki między dwoma okresami czasu.",
		Params: []Param{
			{Name: "period1_start", Type: "string", Description: "Data początkowa pierwszego okresu (YYYY-MM-DD)", Required: true},
			{Name: "period1_end", Type: "string", Description: "Data końcowa pierwszego okresu (YYYY-MM-DD)", Required: true},
			{Name: "period2_start", Type: "string", Description: "Data początkowa drugiego okresu (YYYY-MM-DD)", Required: true},
			{Name: "period2_end", Type: "string", Description: "Data końcowa drugiego okresu (YYYY-MM-DD)", Required: true},
		},
	},
	{
		Name:        "get_user_logs",
		Description: "Pobiera logi aktywności użytkownika z systemu. Użyj gdy użytkownik pyta o historię swoich działań, ostatnie operacje, zmiany w koncie lub aktywność w aplikacji.",
		Params: []Param{
			{Name: "start_date", Type: "string", Description: dateStartDesc + " (opcjonalna)"},
			{Name: "end_date", Type: "string", Description: dateEndDesc + " (opcjonalna)"},
			{Name: "action_type", Type: "string", Description: "Typ akcji do filtrowania. Przykłady: user_login, receipt_add, budget_update."},
			{Name: "limit", Type: "integer", Description: "Maksymalna liczba wyników (domyślnie 20)", Default: 20},
		},
	},
	{
		Name:        "manage_budget_limits",
		Description: "[CREATE/UPDATE/DELETE] Zarządza limitami budżetowymi użytkownika. Użyj gdy użytkownik chce dodać, zmienić lub usunąć limit wydatków dla kategorii.",
		Params: []Param{
			{Name: "action", Type: "string", Description: "Akcja: add (dodaj nowy), update (aktualizuj), delete (usuń)", Required: true, Enum: []string{"add", "update", "delete"}},
			{Name: "category", Type: "string", Description: "Nazwa kategorii (np. 'Jedzenie', 'Transport')", Required: true},
			{Name: "amount", Type: "number", Description: "Kwota limitu w PLN (wymagana dla add/update)"},
		},
	},
	{
		Name:        "manage_shopping_list",
		Description: "[CREATE/READ/UPDATE/DELETE] Zarządza listami zakupów użytkownika. Użyj gdy użytkownik chce utworzyć listę, dodać lub usunąć produkt albo zobaczyć zawartość listy.",
		Params: []Param{
			{Name: "action", Type: "string", Description: "Akcja do wykonania", Required: true, Enum: []string{"create_list", "add_item", "remove_item", "get_list", "delete_list"}},
			{Name: "list_id", Type: "integer", Description: "ID listy (opcjonalne, domyślnie najnowsza lista)"},
			{Name: "product_name", Type: "string", Description: "Nazwa produktu (dla add_item/remove_item)"},
			{Name: "quantity", Type: "integer", Description: "Ilość produktu (dla add_item, domyślnie 1)", Default: 1},
		},
	},
	{
		Name:        "get_receipt_details",
		Description: "[READ ONLY] Pobiera szczegółowe informacje o konkretnym paragonie wraz z listą wszystkich produktów.",
		Params: []Param{
			{Name: "receipt_id", Type: "integer", Description: "ID paragonu", Required: true},
		},
	},
	{
		Name:        "search_receipts",
		Description: "[READ ONLY] Wyszukuje paragony według różnych kryteriów: sklep, kwota, data, miasto.",
		Params: []Param{
			{Name: "store_name", Type: "string", Description: "Nazwa sklepu (opcjonalna)"},
			{Name: "min_amount", Type: "number", Description: "Minimalna kwota (opcjonalna)"},
			{Name: "max_amount", Type: "number", Description: "Maksymalna kwota (opcjonalna)"},
			{Name: "start_date", Type: "string", Description: dateStartDesc + " (opcjonalna)"},
			{Name: "end_date", Type: "string", Description: dateEndDesc + " (opcjonalna)"},
			{Name: "city", Type: "string", Description: "Miasto (opcjonalne)"},
			{Name: "limit", Type: "integer", Description: "Maksymalna liczba wyników (domyślnie 20)", Default: 20},
		},
	},
	{
		Name:        "get_recent_receipts",
		Description: "Pobiera ostatnie paragony użytkownika. Użyj gdy użytkownik pyta o ostatnie zakupy.",
		Params: []Param{
			{Name: "limit", Type: "integer", Description: "Liczba paragonów do pobrania (domyślnie 10)", Default: 10},
		},
	},
	{
		Name:        "get_receipt_statistics",
		Description: "Pobiera ogólne statystyki wszystkich paragonów użytkownika (liczba, suma, średnia, min/max, itp.).",
	},
	{
		Name:        "get_notifications",
		Description: "Pobiera powiadomienia użytkownika. Użyj gdy użytkownik pyta o powiadomienia lub alerty.",
		Params: []Param{
			{Name: "unread_only", Type: "boolean", Description: "Czy pokazać tylko nieprzeczytane (opcjonalne)", Default: false},
			{Name: "limit", Type: "integer", Description: "Maksymalna liczba wyników (domyślnie 20)", Default: 20},
		},
	},
	{
		Name:        "get_budget_alerts",
		Description: "Pobiera alerty budżetowe - kategorie które przekroczyły lub zbliżają się do limitu. Użyj gdy użytkownik pyta o przekroczenia limitów lub ostrzeżenia budżetowe.",
	},
	{
		Name:        "get_product_nutrition",
		Description: "Pobiera informacje żywieniowe o produkcie (kalorie, białko, tłuszcze, cukry, alergeny). Użyj gdy użytkownik pyta o wartości odżywcze produktu.",
		Params: []Param{
			{Name: "product_name", Type: "string", Description: "Nazwa produktu", Required: true},
		},
	},
	{
		Name:        "search_products_by_nutrition",
		Description: "Wyszukuje produkty według kryteriów żywieniowych (np. niska kaloryczność, wysokie białko, bez alergenów).",
		Params: []Param{
			{Name: "max_calories", Type: "number", Description: "Maksymalna liczba kalorii (opcjonalna)"},
			{Name: "max_sugar", Type: "number", Description: "Maksymalna zawartość cukru (opcjonalna)"},
			{Name: "min_protein", Type: "number", Description: "Minimalna zawartość białka (opcjonalna)"},
			{Name: "has_allergens", Type: "boolean", Description: "False = tylko produkty bez alergenów (opcjonalne)"},
		},
	},
	{
		Name:        "get_nutrition_summary",
		Description: "Pobiera podsumowanie wartości odżywczych zakupionych produktów w danym okresie.",
		Params: []Param{
			{Name: "start_date", Type: "string", Description: dateStartDesc + " (opcjonalna)"},
			{Name: "end_date", Type: "string", Description: dateEndDesc + " (opcjonalna)"},
		},
	},
	{
		Name:        "get_top_stores",
		Description: "Pobiera ranking sklepów według wydatków. Użyj gdy użytkownik pyta gdzie wydaje najwięcej lub które sklepy odwiedza najczęściej.",
		Params: []Param{
			{Name: "start_date", Type: "string", Description: dateStartDesc, Required: true},
			{Name: "end_date", Type: "string", Description: dateEndDesc, Required: true},
			{Name: "limit", Type: "integer", Description: "Liczba sklepów (domyślnie 10)", Default: 10},
		},
	},
	{
		Name:        "get_category_breakdown",
		Description: "Pobiera szczegółowy rozkład wydatków po kategoriach z procentami. Użyj gdy użytkownik pyta na co wydaje najwięcej pieniędzy lub jaki jest podział wydatków.",
		Params: []Param{
			{Name: "start_date", Type: "string", Description: dateStartDesc, Required: true},
			{Name: "end_date", Type: "string", Description: dateEndDesc, Required: true},
		},
	},
	{
		Name:        "get_monthly_trends",
		Description: "Pobiera trendy wydatków w ostatnich N miesiącach z analizą wzrostową/spadkową. Użyj gdy użytkownik pyta o trendy lub jak zmieniają się jego wydatki w czasie.",
		Params: []Param{
			{Name: "months", Type: "integer", Description: "Liczba miesięcy wstecz (domyślnie 6)", Default: 6},
		},
	},
	{
		Name:        "get_spending_patterns",
		Description: "Analizuje wzorce wydatków według dni tygodnia i pór dnia. Użyj gdy użytkownik pyta kiedy najczęściej robi zakupy lub jaki ma nawyk zakupowy.",
		Params: []Param{
			{Name: "start_date", Type: "string", Description: dateStartDesc, Required: true},
			{Name: "end_date", Type: "string", Description: dateEndDesc, Required: true},
		},
	},
	{
		Name:        "compare_shopping_list_costs",
		Description: "Porównuje koszt aktualnej listy zakupów między sklepami na podstawie historii cen. Użyj gdy użytkownik pyta gdzie najtaniej zrobi zakupy z listy.",
		Params: []Param{
			{Name: "list_id", Type: "integer", Description: "ID listy (opcjonalne, domyślnie najnowsza lista)"},
		},
	},
}

var catalogIndex = func() map[string]*Tool {
	idx := make(map[string]*Tool, len(catalog))
	for i := range catalog {
		idx[catalog[i].Name] = &catalog[i]
	}
	return idx
}()

// Catalog returns every registered tool in declaration order.
func Catalog() []Tool {
	out := make([]Tool, len(catalog))
	copy(out, catalog)
	return out
}

// FindTool looks a tool up by name.
func FindTool(name string) (*Tool, bool) {
	t, ok := catalogIndex[name]
	return t, ok
}

// ToolNames returns all tool names sorted alphabetically.
func ToolNames() []string {
	names := make([]string, 0, len(catalog))
	for _, t := range catalog {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// promptCatalog renders the catalog as a compact listing for the intent
// analysis prompt. One line per tool keeps the prompt small enough for
// fast models.
func promptCatalog() string {
	var b strings.Builder
	for _, t := range catalog {
		b.WriteString("- ")
		b.WriteString(t.Name)
		b.WriteString("(")
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			if p.Required {
				b.WriteString("*")
			}
			if len(p.Enum) > 0 {
				fmt.Fprintf(&b, " [%s]", strings.Join(p.Enum, "|"))
			}
		}
		b.WriteString("): ")
		b.WriteString(t.Description)
		b.WriteString("\n")
	}
	return b.String()
}
