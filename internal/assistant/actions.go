package assistant

// actionDescriptions maps audit log action codes to the Polish labels shown
// to the user alongside raw log rows.
var actionDescriptions = map[string]string{
	"user_login":              "Logowanie użytkownika do systemu",
	"user_logout":             "Wylogowanie użytkownika",
	"user_register":           "Rejestracja nowego użytkownika",
	"receipt_add":             "Dodanie nowego paragonu",
	"receipt_edit":            "Edycja paragonu",
	"receipt_delete":          "Usunięcie paragonu",
	"receipt_view":            "Wyświetlenie szczegółów paragonu",
	"receipt_search":          "Wyszukiwanie paragonów",
	"product_add":             "Dodanie produktu do paragonu",
	"product_edit":            "Edycja produktu",
	"product_delete":          "Usunięcie produktu",
	"product_nutrition_view":  "Wyświetlenie wartości odżywczych produktu",
	"budget_create":           "Utworzenie nowego limitu budżetowego",
	"budget_update":           "Aktualizacja limitu budżetowego",
	"budget_delete":           "Usunięcie limitu budżetowego",
	"budget_alert":            "Alert przekroczenia limitu budżetowego",
	"list_create":             "Utworzenie listy zakupów",
	"list_update":             "Aktualizacja listy zakupów",
	"list_delete":             "Usunięcie listy zakupów",
	"profile_update":          "Aktualizacja profilu użytkownika",
	"password_change":         "Zmiana hasła",
	"api_key_generate":        "Wygenerowanie klucza API",
	"premium_activate":        "Aktywacja konta premium",
	"premium_deactivate":      "Dezaktywacja konta premium",
	"notification_create":     "Utworzenie powiadomienia",
	"notification_read":       "Odczytanie powiadomienia",
	"notification_view":       "Wyświetlenie powiadomień",
	"export_data":             "Eksport danych użytkownika",
	"import_data":             "Import danych",
	"assistant_query":         "Zapytanie do asystenta AI",
	"assistant_clear_history": "Wyczyszczenie historii rozmowy z asystentem",
	"analysis_expenses":       "Analiza wydatków użytkownika",
	"analysis_trends":         "Analiza trendów wydatków",
	"analysis_patterns":       "Analiza wzorców zakupowych",
	"system_error":            "Błąd systemowy",
	"security_alert":          "Alert bezpieczeństwa",
}
