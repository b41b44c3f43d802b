package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lukaszlap/paragonyOSA/internal/store"
)

type budgetEntry struct {
	Category    string  `json:"category"`
	Limit       float64 `json:"limit"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	Utilization float64 `json:"utilization_percent"`
	Status      string  `json:"status"`
}

type budgetStatusResult struct {
	Budgets []budgetEntry `json:"budgets"`
	Count   int           `json:"count"`
	Period  string        `json:"period"`
}

func budgetEntryFromRow(r store.BudgetRow) budgetEntry {
	e := budgetEntry{
		Category:  r.Category,
		Limit:     r.Limit,
		Spent:     round2(r.Spent),
		Remaining: round2(r.Limit - r.Spent),
		Status:    "ok",
	}
	if r.Limit > 0 {
		e.Utilization = round2(r.Spent / r.Limit * 100)
	}
	switch {
	case r.Spent >= r.Limit:
		e.Status = "exceeded"
	case r.Spent >= 0.75*r.Limit:
		e.Status = "warning"
	}
	return e
}

func (e *Executor) budgetStatus(ctx context.Context, userID int64, a args) (any, error) {
	rows, err := e.db.BudgetRows(ctx, userID)
	if err != nil {
		return nil, err
	}

	category := strings.ToLower(strings.TrimSpace(a.str("category")))
	budgets := make([]budgetEntry, 0, len(rows))
	for _, r := range rows {
		if category != "" && !strings.Contains(strings.ToLower(r.Category), category) {
			continue
		}
		budgets = append(budgets, budgetEntryFromRow(r))
	}
	return budgetStatusResult{
		Budgets: budgets,
		Count:   len(budgets),
		Period:  "bieżący miesiąc",
	}, nil
}

type budgetMutationResult struct {
	Success    bool    `json:"success"`
	Action     string  `json:"action,omitempty"`
	Category   string  `json:"category,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
	Message    string  `json:"message,omitempty"`
	Error      string  `json:"error,omitempty"`
	Suggestion string  `json:"suggestion,omitempty"`
}

func (e *Executor) manageBudgetLimits(ctx context.Context, userID int64, a args) (any, error) {
	action := a.str("action")
	category := a.str("category")

	categoryID, err := e.db.CategoryID(ctx, category, false)
	if errors.Is(err, store.ErrNotFound) {
		return budgetMutationResult{
			Error:      fmt.Sprintf("Nie znaleziono kategorii %q", category),
			Suggestion: "Dostępne kategorie: Jedzenie, Napoje, Alkohol, Transport, Odzież, Elektronika, Dom, Sport, Rozrywka, itp.",
		}, nil
	}
	if err != nil {
		return nil, err
	}

	switch action {
	case "add":
		amount, ok := a.num("amount")
		if !ok || amount <= 0 {
			return budgetMutationResult{Error: "Wymagana kwota limitu większa niż 0"}, nil
		}
		if _, err := e.db.BudgetLimitAmount(ctx, userID, categoryID); err == nil {
			return budgetMutationResult{
				Error:      fmt.Sprintf("Limit dla kategorii %q już istnieje", category),
				Suggestion: "Użyj akcji \"update\" aby go zmienić",
			}, nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if _, err := e.db.AddBudgetLimit(ctx, userID, categoryID, amount); err != nil {
			return nil, err
		}
		return budgetMutationResult{
			Success:  true,
			Action:   "added",
			Category: category,
			Amount:   amount,
			Message:  fmt.Sprintf("Dodano limit %.2f PLN dla kategorii %q", amount, category),
		}, nil

	case "update":
		amount, ok := a.num("amount")
		if !ok || amount <= 0 {
			return budgetMutationResult{Error: "Wymagana kwota limitu większa niż 0"}, nil
		}
		rows, err := e.db.UpdateBudgetLimit(ctx, userID, categoryID, amount)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return budgetMutationResult{
				Error:      fmt.Sprintf("Nie znaleziono limitu dla kategorii %q", category),
				Suggestion: "Użyj akcji \"add\" aby go utworzyć",
			}, nil
		}
		return budgetMutationResult{
			Success:  true,
			Action:   "updated",
			Category: category,
			Amount:   amount,
			Message:  fmt.Sprintf("Zaktualizowano limit dla %q na %.2f PLN", category, amount),
		}, nil

	case "delete":
		rows, err := e.db.DeleteBudgetLimit(ctx, userID, categoryID)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return budgetMutationResult{
				Error: fmt.Sprintf("Nie znaleziono limitu dla kategorii %q", category),
			}, nil
		}
		return budgetMutationResult{
			Success:  true,
			Action:   "deleted",
			Category: category,
			Message:  fmt.Sprintf("Usunięto limit dla kategorii %q", category),
		}, nil
	}

	return budgetMutationResult{
		Error: fmt.Sprintf("Nieznana akcja: %s. Dostępne: add, update, delete", action),
	}, nil
}

type budgetAlertsResult struct {
	Alerts      []budgetEntry `json:"alerts"`
	Exceeded    []budgetEntry `json:"exceeded"`
	Warnings    []budgetEntry `json:"warnings"`
	TotalAlerts int           `json:"total_alerts"`
	Message     string        `json:"message"`
}

func (e *Executor) budgetAlerts(ctx context.Context, userID int64) (any, error) {
	rows, err := e.db.BudgetRows(ctx, userID)
	if err != nil {
		return nil, err
	}

	var result budgetAlertsResult
	for _, r := range rows {
		entry := budgetEntryFromRow(r)
		switch entry.Status {
		case "exceeded":
			result.Alerts = append(result.Alerts, entry)
			result.Exceeded = append(result.Exceeded, entry)
		case "warning":
			result.Alerts = append(result.Alerts, entry)
			result.Warnings = append(result.Warnings, entry)
		}
	}
	result.TotalAlerts = len(result.Alerts)
	result.Message = alertMessage(result.Exceeded, result.Warnings)
	return result, nil
}

func alertMessage(exceeded, warnings []budgetEntry) string {
	var parts []string
	if len(exceeded) > 0 {
		parts = append(parts, "Przekroczono limit w kategoriach: "+joinCategories(exceeded))
	}
	if len(warnings) > 0 {
		parts = append(parts, "Zbliżasz się do limitu w kategoriach: "+joinCategories(warnings))
	}
	if len(parts) == 0 {
		return "Wszystkie limity budżetowe pod kontrolą"
	}
	return strings.Join(parts, " | ")
}

func joinCategories(entries []budgetEntry) string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Category)
	}
	return strings.Join(names, ", ")
}
