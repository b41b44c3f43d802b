package assistant

import (
	"strings"
	"time"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
)

// keywordIntent is the deterministic backup behind the model-driven intent
// analysis. Fixed Polish keyword sets map to tool calls with date ranges
// resolved against "today". Messages with no matching keywords come back
// with an empty call list under the "general_query" label.
func keywordIntent(message string, today time.Time) domain.IntentResult {
	lower := strings.ToLower(message)
	result := domain.IntentResult{
		Intent:    "general_query",
		NeedsData: true,
	}

	add := func(name string, params map[string]any) {
		result.Calls = append(result.Calls, domain.ToolCall{Name: name, Parameters: params})
	}
	todayStr := today.Format(time.DateOnly)

	switch {
	case containsAny(lower, "dzisiaj", "dziś", "dzis"):
		add("get_expenses_by_date", map[string]any{
			"start_date": todayStr,
			"end_date":   todayStr,
		})
	case strings.Contains(lower, "wczoraj"):
		yesterday := today.AddDate(0, 0, -1).Format(time.DateOnly)
		add("get_expenses_by_date", map[string]any{
			"start_date": yesterday,
			"end_date":   yesterday,
		})
	case containsAny(lower, "tydzień", "tydzie", "tygodniu"):
		add("get_expenses_by_date", map[string]any{
			"start_date": today.AddDate(0, 0, -7).Format(time.DateOnly),
			"end_date":   todayStr,
		})
	case containsAny(lower, "miesiąc", "miesiac", "miesiącu"):
		monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		add("get_expenses_by_date", map[string]any{
			"start_date": monthStart.Format(time.DateOnly),
			"end_date":   todayStr,
		})
	}

	if containsAny(lower, "budżet", "budzet", "limit", "limity") {
		add("get_budget_status", map[string]any{})
	}

	if containsAny(lower, "podsumowanie", "suma", "łącznie", "lacznie", "ile wydałem", "ile wydalem") {
		add("get_spending_summary", map[string]any{
			"start_date": today.AddDate(0, 0, -30).Format(time.DateOnly),
			"end_date":   todayStr,
		})
	}

	switch {
	case containsAny(lower, "dodałem", "dodalem", "dodawałem", "dodawalem", "usunąłem", "usunalem"):
		if strings.Contains(lower, "produkt") {
			add("get_user_logs", map[string]any{
				"action_type": "product_add",
				"limit":       50,
			})
		}
	case containsAny(lower, "aktywność", "aktywnosc", "logi", "historia", "co robiłem", "co robilem", "ostatnie działania", "ostatnie dzialania"):
		add("get_user_logs", map[string]any{"limit": 25})
	}

	if containsAny(lower, "logowanie", "logowałem", "logowalem", "zalogowałem", "zalogowalem") {
		add("get_user_logs", map[string]any{
			"action_type": "user_login",
			"limit":       25,
		})
	}

	return result
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
