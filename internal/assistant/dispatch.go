package assistant

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
	"github.com/lukaszlap/paragonyOSA/internal/logging"
	"github.com/lukaszlap/paragonyOSA/internal/store"
)

// Executor runs catalog tools against the store on behalf of one user.
// It is stateless and safe to share across sessions. Business-level
// failures (missing parameter, unknown category, empty list) come back as
// payloads carrying an error field, so the model can explain the gap to
// the user; only storage failures surface as Go errors.
type Executor struct {
	db  *store.DB
	log *logging.Logger
	now func() time.Time
}

func NewExecutor(db *store.DB, log *logging.Logger) *Executor {
	return &Executor{db: db, log: log.Sub("tools"), now: time.Now}
}

// paramMismatch is the structured result for a call the dispatcher could
// not hand to its operation.
type paramMismatch struct {
	Error    string   `json:"error"`
	Tool     string   `json:"tool"`
	Provided []string `json:"provided_parameters"`
	Expected []string `json:"expected_parameters"`
}

// Execute resolves the named tool, filters its parameters down to the
// declared set, and invokes it. Unknown tools and missing required
// parameters yield error payloads instead of aborting the pipeline.
func (e *Executor) Execute(ctx context.Context, userID int64, call domain.ToolCall) (any, error) {
	tool, ok := FindTool(call.Name)
	if !ok {
		e.log.Warn().Str("tool", call.Name).Msg("unknown tool requested")
		return map[string]any{"error": "Unknown function: " + call.Name}, nil
	}

	params, dropped := filterParams(tool, call.Parameters)
	if len(dropped) > 0 {
		e.log.Debug().Str("tool", call.Name).Strs("dropped", dropped).
			Msg("dropped undeclared parameters")
	}

	if missing := missingRequired(tool, params); len(missing) > 0 {
		e.log.Debug().Str("tool", call.Name).Strs("missing", missing).
			Msg("required parameters absent")
		return paramMismatch{
			Error:    fmt.Sprintf("Brakujące wymagane parametry: %v", missing),
			Tool:     call.Name,
			Provided: params.keys(),
			Expected: paramNames(tool),
		}, nil
	}

	switch call.Name {
	case "get_expenses_by_date":
		return e.expensesByDate(ctx, userID, params)
	case "get_expenses_by_category":
		return e.expensesByCategory(ctx, userID, params)
	case "get_expenses_by_store":
		return e.expensesByStore(ctx, userID, params)
	case "get_spending_summary":
		return e.spendingSummary(ctx, userID, params)
	case "get_product_history":
		return e.productHistory(ctx, userID, params)
	case "get_budget_status":
		return e.budgetStatus(ctx, userID, params)
	case "get_most_expensive_purchases":
		return e.mostExpensivePurchases(ctx, userID, params)
	case "get_shopping_frequency":
		return e.shoppingFrequency(ctx, userID, params)
	case "compare_periods":
		return e.comparePeriods(ctx, userID, params)
	case "get_user_logs":
		return e.userLogs(ctx, userID, params)
	case "manage_budget_limits":
		return e.manageBudgetLimits(ctx, userID, params)
	case "manage_shopping_list":
		return e.manageShoppingList(ctx, userID, params)
	case "get_receipt_details":
		return e.receiptDetails(ctx, userID, params)
	case "search_receipts":
		return e.searchReceipts(ctx, userID, params)
	case "get_recent_receipts":
		return e.recentReceipts(ctx, userID, params)
	case "get_receipt_statistics":
		return e.receiptStatistics(ctx, userID)
	case "get_notifications":
		return e.notifications(ctx, userID, params)
	case "get_budget_alerts":
		return e.budgetAlerts(ctx, userID)
	case "get_product_nutrition":
		return e.productNutrition(ctx, userID, params)
	case "search_products_by_nutrition":
		return e.searchProductsByNutrition(ctx, userID, params)
	case "get_nutrition_summary":
		return e.nutritionSummary(ctx, userID, params)
	case "get_top_stores":
		return e.topStores(ctx, userID, params)
	case "get_category_breakdown":
		return e.categoryBreakdown(ctx, userID, params)
	case "get_monthly_trends":
		return e.monthlyTrends(ctx, userID, params)
	case "get_spending_patterns":
		return e.spendingPatterns(ctx, userID, params)
	case "compare_shopping_list_costs":
		return e.compareShoppingListCosts(ctx, userID, params)
	}
	return map[string]any{"error": "Unknown function: " + call.Name}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func periodLabel(start, end string) string {
	if start == "" && end == "" {
		return "wszystkie"
	}
	if start == "" {
		start = "początek"
	}
	if end == "" {
		end = "dziś"
	}
	return start + " do " + end
}
