package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
	"github.com/lukaszlap/paragonyOSA/internal/store"
)

func nowStamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func manageBudget(t *testing.T, exec *Executor, uid int64, params map[string]any) budgetMutationResult {
	t.Helper()
	result, err := exec.Execute(context.Background(), uid, domain.ToolCall{
		Name:       "manage_budget_limits",
		Parameters: params,
	})
	require.NoError(t, err)
	out, ok := result.(budgetMutationResult)
	require.True(t, ok, "got %T", result)
	return out
}

func TestBudgetLimitLifecycle(t *testing.T) {
	exec, db, uid := testExecutor(t)
	// Creates the category as a side effect.
	addReceipt(t, db, uid, "Biedronka", nowStamp(), 120,
		testProduct{name: "Zakupy", category: "Jedzenie", price: 120, quantity: 1})

	added := manageBudget(t, exec, uid, map[string]any{
		"action": "add", "category": "Jedzenie", "amount": 300.0,
	})
	assert.True(t, added.Success)
	assert.Equal(t, "added", added.Action)
	assert.Contains(t, added.Message, "300.00 PLN")

	// Re-adding the same limit is rejected with an update suggestion.
	again := manageBudget(t, exec, uid, map[string]any{
		"action": "add", "category": "Jedzenie", "amount": 400.0,
	})
	assert.False(t, again.Success)
	assert.Contains(t, again.Error, "już istnieje")
	assert.Contains(t, again.Suggestion, "update")

	updated := manageBudget(t, exec, uid, map[string]any{
		"action": "update", "category": "Jedzenie", "amount": 500.0,
	})
	assert.True(t, updated.Success)
	assert.Equal(t, "updated", updated.Action)

	deleted := manageBudget(t, exec, uid, map[string]any{
		"action": "delete", "category": "Jedzenie",
	})
	assert.True(t, deleted.Success)
	assert.Equal(t, "deleted", deleted.Action)

	// Delete is not idempotent at the reporting level.
	gone := manageBudget(t, exec, uid, map[string]any{
		"action": "delete", "category": "Jedzenie",
	})
	assert.False(t, gone.Success)
	assert.Contains(t, gone.Error, "Nie znaleziono limitu")
}

func TestBudgetUpdateMissingSuggestsAdd(t *testing.T) {
	exec, db, uid := testExecutor(t)
	addReceipt(t, db, uid, "Biedronka", nowStamp(), 50,
		testProduct{name: "Bilet", category: "Transport", price: 50, quantity: 1})

	result := manageBudget(t, exec, uid, map[string]any{
		"action": "update", "category": "Transport", "amount": 100.0,
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Nie znaleziono limitu")
	assert.Contains(t, result.Suggestion, "add")
}

func TestBudgetUnknownCategory(t *testing.T) {
	exec, _, uid := testExecutor(t)

	result := manageBudget(t, exec, uid, map[string]any{
		"action": "add", "category": "Jachty", "amount": 1000.0,
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Nie znaleziono kategorii")
	assert.NotEmpty(t, result.Suggestion)
}

func TestBudgetAddRejectsNonPositiveAmount(t *testing.T) {
	exec, db, uid := testExecutor(t)
	addReceipt(t, db, uid, "Biedronka", nowStamp(), 10,
		testProduct{name: "Chleb", category: "Jedzenie", price: 10, quantity: 1})

	result := manageBudget(t, exec, uid, map[string]any{
		"action": "add", "category": "Jedzenie", "amount": 0.0,
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "większa niż 0")
}

func TestBudgetStatusMath(t *testing.T) {
	exec, db, uid := testExecutor(t)
	ctx := context.Background()
	addReceipt(t, db, uid, "Biedronka", nowStamp(), 150,
		testProduct{name: "Zakupy", category: "Jedzenie", price: 150, quantity: 1})

	added := manageBudget(t, exec, uid, map[string]any{
		"action": "add", "category": "Jedzenie", "amount": 200.0,
	})
	require.True(t, added.Success)

	result, err := exec.Execute(ctx, uid, domain.ToolCall{Name: "get_budget_status"})
	require.NoError(t, err)
	status := result.(budgetStatusResult)
	require.Equal(t, 1, status.Count)

	entry := status.Budgets[0]
	assert.Equal(t, "Jedzenie", entry.Category)
	assert.InDelta(t, 200, entry.Limit, 1e-9)
	assert.InDelta(t, 150, entry.Spent, 1e-9)
	assert.InDelta(t, 50, entry.Remaining, 1e-9)
	assert.InDelta(t, 75.0, entry.Utilization, 1e-9)
	assert.Equal(t, "warning", entry.Status)
	assert.Equal(t, "bieżący miesiąc", status.Period)
}

func TestBudgetAlertsThresholds(t *testing.T) {
	exec, db, uid := testExecutor(t)
	ctx := context.Background()

	// Jedzenie exceeded (250/200), Transport warning (80/100), Dom ok (10/100).
	addReceipt(t, db, uid, "Biedronka", nowStamp(), 340,
		testProduct{name: "Zakupy", category: "Jedzenie", price: 250, quantity: 1},
		testProduct{name: "Paliwo", category: "Transport", price: 80, quantity: 1},
		testProduct{name: "Żarówka", category: "Dom", price: 10, quantity: 1})
	for category, limit := range map[string]float64{"Jedzenie": 200, "Transport": 100, "Dom": 100} {
		r := manageBudget(t, exec, uid, map[string]any{"action": "add", "category": category, "amount": limit})
		require.True(t, r.Success, category)
	}

	result, err := exec.Execute(ctx, uid, domain.ToolCall{Name: "get_budget_alerts"})
	require.NoError(t, err)
	alerts := result.(budgetAlertsResult)

	require.Len(t, alerts.Exceeded, 1)
	assert.Equal(t, "Jedzenie", alerts.Exceeded[0].Category)
	require.Len(t, alerts.Warnings, 1)
	assert.Equal(t, "Transport", alerts.Warnings[0].Category)
	assert.Equal(t, 2, alerts.TotalAlerts)
	assert.Contains(t, alerts.Message, "Przekroczono limit w kategoriach: Jedzenie")
	assert.Contains(t, alerts.Message, "Zbliżasz się do limitu w kategoriach: Transport")
}

func TestBudgetAlertsAllClear(t *testing.T) {
	exec, _, uid := testExecutor(t)

	result, err := exec.Execute(context.Background(), uid, domain.ToolCall{Name: "get_budget_alerts"})
	require.NoError(t, err)
	alerts := result.(budgetAlertsResult)
	assert.Zero(t, alerts.TotalAlerts)
	assert.Equal(t, "Wszystkie limity budżetowe pod kontrolą", alerts.Message)
}

func TestBudgetEntryBoundaries(t *testing.T) {
	// spent == limit counts as exceeded, never warning.
	entry := budgetEntryFromRow(store.BudgetRow{Category: "Jedzenie", Limit: 200, Spent: 200})
	assert.Equal(t, "exceeded", entry.Status)
	assert.InDelta(t, 100.0, entry.Utilization, 1e-9)
	assert.Zero(t, entry.Remaining)

	// Exactly 75% is already a warning.
	entry = budgetEntryFromRow(store.BudgetRow{Category: "Dom", Limit: 200, Spent: 150})
	assert.Equal(t, "warning", entry.Status)

	// A non-positive limit yields zero utilization instead of dividing.
	entry = budgetEntryFromRow(store.BudgetRow{Category: "Inne", Limit: 0, Spent: 10})
	assert.Zero(t, entry.Utilization)
	assert.Equal(t, "exceeded", entry.Status)
}
