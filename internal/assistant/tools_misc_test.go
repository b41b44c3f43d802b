package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptDetails(t *testing.T) {
	exec, db, uid := testExecutor(t)
	rid := addReceipt(t, db, uid, "Biedronka", "2026-08-05 10:00:00", 25,
		testProduct{name: "Chleb", category: "Jedzenie", price: 10, quantity: 1},
		testProduct{name: "Ser", category: "Jedzenie", price: 15, quantity: 1})

	result := execute(t, exec, uid, "get_receipt_details", map[string]any{
		"receipt_id": float64(rid),
	}).(receiptDetailsResult)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.ProductsCount)
	require.NotNil(t, result.Receipt)
	assert.Equal(t, "Biedronka", result.Receipt.Store)

	missing := execute(t, exec, uid, "get_receipt_details", map[string]any{
		"receipt_id": 9999.0,
	}).(receiptDetailsResult)
	assert.False(t, missing.Success)
	assert.Contains(t, missing.Error, "Nie znaleziono paragonu o ID 9999")
}

func TestReceiptDetailsScopedToUser(t *testing.T) {
	exec, db, uid := testExecutor(t)
	other, err := db.CreateUser(context.Background(), "ktos", "tok-9", "user")
	require.NoError(t, err)
	rid := addReceipt(t, db, other, "Lidl", "2026-08-05 10:00:00", 50)

	result := execute(t, exec, uid, "get_receipt_details", map[string]any{
		"receipt_id": float64(rid),
	}).(receiptDetailsResult)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Nie znaleziono paragonu")
}

func TestSearchReceiptsFilters(t *testing.T) {
	exec, db, uid := testExecutor(t)
	addReceipt(t, db, uid, "Biedronka", "2026-08-05 10:00:00", 10)
	addReceipt(t, db, uid, "Lidl", "2026-08-06 10:00:00", 120)

	result := execute(t, exec, uid, "search_receipts", map[string]any{
		"store_name": "lidl", "min_amount": 100.0,
	}).(receiptsResult)
	require.True(t, result.Success)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "Lidl", result.Receipts[0].Store)
	require.NotNil(t, result.Filters)
	assert.Equal(t, "lidl", result.Filters.Store)
	require.NotNil(t, result.Filters.MinAmount)
	assert.InDelta(t, 100, *result.Filters.MinAmount, 1e-9)
}

func TestRecentReceiptsOrderAndLimit(t *testing.T) {
	exec, db, uid := testExecutor(t)
	addReceipt(t, db, uid, "Biedronka", "2026-08-01 10:00:00", 10)
	addReceipt(t, db, uid, "Lidl", "2026-08-05 10:00:00", 20)
	addReceipt(t, db, uid, "Kaufland", "2026-08-09 10:00:00", 30)

	result := execute(t, exec, uid, "get_recent_receipts", map[string]any{
		"limit": 2.0,
	}).(receiptsResult)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "Kaufland", result.Receipts[0].Store)
	assert.Equal(t, "Lidl", result.Receipts[1].Store)
}

func TestReceiptStatistics(t *testing.T) {
	exec, db, uid := testExecutor(t)

	empty := execute(t, exec, uid, "get_receipt_statistics", nil).(receiptStatisticsResult)
	require.True(t, empty.Success)
	assert.Equal(t, "Brak paragonów w systemie", empty.Message)

	addReceipt(t, db, uid, "Biedronka", "2026-08-01 10:00:00", 10)
	addReceipt(t, db, uid, "Lidl", "2026-08-01 18:00:00", 30)

	result := execute(t, exec, uid, "get_receipt_statistics", nil).(receiptStatisticsResult)
	assert.Empty(t, result.Message)
	assert.Equal(t, 2, result.Statistics.Receipts)
	assert.Equal(t, 1, result.Statistics.ShoppingDays)
	assert.InDelta(t, 40, result.Statistics.Total, 1e-9)
	assert.Equal(t, 2, result.Statistics.Stores)
}

func TestUserLogs(t *testing.T) {
	exec, db, uid := testExecutor(t)
	ctx := context.Background()
	require.NoError(t, db.LogActivity(ctx, uid, "user_login", "user", "logowanie"))
	require.NoError(t, db.LogActivity(ctx, uid, "user_login", "user", "logowanie"))
	require.NoError(t, db.LogActivity(ctx, uid, "product_add", "user", "dodano produkt"))

	result := execute(t, exec, uid, "get_user_logs", nil).(userLogsResult)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, 2, result.ActionSummary["user_login"])
	assert.Equal(t, 1, result.ActionSummary["product_add"])
	assert.Equal(t, actionDescriptions["user_login"], result.ActionDescriptions["user_login"])
	assert.Empty(t, result.FilteredByAction)

	filtered := execute(t, exec, uid, "get_user_logs", map[string]any{
		"action_type": "product_add",
	}).(userLogsResult)
	assert.Equal(t, 1, filtered.Count)
	assert.Equal(t, "product_add", filtered.FilteredByAction)
}

func TestNotifications(t *testing.T) {
	exec, db, uid := testExecutor(t)
	ctx := context.Background()
	_, err := db.AddNotification(ctx, uid, nil, "budget_warning", "Zbliżasz się do limitu")
	require.NoError(t, err)

	result := execute(t, exec, uid, "get_notifications", nil).(notificationsResult)
	require.True(t, result.Success)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "Zbliżasz się do limitu", result.Notifications[0].Message)
}

func TestProductNutritionNotFound(t *testing.T) {
	exec, db, uid := testExecutor(t)
	addReceipt(t, db, uid, "Biedronka", "2026-08-01 10:00:00", 4,
		testProduct{name: "Mleko", category: "Jedzenie", price: 4, quantity: 1})

	result := execute(t, exec, uid, "get_product_nutrition", map[string]any{
		"product_name": "mleko",
	}).(productNutritionResult)
	assert.False(t, result.Success)
	assert.Equal(t, "Nie znaleziono informacji żywieniowych dla tego produktu", result.Error)
	assert.NotEmpty(t, result.Suggestion)
}

func TestNutritionSummaryEmpty(t *testing.T) {
	exec, _, uid := testExecutor(t)

	result := execute(t, exec, uid, "get_nutrition_summary", nil).(nutritionSummaryResult)
	require.True(t, result.Success)
	assert.Equal(t, "Brak produktów z informacjami żywieniowymi w tym okresie", result.Message)
	assert.Equal(t, "wszystkie", result.Period)
}

func TestToolResultsScopedByUser(t *testing.T) {
	exec, db, uid := testExecutor(t)
	other, err := db.CreateUser(context.Background(), "obcy", "tok-8", "user")
	require.NoError(t, err)
	require.NoError(t, db.LogActivity(context.Background(), other, "user_login", "user", ""))

	result := execute(t, exec, uid, "get_user_logs", nil).(userLogsResult)
	assert.Zero(t, result.Count)
}
