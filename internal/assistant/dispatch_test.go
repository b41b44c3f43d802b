package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
)

func TestExecuteUnknownTool(t *testing.T) {
	exec, _, uid := testExecutor(t)

	result, err := exec.Execute(context.Background(), uid, domain.ToolCall{Name: "drop_table"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "Unknown function: drop_table"}, result)
}

func TestExecuteDropsUndeclaredParameters(t *testing.T) {
	exec, db, uid := testExecutor(t)
	addReceipt(t, db, uid, "Lidl", "2026-08-10 09:30:00", 12,
		testProduct{name: "Masło", category: "Jedzenie", price: 12, quantity: 1})

	result, err := exec.Execute(context.Background(), uid, domain.ToolCall{
		Name: "get_expenses_by_date",
		Parameters: map[string]any{
			"start_date": "2026-08-01",
			"end_date":   "2026-08-31",
			"user_id":    999, // must never leak into the query
			"format":     "csv",
		},
	})
	require.NoError(t, err)
	data, ok := result.(expensesByDateResult)
	require.True(t, ok)
	assert.Equal(t, 1, data.Count)
	assert.InDelta(t, 12, data.Total, 1e-9)
}

func TestExecuteMissingRequiredParameters(t *testing.T) {
	exec, _, uid := testExecutor(t)

	result, err := exec.Execute(context.Background(), uid, domain.ToolCall{
		Name:       "get_expenses_by_date",
		Parameters: map[string]any{"start_date": "2026-08-01"},
	})
	require.NoError(t, err)

	mismatch, ok := result.(paramMismatch)
	require.True(t, ok)
	assert.Equal(t, "get_expenses_by_date", mismatch.Tool)
	assert.Contains(t, mismatch.Error, "end_date")
	assert.Equal(t, []string{"start_date"}, mismatch.Provided)
	assert.Equal(t, []string{"start_date", "end_date"}, mismatch.Expected)
}

func TestExecuteDoesNotAbortOnOtherUsersData(t *testing.T) {
	exec, db, uid := testExecutor(t)
	other, err := db.CreateUser(context.Background(), "intruz", "tok-2", "user")
	require.NoError(t, err)
	addReceipt(t, db, other, "Lidl", "2026-08-10 09:30:00", 99,
		testProduct{name: "Wino", category: "Alkohol", price: 99, quantity: 1})

	result, execErr := exec.Execute(context.Background(), uid, domain.ToolCall{
		Name:       "get_expenses_by_date",
		Parameters: map[string]any{"start_date": "2026-08-01", "end_date": "2026-08-31"},
	})
	require.NoError(t, execErr)
	data := result.(expensesByDateResult)
	assert.Zero(t, data.Count)
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "wszystkie", periodLabel("", ""))
	assert.Equal(t, "2026-08-01 do dziś", periodLabel("2026-08-01", ""))
	assert.Equal(t, "początek do 2026-08-31", periodLabel("", "2026-08-31"))
	assert.Equal(t, "2026-08-01 do 2026-08-31", periodLabel("2026-08-01", "2026-08-31"))
}

func TestDaytimeBucket(t *testing.T) {
	assert.Equal(t, bucketMorning, daytimeBucket(6))
	assert.Equal(t, bucketMorning, daytimeBucket(11))
	assert.Equal(t, bucketAfternoon, daytimeBucket(12))
	assert.Equal(t, bucketEvening, daytimeBucket(22))
	assert.Equal(t, bucketNight, daytimeBucket(23))
	assert.Equal(t, bucketNight, daytimeBucket(3))
}
