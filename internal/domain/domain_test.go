package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentResultJSON(t *testing.T) {
	raw := `{
		"intent": "query_expenses",
		"needs_data": true,
		"functions": [
			{"name": "get_expenses_by_date", "parameters": {"start_date": "2026-09-01", "end_date": "2026-09-01"}}
		]
	}`

	var res IntentResult
	require.NoError(t, json.Unmarshal([]byte(raw), &res))
	assert.Equal(t, "query_expenses", res.Intent)
	assert.True(t, res.NeedsData)
	require.Len(t, res.Calls, 1)
	assert.Equal(t, "get_expenses_by_date", res.Calls[0].Name)
	assert.Equal(t, "2026-09-01", res.Calls[0].Parameters["start_date"])
}

func TestChatResponseOmitsEmpty(t *testing.T) {
	resp := ChatResponse{
		Success:   true,
		Response:  "Gotowe.",
		Timestamp: time.Now().Format(time.RFC3339),
	}
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"error"`)
	assert.NotContains(t, string(out), `"data"`)
}

func TestShoppingListItemNilProduct(t *testing.T) {
	item := ShoppingListItem{ID: 1, ListID: 2, Name: "sól himalajska", Quantity: 1}
	out, err := json.Marshal(item)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "productId")
}
