package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszlap/paragonyOSA/internal/llm"
	"github.com/lukaszlap/paragonyOSA/internal/logging"
)

func fixedAnalyzer(client llm.Client, today time.Time) *Analyzer {
	a := NewAnalyzer(client, 1024, logging.New(nil, "silent"))
	a.now = func() time.Time { return today }
	return a
}

func TestAnalyzeParsesModelJSON(t *testing.T) {
	client := &llm.MockClient{
		CompleteFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Content: "Oto analiza:\n```json\n" +
				`{"intent": "budget_check", "needs_data": true, "functions": [{"name": "get_budget_status", "parameters": {"category": "Jedzenie"}}]}` +
				"\n```"}, nil
		},
	}
	a := fixedAnalyzer(client, time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))

	result := a.Analyze(context.Background(), "Jak wygląda mój budżet na jedzenie?")
	assert.Equal(t, "budget_check", result.Intent)
	assert.True(t, result.NeedsData)
	require.Len(t, result.Calls, 1)
	assert.Equal(t, "get_budget_status", result.Calls[0].Name)
	assert.Equal(t, "Jedzenie", result.Calls[0].Parameters["category"])

	// The analysis call must stay off the conversational channel.
	require.Len(t, client.Requests, 1)
	assert.Empty(t, client.Requests[0].System)
	assert.Contains(t, client.Requests[0].Messages[0].Content, "Dostępne funkcje:")
}

func TestAnalyzeFallsBackOnModelError(t *testing.T) {
	today := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	client := &llm.MockClient{
		CompleteFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return nil, errors.New("timeout")
		},
	}
	a := fixedAnalyzer(client, today)

	result := a.Analyze(context.Background(), "Ile wydałem dzisiaj?")
	assert.Equal(t, "general_query", result.Intent)
	require.NotEmpty(t, result.Calls)
	assert.Equal(t, "get_expenses_by_date", result.Calls[0].Name)
	assert.Equal(t, "2026-08-20", result.Calls[0].Parameters["start_date"])
	assert.Equal(t, "2026-08-20", result.Calls[0].Parameters["end_date"])
}

func TestAnalyzeFallsBackOnGarbage(t *testing.T) {
	client := &llm.MockClient{
		CompleteFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Content: "nie potrafię tego przetworzyć"}, nil
		},
	}
	a := fixedAnalyzer(client, time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))

	result := a.Analyze(context.Background(), "Pokaż mój budżet")
	assert.Equal(t, "general_query", result.Intent)
	require.Len(t, result.Calls, 1)
	assert.Equal(t, "get_budget_status", result.Calls[0].Name)
}

func TestKeywordIntent(t *testing.T) {
	today := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		message string
		tool    string
		params  map[string]any
	}{
		{
			name:    "today",
			message: "Ile wydałem dzisiaj?",
			tool:    "get_expenses_by_date",
			params:  map[string]any{"start_date": "2026-08-20", "end_date": "2026-08-20"},
		},
		{
			name:    "yesterday",
			message: "co kupiłem wczoraj",
			tool:    "get_expenses_by_date",
			params:  map[string]any{"start_date": "2026-08-19", "end_date": "2026-08-19"},
		},
		{
			name:    "this week",
			message: "wydatki w tym tygodniu",
			tool:    "get_expenses_by_date",
			params:  map[string]any{"start_date": "2026-08-13", "end_date": "2026-08-20"},
		},
		{
			name:    "this month",
			message: "ile w tym miesiącu",
			tool:    "get_expenses_by_date",
			params:  map[string]any{"start_date": "2026-08-01", "end_date": "2026-08-20"},
		},
		{
			name:    "budget",
			message: "pokaż moje limity",
			tool:    "get_budget_status",
			params:  map[string]any{},
		},
		{
			name:    "summary",
			message: "poproszę podsumowanie",
			tool:    "get_spending_summary",
			params:  map[string]any{"start_date": "2026-07-21", "end_date": "2026-08-20"},
		},
		{
			name:    "product logs",
			message: "kiedy dodałem ostatni produkt",
			tool:    "get_user_logs",
			params:  map[string]any{"action_type": "product_add", "limit": 50},
		},
		{
			name:    "activity logs",
			message: "pokaż moją aktywność",
			tool:    "get_user_logs",
			params:  map[string]any{"limit": 25},
		},
		{
			name:    "login logs",
			message: "kiedy się logowałem",
			tool:    "get_user_logs",
			params:  map[string]any{"action_type": "user_login", "limit": 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := keywordIntent(tt.message, today)
			assert.Equal(t, "general_query", result.Intent)
			assert.True(t, result.NeedsData)
			require.Len(t, result.Calls, 1)
			assert.Equal(t, tt.tool, result.Calls[0].Name)
			assert.Equal(t, tt.params, result.Calls[0].Parameters)
		})
	}
}

func TestKeywordIntentNoMatch(t *testing.T) {
	result := keywordIntent("opowiedz mi dowcip", time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "general_query", result.Intent)
	assert.Empty(t, result.Calls)
}

func TestKeywordIntentStacksIndependentGroups(t *testing.T) {
	today := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	result := keywordIntent("podsumowanie wydatków dzisiaj i stan budżetu", today)
	require.Len(t, result.Calls, 3)
	names := []string{result.Calls[0].Name, result.Calls[1].Name, result.Calls[2].Name}
	assert.Equal(t, []string{"get_expenses_by_date", "get_budget_status", "get_spending_summary"}, names)
}
