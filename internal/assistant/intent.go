package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
	"github.com/lukaszlap/paragonyOSA/internal/llm"
	"github.com/lukaszlap/paragonyOSA/internal/logging"
)

// Analyzer turns a user message into an intent label and a list of tool
// calls. The primary path asks the model through a stateless completion,
// keeping analysis prompts out of the visible conversation. Whenever the
// model call fails or its output cannot be parsed, a deterministic keyword
// matcher takes over, so Analyze never returns an error.
type Analyzer struct {
	client    llm.Client
	log       *logging.Logger
	maxTokens int
	now       func() time.Time
}

func NewAnalyzer(client llm.Client, maxTokens int, log *logging.Logger) *Analyzer {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Analyzer{
		client:    client,
		log:       log.Sub("intent"),
		maxTokens: maxTokens,
		now:       time.Now,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, message string) domain.IntentResult {
	resp, err := a.client.Complete(ctx, llm.CompletionRequest{
		Messages:  []llm.Message{{Role: "user", Content: a.prompt(message)}},
		MaxTokens: a.maxTokens,
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("intent analysis call failed, using keyword fallback")
		return keywordIntent(message, a.now())
	}

	raw, ok := extractJSON(resp.Content)
	if !ok {
		a.log.Debug().Str("response", truncate(resp.Content, 200)).
			Msg("no JSON object in intent response, using keyword fallback")
		return keywordIntent(message, a.now())
	}

	var result domain.IntentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		a.log.Debug().Err(err).Msg("intent JSON does not parse, using keyword fallback")
		return keywordIntent(message, a.now())
	}
	if result.Intent == "" {
		result.Intent = "general_query"
	}
	return result
}

func (a *Analyzer) prompt(message string) string {
	today := a.now()
	yesterday := today.AddDate(0, 0, -1)
	weekAgo := today.AddDate(0, 0, -7)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	return fmt.Sprintf(`Przeanalizuj zapytanie użytkownika w kontekście poprzednich wiadomości:

Dzisiejsza data: %s

Zapytanie: "%s"

Dostępne funkcje:
%s
WAŻNE:
- Pamiętaj o kontekście poprzednich wiadomości!
- Jeśli użytkownik odnosi się do czegoś wcześniejszego ("to", "ten produkt", "ta kategoria"), użyj informacji z historii rozmowy.
- Interpretuj czas względem dzisiejszej daty:
  * "dzisiaj" = %s
  * "wczoraj" = %s
  * "w tym tygodniu" = od %s
  * "w tym miesiącu" = od %s

Odpowiedz w formacie JSON:
{
    "intent": "krótki opis intencji",
    "needs_data": true/false,
    "functions": [
        {
            "name": "nazwa_funkcji",
            "parameters": {...}
        }
    ]
}`,
		today.Format(time.DateOnly), message, promptCatalog(),
		today.Format(time.DateOnly), yesterday.Format(time.DateOnly),
		weekAgo.Format(time.DateOnly), monthStart.Format(time.DateOnly))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
