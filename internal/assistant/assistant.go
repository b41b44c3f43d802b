package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
	"github.com/lukaszlap/paragonyOSA/internal/llm"
	"github.com/lukaszlap/paragonyOSA/internal/logging"
)

// Assistant is one user's conversational session. It owns a persistent
// chat channel and serializes message processing, so concurrent requests
// for the same user queue up instead of interleaving turns.
type Assistant struct {
	mu        sync.Mutex
	userID    int64
	chat      *llm.Chat
	analyzer  *Analyzer
	exec      *Executor
	retriever Retriever
	maxCtx    int
	log       *logging.Logger
	now       func() time.Time
}

// New builds a session for the given user. retriever may be nil; the
// documentation context step is skipped then.
func New(userID int64, client llm.Client, opts llm.ChatOptions, analyzer *Analyzer, exec *Executor, retriever Retriever, maxContextChars int, log *logging.Logger) *Assistant {
	now := time.Now
	return &Assistant{
		userID:    userID,
		chat:      llm.NewChat(client, syntheticSystemTurn(now()), opts),
		analyzer:  analyzer,
		exec:      exec,
		retriever: retriever,
		maxCtx:    maxContextChars,
		log:       log.Sub("session").WithUser(userID),
		now:       now,
	}
}

var (
	reSystemData = regexp.MustCompile(`(?s)\[SYSTEM DATA.*?\]`)
	reDataBlock  = regexp.MustCompile(`(?s)\[DANE Z BAZY.*?\]`)
	reDataEnd    = regexp.MustCompile(`(?s)\[KONIEC DANYCH.*?\]`)
	reFunction   = regexp.MustCompile(`Function:\s*\w+`)
	reResult     = regexp.MustCompile(`Result:\s*\{`)
)

// stripMarkers removes internal delimiters the model may echo back.
func stripMarkers(s string) string {
	s = reSystemData.ReplaceAllString(s, "")
	s = reDataBlock.ReplaceAllString(s, "")
	s = reDataEnd.ReplaceAllString(s, "")
	s = reFunction.ReplaceAllString(s, "")
	s = reResult.ReplaceAllString(s, "{")
	return strings.TrimSpace(s)
}

// ProcessMessage runs the full pipeline for one user message: optional
// documentation context, intent analysis, tool execution, and a final
// conversational turn that renders the tool data as prose. Any failure
// degrades to an apologetic envelope; the raw error string is kept in the
// payload for operators.
func (a *Assistant) ProcessMessage(ctx context.Context, message string) domain.ChatResponse {
	a.mu.Lock()
	defer a.mu.Unlock()

	docContext := ""
	if isDocQuestion(message) && a.retriever != nil && a.retriever.Available() {
		docContext = a.retriever.Context(ctx, message, a.maxCtx)
	}

	intent := a.analyzer.Analyze(ctx, message)
	a.log.Debug().
		Str("intent", intent.Intent).
		Int("calls", len(intent.Calls)).
		Msg("intent analyzed")

	results := make([]domain.ToolResult, 0, len(intent.Calls))
	for _, call := range intent.Calls {
		data, err := a.exec.Execute(ctx, a.userID, call)
		if err != nil {
			a.log.Error().Err(err).Str("tool", call.Name).Msg("tool execution failed")
			return a.failure(err)
		}
		results = append(results, domain.ToolResult{Tool: call.Name, Data: data})
	}

	full, err := composeMessage(docContext, message, results)
	if err != nil {
		return a.failure(err)
	}

	reply, err := a.chat.Send(ctx, full)
	if err != nil {
		a.log.Error().Err(err).Msg("chat completion failed")
		return a.failure(err)
	}

	return domain.ChatResponse{
		Success:   true,
		Response:  stripMarkers(reply),
		Intent:    intent.Intent,
		Data:      results,
		Timestamp: a.now().Format(time.RFC3339),
	}
}

// composeMessage joins the retrieval context, the user's text, and a
// delimited block of tool results that instructs the model to render the
// JSON as user-facing prose.
func composeMessage(docContext, message string, results []domain.ToolResult) (string, error) {
	parts := make([]string, 0, 3+2*len(results))
	if docContext != "" {
		parts = append(parts, docContext)
	}
	parts = append(parts, message)

	if len(results) > 0 {
		parts = append(parts, "\n\n[DANE Z BAZY - Przetłumacz to na piękny Markdown dla użytkownika]")
		for _, r := range results {
			payload, err := json.MarshalIndent(r.Data, "", "  ")
			if err != nil {
				return "", fmt.Errorf("encode tool result %s: %w", r.Tool, err)
			}
			parts = append(parts, fmt.Sprintf("\nWynik funkcji %s:", r.Tool), string(payload))
		}
		parts = append(parts, "\n[KONIEC DANYCH - Pamiętaj: Użytkownik NIE widzi JSON. Sformatuj to ładnie!]")
	}
	return strings.Join(parts, "\n"), nil
}

func (a *Assistant) failure(err error) domain.ChatResponse {
	return domain.ChatResponse{
		Success:   false,
		Response:  "Przepraszam, wystąpił błąd podczas przetwarzania Twojego zapytania: " + err.Error(),
		Error:     err.Error(),
		Timestamp: a.now().Format(time.RFC3339),
	}
}

// History returns every stored turn, the synthetic system turn included.
// Callers rendering a transcript usually filter the system role out.
func (a *Assistant) History() []domain.Turn {
	return a.chat.History()
}

// ClearHistory drops the conversation and reseeds the system turn.
func (a *Assistant) ClearHistory() {
	a.chat.Reset()
}
