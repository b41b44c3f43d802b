package assistant

import (
	"context"
	"strings"

	"github.com/lukaszlap/paragonyOSA/internal/logging"
	"github.com/lukaszlap/paragonyOSA/internal/store"
)

// docKeywords marks messages that ask about the application itself rather
// than the user's data. Only those trigger documentation retrieval.
var docKeywords = []string{
	"jak działa", "jak używać", "co to jest", "wyjaśnij",
	"dokumentacja", "instrukcja", "pomoc", "funkcjonalność",
	"architektura", "api", "endpoint", "narzędzia",
	"autor", "technologia", "opis systemu", "jak korzystać",
}

func isDocQuestion(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range docKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Retriever supplies documentation context for how-does-this-work
// questions. Best effort: an unavailable or failing retriever yields an
// empty context and the conversation continues without it.
type Retriever interface {
	Available() bool
	Context(ctx context.Context, query string, maxChars int) string
}

// DocsRetriever serves documentation snippets from the full-text index.
type DocsRetriever struct {
	db  *store.DB
	log *logging.Logger
}

func NewDocsRetriever(db *store.DB, log *logging.Logger) *DocsRetriever {
	return &DocsRetriever{db: db, log: log.Sub("docs")}
}

func (r *DocsRetriever) Available() bool {
	return r != nil && r.db != nil
}

// Context returns up to maxChars of the best matching documentation
// chunks, delimited so the model can tell them apart from user text.
func (r *DocsRetriever) Context(ctx context.Context, query string, maxChars int) string {
	if !r.Available() {
		return ""
	}
	hits, err := r.db.SearchDocs(ctx, query, 3)
	if err != nil {
		r.log.Warn().Err(err).Msg("documentation search failed")
		return ""
	}
	if len(hits) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("=== KONTEKST Z BAZY WIEDZY ===\n")
	for _, hit := range hits {
		fragment := "\nŹródło: " + hit.Title + "\n" + hit.Content + "\n"
		if maxChars > 0 && b.Len()+len(fragment) > maxChars {
			break
		}
		b.WriteString(fragment)
	}
	b.WriteString("\n=== KONIEC KONTEKSTU ===\n")
	return b.String()
}
