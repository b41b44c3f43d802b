package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lukaszlap/paragonyOSA/internal/assistant"
)

// chatTimeout bounds the model round trips behind one chat request.
const chatTimeout = 2 * time.Minute

// maxChatBodyBytes caps the chat request body size.
const maxChatBodyBytes = 64 * 1024

// registerRoutes sets up all HTTP routes on the server mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/assistant/chat", s.requireUser(s.handleChat))
	mux.HandleFunc("GET /api/assistant/history", s.requireUser(s.handleHistory))
	mux.HandleFunc("POST /api/assistant/clear", s.requireUser(s.handleClear))
	mux.HandleFunc("POST /api/assistant/session/end", s.requireUser(s.handleEndSession))
	mux.HandleFunc("GET /api/assistant/capabilities", s.requireUser(s.handleCapabilities))
	mux.HandleFunc("GET /api/assistant/health", s.requireUser(s.handleAssistantHealth))

	// Catch-all for unknown routes
	mux.HandleFunc("/", handleNotFound)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req chatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	session := s.sessions.GetOrCreate(user.ID)
	resp := session.ProcessMessage(ctx, req.Message)

	s.auditQuery(user.ID, user.Status, req.Message, resp.Intent, resp.Success)

	writeJSON(w, http.StatusOK, resp)
}

// auditQuery records the query in the activity log. Runs detached so a
// slow or failed write never delays the chat response.
func (s *Server) auditQuery(userID int64, userStatus, message, intent string, success bool) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		details, _ := json.Marshal(map[string]any{
			"message": truncate(message, 100),
			"intent":  intent,
			"success": success,
		})
		if err := s.db.LogActivity(ctx, userID, "assistant_query", userStatus, string(details)); err != nil {
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("activity log write failed")
		}
	}()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	history := s.sessions.GetOrCreate(user.ID).History()
	writeJSON(w, http.StatusOK, map[string]any{
		"history": history,
		"turns":   len(history),
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	cleared := s.sessions.ResetConversation(user.ID)
	writeJSON(w, http.StatusOK, map[string]any{"cleared": cleared})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ended := s.sessions.Destroy(user.ID)
	writeJSON(w, http.StatusOK, map[string]any{"ended": ended})
}

// exampleQueries shows API consumers what the assistant understands.
var exampleQueries = []string{
	"Ile wydałem w tym miesiącu?",
	"Pokaż wydatki na jedzenie z ostatniego tygodnia",
	"Jaki jest stan mojego budżetu?",
	"Dodaj mleko do listy zakupów",
	"Gdzie najtaniej kupię produkty z mojej listy?",
	"Ile kalorii miały moje zakupy z wczoraj?",
}

func (s *Server) handleCapabilities(w http.ResponseWriter, _ *http.Request) {
	tools := assistant.Catalog()
	writeJSON(w, http.StatusOK, map[string]any{
		"tools":    tools,
		"count":    len(tools),
		"language": "pl",
		"examples": exampleQueries,
	})
}

func (s *Server) handleAssistantHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        s.version,
		"activeSessions": s.sessions.Count(),
		"uptimeSeconds":  int(time.Since(s.startedAt).Seconds()),
	})
}

// handleHealth is the public liveness probe. It reveals nothing beyond status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
