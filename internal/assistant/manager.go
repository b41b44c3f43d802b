package assistant

import (
	"sync"

	"github.com/lukaszlap/paragonyOSA/internal/llm"
	"github.com/lukaszlap/paragonyOSA/internal/logging"
)

// Manager is the process-wide session registry. Sessions are created
// lazily on first message and destroyed explicitly on logout. This is a
// soft cache of conversation state, not durable storage; racing creators
// for the same user resolve last-writer-wins.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Assistant

	client    llm.Client
	opts      llm.ChatOptions
	analyzer  *Analyzer
	exec      *Executor
	retriever Retriever
	maxCtx    int
	log       *logging.Logger
}

// NewManager builds an empty registry sharing one model client, analyzer,
// and tool executor across all sessions.
func NewManager(client llm.Client, opts llm.ChatOptions, analyzer *Analyzer, exec *Executor, retriever Retriever, maxContextChars int, log *logging.Logger) *Manager {
	return &Manager{
		sessions:  make(map[int64]*Assistant),
		client:    client,
		opts:      opts,
		analyzer:  analyzer,
		exec:      exec,
		retriever: retriever,
		maxCtx:    maxContextChars,
		log:       log.Sub("sessions"),
	}
}

// GetOrCreate returns the user's session, constructing one on first use.
func (m *Manager) GetOrCreate(userID int64) *Assistant {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := New(userID, m.client, m.opts, m.analyzer, m.exec, m.retriever, m.maxCtx, m.log)
	m.sessions[userID] = s
	m.log.Info().Int64("user_id", userID).Msg("session created")
	return s
}

// Destroy removes the user's session entirely. Reports whether one existed.
func (m *Manager) Destroy(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[userID]
	if ok {
		delete(m.sessions, userID)
		m.log.Info().Int64("user_id", userID).Msg("session destroyed")
	}
	return ok
}

// ResetConversation clears the user's history without removing the
// session. No-op when no session exists.
func (m *Manager) ResetConversation(userID int64) bool {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	m.mu.Unlock()
	if !ok {
		return false
	}
	s.ClearHistory()
	return true
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
