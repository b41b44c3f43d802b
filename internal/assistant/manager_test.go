package assistant

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszlap/paragonyOSA/internal/llm"
	"github.com/lukaszlap/paragonyOSA/internal/logging"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	exec, _, _ := testExecutor(t)
	client := scripted(`{"intent": "general_query", "needs_data": false, "functions": []}`, "ok")
	log := logging.New(nil, "silent")
	analyzer := NewAnalyzer(client, 1024, log)
	return NewManager(client, llm.ChatOptions{}, analyzer, exec, nil, 2000, log)
}

func TestManagerGetOrCreateReturnsSameSession(t *testing.T) {
	m := testManager(t)

	a := m.GetOrCreate(1)
	b := m.GetOrCreate(1)
	assert.Same(t, a, b)
	assert.Equal(t, 1, m.Count())

	c := m.GetOrCreate(2)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, m.Count())
}

func TestManagerDestroy(t *testing.T) {
	m := testManager(t)
	m.GetOrCreate(1)

	assert.True(t, m.Destroy(1))
	assert.False(t, m.Destroy(1))
	assert.Zero(t, m.Count())

	// A fresh session replaces the destroyed one.
	fresh := m.GetOrCreate(1)
	assert.Len(t, fresh.History(), 1)
}

func TestManagerResetConversation(t *testing.T) {
	m := testManager(t)
	assert.False(t, m.ResetConversation(7), "no session means a no-op")

	s := m.GetOrCreate(7)
	resp := s.ProcessMessage(context.Background(), "Cześć")
	require.True(t, resp.Success)
	require.Len(t, s.History(), 3)

	assert.True(t, m.ResetConversation(7))
	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, 1, m.Count(), "reset keeps the session registered")
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := testManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.GetOrCreate(int64(n % 4))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, m.Count())
}
