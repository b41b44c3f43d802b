package llm

import (
	"context"
	"sync"
	"time"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
)

// Chat is a stateful conversation channel over a stateless Client.
// Every Send appends both the user turn and the model's reply to an
// append-only history that is replayed on each call.
type Chat struct {
	mu     sync.Mutex
	client Client
	opts   ChatOptions
	system string
	turns  []domain.Turn
	now    func() time.Time
}

// ChatOptions carries per-conversation generation settings.
type ChatOptions struct {
	MaxTokens   int
	Temperature *float64
}

// NewChat creates a conversation seeded with a system turn. The seed is
// stored as the first history entry and re-applied after every Reset.
func NewChat(client Client, system string, opts ChatOptions) *Chat {
	c := &Chat{
		client: client,
		opts:   opts,
		system: system,
		now:    time.Now,
	}
	c.seed()
	return c
}

func (c *Chat) seed() {
	c.turns = []domain.Turn{{
		Role:      domain.RoleSystem,
		Content:   c.system,
		Timestamp: c.now(),
	}}
}

// Send appends text as a user turn, completes over the full history, and
// appends the model's reply. On error the user turn is rolled back so a
// failed exchange leaves no trace.
func (c *Chat) Send(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = append(c.turns, domain.Turn{
		Role:      domain.RoleUser,
		Content:   text,
		Timestamp: c.now(),
	})

	messages := make([]Message, 0, len(c.turns))
	for _, t := range c.turns {
		if t.Role == domain.RoleSystem {
			continue
		}
		messages = append(messages, Message{Role: string(t.Role), Content: t.Content})
	}

	resp, err := c.client.Complete(ctx, CompletionRequest{
		System:      c.system,
		Messages:    messages,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		c.turns = c.turns[:len(c.turns)-1]
		return "", err
	}

	c.turns = append(c.turns, domain.Turn{
		Role:      domain.RoleAssistant,
		Content:   resp.Content,
		Timestamp: c.now(),
	})
	return resp.Content, nil
}

// History returns a copy of all turns, the seeded system turn included.
func (c *Chat) History() []domain.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Reset drops the conversation and reseeds the system turn.
func (c *Chat) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seed()
}

// Len reports the number of turns currently held.
func (c *Chat) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}
