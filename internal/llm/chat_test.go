package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
)

func TestChatSeedsSystemTurn(t *testing.T) {
	chat := NewChat(&MockClient{}, "jesteś asystentem", ChatOptions{})

	history := chat.History()
	require.Len(t, history, 1)
	assert.Equal(t, domain.RoleSystem, history[0].Role)
	assert.Equal(t, "jesteś asystentem", history[0].Content)
}

func TestChatSendAppendsTurns(t *testing.T) {
	mock := &MockClient{
		CompleteFunc: func(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
			return &CompletionResponse{Content: "odpowiedź"}, nil
		},
	}
	chat := NewChat(mock, "system", ChatOptions{MaxTokens: 512})

	reply, err := chat.Send(context.Background(), "pytanie")
	require.NoError(t, err)
	assert.Equal(t, "odpowiedź", reply)

	history := chat.History()
	require.Len(t, history, 3)
	assert.Equal(t, domain.RoleUser, history[1].Role)
	assert.Equal(t, domain.RoleAssistant, history[2].Role)

	// The system prompt travels in the request, not as a message.
	require.Len(t, mock.Requests, 1)
	assert.Equal(t, "system", mock.Requests[0].System)
	require.Len(t, mock.Requests[0].Messages, 1)
	assert.Equal(t, RoleUser, mock.Requests[0].Messages[0].Role)
	assert.Equal(t, 512, mock.Requests[0].MaxTokens)
}

func TestChatSendReplaysHistory(t *testing.T) {
	mock := &MockClient{}
	chat := NewChat(mock, "system", ChatOptions{})

	_, err := chat.Send(context.Background(), "pierwsze")
	require.NoError(t, err)
	_, err = chat.Send(context.Background(), "drugie")
	require.NoError(t, err)

	require.Len(t, mock.Requests, 2)
	assert.Len(t, mock.Requests[1].Messages, 3) // user, assistant, user
}

func TestChatSendErrorRollsBack(t *testing.T) {
	mock := &MockClient{
		CompleteFunc: func(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
			return nil, errors.New("boom")
		},
	}
	chat := NewChat(mock, "system", ChatOptions{})

	_, err := chat.Send(context.Background(), "pytanie")
	require.Error(t, err)
	assert.Equal(t, 1, chat.Len())
}

func TestChatReset(t *testing.T) {
	chat := NewChat(&MockClient{}, "system", ChatOptions{})

	_, err := chat.Send(context.Background(), "pytanie")
	require.NoError(t, err)
	require.Equal(t, 3, chat.Len())

	chat.Reset()
	history := chat.History()
	require.Len(t, history, 1)
	assert.Equal(t, domain.RoleSystem, history[0].Role)
}
