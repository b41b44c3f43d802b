package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszlap/paragonyOSA/internal/config"
	"github.com/lukaszlap/paragonyOSA/internal/logging"
)

func TestProviderError(t *testing.T) {
	err := &ProviderError{Provider: "gemini", Code: 429, Message: "quota"}
	assert.Equal(t, "gemini: 429 quota", err.Error())

	err = &ProviderError{Provider: "gemini", Message: "unreachable"}
	assert.Equal(t, "gemini: unreachable", err.Error())
}

func TestMockClientRecordsRequests(t *testing.T) {
	mock := &MockClient{}
	_, err := mock.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hej"}},
	})
	require.NoError(t, err)
	require.Len(t, mock.Requests, 1)
	assert.Equal(t, "hej", mock.Requests[0].Messages[0].Content)
	assert.Equal(t, "mock", mock.Name())
}

func TestGeminiRequestBody(t *testing.T) {
	g := NewGeminiClient("key", "gemini-2.5-flash-lite")
	temp := 0.7
	body := g.buildRequestBody(CompletionRequest{
		System: "zasady",
		Messages: []Message{
			{Role: RoleUser, Content: "pytanie"},
			{Role: RoleAssistant, Content: "odpowiedź"},
		},
		MaxTokens:   2048,
		Temperature: &temp,
	})

	contents, ok := body["contents"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0]["role"])
	assert.Equal(t, "model", contents[1]["role"])

	gen, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2048, gen["maxOutputTokens"])
	assert.Equal(t, 0.7, gen["temperature"])

	require.Contains(t, body, "systemInstruction")
}

func TestFromConfig(t *testing.T) {
	log := logging.New(nil, "silent")

	client, err := FromConfig(config.AssistantConfig{Provider: "mock"}, log)
	require.NoError(t, err)
	assert.Equal(t, "mock", client.Name())

	client, err = FromConfig(config.AssistantConfig{Provider: "gemini", APIKey: "k", Model: "m"}, log)
	require.NoError(t, err)
	assert.Equal(t, "gemini", client.Name())

	_, err = FromConfig(config.AssistantConfig{Provider: "gemini"}, log)
	require.Error(t, err)

	_, err = FromConfig(config.AssistantConfig{Provider: "unknown"}, log)
	require.Error(t, err)
}
