package openaichat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "key", "model")
	assert.Error(t, err)

	_, err = NewClient("https://api.example.com/v1", "", "model")
	assert.Error(t, err)

	_, err = NewClient("https://api.example.com/v1", "key", " ")
	assert.Error(t, err)
}

func TestGenerateContent(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  {\"ok\": true}  "}},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/v1/", "test-key", "deepseek-chat")
	require.NoError(t, err)

	content, err := client.GenerateContent(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, `{"ok": true}`, content)
	assert.Equal(t, "deepseek-chat", captured.Model)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Equal(t, "hello", captured.Messages[0].Content)
	assert.InDelta(t, 0.1, captured.Temperature, 1e-9)
	assert.Equal(t, 2000, captured.MaxTokens)
}

func TestGenerateContentServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key", "gpt-4")
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestGenerateContentNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key", "gpt-4")
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), "hello")
	assert.ErrorContains(t, err, "no choices")
}

func TestGenerateContentCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key", "gpt-4")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.GenerateContent(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}
