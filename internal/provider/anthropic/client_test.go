package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-sonnet-4-5", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "analyze this season", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"A strong stretch of games."}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "claude-sonnet-4-5")
	client.baseURL = server.URL

	text, err := client.Generate(context.Background(), "analyze this season")
	require.NoError(t, err)
	assert.Equal(t, "A strong stretch of games.", text)
}

func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"Too many requests"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "claude-sonnet-4-5")
	client.baseURL = server.URL

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestGenerate_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can observe the
		// client disconnect and cancel r.Context(); otherwise Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient("test-key", "claude-sonnet-4-5")
	client.baseURL = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
