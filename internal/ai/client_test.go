package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClientRejectsPlaceholderKeys(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "   ", "placeholder-key", "your_openai_api_key", "YOUR-API-KEY"} {
		_, err := NewClient(Config{APIKey: key})
		require.ErrorIs(t, err, ErrMissingCredential, "key %q", key)
	}
}

func TestNewClientAppliesProviderDefaults(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Provider: ProviderGroq, APIKey: "gsk-live"})
	require.NoError(t, err)
	assert.Equal(t, ProviderGroq, client.Provider())
	assert.Equal(t, "llama-3.1-8b-instant", client.Model())
	assert.Equal(t, "https://api.groq.com/openai/v1", client.baseURL)

	_, err = NewClient(Config{Provider: "anthropic", APIKey: "k"})
	require.Error(t, err)
}

func TestCompleteSendsChatRequest(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-live", r.Header.Get("Authorization"))

		var payload chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "gpt-4o", payload.Model)
		require.Len(t, payload.Messages, 2)
		assert.Equal(t, "system", payload.Messages[0].Role)
		assert.Equal(t, "Build a recipe", payload.Messages[1].Content)
		assert.Equal(t, 800, payload.MaxTokens)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  Top notes: bergamot  "}}]}`))
	})

	client, err := NewClient(Config{APIKey: "sk-live", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	text, err := client.Complete(context.Background(), Request{System: "You are a perfumer.", Prompt: "Build a recipe", MaxTokens: 800})
	require.NoError(t, err)
	assert.Equal(t, "Top notes: bergamot", text)
}

func TestCompleteClassifiesStatusErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		quota        bool
		unauthorized bool
	}{
		{"rate limited", http.StatusTooManyRequests, true, false},
		{"bad key", http.StatusUnauthorized, false, true},
		{"server error", http.StatusBadGateway, false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
			})
			client, err := NewClient(Config{APIKey: "sk-live", BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = client.Complete(context.Background(), Request{Prompt: "hi"})
			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, "nope", statusErr.Message)
			assert.Equal(t, tt.quota, IsQuota(err))
			assert.Equal(t, tt.unauthorized, IsUnauthorized(err))
		})
	}
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	client, err := NewClient(Config{APIKey: "sk-live", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{Prompt: "hi"})
	assert.True(t, errors.Is(err, ErrEmptyResponse))
}

func TestCompleteDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client, err := NewClient(Config{APIKey: "sk-live", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{Prompt: "hi"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCompleteRequiresPrompt(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{APIKey: "sk-live"})
	require.NoError(t, err)
	_, err = client.Complete(context.Background(), Request{Prompt: "  "})
	require.Error(t, err)
}

func TestParseProvider(t *testing.T) {
	t.Parallel()

	provider, err := ParseProvider(" GROQ ")
	require.NoError(t, err)
	assert.Equal(t, ProviderGroq, provider)

	_, err = ParseProvider("mistral")
	require.Error(t, err)
}
