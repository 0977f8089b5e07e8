// ABOUTME: Tests for the chat completion client against an httptest server
// ABOUTME: Verifies request parameters, auth, error propagation, and rate limiting

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harper/tubesum/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model               string  `json:"model"`
	Temperature         float32 `json:"temperature"`
	MaxCompletionTokens int     `json:"max_completion_tokens"`
	TopP                float32 `json:"top_p"`
	Messages            []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newFakeGroq(t *testing.T, status int, body string, captured *capturedRequest, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const okCompletion = `{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"- point one\n- point two"},"finish_reason":"stop"}]}`

func TestNewOpenAIClientWithConfig_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClientWithConfig(DefaultConfig("  "))
	assert.Error(t, err)

	cfg := DefaultConfig("gsk_test")
	cfg.ChatModel = ""
	c, err := NewOpenAIClientWithConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, DefaultChatModel, c.chatModel)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("k")
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.ChatModel)
	assert.InDelta(t, 0.5, cfg.Temperature, 1e-6)
	assert.Equal(t, 1024, cfg.MaxCompletionTokens)
	assert.InDelta(t, 1.0, cfg.TopP, 1e-6)
	assert.Nil(t, cfg.Limiter)
}

func TestOpenAIClient_Complete(t *testing.T) {
	var got capturedRequest
	srv := newFakeGroq(t, http.StatusOK, okCompletion, &got, nil)

	cfg := DefaultConfig("gsk_test")
	cfg.BaseURL = srv.URL + "/"
	c, err := NewOpenAIClientWithConfig(cfg)
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), "system prompt", "transcript chunk")
	require.NoError(t, err)
	assert.Equal(t, "- point one\n- point two", out)

	assert.Equal(t, "llama-3.3-70b-versatile", got.Model)
	assert.InDelta(t, 0.5, got.Temperature, 1e-6)
	assert.Equal(t, 1024, got.MaxCompletionTokens)
	assert.InDelta(t, 1.0, got.TopP, 1e-6)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "system prompt", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "transcript chunk", got.Messages[1].Content)
}

func TestOpenAIClient_Complete_Errors(t *testing.T) {
	t.Run("Should surface API errors without retrying", func(t *testing.T) {
		var hits int32
		srv := newFakeGroq(t, http.StatusTooManyRequests,
			`{"error":{"message":"Rate limit reached","type":"tokens","code":"rate_limit_exceeded"}}`, nil, &hits)

		cfg := DefaultConfig("gsk_test")
		cfg.BaseURL = srv.URL
		c, err := NewOpenAIClientWithConfig(cfg)
		require.NoError(t, err)

		_, err = c.Complete(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Rate limit reached")
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("Should fail on empty choices", func(t *testing.T) {
		srv := newFakeGroq(t, http.StatusOK, `{"id":"x","choices":[]}`, nil, nil)

		cfg := DefaultConfig("gsk_test")
		cfg.BaseURL = srv.URL
		c, err := NewOpenAIClientWithConfig(cfg)
		require.NoError(t, err)

		_, err = c.Complete(context.Background(), "s", "u")
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, NewLimiter(0))
	assert.Nil(t, NewLimiter(-5))

	l := NewLimiter(60)
	require.NotNil(t, l)
	assert.InDelta(t, 1.0, float64(l.Limit()), 1e-9)
	assert.Equal(t, 1, l.Burst())
}

func TestOpenAIClient_Complete_LimiterHonoursContext(t *testing.T) {
	srv := newFakeGroq(t, http.StatusOK, okCompletion, nil, nil)

	cfg := DefaultConfig("gsk_test")
	cfg.BaseURL = srv.URL
	cfg.Limiter = NewLimiter(1)
	c, err := NewOpenAIClientWithConfig(cfg)
	require.NoError(t, err)

	// First call consumes the only token
	_, err = c.Complete(context.Background(), "s", "u")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Complete(ctx, "s", "u")
	assert.Error(t, err)
}

func TestOpenAIClient_Complete_LogsWithRunLogger(t *testing.T) {
	srv := newFakeGroq(t, http.StatusOK, okCompletion, nil, nil)

	cfg := DefaultConfig("gsk_test")
	cfg.BaseURL = srv.URL
	c, err := NewOpenAIClientWithConfig(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	runLog := logger.New(&logger.Config{Level: logger.DebugLevel, Output: &buf, JSON: true}).With("run_id", "run-9")
	_, err = c.Complete(logger.ContextWithLogger(context.Background(), runLog), "s", "u")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "completion received")
	assert.Contains(t, buf.String(), `"run_id":"run-9"`)
	assert.Contains(t, buf.String(), `"finish_reason":"stop"`)
}
