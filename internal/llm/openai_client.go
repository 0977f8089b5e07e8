// ABOUTME: OpenAI-compatible chat client used for transcript summarization
// ABOUTME: Defaults to Groq's endpoint with llama-3.3-70b-versatile and fixed sampling parameters
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/harper/tubesum/internal/logger"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible API root
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultChatModel is the default model for summaries
	DefaultChatModel = "llama-3.3-70b-versatile"
	// DefaultTemperature is the sampling temperature for summaries
	DefaultTemperature = 0.5
	// DefaultMaxCompletionTokens caps each summary response
	DefaultMaxCompletionTokens = 1024
	// DefaultTopP is the nucleus sampling parameter
	DefaultTopP = 1.0
)

// ErrEmptyCompletion means the API returned no choices
var ErrEmptyCompletion = errors.New("no completion returned")

// ClientConfig holds configuration for the chat client
type ClientConfig struct {
	APIKey              string
	BaseURL             string
	ChatModel           string
	Temperature         float32
	MaxCompletionTokens int
	TopP                float32
	Timeout             time.Duration
	// Limiter throttles requests when set; it may be shared across clients
	Limiter *rate.Limiter
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:              apiKey,
		BaseURL:             DefaultBaseURL,
		ChatModel:           DefaultChatModel,
		Temperature:         DefaultTemperature,
		MaxCompletionTokens: DefaultMaxCompletionTokens,
		TopP:                DefaultTopP,
	}
}

// NewLimiter returns a limiter allowing requestsPerMinute, or nil for unlimited
func NewLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}

// OpenAIClient wraps the go-openai client with fixed summary parameters
type OpenAIClient struct {
	client              *openai.Client
	chatModel           string
	temperature         float32
	maxCompletionTokens int
	topP                float32
	limiter             *rate.Limiter
}

// NewOpenAIClientWithConfig creates a client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}

	oc := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}
	if config.Timeout > 0 {
		oc.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	model := config.ChatModel
	if model == "" {
		model = DefaultChatModel
	}

	return &OpenAIClient{
		client:              openai.NewClientWithConfig(oc),
		chatModel:           model,
		temperature:         config.Temperature,
		maxCompletionTokens: config.MaxCompletionTokens,
		topP:                config.TopP,
		limiter:             config.Limiter,
	}, nil
}

// Complete sends one system+user exchange and returns the first choice's content.
// Failures are returned as-is; there is no retry.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature:         c.temperature,
		MaxCompletionTokens: c.maxCompletionTokens,
		TopP:                c.topP,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := resp.Choices[0].Message.Content
	logger.FromContext(ctx).Debug("completion received",
		"model", c.chatModel,
		"finish_reason", string(resp.Choices[0].FinishReason),
		"chars", len(content))
	return content, nil
}
