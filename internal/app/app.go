// ABOUTME: Builds the logger and pipeline from configuration
// ABOUTME: Shared by the CLI commands and the standalone server entry point
package app

import (
	"os"

	"github.com/harper/tubesum/internal/config"
	"github.com/harper/tubesum/internal/core"
	"github.com/harper/tubesum/internal/llm"
	"github.com/harper/tubesum/internal/logger"
	"github.com/harper/tubesum/internal/translate"
	"github.com/harper/tubesum/internal/youtube"
)

// NewLogger creates the process logger described by cfg
func NewLogger(cfg *config.Config) logger.Logger {
	return logger.New(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		Output:     os.Stderr,
		JSON:       cfg.LogJSON,
		TimeFormat: "15:04:05",
	})
}

// NewPipeline wires the YouTube provider, NLLB translator, and chat completer
func NewPipeline(cfg *config.Config, log logger.Logger) *core.Pipeline {
	provider := youtube.NewClient(youtube.Config{
		Language: cfg.YouTubeLanguage,
		Timeout:  cfg.HTTPTimeout,
		Logger:   log,
	})

	translator := translate.NewClient(translate.Config{
		Endpoint: cfg.TranslationURL,
		Token:    cfg.HFToken,
		Timeout:  cfg.HTTPTimeout,
		Logger:   log,
	})

	return core.NewPipeline(provider, translator, NewCompleterFactory(cfg),
		core.WithLogger(log),
		core.WithSummaryConcurrency(cfg.SummaryConcurrency),
	)
}

// NewCompleterFactory returns a factory that builds a chat client per API key.
// All clients share one rate limiter so the configured budget is process-wide.
func NewCompleterFactory(cfg *config.Config) core.CompleterFactory {
	limiter := llm.NewLimiter(cfg.LLMRequestsPerMinute)

	return func(apiKey string) (core.Completer, error) {
		clientCfg := llm.DefaultConfig(apiKey)
		clientCfg.BaseURL = cfg.LLMBaseURL
		clientCfg.ChatModel = cfg.SummaryModel
		clientCfg.Timeout = cfg.HTTPTimeout
		clientCfg.Limiter = limiter
		return llm.NewOpenAIClientWithConfig(clientCfg)
	}
}
