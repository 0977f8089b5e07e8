// ABOUTME: Centralized configuration for the video summarizer
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for tubesum
type Config struct {
	// Summarization (OpenAI-compatible chat API)
	GroqAPIKey           string
	LLMBaseURL           string
	SummaryModel         string
	SummaryConcurrency   int
	LLMRequestsPerMinute int

	// Translation
	TranslationURL string
	HFToken        string

	// Transcripts
	YouTubeLanguage string

	// Server
	HTTPAddr    string
	HTTPTimeout time.Duration

	// Logging
	LogLevel string
	LogJSON  bool
}

// Load reads configuration from environment variables.
// Numeric and duration values that fail to parse are reported, not defaulted.
func Load() (*Config, error) {
	cfg := &Config{
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		LLMBaseURL:      getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		SummaryModel:    getEnv("SUMMARY_MODEL", "llama-3.3-70b-versatile"),
		TranslationURL:  getEnv("TRANSLATION_URL", "https://router.huggingface.co/hf-inference/models/facebook/nllb-200-distilled-600M"),
		HFToken:         os.Getenv("HF_TOKEN"),
		YouTubeLanguage: getEnv("YOUTUBE_LANGUAGE", "en"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8501"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogJSON:         getEnvBool("LOG_JSON", false),
	}

	var errs [3]error
	cfg.SummaryConcurrency, errs[0] = getEnvInt("SUMMARY_CONCURRENCY", 1)
	cfg.LLMRequestsPerMinute, errs[1] = getEnvInt("LLM_REQUESTS_PER_MINUTE", 0)
	cfg.HTTPTimeout, errs[2] = getEnvDuration("HTTP_TIMEOUT", 0)
	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.SummaryConcurrency < 1 || c.SummaryConcurrency > 16 {
		return fmt.Errorf("SUMMARY_CONCURRENCY must be 1-16, got %d", c.SummaryConcurrency)
	}
	if c.LLMRequestsPerMinute < 0 {
		return fmt.Errorf("LLM_REQUESTS_PER_MINUTE must be >= 0, got %d", c.LLMRequestsPerMinute)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be >= 0, got %s", c.HTTPTimeout)
	}
	for name, raw := range map[string]string{"LLM_BASE_URL": c.LLMBaseURL, "TRANSLATION_URL": c.TranslationURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return i, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal, fmt.Errorf("%s must be a duration like 30s, got %q", key, v)
	}
	return d, nil
}
