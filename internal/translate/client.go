// ABOUTME: NLLB-200 translation client for the Hugging Face inference API
// ABOUTME: Sends one chunk per request and returns the single best translation
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/harper/tubesum/internal/logger"
	"github.com/tidwall/gjson"
)

const (
	// DefaultEndpoint serves facebook/nllb-200-distilled-600M
	DefaultEndpoint = "https://router.huggingface.co/hf-inference/models/facebook/nllb-200-distilled-600M"
	// DefaultMaxLength bounds generated tokens per chunk
	DefaultMaxLength = 1024
)

// ErrEmptyTranslation means the backend answered without any translation text
var ErrEmptyTranslation = errors.New("translation backend returned no text")

// Config holds translation client settings
type Config struct {
	Endpoint  string
	Token     string
	MaxLength int
	Timeout   time.Duration
	Logger    logger.Logger
}

// Client calls a hosted NLLB translation model
type Client struct {
	http      *resty.Client
	endpoint  string
	maxLength int
	log       logger.Logger
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	SrcLang   string `json:"src_lang"`
	TgtLang   string `json:"tgt_lang"`
	MaxLength int    `json:"max_length,omitempty"`
}

// NewClient creates a translation client
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}

	rc := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	}
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	return &Client{http: rc, endpoint: cfg.Endpoint, maxLength: cfg.MaxLength, log: cfg.Logger}
}

// Translate returns the best translation of text from srcLang to tgtLang (NLLB codes)
func (c *Client) Translate(ctx context.Context, text, srcLang, tgtLang string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(request{
			Inputs: text,
			Parameters: parameters{
				SrcLang:   srcLang,
				TgtLang:   tgtLang,
				MaxLength: c.maxLength,
			},
		}).
		Post(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("translation request: %w", err)
	}

	body := resp.Body()
	if msg := gjson.GetBytes(body, "error").String(); msg != "" {
		return "", fmt.Errorf("translation backend: %s", msg)
	}
	if resp.IsError() {
		return "", fmt.Errorf("translation backend: unexpected status %s", resp.Status())
	}

	out := firstTranslation(body)
	if out == "" {
		return "", ErrEmptyTranslation
	}

	logger.FromContextOr(ctx, c.log).Debug("chunk translated", "src", srcLang, "tgt", tgtLang, "in_chars", len(text), "out_chars", len(out))
	return out, nil
}

// firstTranslation reads [{"translation_text": ...}] or a bare {"translation_text": ...}
func firstTranslation(body []byte) string {
	res := gjson.ParseBytes(body)
	if res.IsArray() {
		res = res.Get("0")
	}
	return strings.TrimSpace(res.Get("translation_text").String())
}
