// ABOUTME: YouTube caption provider that scrapes the watch page with resty
// ABOUTME: Lists caption tracks from the player response and fetches timedtext XML
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/harper/tubesum/internal/logger"
	"github.com/harper/tubesum/internal/models"
)

const (
	// DefaultBaseURL is the origin watch pages are requested from
	DefaultBaseURL = "https://www.youtube.com"
	// DefaultUserAgent mimics a desktop browser so the full watch page is served
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Config holds provider settings
type Config struct {
	BaseURL   string
	Language  string
	UserAgent string
	Timeout   time.Duration
	Logger    logger.Logger
}

// DefaultConfig returns settings for the public YouTube site
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Language:  "en",
		UserAgent: DefaultUserAgent,
	}
}

// Client implements caption listing and fetching against YouTube
type Client struct {
	http     *resty.Client
	language string
	log      logger.Logger
}

// NewClient creates a Client. Zero-valued fields in cfg take defaults.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept-Language", cfg.Language).
		SetCookie(&http.Cookie{Name: "CONSENT", Value: "YES+cb"})
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	return &Client{http: rc, language: cfg.Language, log: cfg.Logger}
}

// ListTracks returns the caption tracks offered for videoID in page order
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]models.Track, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"v": videoID, "hl": c.language}).
		Get("/watch")
	if err != nil {
		return nil, fmt.Errorf("requesting watch page: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	player, err := extractPlayerResponse(resp.Body())
	if err != nil {
		return nil, err
	}

	tracks, err := parseTracks(videoID, player)
	if err != nil {
		return nil, err
	}

	logger.FromContextOr(ctx, c.log).Debug("caption tracks listed", "video_id", videoID, "count", len(tracks))
	return tracks, nil
}

// FetchTrack downloads and parses the captions behind track.BaseURL
func (c *Client) FetchTrack(ctx context.Context, track models.Track) ([]models.Snippet, error) {
	if track.BaseURL == "" {
		return nil, fmt.Errorf("track %s has no caption URL", track.LanguageCode)
	}

	resp, err := c.http.R().SetContext(ctx).Get(track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("requesting captions: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("captions: %w", err)
	}

	snippets, err := parseTimedText(resp.Body())
	if err != nil {
		return nil, err
	}

	logger.FromContextOr(ctx, c.log).Debug("caption track fetched",
		"video_id", track.VideoID,
		"language", track.LanguageCode,
		"generated", track.Generated,
		"snippets", len(snippets))
	return snippets, nil
}

func checkStatus(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.IsError():
		return fmt.Errorf("unexpected status %s", resp.Status())
	}
	return nil
}
