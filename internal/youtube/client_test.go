// ABOUTME: Tests for the YouTube caption client against an httptest server
// ABOUTME: Exercises watch page listing, caption fetching, and HTTP failure mapping

package youtube

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harper/tubesum/internal/logger"
	"github.com/harper/tubesum/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeYouTube(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hi", r.URL.Query().Get("hl"))
		switch r.URL.Query().Get("v") {
		case "dQw4w9WgXcQ":
			player := fmt.Sprintf(`{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[`+
				`{"baseUrl":"%[1]s/api/timedtext?v=dQw4w9WgXcQ&lang=en&kind=asr","languageCode":"en","kind":"asr"},`+
				`{"baseUrl":"%[1]s/api/timedtext?v=dQw4w9WgXcQ&lang=hi&fmt=srv3","languageCode":"hi"}]}}}`, srv.URL)
			fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = %s;</script></html>`, player)
		case "ratelimited":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			fmt.Fprint(w, `<html><script>var ytInitialPlayerResponse = {"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}};</script></html>`)
		}
	})

	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("fmt"))
		if r.URL.Query().Get("lang") == "hi" {
			fmt.Fprint(w, `<transcript><text start="0" dur="1.5">नमस्ते</text><text start="1.5" dur="2">दोस्तों</text></transcript>`)
			return
		}
		http.Error(w, "gone", http.StatusNotFound)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListAndFetch(t *testing.T) {
	srv := newFakeYouTube(t)
	c := NewClient(Config{BaseURL: srv.URL, Language: "hi"})
	ctx := context.Background()

	tracks, err := c.ListTracks(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.True(t, tracks[0].Generated)
	assert.False(t, tracks[1].Generated)

	snippets, err := c.FetchTrack(ctx, tracks[1])
	require.NoError(t, err)
	assert.Equal(t, []models.Snippet{
		{Text: "नमस्ते", Start: 0, Duration: 1.5},
		{Text: "दोस्तों", Start: 1.5, Duration: 2},
	}, snippets)

	_, err = c.FetchTrack(ctx, tracks[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_ListTracks_Errors(t *testing.T) {
	srv := newFakeYouTube(t)
	c := NewClient(Config{BaseURL: srv.URL, Language: "hi"})

	_, err := c.ListTracks(context.Background(), "ratelimited")
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = c.ListTracks(context.Background(), "xxxxxxxxxxx")
	assert.ErrorIs(t, err, models.ErrVideoUnavailable)
	assert.Contains(t, err.Error(), "Video unavailable")
}

func TestClient_FetchTrack_NoURL(t *testing.T) {
	c := NewClient(DefaultConfig())
	_, err := c.FetchTrack(context.Background(), models.Track{LanguageCode: "en"})
	assert.Error(t, err)
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := newFakeYouTube(t)
	c := NewClient(Config{BaseURL: srv.URL, Language: "hi"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListTracks(ctx, "dQw4w9WgXcQ")
	assert.Error(t, err)
}

func TestClient_LogsWithRunLogger(t *testing.T) {
	srv := newFakeYouTube(t)

	var clientOut, runOut bytes.Buffer
	clientLog := logger.New(&logger.Config{Level: logger.DebugLevel, Output: &clientOut, JSON: true})
	runLog := logger.New(&logger.Config{Level: logger.DebugLevel, Output: &runOut, JSON: true}).With("run_id", "run-42")
	c := NewClient(Config{BaseURL: srv.URL, Language: "hi", Logger: clientLog})

	t.Run("Should prefer the logger carried by the context", func(t *testing.T) {
		ctx := logger.ContextWithLogger(context.Background(), runLog)
		tracks, err := c.ListTracks(ctx, "dQw4w9WgXcQ")
		require.NoError(t, err)
		_, err = c.FetchTrack(ctx, tracks[1])
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(runOut.String()), "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.Contains(t, line, `"run_id":"run-42"`)
		}
		assert.Contains(t, lines[0], "caption tracks listed")
		assert.Contains(t, lines[1], "caption track fetched")
		assert.Empty(t, clientOut.String())
	})

	t.Run("Should fall back to the client logger", func(t *testing.T) {
		runOut.Reset()
		_, err := c.ListTracks(context.Background(), "dQw4w9WgXcQ")
		require.NoError(t, err)

		assert.Contains(t, clientOut.String(), "caption tracks listed")
		assert.NotContains(t, clientOut.String(), "run_id")
		assert.Empty(t, runOut.String())
	})
}
