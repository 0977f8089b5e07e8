// ABOUTME: Parses the ytInitialPlayerResponse object embedded in a watch page
// ABOUTME: Reads playability status and caption tracks with gjson paths
package youtube

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"

	"github.com/harper/tubesum/internal/models"
	"github.com/tidwall/gjson"
)

var (
	playerResponseMarker = []byte("ytInitialPlayerResponse")
	recaptchaMarker      = []byte(`class="g-recaptcha"`)
	playabilityMarker    = []byte(`"playabilityStatus":`)
)

// ErrRateLimited means YouTube answered with a captcha or HTTP 429
var ErrRateLimited = errors.New("youtube is rate limiting requests from this IP")

// extractPlayerResponse returns the JSON object assigned to ytInitialPlayerResponse
func extractPlayerResponse(page []byte) ([]byte, error) {
	idx := bytes.Index(page, playerResponseMarker)
	if idx < 0 {
		return nil, pageError(page)
	}
	rest := page[idx+len(playerResponseMarker):]

	eq := bytes.IndexByte(rest, '=')
	open := bytes.IndexByte(rest, '{')
	if eq < 0 || open < 0 || open < eq {
		return nil, pageError(page)
	}

	obj, ok := matchObject(rest[open:])
	if !ok || !gjson.ValidBytes(obj) {
		return nil, fmt.Errorf("malformed player response")
	}
	return obj, nil
}

// pageError classifies a watch page that has no player response
func pageError(page []byte) error {
	switch {
	case bytes.Contains(page, recaptchaMarker):
		return ErrRateLimited
	case !bytes.Contains(page, playabilityMarker):
		return fmt.Errorf("%w: no player data on watch page", models.ErrVideoUnavailable)
	default:
		return models.ErrTranscriptsDisabled
	}
}

// matchObject returns the balanced {...} prefix of b, skipping braces inside strings
func matchObject(b []byte) ([]byte, bool) {
	depth := 0
	inString := false
	escaped := false

	for i, c := range b {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1], true
			}
		}
	}
	return nil, false
}

// parseTracks reads the caption tracks from a player response
func parseTracks(videoID string, player []byte) ([]models.Track, error) {
	status := gjson.GetBytes(player, "playabilityStatus.status").String()
	if status != "" && status != "OK" {
		reason := gjson.GetBytes(player, "playabilityStatus.reason").String()
		if reason == "" {
			reason = status
		}
		return nil, fmt.Errorf("%w: %s", models.ErrVideoUnavailable, reason)
	}

	captionTracks := gjson.GetBytes(player, "captions.playerCaptionsTracklistRenderer.captionTracks")
	if !captionTracks.Exists() || len(captionTracks.Array()) == 0 {
		return nil, models.ErrTranscriptsDisabled
	}

	var tracks []models.Track
	captionTracks.ForEach(func(_, t gjson.Result) bool {
		baseURL := t.Get("baseUrl").String()
		if baseURL == "" {
			return true
		}
		name := t.Get("name.simpleText").String()
		if name == "" {
			name = t.Get("name.runs.0.text").String()
		}
		tracks = append(tracks, models.Track{
			VideoID:      videoID,
			LanguageCode: t.Get("languageCode").String(),
			LanguageName: name,
			Generated:    t.Get("kind").String() == "asr",
			BaseURL:      stripFormat(baseURL),
		})
		return true
	})

	if len(tracks) == 0 {
		return nil, models.ErrTranscriptsDisabled
	}
	return tracks, nil
}

// stripFormat drops the fmt parameter so the endpoint returns classic timedtext XML
func stripFormat(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if !q.Has("fmt") {
		return raw
	}
	q.Del("fmt")
	u.RawQuery = q.Encode()
	return u.String()
}
