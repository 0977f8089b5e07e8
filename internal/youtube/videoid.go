// ABOUTME: Extracts the 11-character video id from the common YouTube URL shapes
// ABOUTME: watch?v= is primary; youtu.be, shorts, embed, live, and bare ids are accepted
package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/harper/tubesum/internal/models"
)

var videoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID returns the video id referenced by raw, or ErrInvalidVideoURL
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", models.ErrInvalidVideoURL
	}
	if videoIDRE.MatchString(raw) {
		return raw, nil
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrInvalidVideoURL, err)
	}

	if v := u.Query().Get("v"); v != "" {
		return validID(v)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case host == "youtu.be" && len(segments) >= 1 && segments[0] != "":
		return validID(segments[0])
	case strings.HasSuffix(host, "youtube.com") && len(segments) >= 2:
		switch segments[0] {
		case "shorts", "embed", "live", "v":
			return validID(segments[1])
		}
	}

	return "", fmt.Errorf("%w: %q", models.ErrInvalidVideoURL, raw)
}

func validID(id string) (string, error) {
	if !videoIDRE.MatchString(id) {
		return "", fmt.Errorf("%w: bad video id %q", models.ErrInvalidVideoURL, id)
	}
	return id, nil
}
