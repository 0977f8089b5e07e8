// ABOUTME: Transcript data model: caption tracks, timed snippets, and joined text
// ABOUTME: Tracks carry the provider fetch handle; transcripts carry the chosen track's snippets
package models

import "strings"

// Track describes one caption track offered for a video
type Track struct {
	VideoID      string `json:"video_id"`
	LanguageCode string `json:"language_code"`
	LanguageName string `json:"language_name"`
	Generated    bool   `json:"generated"`
	BaseURL      string `json:"-"`
}

// Snippet is a single timed caption line. Timing is in seconds.
type Snippet struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the fetched content of one track
type Transcript struct {
	VideoID      string    `json:"video_id"`
	LanguageCode string    `json:"language_code"`
	Generated    bool      `json:"generated"`
	Snippets     []Snippet `json:"snippets"`
}

// Text joins all snippet texts with single spaces
func (t Transcript) Text() string {
	parts := make([]string, 0, len(t.Snippets))
	for _, s := range t.Snippets {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}
