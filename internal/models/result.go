// ABOUTME: Result types returned by a pipeline run
// ABOUTME: Each stage reports text or a typed error, never both
package models

import (
	"encoding/json"
	"time"
)

// StageResult is the outcome of one pipeline stage
type StageResult struct {
	Stage    Stage
	Text     string
	Err      error
	Skipped  bool
	Duration time.Duration
}

// OK reports whether the stage ran and succeeded
func (r StageResult) OK() bool {
	return !r.Skipped && r.Err == nil
}

// MarshalJSON renders the error as a string so API clients can read it
func (r StageResult) MarshalJSON() ([]byte, error) {
	out := struct {
		Stage      Stage  `json:"stage"`
		Text       string `json:"text,omitempty"`
		Error      string `json:"error,omitempty"`
		Skipped    bool   `json:"skipped,omitempty"`
		DurationMS int64  `json:"duration_ms"`
	}{
		Stage:      r.Stage,
		Text:       r.Text,
		Skipped:    r.Skipped,
		DurationMS: r.Duration.Milliseconds(),
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

// Result aggregates the three stage outcomes of a run
type Result struct {
	RunID        string      `json:"run_id"`
	VideoID      string      `json:"video_id,omitempty"`
	LanguageCode string      `json:"language_code,omitempty"`
	Translated   bool        `json:"translated"`
	Transcript   StageResult `json:"transcript"`
	Translation  StageResult `json:"translation"`
	Summary      StageResult `json:"summary"`
}

// Err returns the first stage error, or nil when every stage succeeded
func (r *Result) Err() error {
	for _, s := range []StageResult{r.Transcript, r.Translation, r.Summary} {
		if s.Err != nil {
			return s.Err
		}
	}
	return nil
}
