// ABOUTME: Sentinel errors and the StageError type shared across pipeline stages
// ABOUTME: Callers distinguish failure causes with errors.Is and errors.As
package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput means the video URL or API key was not supplied
	ErrMissingInput = errors.New("please provide all required inputs")

	// ErrInvalidVideoURL means no video id could be found in the URL
	ErrInvalidVideoURL = errors.New("invalid video URL")

	// ErrNoTranscriptAvailable means the video offers no caption tracks
	ErrNoTranscriptAvailable = errors.New("no transcript available")

	// ErrTranscriptsDisabled means captions are turned off for the video
	ErrTranscriptsDisabled = fmt.Errorf("%w: captions are disabled for this video", ErrNoTranscriptAvailable)

	// ErrVideoUnavailable means the video cannot be played (private, removed, region locked)
	ErrVideoUnavailable = fmt.Errorf("%w: video is unavailable", ErrNoTranscriptAvailable)

	// ErrEmptyTranscript means the selected track was fetched but had no text
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrTranslatorUnavailable means translation was needed but no translator is configured
	ErrTranslatorUnavailable = errors.New("translator is not configured")
)

// Stage names one step of the pipeline
type Stage string

const (
	StageTranscript  Stage = "transcript"
	StageTranslation Stage = "translation"
	StageSummary     Stage = "summary"
)

// StageError wraps a failure with the stage that produced it
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err for stage. A nil err stays nil.
func NewStageError(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var se *StageError
	if errors.As(err, &se) && se.Stage == stage {
		return err
	}
	return &StageError{Stage: stage, Err: err}
}
