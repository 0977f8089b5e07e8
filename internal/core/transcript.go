// ABOUTME: Transcript stage: resolves a video URL, selects a caption track, and fetches it
// ABOUTME: Every failure is returned as a transcript StageError with a distinguishable cause
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/tubesum/internal/models"
	"github.com/harper/tubesum/internal/youtube"
)

// TranscriptProvider lists and fetches caption tracks for a video
type TranscriptProvider interface {
	ListTracks(ctx context.Context, videoID string) ([]models.Track, error)
	FetchTrack(ctx context.Context, track models.Track) ([]models.Snippet, error)
}

// TranscriptStage turns a video URL into transcript text
type TranscriptStage struct {
	provider TranscriptProvider
}

// NewTranscriptStage creates a TranscriptStage backed by provider
func NewTranscriptStage(provider TranscriptProvider) *TranscriptStage {
	return &TranscriptStage{provider: provider}
}

// Extract returns the selected transcript for videoURL along with its language
func (s *TranscriptStage) Extract(ctx context.Context, videoURL string) (models.Transcript, error) {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return models.Transcript{}, models.NewStageError(models.StageTranscript, err)
	}

	tracks, err := s.provider.ListTracks(ctx, videoID)
	if err != nil {
		return models.Transcript{}, models.NewStageError(models.StageTranscript, fmt.Errorf("listing tracks for %s: %w", videoID, err))
	}

	track, err := SelectTrack(tracks)
	if err != nil {
		return models.Transcript{}, models.NewStageError(models.StageTranscript, fmt.Errorf("video %s: %w", videoID, err))
	}

	snippets, err := s.provider.FetchTrack(ctx, track)
	if err != nil {
		return models.Transcript{}, models.NewStageError(models.StageTranscript, fmt.Errorf("fetching %s track: %w", track.LanguageCode, err))
	}

	transcript := models.Transcript{
		VideoID:      videoID,
		LanguageCode: track.LanguageCode,
		Generated:    track.Generated,
		Snippets:     snippets,
	}
	if strings.TrimSpace(transcript.Text()) == "" {
		return models.Transcript{}, models.NewStageError(models.StageTranscript, fmt.Errorf("video %s: %w", videoID, models.ErrEmptyTranscript))
	}

	return transcript, nil
}
