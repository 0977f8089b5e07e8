// ABOUTME: SelectTrack picks the caption track to use for a video
// ABOUTME: Human-authored tracks win over auto-generated ones; provider order breaks ties
package core

import "github.com/harper/tubesum/internal/models"

// SelectTrack returns the first authored track, falling back to the first
// generated track. It returns ErrNoTranscriptAvailable for an empty list.
func SelectTrack(tracks []models.Track) (models.Track, error) {
	for _, t := range tracks {
		if !t.Generated {
			return t, nil
		}
	}
	for _, t := range tracks {
		if t.Generated {
			return t, nil
		}
	}
	return models.Track{}, models.ErrNoTranscriptAvailable
}
