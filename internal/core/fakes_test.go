// ABOUTME: In-memory fakes for the stage interfaces used across core tests
// ABOUTME: Record calls so tests can assert on request order and counts

package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/harper/tubesum/internal/models"
)

type fakeProvider struct {
	tracks   []models.Track
	snippets []models.Snippet
	listErr  error
	fetchErr error

	listedIDs []string
	fetched   []models.Track
}

func (f *fakeProvider) ListTracks(_ context.Context, videoID string) ([]models.Track, error) {
	f.listedIDs = append(f.listedIDs, videoID)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tracks, nil
}

func (f *fakeProvider) FetchTrack(_ context.Context, track models.Track) ([]models.Snippet, error) {
	f.fetched = append(f.fetched, track)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.snippets, nil
}

type translateCall struct {
	text, src, tgt string
}

type fakeTranslator struct {
	mu     sync.Mutex
	calls  []translateCall
	failOn int // 1-based call index that fails; 0 never fails
}

func (f *fakeTranslator) Translate(_ context.Context, text, src, tgt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, translateCall{text, src, tgt})
	if f.failOn == len(f.calls) {
		return "", fmt.Errorf("translator exploded")
	}
	return "EN(" + text + ")", nil
}

type fakeCompleter struct {
	mu       sync.Mutex
	prompts  []string
	systems  []string
	failWith error
	failOn   string // fail when the user prompt contains this
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.systems = append(f.systems, system)
	f.prompts = append(f.prompts, user)
	if f.failWith != nil && (f.failOn == "" || strings.Contains(user, f.failOn)) {
		return "", f.failWith
	}
	return fmt.Sprintf("summary[%s]", firstWord(user)), nil
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// wordsOfLength returns n space-separated copies of a word of the given length,
// each prefixed by its index so chunk order can be verified
func wordsOfLength(n, length int) string {
	words := make([]string, n)
	for i := range words {
		w := fmt.Sprintf("w%d", i)
		words[i] = w + strings.Repeat("x", length-len(w))
	}
	return strings.Join(words, " ")
}
