// ABOUTME: Tests for the summarization stage
// ABOUTME: Verifies one completion per chunk, ordered joins, and all-or-nothing failure

package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harper/tubesum/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummarizationStage_ClampsConcurrency(t *testing.T) {
	assert.Equal(t, 1, NewSummarizationStage(0).concurrency)
	assert.Equal(t, 1, NewSummarizationStage(-3).concurrency)
	assert.Equal(t, 4, NewSummarizationStage(4).concurrency)
	assert.Equal(t, MaxSummaryConcurrency, NewSummarizationStage(100).concurrency)
}

func TestSummarizationStage_OneCallPerChunk(t *testing.T) {
	// 3 words of 3000 chars each: every pair exceeds 4096
	text := wordsOfLength(3, 3000)

	for _, concurrency := range []int{1, 3} {
		t.Run("concurrency", func(t *testing.T) {
			c := &fakeCompleter{}
			got, err := NewSummarizationStage(concurrency).Summarize(context.Background(), c, text)
			require.NoError(t, err)

			assert.Equal(t, 3, c.calls())
			for _, sys := range c.systems {
				assert.Equal(t, SummarySystemPrompt, sys)
			}

			words := strings.Fields(text)
			want := "summary[" + words[0] + "] summary[" + words[1] + "] summary[" + words[2] + "]"
			assert.Equal(t, want, got)
		})
	}
}

func TestSummarizationStage_ShortTextSingleCall(t *testing.T) {
	c := &fakeCompleter{}
	got, err := NewSummarizationStage(1).Summarize(context.Background(), c, "a short transcript")
	require.NoError(t, err)
	assert.Equal(t, "summary[a]", got)
	assert.Equal(t, []string{"a short transcript"}, c.prompts)
}

func TestSummarizationStage_EmptyText(t *testing.T) {
	c := &fakeCompleter{}
	got, err := NewSummarizationStage(1).Summarize(context.Background(), c, "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, c.calls())
}

func TestSummarizationStage_FailureDiscardsPartials(t *testing.T) {
	text := wordsOfLength(3, 3000)
	rateLimited := errors.New("429 rate limited")

	t.Run("sequential stops at first failure", func(t *testing.T) {
		c := &fakeCompleter{failWith: rateLimited, failOn: "w1"}
		got, err := NewSummarizationStage(1).Summarize(context.Background(), c, text)

		assert.Empty(t, got)
		assert.ErrorIs(t, err, rateLimited)
		var se *models.StageError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, models.StageSummary, se.Stage)
		assert.Contains(t, err.Error(), "chunk 2/3")
		assert.Equal(t, 2, c.calls())
	})

	t.Run("parallel returns the error", func(t *testing.T) {
		c := &fakeCompleter{failWith: rateLimited, failOn: "w1"}
		got, err := NewSummarizationStage(3).Summarize(context.Background(), c, text)
		assert.Empty(t, got)
		assert.ErrorIs(t, err, rateLimited)
	})
}
