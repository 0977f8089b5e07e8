// ABOUTME: Summarization stage: one chat completion per 4096-character chunk
// ABOUTME: Chunk summaries are joined in order; any failure aborts the whole stage
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/tubesum/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	// SummaryChunkSize is the maximum characters sent per completion request
	SummaryChunkSize = 4096
	// SummarySystemPrompt instructs the model how to summarize each chunk
	SummarySystemPrompt = "You are a YouTube video summarizer. Summarize the transcript in concise points within 250 words."
	// MaxSummaryConcurrency caps parallel completion requests
	MaxSummaryConcurrency = 16
)

// Completer answers a single system+user chat exchange
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// CompleterFactory builds a Completer for a caller-supplied API key
type CompleterFactory func(apiKey string) (Completer, error)

// SummarizationStage summarizes text chunk by chunk
type SummarizationStage struct {
	concurrency int
}

// NewSummarizationStage creates a stage that runs at most concurrency
// completions at once. Values below 1 mean sequential.
func NewSummarizationStage(concurrency int) *SummarizationStage {
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > MaxSummaryConcurrency {
		concurrency = MaxSummaryConcurrency
	}
	return &SummarizationStage{concurrency: concurrency}
}

// Summarize returns the per-chunk summaries of text joined with single spaces.
// No partial summary is returned on error.
func (s *SummarizationStage) Summarize(ctx context.Context, completer Completer, text string) (string, error) {
	chunks := ChunkText(text, SummaryChunkSize)
	if len(chunks) == 0 {
		return "", nil
	}

	var (
		summaries []string
		err       error
	)
	if s.concurrency == 1 || len(chunks) == 1 {
		summaries, err = s.sequential(ctx, completer, chunks)
	} else {
		summaries, err = s.parallel(ctx, completer, chunks)
	}
	if err != nil {
		return "", models.NewStageError(models.StageSummary, err)
	}

	return strings.Join(summaries, " "), nil
}

func (s *SummarizationStage) sequential(ctx context.Context, completer Completer, chunks []string) ([]string, error) {
	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := completer.Complete(ctx, SummarySystemPrompt, chunk)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		summaries = append(summaries, out)
	}
	return summaries, nil
}

// parallel fans out completions and reassembles them by chunk index
func (s *SummarizationStage) parallel(ctx context.Context, completer Completer, chunks []string) ([]string, error) {
	summaries := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := completer.Complete(gctx, SummarySystemPrompt, chunk)
			if err != nil {
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}
			summaries[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}
