// ABOUTME: Pipeline runs transcript extraction, translation, and summarization in sequence
// ABOUTME: A failed stage short-circuits the rest; every stage reports a typed result
package core

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/tubesum/internal/logger"
	"github.com/harper/tubesum/internal/models"
)

// Request is one summarization run's input
type Request struct {
	VideoURL string `json:"video_url"`
	APIKey   string `json:"api_key"`
}

// Validate requires both the URL and the API key
func (r Request) Validate() error {
	if strings.TrimSpace(r.VideoURL) == "" || strings.TrimSpace(r.APIKey) == "" {
		return models.ErrMissingInput
	}
	return nil
}

// Pipeline wires the three stages together. It holds no per-run state.
type Pipeline struct {
	transcripts   *TranscriptStage
	translation   *TranslationStage
	summarization *SummarizationStage
	newCompleter  CompleterFactory
	log           logger.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the base logger for runs
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithSummaryConcurrency sets how many summary chunks may be in flight
func WithSummaryConcurrency(n int) Option {
	return func(p *Pipeline) {
		p.summarization = NewSummarizationStage(n)
	}
}

// NewPipeline creates a Pipeline. translator may be nil when only English or
// unsupported-language videos are expected.
func NewPipeline(provider TranscriptProvider, translator Translator, newCompleter CompleterFactory, opts ...Option) *Pipeline {
	p := &Pipeline{
		transcripts:   NewTranscriptStage(provider),
		translation:   NewTranslationStage(translator),
		summarization: NewSummarizationStage(1),
		newCompleter:  newCompleter,
		log:           logger.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Transcript runs only the transcript stage
func (p *Pipeline) Transcript(ctx context.Context, videoURL string) (models.Transcript, error) {
	return p.transcripts.Extract(ctx, videoURL)
}

// Run executes all stages for req. The returned error is non-nil only when
// req is invalid; stage failures are reported inside the Result.
func (p *Pipeline) Run(ctx context.Context, req Request) (*models.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &models.Result{
		RunID:       uuid.New().String(),
		Transcript:  models.StageResult{Stage: models.StageTranscript},
		Translation: models.StageResult{Stage: models.StageTranslation, Skipped: true},
		Summary:     models.StageResult{Stage: models.StageSummary, Skipped: true},
	}

	log := p.log.With("run_id", result.RunID)
	ctx = logger.ContextWithLogger(ctx, log)

	// Transcript
	start := time.Now()
	transcript, err := p.transcripts.Extract(ctx, req.VideoURL)
	result.Transcript.Duration = time.Since(start)
	if err != nil {
		result.Transcript.Err = err
		log.Warn("transcript stage failed", "error", err)
		return result, nil
	}
	result.VideoID = transcript.VideoID
	result.LanguageCode = transcript.LanguageCode
	result.Transcript.Text = transcript.Text()
	log.Info("transcript extracted",
		"video_id", transcript.VideoID,
		"language", transcript.LanguageCode,
		"generated", transcript.Generated,
		"chars", len(result.Transcript.Text))

	// Translation
	result.Translation.Skipped = false
	result.Translated = NeedsTranslation(transcript.LanguageCode)
	start = time.Now()
	translated, err := p.translation.Process(ctx, result.Transcript.Text, transcript.LanguageCode)
	result.Translation.Duration = time.Since(start)
	if err != nil {
		result.Translation.Err = err
		log.Warn("translation stage failed", "error", err)
		return result, nil
	}
	result.Translation.Text = translated
	log.Info("translation completed", "translated", result.Translated, "duration", result.Translation.Duration)

	// Summary
	result.Summary.Skipped = false
	start = time.Now()
	summary, err := p.summarize(ctx, req.APIKey, translated)
	result.Summary.Duration = time.Since(start)
	if err != nil {
		result.Summary.Err = err
		log.Warn("summary stage failed", "error", err)
		return result, nil
	}
	result.Summary.Text = summary
	log.Info("summary generated", "chars", len(summary), "duration", result.Summary.Duration)

	return result, nil
}

func (p *Pipeline) summarize(ctx context.Context, apiKey, text string) (string, error) {
	if p.newCompleter == nil {
		return "", models.NewStageError(models.StageSummary, models.ErrMissingInput)
	}
	completer, err := p.newCompleter(apiKey)
	if err != nil {
		return "", models.NewStageError(models.StageSummary, err)
	}
	return p.summarization.Summarize(ctx, completer, text)
}
