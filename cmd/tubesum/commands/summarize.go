// ABOUTME: Summarize command runs the full pipeline for one video
// ABOUTME: Prints transcript, translation, and summary as text or JSON
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harper/tubesum/internal/app"
	"github.com/harper/tubesum/internal/config"
	"github.com/harper/tubesum/internal/core"
	"github.com/harper/tubesum/internal/logger"
	"github.com/harper/tubesum/internal/models"
)

var (
	summarizeAPIKey      string
	summarizeSummaryOnly bool
	summarizePreview     int
)

// pipelineRunner is satisfied by *core.Pipeline; tests swap in fakes
type pipelineRunner interface {
	Run(ctx context.Context, req core.Request) (*models.Result, error)
	Transcript(ctx context.Context, videoURL string) (models.Transcript, error)
}

var newPipeline = func(cfg *config.Config, log logger.Logger) pipelineRunner {
	return app.NewPipeline(cfg, log)
}

// NewSummarizeCmd creates the summarize command
func NewSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize <video-url>",
		Short: "Summarize a YouTube video",
		Long: `Summarize a YouTube video from its captions.

Fetches the transcript (authored captions preferred), translates it to
English when it is in a supported Indic language, and summarizes it in
4096-character chunks.`,
		Example: `  tubesum summarize https://www.youtube.com/watch?v=dQw4w9WgXcQ
  tubesum summarize https://youtu.be/dQw4w9WgXcQ --api-key gsk_...
  tubesum summarize https://youtu.be/dQw4w9WgXcQ --preview 300
  tubesum summarize https://youtu.be/dQw4w9WgXcQ --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runSummarize,
	}

	cmd.Flags().StringVar(&summarizeAPIKey, "api-key", "", "Groq API key (default from GROQ_API_KEY)")
	cmd.Flags().BoolVar(&summarizeSummaryOnly, "summary-only", false, "Print only the summary")
	cmd.Flags().IntVar(&summarizePreview, "preview", 0, "Show at most N characters of the transcript and translation (0 shows all)")

	return cmd
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	apiKey := summarizeAPIKey
	if apiKey == "" {
		apiKey = cfg.GroqAPIKey
	}

	result, err := newPipeline(cfg, log).Run(cmd.Context(), core.Request{VideoURL: args[0], APIKey: apiKey})
	if err != nil {
		return err
	}

	if wantJSON() {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		printResult(cmd.OutOrStdout(), result, summarizeSummaryOnly, summarizePreview)
	}

	return result.Err()
}

// printResult writes each successful stage, stopping at the first failure.
// A positive preview shortens the transcript and translation sections.
func printResult(w io.Writer, r *models.Result, summaryOnly bool, preview int) {
	if !summaryOnly {
		if r.Transcript.OK() {
			writeSection(w, fmt.Sprintf("Transcript (%s, %s):", r.LanguageCode, formatDuration(r.Transcript.Duration)), previewText(r.Transcript.Text, preview))
		}
		if r.Translation.OK() && r.Translated {
			writeSection(w, fmt.Sprintf("Translated Text (%s):", formatDuration(r.Translation.Duration)), previewText(r.Translation.Text, preview))
		}
	}
	if r.Summary.OK() {
		if summaryOnly {
			fmt.Fprintln(w, r.Summary.Text)
			return
		}
		writeSection(w, fmt.Sprintf("Summary (%s):", formatDuration(r.Summary.Duration)), r.Summary.Text)
	}
}

func previewText(s string, preview int) string {
	if preview <= 0 {
		return s
	}
	return truncate(s, preview)
}
