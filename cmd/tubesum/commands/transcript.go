// ABOUTME: Transcript command prints the selected caption transcript of a video
// ABOUTME: Runs only the transcript stage; no API key is needed
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var transcriptSnippets bool

// NewTranscriptCmd creates the transcript command
func NewTranscriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript <video-url>",
		Short: "Print a video's transcript",
		Long: `Print the transcript tubesum would summarize.

Human-authored caption tracks are preferred over auto-generated ones.
The language code is printed first so you can see whether translation
would apply.`,
		Example: `  tubesum transcript https://youtu.be/dQw4w9WgXcQ
  tubesum transcript https://youtu.be/dQw4w9WgXcQ --snippets --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runTranscript,
	}

	cmd.Flags().BoolVar(&transcriptSnippets, "snippets", false, "Include per-line timings")

	return cmd
}

func runTranscript(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	transcript, err := newPipeline(cfg, log).Transcript(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if wantJSON() {
		if transcriptSnippets {
			return writeJSON(out, transcript)
		}
		return writeJSON(out, map[string]any{
			"video_id":      transcript.VideoID,
			"language_code": transcript.LanguageCode,
			"generated":     transcript.Generated,
			"text":          transcript.Text(),
		})
	}

	kind := "authored"
	if transcript.Generated {
		kind = "auto-generated"
	}
	fmt.Fprintf(out, "Language: %s (%s)\n\n", transcript.LanguageCode, kind)

	if transcriptSnippets {
		for _, s := range transcript.Snippets {
			fmt.Fprintf(out, "[%7.2f] %s\n", s.Start, s.Text)
		}
		return nil
	}
	fmt.Fprintln(out, transcript.Text())
	return nil
}
