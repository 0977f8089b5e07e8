// ABOUTME: Root command, global flags, and shared setup for the tubesum CLI
// ABOUTME: Loads .env and environment config, then applies flag overrides
package commands

import (
	"fmt"

	"github.com/harper/tubesum/internal/app"
	"github.com/harper/tubesum/internal/config"
	"github.com/harper/tubesum/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
████████╗██╗   ██╗██████╗ ███████╗███████╗██╗   ██╗███╗   ███╗
╚══██╔══╝██║   ██║██╔══██╗██╔════╝██╔════╝██║   ██║████╗ ████║
   ██║   ██║   ██║██████╔╝█████╗  ███████╗██║   ██║██╔████╔██║
   ██║   ██║   ██║██╔══██╗██╔══╝  ╚════██║██║   ██║██║╚██╔╝██║
   ██║   ╚██████╔╝██████╔╝███████╗███████║╚██████╔╝██║ ╚═╝ ██║
   ╚═╝    ╚═════╝ ╚═════╝ ╚══════╝╚══════╝ ╚═════╝ ╚═╝     ╚═╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tubesum",
		Short: "Summarize YouTube videos from their captions",
		Long: banner + `

Fetch a video's captions, translate Indic-language transcripts to
English, and summarize them with a hosted LLM.

Configuration is read from the environment (and .env):
  GROQ_API_KEY, LLM_BASE_URL, SUMMARY_MODEL, SUMMARY_CONCURRENCY,
  LLM_REQUESTS_PER_MINUTE, TRANSLATION_URL, HF_TOKEN, YOUTUBE_LANGUAGE,
  HTTP_ADDR, HTTP_TIMEOUT, LOG_LEVEL, LOG_JSON`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "auto", "text", "json":
				return nil
			default:
				return fmt.Errorf("invalid --format %q (want auto, text, or json)", outputFormat)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewServeCmd(),
		NewSummarizeCmd(),
		NewTranscriptCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads .env and the environment, then applies global flags
func loadConfig() (*config.Config, logger.Logger, error) {
	// Load .env file if it exists (for API keys)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	switch {
	case verbose:
		cfg.LogLevel = string(logger.DebugLevel)
	case quiet:
		cfg.LogLevel = string(logger.ErrorLevel)
	}

	return cfg, app.NewLogger(cfg), nil
}
