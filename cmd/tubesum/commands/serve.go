// ABOUTME: Serve command runs the web UI and JSON API
// ABOUTME: Shuts down gracefully on SIGINT or SIGTERM
package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/harper/tubesum/internal/web"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI",
		Long: `Run the summarizer web UI.

Open the page, paste a YouTube URL and a Groq API key, and the
transcript, translation, and summary are shown in turn.
POST /api/v1/summarize accepts {"video_url", "api_key"} and returns JSON.`,
		Example: `  tubesum serve
  tubesum serve --addr 127.0.0.1:8080`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from HTTP_ADDR, :8501)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.HTTPAddr = serveAddr
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := web.NewServer(newPipeline(cfg, log), web.Options{
		DefaultAPIKey: cfg.GroqAPIKey,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg.HTTPAddr)
}
