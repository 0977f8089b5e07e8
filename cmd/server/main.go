// ABOUTME: Standalone entry point for the summarizer web server
// ABOUTME: Configured from the environment only; stops on SIGINT or SIGTERM
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/harper/tubesum/internal/app"
	"github.com/harper/tubesum/internal/config"
	"github.com/harper/tubesum/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := app.NewLogger(cfg)
	if cfg.GroqAPIKey == "" {
		logger.Warn("GROQ_API_KEY not set - users must enter an API key in the form")
	}

	gin.SetMode(gin.ReleaseMode)
	server, err := web.NewServer(app.NewPipeline(cfg, logger), web.Options{
		DefaultAPIKey: cfg.GroqAPIKey,
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.HTTPAddr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
