// ABOUTME: Gin web server for the summarizer UI and JSON API
// ABOUTME: Renders the form, runs the pipeline per request, and shuts down with its context
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harper/tubesum/internal/core"
	"github.com/harper/tubesum/internal/logger"
	"github.com/harper/tubesum/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Runner executes one summarization run
type Runner interface {
	Run(ctx context.Context, req core.Request) (*models.Result, error)
}

// Options configures the server
type Options struct {
	// DefaultAPIKey is used when a request leaves the API key blank
	DefaultAPIKey string
	Logger        logger.Logger
}

// Server serves the web UI
type Server struct {
	runner        Runner
	defaultAPIKey string
	log           logger.Logger
	router        *gin.Engine
}

// NewServer builds the router around runner
func NewServer(runner Runner, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		runner:        runner,
		defaultAPIKey: opts.DefaultAPIKey,
		log:           opts.Logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(s.log))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", s.handleIndex)
	router.POST("/summarize", s.handleSummarizeForm)
	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api/v1")
	api.POST("/summarize", s.handleSummarizeAPI)

	s.router = router
	return s, nil
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", "address", fmt.Sprintf("http://%s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.log.Debug("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("server shutdown complete")
	return nil
}
