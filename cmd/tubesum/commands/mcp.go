// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to summarize videos via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/tubesum/internal/config"
	"github.com/harper/tubesum/internal/logger"
	"github.com/harper/tubesum/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs tubesum as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to fetch transcripts and summarize videos via stdio.

Tools: summarize_video, get_transcript.
Set GROQ_API_KEY so agents can summarize without passing a key.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  tubesum mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "tubesum": {
  #       "command": "tubesum",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// newMCPServer builds the stdio server with the pipeline tools registered
func newMCPServer(cfg *config.Config, log logger.Logger) *mcpserver.MCPServer {
	server := mcpserver.NewMCPServer(
		"tubesum",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, newPipeline(cfg, log), cfg.GroqAPIKey)
	return server
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.GroqAPIKey == "" {
		log.Warn("GROQ_API_KEY not set - summarize_video requires an api_key argument")
	}

	server := newMCPServer(cfg, log)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("MCP server starting on stdio")

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
