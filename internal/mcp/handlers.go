// ABOUTME: MCP tool handler implementations for the summarizer server
// ABOUTME: Failures come back as tool-error results, never protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/tubesum/internal/core"
	"github.com/harper/tubesum/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// Summarizer runs the pipeline or its transcript stage
type Summarizer interface {
	Run(ctx context.Context, req core.Request) (*models.Result, error)
	Transcript(ctx context.Context, videoURL string) (models.Transcript, error)
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	summarizer    Summarizer
	defaultAPIKey string
}

// SummarizeVideo handles the summarize_video tool
func (h *Handlers) SummarizeVideo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url argument is required and must be a string"), nil
	}

	apiKey := strings.TrimSpace(request.GetString("api_key", ""))
	if apiKey == "" {
		apiKey = h.defaultAPIKey
	}

	result, err := h.summarizer.Run(ctx, core.Request{VideoURL: url, APIKey: apiKey})
	if err != nil {
		if errors.Is(err, models.ErrMissingInput) {
			return mcp.NewToolResultError("url and api_key are required (or set GROQ_API_KEY on the server)"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("summarization failed: %v", err)), nil
	}
	if err := result.Err(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Video: %s (language: %s)\n\n", result.VideoID, result.LanguageCode)
	fmt.Fprintf(&b, "Summary:\n%s\n\n", result.Summary.Text)
	if result.Translated {
		fmt.Fprintf(&b, "Translated Text:\n%s\n\n", result.Translation.Text)
	}
	fmt.Fprintf(&b, "Transcript:\n%s\n", result.Transcript.Text)

	return mcp.NewToolResultText(b.String()), nil
}

// GetTranscript handles the get_transcript tool
func (h *Handlers) GetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url argument is required and must be a string"), nil
	}

	transcript, err := h.summarizer.Transcript(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := map[string]interface{}{
		"video_id":      transcript.VideoID,
		"language_code": transcript.LanguageCode,
		"generated":     transcript.Generated,
		"text":          transcript.Text(),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
