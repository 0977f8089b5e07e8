// ABOUTME: MCP tool definitions and registration for the summarizer server
// ABOUTME: Exposes summarize_video and get_transcript over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, summarizer Summarizer, defaultAPIKey string) *Handlers {
	handlers := &Handlers{
		summarizer:    summarizer,
		defaultAPIKey: defaultAPIKey,
	}

	// 1. summarize_video - Full pipeline: transcript, translation, summary
	server.AddTool(mcp.Tool{
		Name:        "summarize_video",
		Description: "Summarize a YouTube video. Fetches the captions, translates Indic-language transcripts to English, and returns transcript, translation, and summary.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "YouTube video URL (watch, youtu.be, shorts, or embed)",
				},
				"api_key": map[string]interface{}{
					"type":        "string",
					"description": "Groq API key (optional if the server has GROQ_API_KEY set)",
				},
			},
			Required: []string{"url"},
		},
	}, handlers.SummarizeVideo)

	// 2. get_transcript - Transcript stage only
	server.AddTool(mcp.Tool{
		Name:        "get_transcript",
		Description: "Fetch the caption transcript of a YouTube video, preferring human-authored tracks over auto-generated ones.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "YouTube video URL",
				},
			},
			Required: []string{"url"},
		},
	}, handlers.GetTranscript)

	return handlers
}
