// Package mcpserver exposes video analysis and saved ideas as MCP tools.
package mcpserver

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

var toolRegistry = map[string]toolEntry{
	"idea_analyze": {
		def: mcp.NewTool("idea_analyze",
			mcp.WithDescription("Transcribe a YouTube video and extract business ideas from it. Returns the video metadata and the parsed ideas."),
			mcp.WithString("url", mcp.Required(), mcp.Description("YouTube watch or youtu.be URL")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAnalyze },
	},
	"idea_create": {
		def: mcp.NewTool("idea_create",
			mcp.WithDescription("Save an idea for a user."),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("Owner of the idea")),
			mcp.WithString("title", mcp.Required(), mcp.Description("1-255 characters")),
			mcp.WithString("description", mcp.Required()),
			mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
			mcp.WithString("category"),
			mcp.WithObject("metadata", mcp.Description("Analysis fields such as viabilityScore or competition")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreate },
	},
	"idea_list": {
		def: mcp.NewTool("idea_list",
			mcp.WithDescription("List a user's saved, non-archived ideas, newest first."),
			mcp.WithString("user_id", mcp.Required()),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"idea_get": {
		def: mcp.NewTool("idea_get",
			mcp.WithDescription("Fetch one idea by id."),
			mcp.WithString("id", mcp.Required()),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGet },
	},
	"idea_update": {
		def: mcp.NewTool("idea_update",
			mcp.WithDescription("Change fields of an idea. Omitted fields are kept."),
			mcp.WithString("id", mcp.Required()),
			mcp.WithString("title"),
			mcp.WithString("description"),
			mcp.WithArray("tags", mcp.Items(map[string]any{"type": "string"})),
			mcp.WithString("category"),
			mcp.WithString("status", mcp.Enum("DRAFT", "PUBLISHED", "ARCHIVED")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUpdate },
	},
	"idea_delete": {
		def: mcp.NewTool("idea_delete",
			mcp.WithDescription("Permanently delete an idea."),
			mcp.WithString("id", mcp.Required()),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"idea_like": {
		def: mcp.NewTool("idea_like",
			mcp.WithDescription("Add one like to an idea."),
			mcp.WithString("id", mcp.Required()),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLike },
	},
}

// ToolNames returns the registered tool names in sorted order.
func ToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewServer creates an MCP server with the idea tools registered.
// idea_analyze is left out when h has no analyzer.
func NewServer(h *Handlers, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"video-ideas",
		version,
		server.WithToolCapabilities(true),
	)
	for _, name := range ToolNames() {
		if name == "idea_analyze" && h.analyzer == nil {
			continue
		}
		entry := toolRegistry[name]
		s.AddTool(entry.def, entry.handler(h))
	}
	return s
}

// ServeStdio runs the MCP server on stdin/stdout until stdin closes.
func ServeStdio(h *Handlers, version string) error {
	return server.ServeStdio(NewServer(h, version))
}
