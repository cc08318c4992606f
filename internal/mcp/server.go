package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wovenhouse/support-rag/internal/corpus"
	"github.com/wovenhouse/support-rag/internal/retrieval"
)

// Server wraps the MCP server with its dependencies.
type Server struct {
	server  *mcp.Server
	service *retrieval.Service
	store   corpus.Store
}

// Config holds server dependencies.
type Config struct {
	Service *retrieval.Service
	Store   corpus.Store
}

// NewServer creates a configured MCP server with the retrieval tools
// registered.
func NewServer(cfg *Config) *Server {
	impl := &mcp.Implementation{
		Name:    "support-rag-server",
		Version: "v0.1.0",
	}

	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_support",
		Description: "Search the storefront support documentation semantically. Returns ranked chunks plus an assembled context block for the chat prompt.",
	}, makeSearchHandler(cfg.Service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "navigation_help",
		Description: "Answer wayfinding questions (where to find a page or feature) from navigation content only.",
	}, makeNavigationHandler(cfg.Service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_topics",
		Description: "List the distinct documentation topics relevant to a question.",
	}, makeTopicsHandler(cfg.Service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_corpus_status",
		Description: "Get the current corpus snapshot status: chunk counts, categories and last build time.",
	}, makeStatusHandler(cfg.Store))

	return &Server{
		server:  server,
		service: cfg.Service,
		store:   cfg.Store,
	}
}

// Run starts the server with stdio transport (blocks until the client
// disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance, for transport
// handlers that wrap the server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
