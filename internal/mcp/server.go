// ABOUTME: MCP server setup for the creatine study store.
// ABOUTME: Wraps MCP server with storage Repository and analysis engine.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/strengthlab/creatine/internal/analysis"
	"github.com/strengthlab/creatine/internal/storage"
)

// Server wraps the MCP server with storage and analysis access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	engine    *analysis.Engine
}

// NewServer creates a new MCP server over the given storage.
func NewServer(repo storage.Repository, log *logrus.Logger) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "creatine",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		engine:    analysis.NewEngine(repo, log),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
