// ABOUTME: MCP server setup for the training log.
// ABOUTME: Wraps the MCP server with storage and engine access.
package mcp

import (
	"context"

	"github.com/GiovanniJ17/tracker-velocista/internal/engine"
	"github.com/GiovanniJ17/tracker-velocista/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage and engine access.
type Server struct {
	mcpServer *mcp.Server
	db        *storage.DB
	engine    *engine.Engine
}

// NewServer creates a new MCP server over the given database.
func NewServer(db *storage.DB) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "sprintlog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		db:        db,
		engine:    engine.New(db),
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
