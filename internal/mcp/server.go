// ABOUTME: MCP server setup for the workout assistant.
// ABOUTME: Exposes the message router and read views as MCP tools over stdio.
package mcp

import (
	"context"

	"github.com/harperreed/repbot/internal/assistant"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with assistant access.
type Server struct {
	mcpServer *mcp.Server
	assistant *assistant.Assistant
	userID    int64
}

// NewServer creates an MCP server. All tool calls act as userID, since MCP
// clients are single-user by nature.
func NewServer(a *assistant.Assistant, userID int64) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "repbot",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		assistant: a,
		userID:    userID,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
