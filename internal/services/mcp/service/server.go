package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/eventboard/internal/services/mcp/domain"
)

const (
	serverName = "eventboard-mcp"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Config defines startup inputs for the MCP service.
type Config struct {
	Listing domain.Listing
}

// Server wraps the MCP server with its registered tools.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer registers every event tool against engine.
func NewServer(engine domain.Listing) (*Server, error) {
	if engine == nil {
		return nil, errors.New("listing is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(mcpServer, domain.EventsListTool(), domain.EventsListHandler(engine))
	mcp.AddTool(mcpServer, domain.EventsTotalTool(), domain.EventsTotalHandler(engine))
	mcp.AddTool(mcpServer, domain.EventCreateTool(), domain.EventCreateHandler(engine))
	mcp.AddTool(mcpServer, domain.EventUpdateTool(), domain.EventUpdateHandler(engine))
	mcp.AddTool(mcpServer, domain.EventDeleteTool(), domain.EventDeleteHandler(engine))
	mcp.AddTool(mcpServer, domain.EventJoinTool(), domain.EventJoinHandler(engine))
	mcp.AddTool(mcpServer, domain.ParticipantRemoveTool(), domain.ParticipantRemoveHandler(engine))

	return &Server{mcpServer: mcpServer}, nil
}

// Run is the service entrypoint for MCP over stdio and blocks until context
// cancellation or the client disconnects.
func Run(ctx context.Context, cfg Config) error {
	server, err := NewServer(cfg.Listing)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
