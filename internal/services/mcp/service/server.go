package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/grimoire/internal/services/mcp/domain"
	rules "github.com/louisbranch/grimoire/internal/systems/pathfinder/domain"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Grimoire Rules MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server hosts the MCP server and the grant registry it serves.
type Server struct {
	mcpServer *mcp.Server
	registry  *rules.Registry
}

// newServer creates an MCP server with the spell access tools registered
// against the given registry.
func newServer(registry *rules.Registry) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(mcpServer, domain.SpellAccessResolveTool(), domain.SpellAccessResolveHandler(registry))
	mcp.AddTool(mcpServer, domain.SpellAccessCheckTool(), domain.SpellAccessCheckHandler(registry))
	mcp.AddTool(mcpServer, domain.SpellAccessDescribeTool(), domain.SpellAccessDescribeHandler(registry))
	mcp.AddTool(mcpServer, domain.SpellAccessGrantsTool(), domain.SpellAccessGrantsHandler(registry))

	return &Server{mcpServer: mcpServer, registry: registry}, nil
}

// loadRegistry returns the builtin grant table, or the registry loaded from
// the configured grants file when one is set.
func loadRegistry(grantsPath string) (*rules.Registry, error) {
	if grantsPath == "" {
		return rules.BuiltinRegistry(), nil
	}
	registry, err := rules.LoadGrants(grantsPath)
	if err != nil {
		return nil, fmt.Errorf("load grants from %s: %w", grantsPath, err)
	}
	log.Printf("loaded %d grants from %s", registry.Len(), grantsPath)
	return registry, nil
}

// Run is the service entrypoint for MCP and blocks until context
// cancellation. It is transport-agnostic so startup can choose stdio for
// local tools and HTTP for remote integrations.
func Run(ctx context.Context, cfg Config) error {
	registry, err := loadRegistry(cfg.GrantsPath)
	if err != nil {
		return err
	}
	server, err := newServer(registry)
	if err != nil {
		return err
	}

	transport := cfg.Transport
	if transport == "" {
		transport = TransportStdio
	}

	switch transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", transport)
	}
}

// serveWithTransport starts the MCP server using the provided transport.
// Context cancellation ends serving without error.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
