package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/docsearch/internal/client"
	"github.com/dshills/docsearch/internal/logger"
)

const (
	// ServerName is the MCP server name
	ServerName = "docsearch"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp    *server.MCPServer
	client *client.Client
	logger *slog.Logger
}

// NewServer creates an MCP server answering tool calls with c
func NewServer(c *client.Client, log *slog.Logger) *Server {
	s := &Server{
		mcp:    server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false)),
		client: c,
		logger: logger.OrNop(log),
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until ctx is done or
// stdin is closed
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving MCP on stdio", "docs", len(s.client.Index().Docs))
	return s.Listen(ctx, os.Stdin, os.Stdout)
}

// Listen serves MCP messages read from in, writing responses to out.
// Cancelling ctx is a clean shutdown.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocsTool(), s.handleSearchDocs)
	s.mcp.AddTool(getDocTool(), s.handleGetDoc)
	s.mcp.AddTool(relatedDocsTool(), s.handleRelatedDocs)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	s.mcp.AddTool(reloadIndexTool(), s.handleReloadIndex)
}
