// Package server exposes element operations as MCP tools.
package server

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	Timeout   time.Duration // Messaging timeout applied to every resolved element
}

// Server wraps the MCP server with the accessibility client and tree cache.
// Elements are not safe for concurrent use, so every tool call holds
// clientMu while it touches the client.
type Server struct {
	client   *ax.Client
	clientMu sync.Mutex
	cache    *TreeCache
	timeout  time.Duration
	logger   *slog.Logger
	mcp      *mcpserver.MCPServer
}

// New creates an MCP server with all axcore tools registered.
func New(client *ax.Client, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		client:  client,
		cache:   NewTreeCache(cfg.CacheTTL),
		timeout: cfg.Timeout,
		logger:  logger,
	}
	s.mcp = mcpserver.NewMCPServer("axcore", version.Version)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	s.logger.Info("starting MCP server", "transport", cfg.Transport, "port", cfg.Port)
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func targetOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("pid", mcp.Description("Application process ID (default: system-wide element)")),
		mcp.WithNumber("x", mcp.Description("Hit-test X coordinate (top-left origin), requires y")),
		mcp.WithNumber("y", mcp.Description("Hit-test Y coordinate (top-left origin), requires x")),
		mcp.WithString("child", mcp.Description("Comma-separated child indexes to walk after the hit test (e.g. '0,2,1')")),
	}
}

func tool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	opts = append([]mcp.ToolOption{mcp.WithDescription(description)}, opts...)
	return mcp.NewTool(name, append(opts, targetOptions()...)...)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		tool("attributes",
			"List the attribute names an accessibility element supports",
			mcp.WithBoolean("param", mcp.Description("List parameterized attributes instead")),
		),
		s.handleAttributes,
	)

	s.mcp.AddTool(
		tool("attribute",
			"Read one attribute of an accessibility element. With param, reads a parameterized attribute.",
			mcp.WithString("name", mcp.Description("Attribute name (e.g. 'AXTitle', 'AXStringForRange')"), mcp.Required()),
			mcp.WithString("param", mcp.Description("Parameter value for a parameterized attribute")),
			mcp.WithString("param_type", mcp.Description("Parameter type: string, int, float, bool, point, size, rect, range, url, date (default: string)")),
		),
		s.handleAttribute,
	)

	s.mcp.AddTool(
		tool("set_attribute",
			"Write one attribute of an accessibility element",
			mcp.WithString("name", mcp.Description("Attribute name (e.g. 'AXValue', 'AXSelectedTextRange')"), mcp.Required()),
			mcp.WithString("value", mcp.Description("New value"), mcp.Required()),
			mcp.WithString("type", mcp.Description("Value type: string, int, float, bool, point, size, rect, range, url, date (default: string)")),
		),
		s.handleSetAttribute,
	)

	s.mcp.AddTool(
		tool("actions", "List the actions an accessibility element supports"),
		s.handleActions,
	)

	s.mcp.AddTool(
		tool("perform",
			"Perform an accessibility action (e.g. AXPress, AXRaise, AXShowMenu) on an element",
			mcp.WithString("action", mcp.Description("Action name"), mcp.Required()),
		),
		s.handlePerform,
	)

	s.mcp.AddTool(
		tool("element_at",
			"Return the element at screen point x,y within the application (or system-wide)"),
		s.handleElementAt,
	)

	s.mcp.AddTool(
		tool("pid", "Return the process ID of the application that owns an element"),
		s.handlePID,
	)

	s.mcp.AddTool(
		tool("tree",
			"Read the accessibility element tree below an element. Returns roles, titles, bounds, actions and child index paths.",
			mcp.WithNumber("depth", mcp.Description("Max depth to traverse (0 = unlimited)")),
			mcp.WithBoolean("flat", mcp.Description("Return a flat list with path breadcrumbs")),
			mcp.WithString("roles", mcp.Description("Comma-separated roles to keep or capabilities (e.g. 'button,link', 'AXSearchField' or 'pressable')")),
			mcp.WithString("text", mcp.Description("Keep elements whose title, value or description contains this text")),
			mcp.WithBoolean("prune", mcp.Description("Drop anonymous group nodes")),
		),
		s.handleTree,
	)
}
