// Package server exposes the inspector and the annotation session as MCP
// tools so an agent can resolve elements, annotate them and pull the
// feedback document without a shell.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/desktop-annotator/internal/inspector"
	"github.com/mj1618/desktop-annotator/internal/locate"
	"github.com/mj1618/desktop-annotator/internal/platform"
	"github.com/mj1618/desktop-annotator/internal/session"
	"github.com/mj1618/desktop-annotator/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	Inspector inspector.Config
	// Sessions, when set, receives a copy of the session after every change
	// so the CLI can pick it up.
	Sessions *session.Repository
}

// Server wraps the MCP server with one shared inspector and session.
type Server struct {
	provider  *platform.Provider
	inspector *inspector.Inspector
	searcher  *locate.Searcher
	sessions  *session.Repository
	log       *slog.Logger

	// mu serializes tool calls; the accessibility backends are not safe
	// for concurrent use.
	mu  sync.Mutex
	mcp *mcpserver.MCPServer
}

// New creates a server over provider and registers all tools.
func New(provider *platform.Provider, cfg Config) *Server {
	log := cfg.Inspector.Logger
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		provider:  provider,
		inspector: inspector.New(provider, cfg.Inspector, nil),
		searcher:  locate.New(),
		sessions:  cfg.Sessions,
		log:       log,
	}
	s.mcp = mcpserver.NewMCPServer(
		"desktop-annotator",
		version.Version,
	)
	s.registerTools()
	return s
}

// Inspector returns the shared inspector.
func (s *Server) Inspector() *inspector.Inspector { return s.inspector }

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio", "":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		s.log.Info("serving MCP over streamable-http", "port", cfg.Port)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

type handler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// locked runs h while holding the server mutex.
func (s *Server) locked(h handler) handler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return h(ctx, request)
	}
}

func (s *Server) registerTools() {
	origin := mcp.WithString("origin", mcp.Description("Coordinate origin: top-left (accessibility, default) or bottom-left (screen windowing)"))

	s.mcp.AddTool(
		mcp.NewTool("set_target",
			mcp.WithDescription("Choose the application to inspect, by process ID or the current frontmost app. Descriptors from an earlier target become stale."),
			mcp.WithNumber("pid", mcp.Description("Process ID of the target application")),
			mcp.WithBoolean("frontmost", mcp.Description("Target the frontmost application")),
		),
		s.locked(s.handleSetTarget),
	)

	s.mcp.AddTool(
		mcp.NewTool("element_at",
			mcp.WithDescription("Resolve the target's accessibility element under a screen point: role, identifier, title, frame, hierarchy path and siblings"),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
			origin,
		),
		s.locked(s.handleElementAt),
	)

	s.mcp.AddTool(
		mcp.NewTool("is_frontmost",
			mcp.WithDescription("Report whether the target's window is the topmost window at a screen point"),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
			origin,
		),
		s.locked(s.handleIsFrontmost),
	)

	s.mcp.AddTool(
		mcp.NewTool("scan_region",
			mcp.WithDescription("Sample a rectangle (top-left coordinates) and return each distinct element of the target found inside"),
			mcp.WithNumber("x", mcp.Description("Left edge"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Top edge"), mcp.Required()),
			mcp.WithNumber("w", mcp.Description("Width"), mcp.Required()),
			mcp.WithNumber("h", mcp.Description("Height"), mcp.Required()),
			mcp.WithString("roles", mcp.Description("Comma-separated roles or meta-roles (interactive, text, container)")),
		),
		s.locked(s.handleScanRegion),
	)

	s.mcp.AddTool(
		mcp.NewTool("annotate",
			mcp.WithDescription("Attach feedback to the element under a point, or to every element in a region when w and h are given"),
			mcp.WithString("text", mcp.Description("Feedback text"), mcp.Required()),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
			mcp.WithNumber("w", mcp.Description("Region width (region annotation)")),
			mcp.WithNumber("h", mcp.Description("Region height (region annotation)")),
			mcp.WithString("window", mcp.Description("Window title to record (default: the element's window)")),
			mcp.WithString("roles", mcp.Description("Role filter for region annotations")),
			origin,
		),
		s.locked(s.handleAnnotate),
	)

	s.mcp.AddTool(
		mcp.NewTool("list_annotations",
			mcp.WithDescription("List the annotations of the current session in badge order"),
		),
		s.locked(s.handleListAnnotations),
	)

	s.mcp.AddTool(
		mcp.NewTool("update_annotation",
			mcp.WithDescription("Replace the feedback text of one annotation"),
			mcp.WithNumber("badge", mcp.Description("Badge number"), mcp.Required()),
			mcp.WithString("text", mcp.Description("New feedback text"), mcp.Required()),
		),
		s.locked(s.handleUpdateAnnotation),
	)

	s.mcp.AddTool(
		mcp.NewTool("remove_annotation",
			mcp.WithDescription("Remove one annotation by badge number. Other badges keep their numbers."),
			mcp.WithNumber("badge", mcp.Description("Badge number"), mcp.Required()),
		),
		s.locked(s.handleRemoveAnnotation),
	)

	s.mcp.AddTool(
		mcp.NewTool("clear_annotations",
			mcp.WithDescription("Remove every annotation and restart badge numbering at 1"),
		),
		s.locked(s.handleClearAnnotations),
	)

	s.mcp.AddTool(
		mcp.NewTool("export",
			mcp.WithDescription("Render the session as the UI feedback markdown document, with search patterns for relocating each element in source"),
			mcp.WithString("format", mcp.Description("detailed (default) or forensic")),
			mcp.WithBoolean("html", mcp.Description("Render HTML instead of markdown")),
		),
		s.locked(s.handleExport),
	)

	s.mcp.AddTool(
		mcp.NewTool("locate",
			mcp.WithDescription("Search a source tree for an annotated element using its search patterns"),
			mcp.WithString("root", mcp.Description("Directory or afs URL of the source tree"), mcp.Required()),
			mcp.WithNumber("badge", mcp.Description("Annotation badge whose element to look for")),
			mcp.WithString("identifier", mcp.Description("Element identifier (when no badge is given)")),
			mcp.WithString("title", mcp.Description("Element title (when no badge is given)")),
			mcp.WithString("role", mcp.Description("Element role (when no badge is given)")),
			mcp.WithNumber("max-matches", mcp.Description("Max matches to return (default: 20)")),
		),
		s.locked(s.handleLocate),
	)
}
