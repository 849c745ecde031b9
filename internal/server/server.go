// Package server exposes project inspection, dry-run restore, preview and
// conversion as MCP tools.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/fontproject/internal/logging"
	"github.com/mj1618/fontproject/internal/version"
	"go.uber.org/zap"
)

// Config holds MCP server configuration.
type Config struct {
	Transport    string
	Port         int
	CacheTTL     time.Duration
	PreviewWidth int
}

// Server wraps the MCP server with the project cache.
type Server struct {
	cfg   Config
	cache *ProjectCache
	log   *logging.Logger
	// restoreMu serialises dry-run restores; the session engine assumes a
	// single restore at a time.
	restoreMu sync.Mutex
	mcp       *mcpserver.MCPServer
}

// New creates and configures an MCP server with all project tools.
func New(cfg Config, log *logging.Logger) *Server {
	if log == nil {
		log = logging.NewNop()
	}
	s := &Server{
		cfg:   cfg,
		cache: NewProjectCache(cfg.CacheTTL),
		log:   log.Component("mcp"),
	}
	s.mcp = mcpserver.NewMCPServer(
		"fontproject",
		version.Version,
	)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve() error {
	s.log.Info("starting MCP server", zap.String("transport", s.cfg.Transport), zap.Int("port", s.cfg.Port))
	switch s.cfg.Transport {
	case "stdio", "":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("inspect_project",
			mcp.WithDescription("Summarise a .roboFontProject file: documents, window kinds, tool windows, startup script and any descriptors dropped while reading it"),
			mcp.WithString("path", mcp.Description("Path to the project file"), mcp.Required()),
		),
		s.handleInspect,
	)

	s.mcp.AddTool(
		mcp.NewTool("restore_plan",
			mcp.WithDescription("Dry-run a restore of a project against an in-memory editor and return the report and every host call it made"),
			mcp.WithString("path", mcp.Description("Path to the project file"), mcp.Required()),
			mcp.WithString("state", mcp.Description("Optional YAML host state file describing documents already open")),
			mcp.WithBoolean("assume-files", mcp.Description("Treat every document path as existing (default: check the filesystem)")),
		),
		s.handleRestorePlan,
	)

	s.mcp.AddTool(
		mcp.NewTool("preview_project",
			mcp.WithDescription("Render the project's window layout as a PNG image"),
			mcp.WithString("path", mcp.Description("Path to the project file"), mcp.Required()),
			mcp.WithNumber("width", mcp.Description("Image width in pixels")),
			mcp.WithBoolean("labels", mcp.Description("Draw window labels (default: true)")),
		),
		s.handlePreview,
	)

	s.mcp.AddTool(
		mcp.NewTool("convert_project",
			mcp.WithDescription("Re-encode a project file as xml, binary, yaml or json. Without an output path the encoded text is returned."),
			mcp.WithString("path", mcp.Description("Path to the project file"), mcp.Required()),
			mcp.WithString("to", mcp.Description("Target format: xml, binary, yaml, json"), mcp.Required()),
			mcp.WithString("output", mcp.Description("File to write (required for binary)")),
		),
		s.handleConvert,
	)
}
