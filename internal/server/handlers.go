package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/fontproject/internal/host/memhost"
	"github.com/mj1618/fontproject/internal/output"
	"github.com/mj1618/fontproject/internal/preview"
	"github.com/mj1618/fontproject/internal/projectfile"
	"github.com/mj1618/fontproject/internal/session"
	"go.uber.org/zap"
)

// resultToText serializes a tool result to YAML for the MCP response.
func resultToText(v interface{}) (*mcp.CallToolResult, error) {
	text, err := output.Marshal(v, output.FormatYAML, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) load(request mcp.CallToolRequest) (*Loaded, *mcp.CallToolResult) {
	path, err := request.RequireString("path")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	loaded, err := s.cache.Load(path)
	if err != nil {
		s.log.Warn("project load failed", zap.String("path", path), zap.Error(err))
		return nil, mcp.NewToolResultError(err.Error())
	}
	return loaded, nil
}

func (s *Server) handleInspect(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loaded, errResult := s.load(request)
	if errResult != nil {
		return errResult, nil
	}
	return resultToText(output.Inspect(loaded.Path, loaded.Format, loaded.Project, loaded.Dropped))
}

func (s *Server) handleRestorePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loaded, errResult := s.load(request)
	if errResult != nil {
		return errResult, nil
	}

	h := memhost.New()
	if statePath := request.GetString("state", ""); statePath != "" {
		state, err := memhost.LoadState(statePath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		h = memhost.FromState(state)
	}
	fileExists := h.FileExists
	if request.GetBool("assume-files", false) {
		fileExists = func(string) bool { return true }
	}

	s.restoreMu.Lock()
	defer s.restoreMu.Unlock()

	restorer := session.NewRestorer(h.Provider(),
		session.WithLogger(s.log),
		session.WithFileExists(fileExists))
	report := restorer.Restore(ctx, loaded.Project, filepath.Dir(loaded.Path))
	report.Dropped = loaded.Dropped

	return resultToText(output.RestoreResult{
		File:   loaded.Path,
		Report: report,
		Calls:  h.Calls(),
		State:  h.Snapshot(),
	})
}

func (s *Server) handlePreview(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loaded, errResult := s.load(request)
	if errResult != nil {
		return errResult, nil
	}

	opts := preview.DefaultOptions()
	if s.cfg.PreviewWidth > 0 {
		opts.Width = s.cfg.PreviewWidth
	}
	opts.Width = request.GetInt("width", opts.Width)
	if opts.Width < preview.MinWidth || opts.Width > preview.MaxWidth {
		return mcp.NewToolResultError(fmt.Sprintf("width must be between %d and %d", preview.MinWidth, preview.MaxWidth)), nil
	}
	opts.Labels = request.GetBool("labels", true)

	data, err := preview.PNG(loaded.Project, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(data),
				MIMEType: "image/png",
			},
		},
	}, nil
}

func (s *Server) handleConvert(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loaded, errResult := s.load(request)
	if errResult != nil {
		return errResult, nil
	}
	to, err := request.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format, err := projectfile.ParseFormat(to)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := request.GetString("output", "")

	if out == "" {
		if format == projectfile.FormatBinary {
			return mcp.NewToolResultError("binary output needs an output path"), nil
		}
		data, err := projectfile.Encode(loaded.Project, format)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	if err := projectfile.WriteFile(out, loaded.Project, format); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("write %s: %v", out, err)), nil
	}
	s.cache.Invalidate(out)

	return resultToText(output.ConvertResult{
		Input:   loaded.Path,
		Output:  out,
		From:    loaded.Format,
		To:      format,
		Windows: loaded.Project.WindowCount(),
		Dropped: loaded.Dropped,
	})
}
