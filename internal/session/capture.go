package session

import (
	"fmt"
	"path/filepath"

	"github.com/mj1618/fontproject/internal/host"
	"github.com/mj1618/fontproject/internal/model"
	"go.uber.org/zap"
)

// CaptureOptions controls how a session is captured.
type CaptureOptions struct {
	// TargetPath is where the project will be saved. It anchors relative paths.
	TargetPath string
	// UseRelativePaths stores document paths relative to TargetPath's directory.
	UseRelativePaths bool
	// Script is stored as the project's startup script when non-empty.
	Script string
}

// Capturer reads the live session from a host.
type Capturer struct {
	host *host.Provider
	settings
}

// NewCapturer returns a Capturer for p.
func NewCapturer(p *host.Provider, opts ...Option) *Capturer {
	s := newSettings(opts)
	s.log = s.log.Component("capture")
	return &Capturer{host: p, settings: s}
}

// Capture is shorthand for NewCapturer(p).Capture(opts).
func Capture(p *host.Provider, opts CaptureOptions) (*model.Project, error) {
	return NewCapturer(p).Capture(opts)
}

// Capture builds a project from the host's open documents and tool windows.
// It only reads host state. Windows without a recognized kind, or whose
// state cannot be read, are left out; every document keeps its key even
// when none of its windows survive.
func (c *Capturer) Capture(opts CaptureOptions) (*model.Project, error) {
	if err := c.host.RequireCapture(); err != nil {
		return nil, err
	}

	docs, err := c.host.Documents.OpenDocuments()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	anchor := ""
	if opts.UseRelativePaths && opts.TargetPath != "" {
		if abs, err := filepath.Abs(opts.TargetPath); err == nil {
			anchor = filepath.Dir(abs)
		} else {
			anchor = filepath.Dir(opts.TargetPath)
		}
	}

	p := model.NewProject()
	p.EnsureDocument(model.UntitledKey)

	for _, doc := range docs {
		key := model.UntitledKey
		if !doc.Untitled() {
			key = documentKey(doc.Path, anchor)
			p.EnsureDocument(key)
		}
		for _, id := range doc.Windows {
			w, ok := c.describe(id, key)
			if ok {
				p.AddWindow(key, w)
			}
		}
	}

	windows, err := c.host.Windows.Windows()
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	for _, id := range windows {
		kind, ok := c.host.Windows.WindowKind(id)
		if !ok || !kind.IsToolWindow() {
			continue
		}
		frame, err := c.host.Windows.Frame(id)
		if err != nil {
			c.log.Warn("tool window skipped", zap.String("kind", string(kind)), zap.Error(err))
			continue
		}
		p.ToolWindows = append(p.ToolWindows, model.NewWindow(kind, frame))
	}

	if opts.Script != "" {
		p.Execute = opts.Script
	}

	c.log.Debug("session captured",
		zap.Int("documents", len(p.Documents)),
		zap.Int("windows", p.WindowCount()),
		zap.Bool("relative", anchor != ""))
	return p, nil
}

// documentKey returns path relative to anchor when anchor is set and the
// two share a root, otherwise path unchanged.
func documentKey(path, anchor string) string {
	if anchor == "" {
		return path
	}
	rel, err := filepath.Rel(anchor, path)
	if err != nil {
		return path
	}
	// A file named like the untitled bucket must not land in it.
	if rel == model.UntitledKey {
		return "." + string(filepath.Separator) + rel
	}
	return rel
}

func (c *Capturer) describe(id host.WindowID, key string) (model.WindowDescriptor, bool) {
	kind, ok := c.host.Windows.WindowKind(id)
	if !ok {
		c.log.Debug("window without a known kind skipped", zap.String("document", key), zap.Int("window", int(id)))
		return model.WindowDescriptor{}, false
	}
	frame, err := c.host.Windows.Frame(id)
	if err != nil {
		c.log.Warn("window skipped", zap.String("document", key), zap.String("kind", string(kind)), zap.Error(err))
		return model.WindowDescriptor{}, false
	}

	switch kind {
	case model.KindGlyphWindow:
		glyph, err := c.host.Fonts.GlyphName(id)
		if err != nil || glyph == "" {
			c.log.Warn("glyph window skipped", zap.String("document", key), zap.Error(err))
			return model.WindowDescriptor{}, false
		}
		return model.NewGlyphWindow(glyph, frame), true
	case model.KindSpaceCenter:
		state, err := c.host.Fonts.SpaceCenterState(id)
		if err != nil {
			c.log.Warn("space center skipped", zap.String("document", key), zap.Error(err))
			return model.WindowDescriptor{}, false
		}
		return model.NewSpaceCenter(state, frame), true
	default:
		return model.NewWindow(kind, frame), true
	}
}
