package session

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mj1618/fontproject/internal/host"
	"github.com/mj1618/fontproject/internal/projectfile"
	"go.uber.org/zap"
)

// Menu placement of the save command.
const (
	FileMenu   = "File"
	MenuTitle  = "Save Project..."
	MenuAnchor = "Revert to Saved"
)

// FileType is the document type offered by the save prompt.
const FileType = "roboFontProject"

// Extension wires project files into the host: opening a project file
// restores it, and a File menu command saves the current session.
type Extension struct {
	host *host.Provider
	opts []Option
	settings

	// MenuAdded is false when the menu already had the save command.
	MenuAdded bool
}

// Install registers the project file handler and the save menu command.
// Installing twice does not add a second menu entry.
func Install(p *host.Provider, opts ...Option) (*Extension, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil provider", host.ErrCapabilityMissing)
	}
	if p.FileHandlers == nil || p.Menus == nil {
		return nil, fmt.Errorf("%w: file handlers and menus", host.ErrCapabilityMissing)
	}

	s := newSettings(opts)
	e := &Extension{host: p, opts: opts, settings: s}
	e.log = s.log.Component("extension")

	if err := p.FileHandlers.RegisterFileHandler(projectfile.Extension, e.HandleOpenFile); err != nil {
		return nil, fmt.Errorf("failed to register file handler: %w", err)
	}

	item := host.MenuItem{Menu: FileMenu, Title: MenuTitle, After: MenuAnchor}
	added, err := p.Menus.RegisterMenuCommand(item, e.saveFromMenu)
	if err != nil {
		return nil, fmt.Errorf("failed to register menu command: %w", err)
	}
	e.MenuAdded = added
	return e, nil
}

func (e *Extension) saveFromMenu(ctx context.Context) {
	path, err := e.SaveProject(ctx)
	switch {
	case err != nil:
		e.log.Error("save project failed", zap.Error(err))
	case path != "":
		e.log.Info("project saved", zap.String("path", path))
	}
}

// HandleOpenFile restores path if it is a project file. Project files are
// claimed even when they cannot be read, so the host does not try to open
// them as fonts.
func (e *Extension) HandleOpenFile(ctx context.Context, path string) bool {
	if !projectfile.HasExtension(path) {
		return false
	}
	report, err := e.OpenProject(ctx, path)
	if err != nil {
		e.log.Error("open project failed", zap.String("path", path), zap.Error(err))
		return true
	}
	if !report.OK() {
		e.log.Warn("project restored with failures",
			zap.String("path", path),
			zap.String("run_id", report.RunID),
			zap.Int("failures", len(report.Failures)))
	}
	return true
}

// OpenProject reads the project at path and restores it, resolving relative
// document paths against the project's directory.
func (e *Extension) OpenProject(ctx context.Context, path string) (*Report, error) {
	project, diags, err := projectfile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, d := range diags {
		e.log.Warn("descriptor dropped", zap.String("path", d.Path), zap.String("reason", d.Reason))
	}

	root := filepath.Dir(path)
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	report := NewRestorer(e.host, e.opts...).Restore(ctx, project, root)
	report.Dropped = diags
	return report, nil
}

// SaveProject asks where to save, asks for a startup script, captures the
// session and writes it. It returns "" and no error when the user cancels.
func (e *Extension) SaveProject(ctx context.Context) (string, error) {
	if e.host.SavePrompt == nil {
		return "", fmt.Errorf("%w: save prompt", host.ErrCapabilityMissing)
	}
	choice, ok, err := e.host.SavePrompt.AskSaveLocation(ctx, FileType)
	if err != nil {
		return "", fmt.Errorf("save prompt: %w", err)
	}
	if !ok || choice.Path == "" {
		return "", nil
	}

	script := ""
	if e.host.ScriptPrompt != nil {
		if script, err = e.host.ScriptPrompt.AskScript(ctx); err != nil {
			return "", fmt.Errorf("script prompt: %w", err)
		}
	}

	path := choice.Path
	if !projectfile.HasExtension(path) {
		path += projectfile.Extension
	}

	project, err := NewCapturer(e.host, e.opts...).Capture(CaptureOptions{
		TargetPath:       path,
		UseRelativePaths: choice.UseRelativePaths,
		Script:           script,
	})
	if err != nil {
		return "", err
	}
	if err := projectfile.WriteFile(path, project, e.format); err != nil {
		return "", err
	}

	if e.host.Icons != nil {
		if err := e.host.Icons.SetFileIcon(path); err != nil {
			e.log.Warn("could not set file icon", zap.String("path", path), zap.Error(err))
		}
	}
	e.log.Info("session saved",
		zap.String("path", path),
		zap.Int("windows", project.WindowCount()),
		zap.Bool("relative", choice.UseRelativePaths),
		zap.Bool("script", project.Execute != ""))
	return path, nil
}

