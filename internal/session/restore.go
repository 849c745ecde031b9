package session

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mj1618/fontproject/internal/host"
	"github.com/mj1618/fontproject/internal/logging"
	"github.com/mj1618/fontproject/internal/model"
	"go.uber.org/zap"
)

// toolWindowsKey labels tool window entries in a Report.
const toolWindowsKey = "toolWindows"

// Restorer reopens a captured session on a host.
type Restorer struct {
	host *host.Provider
	settings
}

// NewRestorer returns a Restorer for p.
func NewRestorer(p *host.Provider, opts ...Option) *Restorer {
	s := newSettings(opts)
	s.log = s.log.Component("restore")
	return &Restorer{host: p, settings: s}
}

// Restore is shorthand for NewRestorer(p).Restore(ctx, project, root).
func Restore(ctx context.Context, p *host.Provider, project *model.Project, root string) *Report {
	return NewRestorer(p).Restore(ctx, project, root)
}

// fontContext is the font that glyph windows and space centers open in. It
// is set by opening a document or creating an untitled font and read by the
// windows that follow it in the same document.
type fontContext struct {
	font host.DocumentID
	set  bool
}

// pass is the state of one Restore call.
type pass struct {
	report *Report
	log    *logging.Logger
}

func (ps *pass) restored(key string, kind model.Kind, id host.WindowID, frame model.Frame) {
	ps.report.Restored = append(ps.report.Restored, RestoredWindow{Document: key, Kind: kind, Window: id, Frame: frame})
}

func (ps *pass) skip(e *ItemError) {
	ps.report.Skipped = append(ps.report.Skipped, e)
	ps.log.Info("skipped", itemFields(e)...)
}

func (ps *pass) fail(e *ItemError) {
	ps.report.Failures = append(ps.report.Failures, e)
	ps.log.Warn("restore failed", itemFields(e)...)
}

func itemFields(e *ItemError) []zap.Field {
	fields := []zap.Field{zap.Error(e.Err)}
	if e.Document != "" {
		fields = append(fields, zap.String("document", e.Document))
	}
	if e.Kind != "" {
		fields = append(fields, zap.String("kind", string(e.Kind)), zap.Int("index", e.Index))
	}
	return fields
}

// Restore reopens every document of project, then its tool windows, then
// runs its startup script. Relative document paths that do not resolve as
// given are retried against root, normally the project file's directory.
// Failures are collected in the returned Report; Restore never stops early.
func (r *Restorer) Restore(ctx context.Context, project *model.Project, root string) *Report {
	report := newReport(root)
	ps := &pass{report: report, log: r.log.With(zap.String("run_id", report.RunID))}

	if err := r.host.RequireRestore(); err != nil {
		ps.fail(&ItemError{Index: -1, Err: err})
		return report
	}
	if project == nil {
		return report
	}

	for _, key := range project.DocumentKeys() {
		r.restoreDocument(ps, key, project.Documents[key], root)
	}
	r.restoreToolWindows(ps, project.ToolWindows)

	if project.Execute != "" {
		r.runScript(ctx, ps, project.Execute)
	}

	ps.log.Info("restore finished",
		zap.Int("restored", len(report.Restored)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", len(report.Failures)))
	return report
}

// resolvePath finds the file behind a document key.
func (r *Restorer) resolvePath(key, root string) (string, error) {
	if r.fileExists(key) {
		if abs, err := filepath.Abs(key); err == nil {
			return abs, nil
		}
		return key, nil
	}
	if !filepath.IsAbs(key) && root != "" {
		joined, err := filepath.Abs(filepath.Join(root, key))
		if err == nil && r.fileExists(joined) {
			return joined, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMissingFile, key)
}

// openDocument opens path and returns it as the font context. If the
// document open fails, the application's generic file open is tried.
func (r *Restorer) openDocument(ps *pass, path string) (host.DocumentID, error) {
	docs := r.host.Documents
	id, err := docs.OpenDocument(path)
	if err == nil {
		return id, nil
	}
	ps.log.Info("document open failed, trying generic file open", zap.String("path", path), zap.Error(err))

	if ferr := docs.OpenFile(path); ferr != nil {
		return 0, fmt.Errorf("%w: %s: %v; fallback: %v", ErrDocumentOpen, path, err, ferr)
	}
	id, ok := docs.Lookup(path)
	if !ok {
		return 0, fmt.Errorf("%w: %s: opened but not found afterwards", ErrDocumentOpen, path)
	}
	return id, nil
}

func (r *Restorer) restoreDocument(ps *pass, key string, windows []model.WindowDescriptor, root string) {
	if len(windows) == 0 {
		return
	}
	windows = model.SortFontWindowFirst(windows)

	if key == model.UntitledKey {
		fc := &fontContext{}
		for i, w := range windows {
			r.restoreWindow(ps, key, i, w, fc, true)
		}
		return
	}

	path, err := r.resolvePath(key, root)
	if err != nil {
		ps.fail(documentError(key, err))
		return
	}
	if _, open := r.host.Documents.Lookup(path); open {
		ps.skip(documentError(key, fmt.Errorf("%w: %s", ErrAlreadyOpen, path)))
		return
	}

	doc, err := r.openDocument(ps, path)
	if err != nil {
		ps.fail(documentError(key, err))
		return
	}
	fc := &fontContext{font: doc, set: true}
	for i, w := range windows {
		r.restoreWindow(ps, key, i, w, fc, false)
	}
}

// windowOpener opens or locates the window for a descriptor and returns it
// so its frame can be applied.
type windowOpener func(r *Restorer, fc *fontContext, w model.WindowDescriptor, untitled bool) (host.WindowID, error)

var windowOpeners = map[model.Kind]windowOpener{
	model.KindFontWindow:      openFontWindow,
	model.KindGlyphWindow:     openGlyphWindow,
	model.KindSpaceCenter:     openSpaceCenter,
	model.KindScriptingWindow: openScriptingWindow,
	model.KindFeatureWindow:   openFeatureWindow,
}

func (r *Restorer) restoreWindow(ps *pass, key string, index int, w model.WindowDescriptor, fc *fontContext, untitled bool) {
	open, ok := windowOpeners[w.Kind]
	if !ok {
		if untitled {
			ps.fail(windowError(key, index, w.Kind, fmt.Errorf("%w: %s in %s", ErrUnrecognizedWindowKind, w.Kind, model.UntitledKey)))
			return
		}
		open = openMainWindow
	}
	if w.Kind.NeedsFont() && !fc.set {
		ps.fail(windowError(key, index, w.Kind, fmt.Errorf("%w for %s", ErrNoFontContext, w.Kind)))
		return
	}

	id, err := open(r, fc, w, untitled)
	if err != nil {
		ps.fail(windowError(key, index, w.Kind, err))
		return
	}
	if err := r.host.Windows.SetFrame(id, w.Frame); err != nil {
		ps.fail(windowError(key, index, w.Kind, fmt.Errorf("%w: set frame: %w", ErrWindowRestore, err)))
		return
	}
	ps.restored(key, w.Kind, id, w.Frame)
}

// openFontWindow creates a font for untitled entries. For a file-backed
// document the font was opened before its windows, so it is the main window.
func openFontWindow(r *Restorer, fc *fontContext, w model.WindowDescriptor, untitled bool) (host.WindowID, error) {
	if untitled {
		doc, err := r.host.Documents.NewDocument()
		if err != nil {
			return 0, fmt.Errorf("%w: new font: %w", ErrDocumentOpen, err)
		}
		fc.font, fc.set = doc, true
	}
	return openMainWindow(r, fc, w, untitled)
}

// openMainWindow is the fallback for kinds without a dedicated opener: the
// frame goes to whatever the host reports as its main window.
func openMainWindow(r *Restorer, _ *fontContext, _ model.WindowDescriptor, _ bool) (host.WindowID, error) {
	id, err := r.host.Windows.MainWindow()
	if err != nil {
		return 0, fmt.Errorf("%w: main window: %w", ErrWindowRestore, err)
	}
	return id, nil
}

func openGlyphWindow(r *Restorer, fc *fontContext, w model.WindowDescriptor, _ bool) (host.WindowID, error) {
	id, err := r.host.Fonts.OpenGlyphWindow(fc.font, w.GlyphName)
	if err != nil {
		return 0, fmt.Errorf("%w: glyph %q: %w", ErrWindowRestore, w.GlyphName, err)
	}
	return id, nil
}

func openSpaceCenter(r *Restorer, fc *fontContext, w model.WindowDescriptor, _ bool) (host.WindowID, error) {
	id, err := r.host.Fonts.OpenSpaceCenter(fc.font)
	if err != nil {
		return 0, fmt.Errorf("%w: space center: %w", ErrWindowRestore, err)
	}
	var state model.SpaceCenterState
	if w.SpaceCenter != nil {
		state = *w.SpaceCenter
	}
	if err := r.host.Fonts.SetSpaceCenterState(id, state); err != nil {
		return 0, fmt.Errorf("%w: space center state: %w", ErrWindowRestore, err)
	}
	return id, nil
}

// Scripting and feature windows use the same open-or-focus action whether
// they were captured untitled or on a saved document.
func openScriptingWindow(r *Restorer, _ *fontContext, _ model.WindowDescriptor, _ bool) (host.WindowID, error) {
	id, err := r.host.Fonts.OpenScriptingWindow()
	if err != nil {
		return 0, fmt.Errorf("%w: scripting window: %w", ErrWindowRestore, err)
	}
	return id, nil
}

func openFeatureWindow(r *Restorer, _ *fontContext, _ model.WindowDescriptor, _ bool) (host.WindowID, error) {
	id, err := r.host.Fonts.OpenFeatureWindow()
	if err != nil {
		return 0, fmt.Errorf("%w: feature window: %w", ErrWindowRestore, err)
	}
	return id, nil
}

func (r *Restorer) restoreToolWindows(ps *pass, windows []model.WindowDescriptor) {
	for i, w := range windows {
		if !w.Kind.IsToolWindow() {
			ps.fail(windowError(toolWindowsKey, i, w.Kind, fmt.Errorf("%w: %s is not a tool window", ErrUnrecognizedWindowKind, w.Kind)))
			continue
		}
		if r.host.Tools == nil {
			ps.fail(windowError(toolWindowsKey, i, w.Kind, fmt.Errorf("%w: %w", ErrWindowRestore, host.ErrCapabilityMissing)))
			continue
		}
		id, err := r.host.Tools.ToolWindow(w.Kind)
		if err != nil {
			ps.fail(windowError(toolWindowsKey, i, w.Kind, fmt.Errorf("%w: %w", ErrWindowRestore, err)))
			continue
		}
		if err := r.host.Windows.SetFrame(id, w.Frame); err != nil {
			ps.fail(windowError(toolWindowsKey, i, w.Kind, fmt.Errorf("%w: set frame: %w", ErrWindowRestore, err)))
			continue
		}
		ps.restored(toolWindowsKey, w.Kind, id, w.Frame)
	}
}

// runScript runs the startup script once, after every window. A failure is
// reported and does not undo anything already restored.
func (r *Restorer) runScript(ctx context.Context, ps *pass, text string) {
	if r.host.Scripts == nil {
		ps.fail(&ItemError{Index: -1, Err: fmt.Errorf("%w: %w", ErrScriptExecution, host.ErrCapabilityMissing)})
		return
	}
	ps.report.ScriptRan = true
	if err := r.host.Scripts.RunScript(ctx, text); err != nil {
		ps.fail(&ItemError{Index: -1, Err: fmt.Errorf("%w: %w", ErrScriptExecution, err)})
	}
}
