// Package memhost is an in-memory editor host. It backs dry-run restores in
// the CLI and MCP server and drives the session engine in tests. Every call
// that changes host state is appended to a trace.
package memhost

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mj1618/fontproject/internal/host"
	"github.com/mj1618/fontproject/internal/model"
)

// Call is one state-changing host call.
type Call struct {
	Op     string        `yaml:"op"               json:"op"`
	Target string        `yaml:"target,omitempty" json:"target,omitempty"`
	Window host.WindowID `yaml:"window,omitempty" json:"window,omitempty"`
	Frame  *model.Frame  `yaml:"frame,omitempty"  json:"frame,omitempty"`
}

type window struct {
	id    host.WindowID
	kind  string
	frame model.Frame
	doc   host.DocumentID
	glyph string
	sc    model.SpaceCenterState
}

type document struct {
	id      host.DocumentID
	path    string
	windows []host.WindowID
}

// Host implements every capability in package host.
type Host struct {
	nextDoc host.DocumentID
	nextWin host.WindowID

	docs    []*document // front to back
	windows map[host.WindowID]*window
	order   []host.WindowID // creation order
	main    host.WindowID
	tools   map[model.Kind]host.WindowID
	files   map[string]bool
	calls   []Call

	// FailOpen makes OpenDocument fail for these paths.
	FailOpen map[string]bool
	// FailOpenFile makes OpenFile fail for these paths.
	FailOpenFile map[string]bool
	// FailGlyphs makes OpenGlyphWindow fail for these glyph names.
	FailGlyphs map[string]bool
	// ScriptErr is returned by RunScript.
	ScriptErr error
	// Scripts holds every script passed to RunScript.
	Scripts []string

	// SaveChoice answers AskSaveLocation; nil means the user cancelled.
	SaveChoice *host.SaveChoice
	// ScriptText answers AskScript.
	ScriptText string
	// Icons records paths passed to SetFileIcon.
	Icons []string

	fileHandlers map[string]host.FileHandler
	menus        map[string][]string
	menuActions  map[string]func(ctx context.Context)
}

// New returns an empty host.
func New() *Host {
	return &Host{
		windows:      make(map[host.WindowID]*window),
		tools:        make(map[model.Kind]host.WindowID),
		files:        make(map[string]bool),
		FailOpen:     make(map[string]bool),
		FailOpenFile: make(map[string]bool),
		FailGlyphs:   make(map[string]bool),
		fileHandlers: make(map[string]host.FileHandler),
		menus:        make(map[string][]string),
		menuActions:  make(map[string]func(ctx context.Context)),
	}
}

// Provider exposes h through every host capability.
func (h *Host) Provider() *host.Provider {
	return &host.Provider{
		Documents:    h,
		Windows:      h,
		Fonts:        h,
		Tools:        h,
		Scripts:      h,
		FileHandlers: h,
		Menus:        h,
		SavePrompt:   h,
		ScriptPrompt: h,
		Icons:        h,
	}
}

// Calls returns the trace of state-changing calls.
func (h *Host) Calls() []Call {
	out := make([]Call, len(h.calls))
	copy(out, h.calls)
	return out
}

// ResetCalls clears the trace.
func (h *Host) ResetCalls() {
	h.calls = nil
}

// CountCalls returns how many calls in the trace have the given op.
func (h *Host) CountCalls(op string) int {
	n := 0
	for _, c := range h.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// WindowsCreated returns the number of windows opened since the trace was last reset.
func (h *Host) WindowsCreated() int {
	n := 0
	for _, c := range h.calls {
		if c.Op == OpCreateWindow {
			n++
		}
	}
	return n
}

// Trace operations.
const (
	OpCreateWindow  = "CreateWindow"
	OpOpenDocument  = "OpenDocument"
	OpOpenFile      = "OpenFile"
	OpNewDocument   = "NewDocument"
	OpSetFrame      = "SetFrame"
	OpSetSpaceState = "SetSpaceCenterState"
	OpRunScript     = "RunScript"
	OpFocus         = "Focus"
)

// AddFile marks path as existing for FileExists, without touching disk.
func (h *Host) AddFile(path string) {
	h.files[filepath.Clean(path)] = true
}

// FileExists reports whether path was added with AddFile or exists on disk.
func (h *Host) FileExists(path string) bool {
	if h.files[filepath.Clean(path)] {
		return true
	}
	_, err := os.Stat(path)
	return err == nil
}

func (h *Host) record(c Call) {
	h.calls = append(h.calls, c)
}

func (h *Host) newWindow(kind model.Kind, doc host.DocumentID, frame model.Frame) *window {
	h.nextWin++
	w := &window{id: h.nextWin, kind: string(kind), doc: doc, frame: frame}
	h.windows[w.id] = w
	h.order = append(h.order, w.id)
	h.main = w.id
	h.record(Call{Op: OpCreateWindow, Target: string(kind), Window: w.id})
	return w
}

func (h *Host) newDocument(path string, kind model.Kind) *document {
	h.nextDoc++
	d := &document{id: h.nextDoc, path: path}
	h.docs = append([]*document{d}, h.docs...)
	w := h.newWindow(kind, d.id, model.Frame{Width: 400, Height: 300})
	d.windows = append(d.windows, w.id)
	return d
}

func (h *Host) document(id host.DocumentID) *document {
	for _, d := range h.docs {
		if d.id == id {
			return d
		}
	}
	return nil
}

func (h *Host) documentByPath(path string) *document {
	path = filepath.Clean(path)
	for _, d := range h.docs {
		if d.path != "" && filepath.Clean(d.path) == path {
			return d
		}
	}
	return nil
}

func (h *Host) bringToFront(d *document) {
	for i, other := range h.docs {
		if other == d {
			h.docs = append(h.docs[:i], h.docs[i+1:]...)
			break
		}
	}
	h.docs = append([]*document{d}, h.docs...)
	if len(d.windows) > 0 {
		h.main = d.windows[0]
	}
}

// OpenDocuments implements host.DocumentManager.
func (h *Host) OpenDocuments() ([]host.Document, error) {
	out := make([]host.Document, 0, len(h.docs))
	for _, d := range h.docs {
		ws := make([]host.WindowID, len(d.windows))
		copy(ws, d.windows)
		out = append(out, host.Document{ID: d.id, Path: d.path, Windows: ws})
	}
	return out, nil
}

// Lookup implements host.DocumentManager.
func (h *Host) Lookup(path string) (host.DocumentID, bool) {
	d := h.documentByPath(path)
	if d == nil {
		return 0, false
	}
	return d.id, true
}

// IsOpen reports whether a document backed by path is open.
func (h *Host) IsOpen(path string) bool {
	_, ok := h.Lookup(path)
	return ok
}

func (h *Host) open(op, path string) (host.DocumentID, error) {
	h.record(Call{Op: op, Target: path})
	if d := h.documentByPath(path); d != nil {
		h.bringToFront(d)
		return d.id, nil
	}
	return h.newDocument(path, model.KindFontWindow).id, nil
}

// OpenDocument implements host.DocumentManager.
func (h *Host) OpenDocument(path string) (host.DocumentID, error) {
	if h.FailOpen[path] {
		return 0, fmt.Errorf("could not open document %s", path)
	}
	return h.open(OpOpenDocument, path)
}

// OpenFile implements host.DocumentManager.
func (h *Host) OpenFile(path string) error {
	if h.FailOpenFile[path] {
		return fmt.Errorf("could not open file %s", path)
	}
	_, err := h.open(OpOpenFile, path)
	return err
}

// NewDocument implements host.DocumentManager.
func (h *Host) NewDocument() (host.DocumentID, error) {
	h.record(Call{Op: OpNewDocument})
	return h.newDocument("", model.KindFontWindow).id, nil
}

// Windows implements host.WindowSystem.
func (h *Host) Windows() ([]host.WindowID, error) {
	out := make([]host.WindowID, len(h.order))
	copy(out, h.order)
	return out, nil
}

// WindowKind implements host.WindowSystem.
func (h *Host) WindowKind(id host.WindowID) (model.Kind, bool) {
	w, ok := h.windows[id]
	if !ok {
		return "", false
	}
	return model.ParseKind(w.kind)
}

// Frame implements host.WindowSystem.
func (h *Host) Frame(id host.WindowID) (model.Frame, error) {
	w, ok := h.windows[id]
	if !ok {
		return model.Frame{}, fmt.Errorf("no window %d", id)
	}
	return w.frame, nil
}

// SetFrame implements host.WindowSystem.
func (h *Host) SetFrame(id host.WindowID, frame model.Frame) error {
	w, ok := h.windows[id]
	if !ok {
		return fmt.Errorf("no window %d", id)
	}
	w.frame = frame
	f := frame
	h.record(Call{Op: OpSetFrame, Target: w.kind, Window: id, Frame: &f})
	return nil
}

// MainWindow implements host.WindowSystem.
func (h *Host) MainWindow() (host.WindowID, error) {
	if _, ok := h.windows[h.main]; !ok {
		return 0, errors.New("no main window")
	}
	return h.main, nil
}

// GlyphName implements host.FontUI.
func (h *Host) GlyphName(id host.WindowID) (string, error) {
	w, ok := h.windows[id]
	if !ok || w.kind != string(model.KindGlyphWindow) {
		return "", fmt.Errorf("window %d is not a glyph window", id)
	}
	return w.glyph, nil
}

// SpaceCenterState implements host.FontUI.
func (h *Host) SpaceCenterState(id host.WindowID) (model.SpaceCenterState, error) {
	w, ok := h.windows[id]
	if !ok || w.kind != string(model.KindSpaceCenter) {
		return model.SpaceCenterState{}, fmt.Errorf("window %d is not a space center", id)
	}
	return w.sc, nil
}

// OpenGlyphWindow implements host.FontUI.
func (h *Host) OpenGlyphWindow(font host.DocumentID, glyph string) (host.WindowID, error) {
	d := h.document(font)
	if d == nil {
		return 0, fmt.Errorf("no font %d", font)
	}
	if h.FailGlyphs[glyph] {
		return 0, fmt.Errorf("font has no glyph %q", glyph)
	}
	w := h.newWindow(model.KindGlyphWindow, d.id, model.Frame{Width: 400, Height: 400})
	w.glyph = glyph
	d.windows = append(d.windows, w.id)
	return w.id, nil
}

// OpenSpaceCenter implements host.FontUI.
func (h *Host) OpenSpaceCenter(font host.DocumentID) (host.WindowID, error) {
	d := h.document(font)
	if d == nil {
		return 0, fmt.Errorf("no font %d", font)
	}
	for _, id := range d.windows {
		if h.windows[id].kind == string(model.KindSpaceCenter) {
			h.main = id
			h.record(Call{Op: OpFocus, Target: string(model.KindSpaceCenter), Window: id})
			return id, nil
		}
	}
	w := h.newWindow(model.KindSpaceCenter, d.id, model.Frame{Width: 800, Height: 300})
	d.windows = append(d.windows, w.id)
	return w.id, nil
}

// SetSpaceCenterState implements host.FontUI.
func (h *Host) SetSpaceCenterState(id host.WindowID, state model.SpaceCenterState) error {
	w, ok := h.windows[id]
	if !ok || w.kind != string(model.KindSpaceCenter) {
		return fmt.Errorf("window %d is not a space center", id)
	}
	w.sc = state
	h.record(Call{Op: OpSetSpaceState, Target: state.Input, Window: id})
	return nil
}

// OpenScriptingWindow implements host.FontUI. Like the editor it models,
// each call opens a new untitled scripting document.
func (h *Host) OpenScriptingWindow() (host.WindowID, error) {
	d := h.newDocument("", model.KindScriptingWindow)
	return d.windows[0], nil
}

// OpenFeatureWindow implements host.FontUI.
func (h *Host) OpenFeatureWindow() (host.WindowID, error) {
	d := h.newDocument("", model.KindFeatureWindow)
	return d.windows[0], nil
}

// ToolWindow implements host.ToolWindows.
func (h *Host) ToolWindow(kind model.Kind) (host.WindowID, error) {
	if !kind.IsToolWindow() {
		return 0, fmt.Errorf("%s is not a tool window", kind)
	}
	if id, ok := h.tools[kind]; ok {
		h.record(Call{Op: OpFocus, Target: string(kind), Window: id})
		return id, nil
	}
	w := h.newWindow(kind, 0, model.Frame{Width: 300, Height: 500})
	h.tools[kind] = w.id
	return w.id, nil
}

// RunScript implements host.ScriptRunner.
func (h *Host) RunScript(_ context.Context, text string) error {
	h.Scripts = append(h.Scripts, text)
	h.record(Call{Op: OpRunScript})
	return h.ScriptErr
}

// RegisterFileHandler implements host.FileHandlerRegistrar.
func (h *Host) RegisterFileHandler(ext string, handler host.FileHandler) error {
	if ext == "" || handler == nil {
		return errors.New("file handler needs an extension and a handler")
	}
	h.fileHandlers[ext] = handler
	return nil
}

// OpenWithHandlers offers path to the registered file handlers, as the
// application does when asked to open a file. It reports whether one claimed it.
func (h *Host) OpenWithHandlers(ctx context.Context, path string) bool {
	exts := make([]string, 0, len(h.fileHandlers))
	for ext := range h.fileHandlers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		if h.fileHandlers[ext](ctx, path) {
			return true
		}
	}
	return false
}

// RegisterMenuCommand implements host.MenuRegistrar.
func (h *Host) RegisterMenuCommand(item host.MenuItem, action func(ctx context.Context)) (bool, error) {
	if item.Menu == "" || item.Title == "" || action == nil {
		return false, errors.New("menu command needs a menu, a title and an action")
	}
	entries := h.menus[item.Menu]
	at := len(entries)
	for i, title := range entries {
		if title == item.Title {
			return false, nil
		}
		if title == item.After {
			at = i + 1
		}
	}
	entries = append(entries, "")
	copy(entries[at+1:], entries[at:])
	entries[at] = item.Title
	h.menus[item.Menu] = entries
	h.menuActions[item.Menu+"/"+item.Title] = action
	return true, nil
}

// SetMenu replaces the entries of a menu.
func (h *Host) SetMenu(menu string, titles ...string) {
	h.menus[menu] = append([]string(nil), titles...)
}

// Menu returns the entries of a menu.
func (h *Host) Menu(menu string) []string {
	return append([]string(nil), h.menus[menu]...)
}

// InvokeMenu runs a registered menu command. It reports false if none matches.
func (h *Host) InvokeMenu(ctx context.Context, menu, title string) bool {
	action, ok := h.menuActions[menu+"/"+title]
	if !ok {
		return false
	}
	action(ctx)
	return true
}

// AskSaveLocation implements host.SavePrompter.
func (h *Host) AskSaveLocation(_ context.Context, _ string) (host.SaveChoice, bool, error) {
	if h.SaveChoice == nil {
		return host.SaveChoice{}, false, nil
	}
	return *h.SaveChoice, true, nil
}

// AskScript implements host.ScriptPrompter.
func (h *Host) AskScript(_ context.Context) (string, error) {
	return h.ScriptText, nil
}

// SetFileIcon implements host.IconSetter.
func (h *Host) SetFileIcon(path string) error {
	h.Icons = append(h.Icons, path)
	return nil
}
