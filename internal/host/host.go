// Package host declares the capabilities the session engine needs from the
// editing application. A host backend implements them and hands them to the
// engine bundled in a Provider.
package host

import (
	"context"

	"github.com/mj1618/fontproject/internal/model"
)

// DocumentManager opens and enumerates documents.
type DocumentManager interface {
	// OpenDocuments returns every open document, front to back.
	OpenDocuments() ([]Document, error)

	// Lookup resolves path to an already-open document.
	Lookup(path string) (DocumentID, bool)

	// OpenDocument opens the document at an absolute path and makes it current.
	OpenDocument(path string) (DocumentID, error)

	// OpenFile hands path to the application's generic open-file entry point.
	OpenFile(path string) error

	// NewDocument creates an untitled font and makes it current.
	NewDocument() (DocumentID, error)
}

// WindowSystem reads and moves windows.
type WindowSystem interface {
	// Windows returns every top-level window.
	Windows() ([]WindowID, error)

	// WindowKind returns the window's kind tag. Windows that expose no tag,
	// or an unknown one, report false.
	WindowKind(id WindowID) (model.Kind, bool)

	Frame(id WindowID) (model.Frame, error)
	SetFrame(id WindowID, frame model.Frame) error

	// MainWindow returns the application's current main window.
	MainWindow() (WindowID, error)
}

// FontUI opens and inspects the windows that belong to a font.
type FontUI interface {
	GlyphName(id WindowID) (string, error)
	SpaceCenterState(id WindowID) (model.SpaceCenterState, error)

	// OpenGlyphWindow opens a new glyph editing window for glyph in font.
	OpenGlyphWindow(font DocumentID, glyph string) (WindowID, error)

	// OpenSpaceCenter opens or activates the space center of font.
	OpenSpaceCenter(font DocumentID) (WindowID, error)
	SetSpaceCenterState(id WindowID, state model.SpaceCenterState) error

	// OpenScriptingWindow and OpenFeatureWindow open or focus the
	// application's scripting and feature windows.
	OpenScriptingWindow() (WindowID, error)
	OpenFeatureWindow() (WindowID, error)
}

// ToolWindows resolves process-wide singleton windows.
type ToolWindows interface {
	// ToolWindow returns the window for kind, creating and showing it if needed.
	ToolWindow(kind model.Kind) (WindowID, error)
}

// ScriptRunner runs startup scripts.
type ScriptRunner interface {
	RunScript(ctx context.Context, text string) error
}

// FileHandler is called when the application is asked to open path. It
// returns true when it claimed the request.
type FileHandler func(ctx context.Context, path string) bool

// FileHandlerRegistrar routes open-file requests for an extension.
type FileHandlerRegistrar interface {
	RegisterFileHandler(ext string, handler FileHandler) error
}

// MenuRegistrar adds commands to the application's menus.
type MenuRegistrar interface {
	// RegisterMenuCommand inserts item.Title into item.Menu after the entry
	// titled item.After, or at the end when that entry is missing. It reports
	// false when the menu already has an entry titled item.Title.
	RegisterMenuCommand(menu MenuItem, action func(ctx context.Context)) (bool, error)
}

// SavePrompter asks the user where to save a project.
type SavePrompter interface {
	// AskSaveLocation returns the chosen path and the "use relative paths"
	// choice. ok is false when the user cancelled.
	AskSaveLocation(ctx context.Context, fileType string) (choice SaveChoice, ok bool, err error)
}

// ScriptPrompter asks the user for the startup script.
type ScriptPrompter interface {
	AskScript(ctx context.Context) (string, error)
}

// IconSetter sets a custom Finder icon on a saved file.
type IconSetter interface {
	SetFileIcon(path string) error
}
