package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mj1618/fontproject/internal/model"
)

var (
	// ErrMissingFile means a document path did not resolve, even against the project directory.
	ErrMissingFile = errors.New("document file not found")
	// ErrAlreadyOpen means the document was open before the restore; its windows are left alone.
	ErrAlreadyOpen = errors.New("document already open")
	// ErrUnrecognizedWindowKind means a descriptor's kind cannot be restored where it appears.
	ErrUnrecognizedWindowKind = errors.New("unrecognized window kind")
	// ErrDocumentOpen means neither the document open nor the generic file open succeeded.
	ErrDocumentOpen = errors.New("document could not be opened")
	// ErrScriptExecution means the startup script failed.
	ErrScriptExecution = errors.New("startup script failed")
	// ErrNoFontContext means a glyph window or space center had no font to attach to.
	ErrNoFontContext = errors.New("no current font")
	// ErrWindowRestore means the host rejected a window operation.
	ErrWindowRestore = errors.New("window could not be restored")
)

// ItemError is a problem with one document, window, or the script step.
// Index is the window's position in restore order, or -1 for the document
// or script as a whole.
type ItemError struct {
	Document string
	Index    int
	Kind     model.Kind
	Err      error
}

func (e *ItemError) Error() string {
	switch {
	case e.Document == "" && e.Kind == "":
		return e.Err.Error()
	case e.Index < 0:
		return fmt.Sprintf("%s: %v", e.Document, e.Err)
	default:
		return fmt.Sprintf("%s[%d] %s: %v", e.Document, e.Index, e.Kind, e.Err)
	}
}

func (e *ItemError) Unwrap() error { return e.Err }

type itemErrorView struct {
	Document string `yaml:"document,omitempty" json:"document,omitempty"`
	Index    *int   `yaml:"index,omitempty"    json:"index,omitempty"`
	Kind     string `yaml:"kind,omitempty"     json:"kind,omitempty"`
	Error    string `yaml:"error"              json:"error"`
}

func (e *ItemError) view() itemErrorView {
	v := itemErrorView{Document: e.Document, Kind: string(e.Kind), Error: e.Err.Error()}
	if e.Index >= 0 {
		i := e.Index
		v.Index = &i
	}
	return v
}

// MarshalYAML renders the error for CLI and MCP output.
func (e *ItemError) MarshalYAML() (interface{}, error) {
	return e.view(), nil
}

// MarshalJSON renders the error for CLI and MCP output.
func (e *ItemError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.view())
}

func documentError(key string, err error) *ItemError {
	return &ItemError{Document: key, Index: -1, Err: err}
}

func windowError(key string, index int, kind model.Kind, err error) *ItemError {
	return &ItemError{Document: key, Index: index, Kind: kind, Err: err}
}
