package memhost

import (
	"fmt"
	"os"

	"github.com/mj1618/fontproject/internal/host"
	"github.com/mj1618/fontproject/internal/model"
	"gopkg.in/yaml.v3"
)

// State describes a host session: its open documents, tool windows and the
// files it may open. It is the YAML shape of a host state file.
type State struct {
	Documents   []DocumentState `yaml:"documents"             json:"documents"`
	ToolWindows []WindowState   `yaml:"toolWindows,omitempty" json:"toolWindows,omitempty"`
	Files       []string        `yaml:"files,omitempty"       json:"files,omitempty"`
}

// DocumentState is one open document. An empty path is an untitled document.
type DocumentState struct {
	Path    string        `yaml:"path,omitempty" json:"path,omitempty"`
	Windows []WindowState `yaml:"windows"        json:"windows"`
}

// WindowState is one window. Kind may be empty or unknown for windows that
// expose no kind tag.
type WindowState struct {
	Kind        string                  `yaml:"kind,omitempty"        json:"kind,omitempty"`
	Frame       [4]float64              `yaml:"frame,flow"            json:"frame"`
	Glyph       string                  `yaml:"glyph,omitempty"       json:"glyph,omitempty"`
	SpaceCenter *model.SpaceCenterState `yaml:"spaceCenter,omitempty" json:"spaceCenter,omitempty"`
}

// LoadState reads a YAML host state file.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: yaml decode: %w", path, err)
	}
	return &s, nil
}

// FromState builds a host holding the documents and windows in s. The first
// document is frontmost. The trace starts empty.
func FromState(s *State) *Host {
	h := New()
	if s == nil {
		return h
	}
	for _, f := range s.Files {
		h.AddFile(f)
	}
	// Documents are pushed to the front as they are created, so build them
	// back to front.
	for i := len(s.Documents) - 1; i >= 0; i-- {
		ds := s.Documents[i]
		h.nextDoc++
		d := &document{id: h.nextDoc, path: ds.Path}
		for _, ws := range ds.Windows {
			w := h.addWindow(ws, d.id)
			d.windows = append(d.windows, w.id)
		}
		h.docs = append([]*document{d}, h.docs...)
	}
	for _, ws := range s.ToolWindows {
		w := h.addWindow(ws, 0)
		if kind, ok := model.ParseKind(ws.Kind); ok && kind.IsToolWindow() {
			h.tools[kind] = w.id
		}
	}
	if len(h.docs) > 0 && len(h.docs[0].windows) > 0 {
		h.main = h.docs[0].windows[0]
	}
	h.ResetCalls()
	return h
}

func (h *Host) addWindow(ws WindowState, doc host.DocumentID) *window {
	h.nextWin++
	w := &window{
		id:    h.nextWin,
		kind:  ws.Kind,
		doc:   doc,
		frame: model.Frame{X: ws.Frame[0], Y: ws.Frame[1], Width: ws.Frame[2], Height: ws.Frame[3]},
		glyph: ws.Glyph,
	}
	if ws.SpaceCenter != nil {
		w.sc = *ws.SpaceCenter
	}
	h.windows[w.id] = w
	h.order = append(h.order, w.id)
	return w
}

// Snapshot returns the current host state. Windows not owned by a document
// are listed as tool windows.
func (h *Host) Snapshot() *State {
	s := &State{Documents: []DocumentState{}}
	for _, d := range h.docs {
		ds := DocumentState{Path: d.path, Windows: []WindowState{}}
		for _, id := range d.windows {
			ds.Windows = append(ds.Windows, h.windows[id].state())
		}
		s.Documents = append(s.Documents, ds)
	}
	for _, id := range h.order {
		if w := h.windows[id]; w.doc == 0 {
			s.ToolWindows = append(s.ToolWindows, w.state())
		}
	}
	return s
}

func (w *window) state() WindowState {
	ws := WindowState{
		Kind:  w.kind,
		Frame: [4]float64{w.frame.X, w.frame.Y, w.frame.Width, w.frame.Height},
		Glyph: w.glyph,
	}
	if w.kind == string(model.KindSpaceCenter) {
		sc := w.sc
		ws.SpaceCenter = &sc
	}
	return ws
}
