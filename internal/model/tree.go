package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// On-disk keys of a project file.
const (
	keyDocuments   = "documents"
	keyToolWindows = "toolWindows"
	keyExecute     = "execute"
	keyWindowName  = "windowName"
	keyFrame       = "frame"
	keyGlyphName   = "glyphName"
	keyInput       = "input"
	keyPre         = "pre"
	keyAfter       = "after"
	keyPointSize   = "pointSize"
)

// ErrMalformedProject is returned when the root of a project tree is unusable.
var ErrMalformedProject = errors.New("malformed project")

// Diagnostic describes a window entry that was dropped while decoding.
type Diagnostic struct {
	Path   string `json:"path"   yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

func (d Diagnostic) String() string {
	return d.Path + ": " + d.Reason
}

// ToTree converts p to nested maps and slices of strings and numbers, the
// shape every project file encoding stores.
func (p *Project) ToTree() map[string]interface{} {
	docs := make(map[string]interface{}, len(p.Documents))
	for key, windows := range p.Documents {
		docs[key] = windowsToTree(windows)
	}
	tree := map[string]interface{}{
		keyDocuments:   docs,
		keyToolWindows: windowsToTree(p.ToolWindows),
	}
	if p.Execute != "" {
		tree[keyExecute] = p.Execute
	}
	return tree
}

func windowsToTree(windows []WindowDescriptor) []interface{} {
	out := make([]interface{}, 0, len(windows))
	for _, w := range windows {
		out = append(out, w.toTree())
	}
	return out
}

func (w WindowDescriptor) toTree() map[string]interface{} {
	frame := make([]interface{}, 0, 4)
	for _, v := range w.Frame.Slice() {
		frame = append(frame, v)
	}
	m := map[string]interface{}{
		keyWindowName: string(w.Kind),
		keyFrame:      frame,
	}
	switch w.Kind {
	case KindGlyphWindow:
		m[keyGlyphName] = w.GlyphName
	case KindSpaceCenter:
		var sc SpaceCenterState
		if w.SpaceCenter != nil {
			sc = *w.SpaceCenter
		}
		m[keyInput] = sc.Input
		m[keyPre] = sc.Pre
		m[keyAfter] = sc.After
		m[keyPointSize] = sc.PointSize
	}
	return m
}

// FromTree builds a Project from a decoded tree. Window entries that cannot be
// restored are dropped and reported as diagnostics instead of failing the whole
// project. Only an unusable root or documents value is an error.
func FromTree(tree interface{}) (*Project, []Diagnostic, error) {
	root, ok := asMap(tree)
	if !ok {
		return nil, nil, fmt.Errorf("%w: root is %T, want a mapping", ErrMalformedProject, tree)
	}

	p := NewProject()
	var diags []Diagnostic

	if raw, present := root[keyDocuments]; present && raw != nil {
		docs, ok := asMap(raw)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s is %T, want a mapping", ErrMalformedProject, keyDocuments, raw)
		}
		keys := make([]string, 0, len(docs))
		for k := range docs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			p.EnsureDocument(key)
			path := keyDocuments + "." + key
			entries, ok := docs[key].([]interface{})
			if !ok {
				if docs[key] != nil {
					diags = append(diags, Diagnostic{Path: path, Reason: fmt.Sprintf("window list is %T", docs[key])})
				}
				continue
			}
			for i, entry := range entries {
				w, err := windowFromTree(entry)
				if err != nil {
					diags = append(diags, Diagnostic{Path: fmt.Sprintf("%s[%d]", path, i), Reason: err.Error()})
					continue
				}
				p.AddWindow(key, w)
			}
		}
	}

	if raw, present := root[keyToolWindows]; present && raw != nil {
		entries, ok := raw.([]interface{})
		if !ok {
			diags = append(diags, Diagnostic{Path: keyToolWindows, Reason: fmt.Sprintf("tool window list is %T", raw)})
		}
		for i, entry := range entries {
			path := fmt.Sprintf("%s[%d]", keyToolWindows, i)
			w, err := windowFromTree(entry)
			if err != nil {
				diags = append(diags, Diagnostic{Path: path, Reason: err.Error()})
				continue
			}
			if !w.Kind.IsToolWindow() {
				diags = append(diags, Diagnostic{Path: path, Reason: fmt.Sprintf("%s is not a tool window", w.Kind)})
				continue
			}
			p.ToolWindows = append(p.ToolWindows, w)
		}
	}

	if raw, present := root[keyExecute]; present && raw != nil {
		if s, ok := raw.(string); ok {
			p.Execute = s
		} else {
			diags = append(diags, Diagnostic{Path: keyExecute, Reason: fmt.Sprintf("script is %T, want a string", raw)})
		}
	}

	return p, diags, nil
}

func windowFromTree(entry interface{}) (WindowDescriptor, error) {
	m, ok := asMap(entry)
	if !ok {
		return WindowDescriptor{}, fmt.Errorf("entry is %T, want a mapping", entry)
	}
	name, _ := m[keyWindowName].(string)
	if name == "" {
		return WindowDescriptor{}, fmt.Errorf("missing %s", keyWindowName)
	}
	kind, ok := ParseKind(name)
	if !ok {
		return WindowDescriptor{}, fmt.Errorf("unknown window kind %q", name)
	}
	rawFrame, ok := m[keyFrame].([]interface{})
	if !ok {
		return WindowDescriptor{}, fmt.Errorf("missing %s", keyFrame)
	}
	nums := make([]float64, 0, len(rawFrame))
	for _, v := range rawFrame {
		f, ok := asFloat(v)
		if !ok {
			return WindowDescriptor{}, fmt.Errorf("%s holds non-number %v", keyFrame, v)
		}
		if !finite(f) {
			return WindowDescriptor{}, fmt.Errorf("%s holds non-finite %v", keyFrame, f)
		}
		nums = append(nums, f)
	}
	frame, err := FrameFromSlice(nums)
	if err != nil {
		return WindowDescriptor{}, err
	}

	w := NewWindow(kind, frame)
	switch kind {
	case KindGlyphWindow:
		glyph, _ := m[keyGlyphName].(string)
		if glyph == "" {
			return WindowDescriptor{}, fmt.Errorf("glyph window without %s", keyGlyphName)
		}
		w.GlyphName = glyph
	case KindSpaceCenter:
		sc := SpaceCenterState{}
		sc.Input, _ = m[keyInput].(string)
		sc.Pre, _ = m[keyPre].(string)
		sc.After, _ = m[keyAfter].(string)
		if v, present := m[keyPointSize]; present {
			size, ok := asFloat(v)
			if !ok || !finite(size) {
				return WindowDescriptor{}, fmt.Errorf("%s holds non-number %v", keyPointSize, v)
			}
			sc.PointSize = size
		}
		w.SpaceCenter = &sc
	}
	return w, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// asMap accepts the map shapes produced by the plist, YAML and JSON decoders.
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
