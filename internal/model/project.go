package model

import "sort"

// UntitledKey is the documents key holding windows of documents without a backing file.
const UntitledKey = "untitled"

// Project is a captured editing session.
type Project struct {
	// Documents maps a file path (absolute or relative to the project file)
	// or UntitledKey to that document's windows.
	Documents   map[string][]WindowDescriptor `json:"documents"         yaml:"documents"`
	ToolWindows []WindowDescriptor            `json:"toolWindows"       yaml:"toolWindows"`
	// Execute is an optional startup script. Empty means none.
	Execute string `json:"execute,omitempty" yaml:"execute,omitempty"`
}

// NewProject returns an empty project with its maps and slices allocated.
func NewProject() *Project {
	return &Project{
		Documents:   make(map[string][]WindowDescriptor),
		ToolWindows: []WindowDescriptor{},
	}
}

// AddWindow appends w to the window list of the document at key.
func (p *Project) AddWindow(key string, w WindowDescriptor) {
	p.Documents[key] = append(p.Documents[key], w)
}

// EnsureDocument makes sure key is present, even with no windows.
func (p *Project) EnsureDocument(key string) {
	if _, ok := p.Documents[key]; !ok {
		p.Documents[key] = []WindowDescriptor{}
	}
}

// DocumentKeys returns the document keys in restore order: file paths sorted
// lexically, then UntitledKey if present.
func (p *Project) DocumentKeys() []string {
	keys := make([]string, 0, len(p.Documents))
	hasUntitled := false
	for k := range p.Documents {
		if k == UntitledKey {
			hasUntitled = true
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if hasUntitled {
		keys = append(keys, UntitledKey)
	}
	return keys
}

// WindowCount returns the number of document and tool windows.
func (p *Project) WindowCount() int {
	n := len(p.ToolWindows)
	for _, ws := range p.Documents {
		n += len(ws)
	}
	return n
}

// KindCounts tallies windows per kind across documents and tool windows.
func (p *Project) KindCounts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, ws := range p.Documents {
		for _, w := range ws {
			counts[w.Kind]++
		}
	}
	for _, w := range p.ToolWindows {
		counts[w.Kind]++
	}
	return counts
}
