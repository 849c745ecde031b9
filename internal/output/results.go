package output

import (
	"github.com/mj1618/fontproject/internal/host/memhost"
	"github.com/mj1618/fontproject/internal/model"
	"github.com/mj1618/fontproject/internal/projectfile"
	"github.com/mj1618/fontproject/internal/session"
)

// DocumentSummary describes one document of a project.
type DocumentSummary struct {
	Key     string       `yaml:"key"              json:"key"`
	Windows int          `yaml:"windows"          json:"windows"`
	Kinds   []model.Kind `yaml:"kinds,flow"       json:"kinds"`
	Glyphs  []string     `yaml:"glyphs,omitempty" json:"glyphs,omitempty"`
}

// InspectResult is the output of the `inspect` command and inspect_project tool.
type InspectResult struct {
	File        string             `yaml:"file,omitempty"    json:"file,omitempty"`
	Format      projectfile.Format `yaml:"format,omitempty"  json:"format,omitempty"`
	Documents   []DocumentSummary  `yaml:"documents"         json:"documents"`
	ToolWindows []model.Kind       `yaml:"toolWindows,flow"  json:"toolWindows"`
	Windows     int                `yaml:"windows"           json:"windows"`
	Kinds       map[model.Kind]int `yaml:"kinds"             json:"kinds"`
	Script      string             `yaml:"script,omitempty"  json:"script,omitempty"`
	Dropped     []model.Diagnostic `yaml:"dropped,omitempty" json:"dropped,omitempty"`
}

// Inspect summarises p in restore order.
func Inspect(file string, format projectfile.Format, p *model.Project, dropped []model.Diagnostic) InspectResult {
	r := InspectResult{
		File:        file,
		Format:      format,
		Documents:   []DocumentSummary{},
		ToolWindows: []model.Kind{},
		Windows:     p.WindowCount(),
		Kinds:       p.KindCounts(),
		Script:      p.Execute,
		Dropped:     dropped,
	}
	for _, key := range p.DocumentKeys() {
		windows := model.SortFontWindowFirst(p.Documents[key])
		ds := DocumentSummary{Key: key, Windows: len(windows), Kinds: []model.Kind{}}
		for _, w := range windows {
			ds.Kinds = append(ds.Kinds, w.Kind)
			if w.GlyphName != "" {
				ds.Glyphs = append(ds.Glyphs, w.GlyphName)
			}
		}
		r.Documents = append(r.Documents, ds)
	}
	for _, w := range p.ToolWindows {
		r.ToolWindows = append(r.ToolWindows, w.Kind)
	}
	return r
}

// ConvertResult is the output of the `convert` command and convert_project tool.
type ConvertResult struct {
	Input   string             `yaml:"input"             json:"input"`
	Output  string             `yaml:"output,omitempty"  json:"output,omitempty"`
	From    projectfile.Format `yaml:"from"              json:"from"`
	To      projectfile.Format `yaml:"to"                json:"to"`
	Windows int                `yaml:"windows"           json:"windows"`
	Dropped []model.Diagnostic `yaml:"dropped,omitempty" json:"dropped,omitempty"`
}

// CaptureResult is the output of the `capture` command.
type CaptureResult struct {
	Output    string             `yaml:"output"    json:"output"`
	Format    projectfile.Format `yaml:"format"    json:"format"`
	Documents int                `yaml:"documents" json:"documents"`
	Windows   int                `yaml:"windows"   json:"windows"`
	Relative  bool               `yaml:"relative"  json:"relative"`
	HasScript bool               `yaml:"hasScript" json:"hasScript"`
}

// RestoreResult is the output of the `restore` command and restore_plan
// tool: what the restore did, and the host calls it made.
type RestoreResult struct {
	File   string          `yaml:"file,omitempty" json:"file,omitempty"`
	Report *session.Report `yaml:"report"         json:"report"`
	Calls  []memhost.Call  `yaml:"calls"          json:"calls"`
	// State is the host after the restore.
	State *memhost.State `yaml:"state,omitempty" json:"state,omitempty"`
}

// PreviewResult is the output of the `preview` command.
type PreviewResult struct {
	File    string `yaml:"file"    json:"file"`
	Output  string `yaml:"output"  json:"output"`
	Width   int    `yaml:"width"   json:"width"`
	Height  int    `yaml:"height"  json:"height"`
	Windows int    `yaml:"windows" json:"windows"`
}
