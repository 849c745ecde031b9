package session

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mj1618/fontproject/internal/host"
	"github.com/mj1618/fontproject/internal/model"
)

// RestoredWindow is a window the restore opened or moved.
type RestoredWindow struct {
	Document string        `yaml:"document,omitempty" json:"document,omitempty"`
	Kind     model.Kind    `yaml:"kind"               json:"kind"`
	Window   host.WindowID `yaml:"window"             json:"window"`
	Frame    model.Frame   `yaml:"frame"              json:"frame"`
}

// Report is the outcome of one restore pass.
type Report struct {
	RunID    string           `yaml:"runId"              json:"runId"`
	Root     string           `yaml:"root,omitempty"     json:"root,omitempty"`
	Restored []RestoredWindow `yaml:"restored"           json:"restored"`
	// Skipped holds documents left alone on purpose, e.g. already open.
	Skipped []*ItemError `yaml:"skipped,omitempty"  json:"skipped,omitempty"`
	// Failures holds everything that could not be restored.
	Failures []*ItemError `yaml:"failures,omitempty" json:"failures,omitempty"`
	// Dropped lists descriptors discarded while reading the project file.
	Dropped   []model.Diagnostic `yaml:"dropped,omitempty"  json:"dropped,omitempty"`
	ScriptRan bool               `yaml:"scriptRan"          json:"scriptRan"`
}

func newReport(root string) *Report {
	return &Report{
		RunID:    uuid.NewString(),
		Root:     root,
		Restored: []RestoredWindow{},
	}
}

// OK reports whether nothing failed.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Err joins all failures, or returns nil.
func (r *Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// RestoredKinds returns the kinds of the restored windows in order.
func (r *Report) RestoredKinds() []model.Kind {
	out := make([]model.Kind, len(r.Restored))
	for i, w := range r.Restored {
		out[i] = w.Kind
	}
	return out
}
