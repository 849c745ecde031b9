package cmd

import (
	"path/filepath"
	"strings"

	"github.com/mj1618/fontproject/internal/host/memhost"
	"github.com/mj1618/fontproject/internal/model"
	"github.com/mj1618/fontproject/internal/projectfile"
	"go.uber.org/zap"
)

// loadedProject is a project file read from disk.
type loadedProject struct {
	path    string
	format  projectfile.Format
	project *model.Project
	dropped []model.Diagnostic
}

// readProject reads and decodes path, logging every dropped descriptor.
func readProject(path string) (*loadedProject, error) {
	project, format, dropped, err := projectfile.Load(path)
	if err != nil {
		return nil, err
	}
	for _, d := range dropped {
		logger.Warn("descriptor dropped", zap.String("file", path), zap.String("path", d.Path), zap.String("reason", d.Reason))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &loadedProject{path: abs, format: format, project: project, dropped: dropped}, nil
}

// loadHost builds an in-memory host from a state file, or an empty one.
func loadHost(statePath string) (*memhost.Host, error) {
	if statePath == "" {
		return memhost.New(), nil
	}
	state, err := memhost.LoadState(statePath)
	if err != nil {
		return nil, err
	}
	return memhost.FromState(state), nil
}

// outputFormat resolves the encoding for a file written by a command: an
// explicit --to value, then the file extension, then the configured default.
func outputFormat(to, path string) (projectfile.Format, error) {
	if to != "" {
		return projectfile.ParseFormat(to)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".plist":
		return projectfile.FormatForPath(path), nil
	}
	return cfg.ProjectFormat(), nil
}
