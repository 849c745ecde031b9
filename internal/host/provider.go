package host

import (
	"errors"
	"fmt"
)

// Provider bundles the host capabilities. Optional capabilities may be nil.
type Provider struct {
	Documents DocumentManager
	Windows   WindowSystem
	Fonts     FontUI
	Tools     ToolWindows
	Scripts   ScriptRunner

	FileHandlers FileHandlerRegistrar
	Menus        MenuRegistrar
	SavePrompt   SavePrompter
	ScriptPrompt ScriptPrompter
	Icons        IconSetter
}

// ErrCapabilityMissing is returned when a required capability is nil.
var ErrCapabilityMissing = errors.New("host capability not available")

// RequireCapture checks the capabilities Capture depends on.
func (p *Provider) RequireCapture() error {
	if p == nil {
		return fmt.Errorf("%w: nil provider", ErrCapabilityMissing)
	}
	switch {
	case p.Documents == nil:
		return fmt.Errorf("%w: documents", ErrCapabilityMissing)
	case p.Windows == nil:
		return fmt.Errorf("%w: windows", ErrCapabilityMissing)
	case p.Fonts == nil:
		return fmt.Errorf("%w: fonts", ErrCapabilityMissing)
	}
	return nil
}

// RequireRestore checks the capabilities Restore depends on. The tool
// window and script capabilities are only needed when a project uses them.
func (p *Provider) RequireRestore() error {
	return p.RequireCapture()
}
