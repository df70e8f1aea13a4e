package terminal

import (
	"os"
	"strings"
)

// Options contains all terminal-related configuration options
type Options struct {
	PreferenceOptions PreferenceOptions
	DetectorOptions   DetectorOptions
}

// Capabilities answers the terminal questions the command needs: whether to
// print help instead of reading stdin, whether colored help and log badges
// are appropriate, and what --color=auto resolves to.
type Capabilities interface {
	IsInteractive() bool
	IsTerminal(s Stream) bool
	SupportsColor() bool
	StreamSupportsColor(s Stream) bool
	HasExplicitUserPreference() bool
}

// DefaultCapabilities implements the Capabilities interface by combining
// all the terminal detection components
type DefaultCapabilities struct {
	interactiveDetector InteractiveDetector
	colorDetector       ColorDetector
	userPreference      *UserPreference
}

// NewCapabilities creates a new Capabilities instance with the given options
func NewCapabilities(options Options) Capabilities {
	return &DefaultCapabilities{
		interactiveDetector: NewInteractiveDetector(options.DetectorOptions),
		colorDetector:       NewColorDetector(),
		userPreference:      NewUserPreference(options.PreferenceOptions),
	}
}

// IsInteractive returns true if the current environment should be treated as interactive
func (c *DefaultCapabilities) IsInteractive() bool {
	return c.interactiveDetector.IsInteractive()
}

// IsTerminal reports whether stream s is connected to a terminal.
func (c *DefaultCapabilities) IsTerminal(s Stream) bool {
	return c.interactiveDetector.IsTerminal(s)
}

// SupportsColor reports whether diagnostics on stderr may be colored.
func (c *DefaultCapabilities) SupportsColor() bool {
	if c.userPreference.HasExplicitPreference() {
		return c.userPreference.SupportsColor()
	}
	if !c.IsInteractive() {
		return false
	}
	return c.terminalWantsColor()
}

// StreamSupportsColor reports whether output written to s may be colored.
// Priority:
// 1. Command line arguments
// 2. CLICOLOR_FORCE=1
// 3. NO_COLOR
// 4. CI environments and non-terminals get no color
// 5. CLICOLOR, then TERM/COLORTERM
func (c *DefaultCapabilities) StreamSupportsColor(s Stream) bool {
	if c.userPreference.HasExplicitPreference() {
		return c.userPreference.SupportsColor()
	}
	if c.interactiveDetector.IsCIEnvironment() || !c.IsTerminal(s) {
		return false
	}
	return c.terminalWantsColor()
}

func (c *DefaultCapabilities) terminalWantsColor() bool {
	if !c.colorDetector.SupportsColor() {
		return false
	}
	if cliColor := os.Getenv("CLICOLOR"); cliColor != "" {
		return isTruthy(cliColor)
	}
	return true
}

// isTruthy checks if a string value should be considered "true"
// Supports: "1", "true", "yes" (case insensitive)
func isTruthy(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	switch lower {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// HasExplicitUserPreference returns true if the user has explicitly set
// a color preference through command line options or environment variables
func (c *DefaultCapabilities) HasExplicitUserPreference() bool {
	return c.userPreference.HasExplicitPreference()
}
