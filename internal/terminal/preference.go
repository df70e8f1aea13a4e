package terminal

import (
	"os"
)

// PreferenceOptions carries the color choice made on the command line.
type PreferenceOptions struct {
	ForceColor   bool // --color=always
	DisableColor bool // --color=never
}

// UserPreference combines command line options with the CLICOLOR_FORCE and
// NO_COLOR environment variables.
type UserPreference struct {
	options PreferenceOptions
}

// NewUserPreference creates a new UserPreference instance
func NewUserPreference(options PreferenceOptions) *UserPreference {
	return &UserPreference{
		options: options,
	}
}

// SupportsColor returns the explicit preference. Without one it returns
// false; check HasExplicitPreference first.
func (p *UserPreference) SupportsColor() bool {
	// Priority 1: command line
	if p.options.ForceColor {
		return true
	}
	if p.options.DisableColor {
		return false
	}

	// Priority 2: CLICOLOR_FORCE
	if isTruthy(os.Getenv("CLICOLOR_FORCE")) {
		return true
	}

	// Priority 3: NO_COLOR, any value including empty
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	return false
}

// HasExplicitPreference returns true if user has explicitly set a color preference
func (p *UserPreference) HasExplicitPreference() bool {
	if p.options.ForceColor || p.options.DisableColor {
		return true
	}

	// CLICOLOR_FORCE=0 is not a preference
	if isTruthy(os.Getenv("CLICOLOR_FORCE")) {
		return true
	}

	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}

	// CLICOLOR only applies to terminals, see DefaultCapabilities
	return false
}
