package terminal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidColorMode is returned for a --color value other than always, auto or never.
var ErrInvalidColorMode = errors.New("invalid color mode")

// ColorMode selects whether rendered output carries escape sequences.
type ColorMode string

const (
	// ColorAlways colors output even when it goes to a pipe, so that a
	// downstream pipetint can pick the colors up again.
	ColorAlways ColorMode = "always"
	// ColorAuto colors output only when stdout is a color terminal.
	ColorAuto ColorMode = "auto"
	// ColorNever writes plain text.
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a --color value. The empty string means ColorAlways.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ColorAlways:
		return ColorAlways, nil
	case ColorAuto:
		return ColorAuto, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("%w: %q (want always, auto or never)", ErrInvalidColorMode, s)
	}
}

// Enabled reports whether output on stdout should be colored in mode m.
func (m ColorMode) Enabled(caps Capabilities) bool {
	switch m {
	case ColorNever:
		return false
	case ColorAuto:
		return caps.StreamSupportsColor(Stdout)
	default:
		return true
	}
}

// PreferenceOptions returns the preference implied by m for diagnostics.
// Only never is explicit; always exists for pipelines and says nothing about
// stderr.
func (m ColorMode) PreferenceOptions() PreferenceOptions {
	return PreferenceOptions{DisableColor: m == ColorNever}
}
