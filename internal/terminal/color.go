package terminal

import (
	"os"
	"strings"
)

// colorTerminals lists TERM values (or prefixes) that are known to support
// basic terminal colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"vt220",
	"ansi",
	"linux",
	"cygwin",
	"putty",
	"alacritty",
	"kitty",
	"wezterm",
	"foot",
}

// ColorDetector interface defines methods for detecting color support
type ColorDetector interface {
	SupportsColor() bool
}

// DefaultColorDetector decides from TERM and COLORTERM.
type DefaultColorDetector struct{}

// NewColorDetector creates a new color detector
func NewColorDetector() ColorDetector {
	return &DefaultColorDetector{}
}

// SupportsColor returns true if the terminal supports basic color output.
// A non-empty COLORTERM is taken at its word; otherwise TERM must name a
// known color terminal.
func (d *DefaultColorDetector) SupportsColor() bool {
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "dumb" {
		return false
	}
	if os.Getenv("COLORTERM") != "" {
		return true
	}
	if term == "" {
		return false
	}

	for _, colorTerm := range colorTerminals {
		if term == colorTerm || strings.HasPrefix(term, colorTerm+"-") {
			return true
		}
	}

	// unknown terminals get no color
	return false
}
