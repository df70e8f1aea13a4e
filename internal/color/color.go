// Package color is the color registry: it maps color and style names to SGR
// codes, normalizes aliases, assigns every name to a channel, and formats the
// start and reset escape sequences. The tables are read-only after package
// initialization and safe for concurrent use.
//
//nolint:revive // package name conflicts with standard library
package color

import (
	"fmt"
	"math/rand"
)

// Color represents a color function that wraps text with ANSI escape
// sequences.
type Color func(text string) string

// NewColor creates a color function for a registry name. Unknown names
// produce a function that returns the text unchanged.
func NewColor(name string) Color {
	start, err := StartSequence(name)
	if err != nil {
		return NoColor
	}
	reset := EndSequence()
	return func(text string) string {
		return start + text + reset
	}
}

// Sprintf formats according to a format specifier and colors the result.
func (c Color) Sprintf(format string, args ...any) string {
	return c(fmt.Sprintf(format, args...))
}

// NoColor returns text unchanged.
func NoColor(text string) string {
	return text
}

// ConditionalColor returns c when enabled and NoColor otherwise.
func ConditionalColor(c Color, enabled bool) Color {
	if enabled {
		return c
	}
	return NoColor
}

// Predefined color functions
var (
	// Gray colors text in gray (bright black)
	Gray = NewColor("gray")

	// Green colors text in green
	Green = NewColor("green")

	// Yellow colors text in yellow
	Yellow = NewColor("yellow")

	// Red colors text in red
	Red = NewColor("red")

	// Blue colors text in blue
	Blue = NewColor("blue")

	// Purple colors text in purple
	Purple = NewColor("purple")

	// Cyan colors text in cyan
	Cyan = NewColor("cyan")

	// White colors text in white
	White = NewColor("white")
)

// randomPalette holds the colors eligible for random selection. Black and the
// background colors are left out so the result stays readable.
var randomPalette = []string{
	"lightred",
	"green",
	"blue",
	"magenta",
	"cyan",
	"darkgray",
	"lightgreen",
	"lightyellow",
	"lightblue",
	"lightmagenta",
}

// Random returns a foreground color name chosen with r. A nil r uses the
// shared source from math/rand.
func Random(r *rand.Rand) string {
	if r == nil {
		return randomPalette[rand.Intn(len(randomPalette))] //nolint:gosec // not security sensitive
	}
	return randomPalette[r.Intn(len(randomPalette))]
}

// RandomPalette returns a copy of the names Random chooses from.
func RandomPalette() []string {
	out := make([]string, len(randomPalette))
	copy(out, randomPalette)
	return out
}
