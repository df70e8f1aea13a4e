// Package tint implements deferred colorization of text.
//
// A Text holds plain text plus a list of color ranges. Operations such as
// Colorize and Highlight never touch the text; they return a new Text with
// more ranges. Overlaps are resolved only when the Text is rendered with
// String. Within each channel (foreground, background, attribute) the covering
// range with the highest Priority wins, and channels never clobber each other.
//
// Text values are immutable and safe to share between goroutines.
package tint

import (
	"math/rand"

	"github.com/isseis/go-pipetint/internal/color"
)

// Text is colorizable text. The zero value is an empty Text.
type Text struct {
	plain     string
	runes     []rune // shared between derived values, never written
	offsets   []int  // byte offset of each rune in plain, then len(plain)
	ranges    []Range
	stage     int
	nextOrder int
}

// New returns an uncolored Text for s. Escape sequences in s are kept as
// literal text; use Parse to recover them as ranges.
func New(s string) Text {
	runes, offsets := appendRunes(nil, nil, s, 0)
	return Text{plain: s, runes: runes, offsets: append(offsets, len(s))}
}

// appendRunes decodes s onto runes and records where each rune starts,
// counting from base. An invalid byte decodes to one rune of its own.
func appendRunes(runes []rune, offsets []int, s string, base int) ([]rune, []int) {
	for i, r := range s {
		runes = append(runes, r)
		offsets = append(offsets, base+i)
	}
	return runes, offsets
}

// Plain returns the text without any color.
func (t Text) Plain() string {
	return t.plain
}

// Len returns the length of the text in runes.
func (t Text) Len() int {
	return len(t.runes)
}

// Ranges returns a copy of the ranges in application order.
func (t Text) Ranges() []Range {
	out := make([]Range, len(t.ranges))
	copy(out, t.ranges)
	return out
}

// Stage returns the pipeline stage new ranges are added at.
func (t Text) Stage() int {
	return t.stage
}

// NextOrder returns the application order the next range will receive.
func (t Text) NextOrder() int {
	return t.nextOrder
}

// extend returns a copy of t with added appended to a fresh range slice.
func (t Text) extend(added []Range, nextOrder int) Text {
	ranges := make([]Range, 0, len(t.ranges)+len(added))
	ranges = append(ranges, t.ranges...)
	ranges = append(ranges, added...)
	t.ranges = ranges
	t.nextOrder = nextOrder
	return t
}

// Colorize colors the whole text with name.
func (t Text) Colorize(name string) (Text, error) {
	c, err := NamedColor(name)
	if err != nil {
		return t, err
	}
	return t.colorize(c), nil
}

func (t Text) colorize(c Color) Text {
	r := Range{
		Start:    0,
		End:      len(t.runes),
		Color:    c,
		Priority: Priority{Stage: t.stage, Depth: 1, Order: t.nextOrder},
	}
	return t.extend([]Range{r}, t.nextOrder+1)
}

// ColorizeRandom colors the whole text with a foreground color picked by r.
// A nil r uses the shared source from math/rand.
func (t Text) ColorizeRandom(r *rand.Rand) Text {
	c, err := NamedColor(color.Random(r))
	if err != nil {
		return t
	}
	return t.colorize(c)
}

// RemoveColor returns the same text with no ranges. Stage and application
// order carry over.
func (t Text) RemoveColor() Text {
	t.ranges = nil
	return t
}

// ReplaceAll discards every range, including those recovered from input, and
// returns to stage 0 as if the text had been created with New.
func (t Text) ReplaceAll() Text {
	t.ranges = nil
	t.stage = 0
	return t
}
