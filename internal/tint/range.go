package tint

import (
	"cmp"
	"fmt"

	"github.com/isseis/go-pipetint/internal/color"
)

// Priority orders overlapping ranges within a channel. Fields are compared in
// declaration order; the greater priority is rendered.
type Priority struct {
	Stage int // pipeline stage the range was added in
	Depth int // nesting depth of the group that produced it
	Order int // application order within the value's history
}

// Compare returns -1, 0 or +1 as p is lower than, equal to, or higher than o.
func (p Priority) Compare(o Priority) int {
	if c := cmp.Compare(p.Stage, o.Stage); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Depth, o.Depth); c != 0 {
		return c
	}
	return cmp.Compare(p.Order, o.Order)
}

// Less reports whether p ranks below o.
func (p Priority) Less(o Priority) bool {
	return p.Compare(o) < 0
}

// String formats the priority for logs and test failures.
func (p Priority) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.Stage, p.Depth, p.Order)
}

// Color is a resolved color: either a registry name or a raw SGR parameter
// string recovered from input. Colors are comparable.
type Color struct {
	name    string
	raw     string
	channel color.Channel
	seq     string
}

// NamedColor resolves name through the registry.
func NamedColor(name string) (Color, error) {
	seq, err := color.StartSequence(name)
	if err != nil {
		return Color{}, err
	}
	canonical := color.Normalize(name)
	return Color{
		name:    canonical,
		channel: color.ChannelOf(canonical),
		seq:     seq,
	}, nil
}

// RawColor wraps an SGR parameter string, such as "38;5;208", that is re-emitted
// verbatim on the given channel.
func RawColor(params string, ch color.Channel) Color {
	return Color{
		raw:     params,
		channel: ch,
		seq:     color.Sequence(params),
	}
}

// Name returns the canonical registry name, or "" for raw colors.
func (c Color) Name() string {
	return c.name
}

// Raw returns the stored parameter string of a raw color.
func (c Color) Raw() (string, bool) {
	return c.raw, c.name == "" && c.raw != ""
}

// Channel returns the channel the color occupies.
func (c Color) Channel() color.Channel {
	return c.channel
}

// Sequence returns the escape sequence that turns the color on.
func (c Color) Sequence() string {
	return c.seq
}

func (c Color) String() string {
	if c.name != "" {
		return c.name
	}
	return "raw:" + c.raw
}

// Range colors the runes in [Start, End) of a Text.
type Range struct {
	Start    int
	End      int
	Color    Color
	Priority Priority
}

// Empty reports whether the range covers no runes. Empty ranges never render.
func (r Range) Empty() bool {
	return r.Start >= r.End
}

// Covers reports whether offset lies inside the range.
func (r Range) Covers(offset int) bool {
	return r.Start <= offset && offset < r.End
}
