package tint

import (
	"strconv"
	"strings"

	"github.com/isseis/go-pipetint/internal/color"
)

const (
	escape = '\x1b'

	extendedForeground = 38
	extendedBackground = 48
	extended256        = 5
	extendedTrueColor  = 2
)

// Parse builds a Text from s, turning SGR escape sequences (ESC [ params m)
// back into ranges. Other escape sequences stay in the text unchanged.
// An empty parameter list (ESC [ m) is a reset, like ESC [ 0 m.
// Recovered ranges belong to stage 0 and the returned Text is at stage 1, so
// anything added afterwards outranks them.
func Parse(s string) Text {
	if !strings.Contains(s, "\x1b[") {
		return New(s)
	}

	in := ingester{}
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] != escape {
			continue
		}
		params, end, ok := scanSGR(s, i)
		if !ok {
			continue
		}
		in.text(s[last:i])
		in.apply(params)
		last = end
		i = end - 1
	}
	in.text(s[last:])
	in.closeAll()

	plain := in.plain.String()
	t := Text{
		plain:     plain,
		runes:     in.runes,
		offsets:   append(in.offsets, len(plain)),
		ranges:    in.ranges,
		nextOrder: len(in.ranges),
	}
	if len(in.ranges) > 0 {
		t.stage = 1
	}
	return t
}

// Strip returns s with every SGR sequence removed.
func Strip(s string) string {
	return Parse(s).Plain()
}

// scanSGR reports whether an SGR sequence starts at s[i] and returns its
// parameter string and the offset just past the final 'm'.
func scanSGR(s string, i int) (string, int, bool) {
	if i+1 >= len(s) || s[i+1] != '[' {
		return "", 0, false
	}
	j := i + 2
	for j < len(s) && (s[j] == ';' || (s[j] >= '0' && s[j] <= '9')) {
		j++
	}
	if j >= len(s) || s[j] != 'm' {
		return "", 0, false
	}
	return s[i+2 : j], j + 1, true
}

type openRange struct {
	color Color
	start int
	open  bool
}

type ingester struct {
	plain   strings.Builder
	runes   []rune
	offsets []int
	pos     int
	open    [color.NumChannels]openRange
	ranges  []Range
}

func (in *ingester) text(segment string) {
	in.runes, in.offsets = appendRunes(in.runes, in.offsets, segment, in.plain.Len())
	in.plain.WriteString(segment)
	in.pos = len(in.runes)
}

func (in *ingester) close(ch color.Channel) {
	o := in.open[ch]
	in.open[ch] = openRange{}
	if !o.open || o.start >= in.pos {
		return
	}
	in.ranges = append(in.ranges, Range{
		Start:    o.start,
		End:      in.pos,
		Color:    o.color,
		Priority: Priority{Stage: 0, Depth: 1, Order: len(in.ranges)},
	})
}

func (in *ingester) closeAll() {
	for ch := range in.open {
		in.close(color.Channel(ch))
	}
}

func (in *ingester) start(c Color) {
	in.close(c.channel)
	in.open[c.channel] = openRange{color: c, start: in.pos, open: true}
}

// apply processes the parameters of one sequence in order. An empty
// parameter list is a reset; empty fields are ignored.
func (in *ingester) apply(params string) {
	if params == "" {
		in.closeAll()
		return
	}

	var fields []string
	for _, f := range strings.Split(params, ";") {
		if f != "" {
			fields = append(fields, f)
		}
	}

	for i := 0; i < len(fields); {
		code, err := strconv.Atoi(fields[i])
		if err != nil {
			i++
			continue
		}

		switch {
		case code == extendedForeground || code == extendedBackground:
			n := extendedLength(fields[i:])
			if n == 0 {
				// an unknown code on its own
				i++
				continue
			}
			ch := color.Foreground
			if code == extendedBackground {
				ch = color.Background
			}
			in.start(RawColor(strings.Join(fields[i:i+n], ";"), ch))
			i += n
			continue
		case code == int(color.ResetCode):
			in.closeAll()
		default:
			if name, ok := color.NameOf(color.Code(code)); ok {
				if c, err := NamedColor(name); err == nil {
					in.start(c)
				}
			}
		}
		i++
	}
}

// extendedLength returns how many fields the 256-color or truecolor sequence
// at the head of fields spans, or 0 when it is incomplete.
func extendedLength(fields []string) int {
	if len(fields) < 2 {
		return 0
	}
	kind, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	switch {
	case kind == extended256 && len(fields) >= 3:
		return 3
	case kind == extendedTrueColor && len(fields) >= 5:
		return 5
	default:
		return 0
	}
}
