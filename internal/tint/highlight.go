package tint

import (
	"fmt"
	"sort"

	"github.com/isseis/go-pipetint/internal/pattern"
)

const (
	// wholeMatchDepth is used for group 0 when a pattern has no groups.
	wholeMatchDepth = 1
	// positionDepth ranks HighlightAt ranges above whole-string coloring.
	positionDepth = 2

	defaultPositionColor = "yellow"
	positionMarker       = "swapcolor"
)

// Highlight colors the matches of expr, compiled case-insensitively. See
// HighlightPattern for how colors are assigned to groups.
func (t Text) Highlight(expr string, colors ...string) (Text, error) {
	p, err := pattern.Compile(expr)
	if err != nil {
		return t, err
	}
	return t.HighlightPattern(p, colors...)
}

// HighlightPattern colors every match of p in the plain text. With no
// capturing groups the whole match gets colors[0]. Otherwise group g gets
// colors[(g-1) % len(colors)]; groups that did not take part in a match are
// left alone, and an empty color name skips its group. Ranges are ranked by
// the group's nesting depth, so inner groups win over the groups that
// contain them.
func (t Text) HighlightPattern(p *pattern.Pattern, colors ...string) (Text, error) {
	if len(colors) == 0 {
		return t, nil
	}

	resolved := make([]Color, len(colors))
	skip := make([]bool, len(colors))
	for i, name := range colors {
		if name == "" {
			skip[i] = true
			continue
		}
		c, err := NamedColor(name)
		if err != nil {
			return t, fmt.Errorf("highlight %q: %w", p.String(), err)
		}
		resolved[i] = c
	}

	matches, err := p.FindAll(t.runes)
	if err != nil {
		return t, err
	}
	if len(matches) == 0 {
		return t, nil
	}

	var added []Range
	order := t.nextOrder
	groups := p.NumGroups()
	for _, m := range matches {
		if groups == 0 {
			span, _ := m.Group(0)
			if skip[0] || span.Start == span.End {
				continue
			}
			added = append(added, Range{
				Start:    span.Start,
				End:      span.End,
				Color:    resolved[0],
				Priority: Priority{Stage: t.stage, Depth: wholeMatchDepth, Order: order},
			})
			order++
			continue
		}
		for g := 1; g <= groups; g++ {
			span, ok := m.Group(g)
			idx := (g - 1) % len(colors)
			if !ok || skip[idx] || span.Start == span.End {
				continue
			}
			added = append(added, Range{
				Start:    span.Start,
				End:      span.End,
				Color:    resolved[idx],
				Priority: Priority{Stage: t.stage, Depth: p.Depth(g), Order: order},
			})
			order++
		}
	}
	return t.extend(added, order), nil
}

// HighlightAt marks single runes at the given offsets with name and inverts
// them so they stand out on any background. Offsets outside the text and
// repeated offsets are ignored. An empty name selects yellow.
func (t Text) HighlightAt(positions []int, name string) (Text, error) {
	if name == "" {
		name = defaultPositionColor
	}
	c, err := NamedColor(name)
	if err != nil {
		return t, err
	}
	marker, err := NamedColor(positionMarker)
	if err != nil {
		return t, err
	}
	if len(positions) == 0 {
		return t, nil
	}

	sorted := make([]int, 0, len(positions))
	for _, pos := range positions {
		if pos >= 0 && pos < len(t.runes) {
			sorted = append(sorted, pos)
		}
	}
	sort.Ints(sorted)

	added := make([]Range, 0, 2*len(sorted))
	order := t.nextOrder
	for i, pos := range sorted {
		if i > 0 && sorted[i-1] == pos {
			continue
		}
		prio := Priority{Stage: t.stage, Depth: positionDepth, Order: order}
		added = append(added,
			Range{Start: pos, End: pos + 1, Color: c, Priority: prio},
			Range{Start: pos, End: pos + 1, Color: marker, Priority: prio},
		)
		order++
	}
	return t.extend(added, order), nil
}
