package tint

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isseis/go-pipetint/internal/color"
	"github.com/isseis/go-pipetint/internal/pattern"
)

func TestColorize(t *testing.T) {
	v, err := New("hello").Colorize("red")
	require.NoError(t, err)

	assert.Equal(t, "\x1b[31mhello\x1b[0m", v.String())
	require.Len(t, v.Ranges(), 1)
	assert.Equal(t, Priority{Stage: 0, Depth: 1, Order: 0}, v.Ranges()[0].Priority)
	assert.Equal(t, 1, v.NextOrder())

	v, err = v.Colorize("fg_blue")
	require.NoError(t, err)
	assert.Equal(t, "\x1b[34mhello\x1b[0m", v.String())
	assert.Equal(t, 2, v.NextOrder())
}

func TestColorize_UnknownColor(t *testing.T) {
	base := New("hello")
	v, err := base.Colorize("nosuchcolor")
	require.ErrorIs(t, err, color.ErrUnknownColor)
	assert.Equal(t, "hello", v.String())
}

func TestColorizeRandom(t *testing.T) {
	a := New("x").ColorizeRandom(rand.New(rand.NewSource(7)))
	b := New("x").ColorizeRandom(rand.New(rand.NewSource(7)))

	require.Len(t, a.Ranges(), 1)
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, color.RandomPalette(), a.Ranges()[0].Color.Name())
}

func TestHighlight_NestedGroups(t *testing.T) {
	v, err := New("hello world").Highlight(`(h.(ll))`, "red", "blue")
	require.NoError(t, err)

	assert.Equal(t, "\x1b[31mhe\x1b[0m\x1b[34mll\x1b[0mo world", v.String())
}

func TestHighlight_ChannelIsolation(t *testing.T) {
	v, err := New("hello world").Highlight(`(h.(ll))`, "bg_red", "blue")
	require.NoError(t, err)

	assert.Equal(t, "\x1b[41mhe\x1b[0m\x1b[34m\x1b[41mll\x1b[0mo world", v.String())
}

func TestHighlight_NoGroupsUsesWholeMatch(t *testing.T) {
	v, err := New("a cat and a CAT").Highlight(`cat`, "red", "blue")
	require.NoError(t, err)

	assert.Equal(t, "a \x1b[31mcat\x1b[0m and a \x1b[31mCAT\x1b[0m", v.String())
	for _, r := range v.Ranges() {
		assert.Equal(t, 1, r.Priority.Depth)
	}
}

func TestHighlight_ColorsCycle(t *testing.T) {
	v, err := New("abc").Highlight(`(a)(b)(c)`, "red", "blue")
	require.NoError(t, err)

	assert.Equal(t, "\x1b[31ma\x1b[0m\x1b[34mb\x1b[0m\x1b[31mc\x1b[0m", v.String())
}

func TestHighlight_EmptyColorSkipsGroup(t *testing.T) {
	v, err := New("ab").Highlight(`(a)(b)`, "", "blue")
	require.NoError(t, err)

	assert.Equal(t, "a\x1b[34mb\x1b[0m", v.String())
	assert.Len(t, v.Ranges(), 1)
}

func TestHighlight_NoColorsIsNoop(t *testing.T) {
	base := New("abc")
	v, err := base.Highlight(`(b)`)
	require.NoError(t, err)
	assert.Equal(t, base.String(), v.String())
}

func TestHighlight_Errors(t *testing.T) {
	base := New("hello")

	_, err := base.Highlight(`(h`, "red")
	assert.ErrorIs(t, err, pattern.ErrSyntax)

	v, err := base.Highlight(`(h)`, "red", "bogus")
	assert.ErrorIs(t, err, color.ErrUnknownColor)
	assert.Equal(t, "hello", v.String())
}

func TestHighlight_CaseSensitivePattern(t *testing.T) {
	p := pattern.MustCompile(`HELLO`, pattern.WithCaseSensitive(true))

	v, err := New("hello HELLO").HighlightPattern(p, "red")
	require.NoError(t, err)
	assert.Equal(t, "hello \x1b[31mHELLO\x1b[0m", v.String())
}

func TestHighlight_NoMatchIdentity(t *testing.T) {
	inputs := []Text{
		New("hello"),
		Parse("\x1b[32mhi\x1b[0m there"),
	}
	for _, in := range inputs {
		v, err := in.Highlight(`zzz`, "red")
		require.NoError(t, err)
		assert.Equal(t, in.String(), v.String())
		assert.Equal(t, in.NextOrder(), v.NextOrder())
	}
}

func TestHighlight_MatchesPlainTextOfParsedInput(t *testing.T) {
	v := Parse("H\x1b[31mello\x1b[0m World")

	out, err := v.Highlight(`Hello`, "green")
	require.NoError(t, err)
	assert.Equal(t, "\x1b[32mHello\x1b[0m World", out.String())
}

func TestHighlight_ParsedRangesLoseToNewOnes(t *testing.T) {
	v := Parse("\x1b[31mabc\x1b[0m")

	// a depth-1 range added now beats the inherited red
	out, err := v.Colorize("blue")
	require.NoError(t, err)
	assert.Equal(t, "\x1b[34mabc\x1b[0m", out.String())
}

func TestHighlight_PreservesOtherChannelExtendedColor(t *testing.T) {
	v := Parse("\x1b[48;5;236mhello\x1b[0m")

	out, err := v.Highlight(`ell`, "red")
	require.NoError(t, err)
	assert.Equal(t,
		"\x1b[48;5;236mh\x1b[0m\x1b[31m\x1b[48;5;236mell\x1b[0m\x1b[48;5;236mo\x1b[0m",
		out.String())
	assert.Contains(t, out.String(), "\x1b[48;5;236m")
}

func TestHighlight_AliasEquivalence(t *testing.T) {
	base := New("hello world")
	for _, name := range color.BackgroundNames() {
		suffixed := strings.TrimPrefix(name, "bg_") + "_bg"

		a, err := base.Highlight(`l+`, suffixed)
		require.NoError(t, err, suffixed)
		b, err := base.Highlight(`l+`, name)
		require.NoError(t, err, name)

		assert.Equal(t, b.String(), a.String(), name)
	}
}

func TestHighlight_DeepRangeOutranksManyShallowOnes(t *testing.T) {
	v, err := New("hello").Highlight(`(?:(e))`, "blue")
	require.NoError(t, err)
	require.Equal(t, 2, v.Ranges()[0].Priority.Depth)

	for i := 0; i < 1500; i++ {
		v, err = v.Colorize("red")
		require.NoError(t, err)
	}

	assert.Equal(t, 1501, v.NextOrder())
	assert.Equal(t, "\x1b[31mh\x1b[0m\x1b[34me\x1b[0m\x1b[31mllo\x1b[0m", v.String())
}

func TestHighlightAt(t *testing.T) {
	v, err := New("hello").HighlightAt([]int{4, 1, 1, -1, 99}, "")
	require.NoError(t, err)

	assert.Equal(t, "h\x1b[33m\x1b[7me\x1b[0mll\x1b[33m\x1b[7mo\x1b[0m", v.String())

	ranges := v.Ranges()
	require.Len(t, ranges, 4)
	assert.Equal(t, ranges[0].Priority, ranges[1].Priority)
	assert.Equal(t, 2, ranges[0].Priority.Depth)
	assert.Equal(t, "swapcolor", ranges[1].Color.Name())
	assert.Equal(t, 2, v.NextOrder())
}

func TestHighlightAt_EdgeCases(t *testing.T) {
	base := New("hello")

	v, err := base.HighlightAt(nil, "red")
	require.NoError(t, err)
	assert.Equal(t, "hello", v.String())

	v, err = base.HighlightAt([]int{-5, 5, 100}, "red")
	require.NoError(t, err)
	assert.Equal(t, "hello", v.String())

	_, err = base.HighlightAt([]int{0}, "nope")
	assert.ErrorIs(t, err, color.ErrUnknownColor)

	v, err = base.HighlightAt([]int{0}, "red")
	require.NoError(t, err)
	assert.Equal(t, "\x1b[31m\x1b[7mh\x1b[0mello", v.String())
}

func TestRemoveColorAndReplaceAll(t *testing.T) {
	v := Parse("\x1b[31mabc\x1b[0m")
	v, err := v.Colorize("blue")
	require.NoError(t, err)

	removed := v.RemoveColor()
	assert.Equal(t, "abc", removed.String())
	assert.Equal(t, v.Stage(), removed.Stage())
	assert.Equal(t, v.NextOrder(), removed.NextOrder())

	replaced := v.ReplaceAll()
	assert.Equal(t, "abc", replaced.String())
	assert.Equal(t, 0, replaced.Stage())
}

func TestImmutability(t *testing.T) {
	base := New("hello")
	red, err := base.Colorize("red")
	require.NoError(t, err)

	assert.Equal(t, "hello", base.String())
	assert.Empty(t, base.Ranges())

	blue, err := red.Colorize("blue")
	require.NoError(t, err)
	green, err := red.Colorize("green")
	require.NoError(t, err)

	assert.Equal(t, "\x1b[31mhello\x1b[0m", red.String())
	assert.Equal(t, "\x1b[34mhello\x1b[0m", blue.String())
	assert.Equal(t, "\x1b[32mhello\x1b[0m", green.String())

	ranges := red.Ranges()
	ranges[0].Start = 3
	assert.Equal(t, 0, red.Ranges()[0].Start)
}
