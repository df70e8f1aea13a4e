package color

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownColor is returned when a color or style name is not in the registry.
var ErrUnknownColor = errors.New("unknown color")

// Code is an SGR parameter value.
type Code int

// ResetCode clears every active SGR attribute.
const ResetCode Code = 0

const (
	backgroundPrefix = "bg_"
	backgroundSuffix = "_bg"
	foregroundPrefix = "fg_"
)

// Channel is one of the three independent SGR axes.
type Channel int

const (
	// Foreground is the text color channel.
	Foreground Channel = iota
	// Background is the cell background channel.
	Background
	// Attribute covers bold, underline, invert and the other text styles.
	Attribute
)

// NumChannels is the number of distinct channels.
const NumChannels = 3

// String returns a short channel name for logs.
func (c Channel) String() string {
	switch c {
	case Foreground:
		return "fg"
	case Background:
		return "bg"
	case Attribute:
		return "attr"
	default:
		return "channel(" + strconv.Itoa(int(c)) + ")"
	}
}

type entry struct {
	name string
	code Code
}

// foregroundTable lists the canonical foreground colors in display order.
// Background codes are derived by adding 10.
var foregroundTable = []entry{
	{"black", 30},
	{"red", 31},
	{"green", 32},
	{"yellow", 33},
	{"blue", 34},
	{"magenta", 35},
	{"cyan", 36},
	{"lightgray", 37},
	{"darkgray", 90},
	{"lightred", 91},
	{"lightgreen", 92},
	{"lightyellow", 93},
	{"lightblue", 94},
	{"lightmagenta", 95},
	{"lightcyan", 96},
	{"white", 97},
}

var styleTable = []entry{
	{"bright", 1},
	{"dim", 2},
	{"underline", 4},
	{"blink", 5},
	{"invert", 7},
	{"swapcolor", 7},
	{"hidden", 8},
	{"strikethrough", 9},
}

// colorAliases apply to the color part of both foreground and background names.
var colorAliases = map[string]string{
	"gray":   "darkgray",
	"grey":   "darkgray",
	"purple": "magenta",
}

var styleAliases = map[string]string{
	"bold":    "bright",
	"inverse": "invert",
	"reverse": "invert",
	"swap":    "swapcolor",
	"strike":  "strikethrough",
}

// The tables are built during variable initialization so that package-level
// Color values such as Red can resolve their sequences.
var codes, codeNames, styleSet = buildTables()

func buildTables() (map[string]Code, map[Code]string, map[string]struct{}) {
	byName := make(map[string]Code, 2*len(foregroundTable)+len(styleTable))
	byCode := make(map[Code]string, len(byName))
	styles := make(map[string]struct{}, len(styleTable))

	register := func(name string, code Code) {
		byName[name] = code
		if _, taken := byCode[code]; !taken {
			byCode[code] = name
		}
	}
	for _, e := range foregroundTable {
		register(e.name, e.code)
	}
	for _, e := range foregroundTable {
		register(backgroundPrefix+e.name, e.code+10)
	}
	for _, e := range styleTable {
		register(e.name, e.code)
		styles[e.name] = struct{}{}
	}
	return byName, byCode, styles
}

// Normalize maps any accepted spelling of a color or style to its canonical
// name: lower case, "red_bg" becomes "bg_red", "fg_red" becomes "red", and
// aliases such as "bold" or "grey" resolve to their canonical entry.
// Unknown names are returned lower-cased and otherwise unchanged.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))

	if strings.HasSuffix(n, backgroundSuffix) && !strings.HasPrefix(n, backgroundPrefix) {
		n = backgroundPrefix + strings.TrimSuffix(n, backgroundSuffix)
	}

	if base, ok := strings.CutPrefix(n, backgroundPrefix); ok {
		if alias, found := colorAliases[base]; found {
			base = alias
		}
		return backgroundPrefix + base
	}

	n = strings.TrimPrefix(n, foregroundPrefix)
	if alias, ok := colorAliases[n]; ok {
		return alias
	}
	if alias, ok := styleAliases[n]; ok {
		return alias
	}
	return n
}

// Lookup returns the SGR code for name after normalization.
func Lookup(name string) (Code, bool) {
	code, ok := codes[Normalize(name)]
	return code, ok
}

// NameOf returns the canonical name registered for code.
func NameOf(code Code) (string, bool) {
	name, ok := codeNames[code]
	return name, ok
}

// ChannelOf reports which channel name belongs to. Membership depends only on
// the normalized name, so it is defined for unknown names as well.
func ChannelOf(name string) Channel {
	n := Normalize(name)
	if strings.HasPrefix(n, backgroundPrefix) {
		return Background
	}
	if _, ok := styleSet[n]; ok {
		return Attribute
	}
	return Foreground
}

// Sequence formats an SGR escape sequence for the given parameter string.
func Sequence(params string) string {
	return "\x1b[" + params + "m"
}

// StartSequence returns the escape sequence that turns name on.
func StartSequence(name string) (string, error) {
	code, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return Sequence(strconv.Itoa(int(code))), nil
}

// EndSequence returns the reset sequence.
func EndSequence() string {
	return Sequence(strconv.Itoa(int(ResetCode)))
}

// ForegroundNames returns the canonical foreground color names in display order.
func ForegroundNames() []string {
	names := make([]string, 0, len(foregroundTable))
	for _, e := range foregroundTable {
		names = append(names, e.name)
	}
	return names
}

// BackgroundNames returns the canonical background color names in display order.
func BackgroundNames() []string {
	names := make([]string, 0, len(foregroundTable))
	for _, e := range foregroundTable {
		names = append(names, backgroundPrefix+e.name)
	}
	return names
}

// StyleNames returns the canonical style names in display order.
func StyleNames() []string {
	names := make([]string, 0, len(styleTable))
	for _, e := range styleTable {
		names = append(names, e.name)
	}
	return names
}

// Aliases returns every accepted alias mapped to its canonical name.
func Aliases() map[string]string {
	out := make(map[string]string, len(colorAliases)+len(styleAliases)+len(foregroundTable)*2)
	for alias, target := range styleAliases {
		out[alias] = target
	}
	for alias, target := range colorAliases {
		out[alias] = target
		out[backgroundPrefix+alias] = backgroundPrefix + target
	}
	for _, e := range foregroundTable {
		out[foregroundPrefix+e.name] = e.name
		out[e.name+backgroundSuffix] = backgroundPrefix + e.name
	}
	return out
}

// Names returns all canonical names, sorted.
func Names() []string {
	names := make([]string, 0, len(codes))
	for name := range codes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate reports an ErrUnknownColor error when name is not registered.
func Validate(name string) error {
	if _, ok := Lookup(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return nil
}

// SplitList splits a comma separated list such as "red, bold" into its
// names. Blank entries are dropped.
func SplitList(spec string) []string {
	var names []string
	for _, part := range strings.Split(spec, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
