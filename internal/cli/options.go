// Package cli implements the pipetint command: argument handling, the
// translation of COLORS arguments into highlight layers, the per-line
// processor and read loop, the --list-colors catalog and the help text.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
)

const (
	// DefaultPattern matches the whole line as group 1.
	DefaultPattern = "(.*)"
	// DefaultColors marks the whole line black on yellow and inverts it.
	DefaultColors = "black,bg_yellow,swapcolor"

	programName = "pipetint"
)

// ErrHelpRequested is returned by ParseArgs for -h and --help.
var ErrHelpRequested = errors.New("help requested")

// Options is the parsed command line before configuration is applied.
type Options struct {
	// Pattern and Colors are the positional arguments. Their defaults are
	// filled in when the positionals are absent.
	Pattern string
	Colors  []string

	Verbose       bool
	Unbuffered    bool
	CaseSensitive bool
	ReplaceAll    bool
	ListColors    bool

	Filter     string
	ColorMode  string
	Preset     string
	ConfigPath string
	LogLevel   string
	LogDir     string

	patternGiven bool
	colorsGiven  bool
	set          map[string]bool
}

// PatternGiven reports whether PATTERN was on the command line.
func (o *Options) PatternGiven() bool { return o.patternGiven }

// ColorsGiven reports whether at least one COLORS argument was on the command line.
func (o *Options) ColorsGiven() bool { return o.colorsGiven }

// IsSet reports whether the named flag was given explicitly.
func (o *Options) IsSet(name string) bool { return o.set[name] }

// AllDefaults reports whether the command would colorize with the built-in
// pattern and colors only, which at a terminal means the user most likely
// wants help rather than to type input.
func (o *Options) AllDefaults() bool {
	return o.Pattern == DefaultPattern &&
		slices.Equal(o.Colors, []string{DefaultColors}) &&
		o.Preset == ""
}

// aliases maps short flags to the long flag they stand for.
var aliases = map[string]string{
	"v": "verbose",
	"u": "unbuffered",
}

func newFlagSet(o *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.BoolVar(&o.Verbose, "verbose", false, "log every processed line to stderr (sets --log-level=debug)")
	fs.BoolVar(&o.Verbose, "v", false, "shorthand for --verbose")
	fs.BoolVar(&o.Unbuffered, "unbuffered", false, "flush output after every line, for live log streaming")
	fs.BoolVar(&o.Unbuffered, "u", false, "shorthand for --unbuffered")
	fs.BoolVar(&o.CaseSensitive, "case-sensitive", false, "match PATTERN case-sensitively")
	fs.BoolVar(&o.ReplaceAll, "replace-all", false, "drop colors from earlier pipeline stages before applying new ones")
	fs.BoolVar(&o.ListColors, "list-colors", false, "list all available colors and exit")
	fs.StringVar(&o.Filter, "filter", "", "with --list-colors, only show names matching this glob (e.g. 'bg_*')")
	fs.StringVar(&o.ColorMode, "color", "", "when to color output: always (default), auto or never")
	fs.StringVar(&o.Preset, "preset", "", "use a pattern and colors defined in the configuration file")
	fs.StringVar(&o.ConfigPath, "config", "", "configuration file (default: $PIPETINT_CONFIG or <user config dir>/pipetint/config.toml)")
	fs.StringVar(&o.LogLevel, "log-level", "", "diagnostics level: debug, info, warn or error")
	fs.StringVar(&o.LogDir, "log-dir", "", "directory for a per-run JSON log (auto-named)")
	return fs
}

// ParseArgs parses args, which exclude the program name. Flags may appear
// before, between and after the positional arguments; everything after "--"
// is positional. Parse errors are written to errOut.
func ParseArgs(args []string, errOut io.Writer) (*Options, error) {
	o := &Options{set: make(map[string]bool)}
	fs := newFlagSet(o)
	fs.SetOutput(io.Discard)

	var positionals []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, ErrHelpRequested
			}
			fmt.Fprintf(errOut, "%s: %v\n", programName, err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidArguments, err)
		}
		remaining := fs.Args()
		consumed := len(rest) - len(remaining)
		if consumed > 0 && rest[consumed-1] == "--" {
			positionals = append(positionals, remaining...)
			break
		}
		if len(remaining) == 0 {
			break
		}
		positionals = append(positionals, remaining[0])
		rest = remaining[1:]
	}

	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		o.set[name] = true
	})

	o.Pattern = DefaultPattern
	o.Colors = []string{DefaultColors}
	if len(positionals) > 0 {
		o.Pattern = positionals[0]
		o.patternGiven = true
	}
	if len(positionals) > 1 {
		o.Colors = positionals[1:]
		o.colorsGiven = true
	}
	return o, nil
}
