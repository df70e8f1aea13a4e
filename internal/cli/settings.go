package cli

import (
	"fmt"
	"log/slog"

	"github.com/isseis/go-pipetint/internal/config"
	"github.com/isseis/go-pipetint/internal/logging"
	"github.com/isseis/go-pipetint/internal/terminal"
)

// Settings is what a run actually uses, after the command line, the chosen
// preset and the configuration file have been merged. Command line beats
// preset, preset beats file, file beats the built-in defaults.
type Settings struct {
	Pattern       string
	ColorGroups   [][]string
	CaseSensitive bool
	ReplaceAll    bool
	Unbuffered    bool
	Verbose       bool
	ColorMode     terminal.ColorMode
	LogLevel      slog.Level
	LogDir        string
	Preset        string
}

// Resolve merges opts with cfg and validates the result. Failures come back
// as *logging.StartupError so the command can report them uniformly.
func Resolve(opts *Options, cfg *config.Config) (*Settings, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	s := &Settings{
		Pattern:       DefaultPattern,
		CaseSensitive: cfg.CaseSensitive,
		ReplaceAll:    cfg.ReplaceAll || opts.ReplaceAll,
		Unbuffered:    cfg.Unbuffered || opts.Unbuffered,
		Verbose:       opts.Verbose,
		LogDir:        cfg.LogDir,
		Preset:        opts.Preset,
	}

	colorArgs := []string{DefaultColors}
	if len(cfg.DefaultColors) > 0 {
		colorArgs = cfg.DefaultColors
	}

	if opts.Preset != "" {
		p, err := cfg.Preset(opts.Preset)
		if err != nil {
			return nil, logging.NewStartupError(logging.ErrorTypeConfigParsing, "config", "cannot use preset", err)
		}
		s.Pattern = p.Pattern
		if len(p.Colors) > 0 {
			colorArgs = p.Colors
		}
		if p.CaseSensitive != nil {
			s.CaseSensitive = *p.CaseSensitive
		}
	}

	if opts.PatternGiven() {
		s.Pattern = opts.Pattern
	}
	if opts.ColorsGiven() {
		colorArgs = opts.Colors
	}
	if opts.CaseSensitive {
		s.CaseSensitive = true
	}
	if opts.IsSet("log-dir") {
		s.LogDir = opts.LogDir
	}

	s.ColorGroups = ParseColorGroups(colorArgs)
	if err := ValidateColorGroups(s.ColorGroups); err != nil {
		return nil, logging.NewStartupError(logging.ErrorTypeUnknownColor, "cli", "cannot use colors", err)
	}

	modeArg := cfg.Color
	if opts.IsSet("color") {
		modeArg = opts.ColorMode
	}
	mode, err := terminal.ParseColorMode(modeArg)
	if err != nil {
		return nil, logging.NewStartupError(logging.ErrorTypeInvalidArgument, "cli", "cannot use --color", err)
	}
	s.ColorMode = mode

	level := cfg.LogLevel
	if opts.IsSet("log-level") {
		level = config.LogLevel(opts.LogLevel)
	}
	s.LogLevel, err = level.ToSlogLevel()
	if err != nil {
		return nil, logging.NewStartupError(logging.ErrorTypeInvalidArgument, "cli", "cannot use --log-level", err)
	}
	if s.Verbose {
		s.LogLevel = slog.LevelDebug
	}

	return s, nil
}

// LogValue implements slog.LogValuer.
func (s *Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("pattern", s.Pattern),
		slog.String("color_groups", fmt.Sprint(s.ColorGroups)),
		slog.Bool("case_sensitive", s.CaseSensitive),
		slog.Bool("replace_all", s.ReplaceAll),
		slog.Bool("unbuffered", s.Unbuffered),
		slog.String("color", string(s.ColorMode)),
		slog.String("preset", s.Preset),
	)
}
