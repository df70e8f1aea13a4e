// Package config loads pipetint's optional TOML configuration file. The file
// supplies defaults for the command line flags and named presets that bundle
// a pattern with its group colors:
//
//	case_sensitive = false
//	color = "auto"
//	log_level = "info"
//	default_colors = ["red,bold", "blue"]
//
//	[presets.errors]
//	pattern = '(ERROR|FATAL)'
//	colors = ["red,bold"]
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// LogLevel is the minimum level of diagnostics written to stderr.
// Valid values: debug, info, warn, error
type LogLevel string

const (
	// LogLevelDebug also logs every processed line
	LogLevelDebug LogLevel = "debug"

	// LogLevelInfo enables info-level logging (default)
	LogLevelInfo LogLevel = "info"

	// LogLevelWarn enables warning-level logging
	LogLevelWarn LogLevel = "warn"

	// LogLevelError enables error-level logging only
	LogLevelError LogLevel = "error"
)

// ErrInvalidLogLevel is returned when an invalid log level is provided
var ErrInvalidLogLevel = errors.New("invalid log level")

// UnmarshalText implements the encoding.TextUnmarshaler interface, so a bad
// level is reported while the file is decoded.
func (l *LogLevel) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	switch LogLevel(s) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		*l = LogLevel(s)
		return nil
	case "":
		*l = LogLevelInfo
		return nil
	default:
		return fmt.Errorf("%w: %q (must be one of: debug, info, warn, error)", ErrInvalidLogLevel, string(text))
	}
}

// ToSlogLevel converts LogLevel to slog.Level for use with the slog package.
func (l LogLevel) ToSlogLevel() (slog.Level, error) {
	switch strings.ToLower(string(l)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, string(l))
	}
}

// String returns the string representation of LogLevel.
func (l LogLevel) String() string {
	return string(l)
}

// Config is the decoded configuration file. The zero value is the built-in
// default.
type Config struct {
	CaseSensitive bool     `toml:"case_sensitive"`
	ReplaceAll    bool     `toml:"replace_all"`
	Unbuffered    bool     `toml:"unbuffered"`
	Color         string   `toml:"color"`
	LogLevel      LogLevel `toml:"log_level"`
	LogDir        string   `toml:"log_dir"`

	// DefaultColors replaces the built-in COLORS when none are given on the
	// command line. Each entry is the comma separated stack for one group.
	DefaultColors []string `toml:"default_colors"`

	Presets map[string]Preset `toml:"presets"`

	// Path is the file the configuration was read from, empty for defaults
	Path string `toml:"-"`
}

// Preset is a named pattern with its group colors.
type Preset struct {
	Pattern string   `toml:"pattern"`
	Colors  []string `toml:"colors"`

	// CaseSensitive overrides the file-wide setting when present
	CaseSensitive *bool `toml:"case_sensitive"`
}

// Preset returns the preset called name.
func (c *Config) Preset(name string) (Preset, error) {
	p, ok := c.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return p, nil
}

// PresetNames returns the preset names in sorted order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
