package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/isseis/go-pipetint/internal/color"
	"github.com/isseis/go-pipetint/internal/pattern"
	"github.com/isseis/go-pipetint/internal/terminal"
	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvConfigPath names a configuration file when --config is absent.
	EnvConfigPath = "PIPETINT_CONFIG"

	appDirName     = "pipetint"
	configFileName = "config.toml"
)

// Source tells how a configuration path was chosen.
type Source int

const (
	// SourceNone means no file is used.
	SourceNone Source = iota
	// SourceFlag is a path from --config.
	SourceFlag
	// SourceEnv is a path from $PIPETINT_CONFIG.
	SourceEnv
	// SourceDefault is the per-user file under os.UserConfigDir.
	SourceDefault
)

// Explicit reports whether the user named the file, in which case it must
// exist.
func (s Source) Explicit() bool {
	return s == SourceFlag || s == SourceEnv
}

// Locate picks the configuration file: flagPath, then $PIPETINT_CONFIG, then
// <user config dir>/pipetint/config.toml.
func Locate(flagPath string) (string, Source) {
	if flagPath != "" {
		return flagPath, SourceFlag
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, SourceEnv
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", SourceNone
	}
	return filepath.Join(dir, appDirName, configFileName), SourceDefault
}

// Load locates and reads the configuration. A missing per-user default file
// yields an empty Config; a missing file the user named is an error.
func Load(flagPath string) (*Config, error) {
	path, src := Locate(flagPath)
	if src == SourceNone {
		return &Config{}, nil
	}

	// #nosec G304 - the path comes from the user or the user's config dir
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !src.Explicit() {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfigPath, err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes and validates configuration content. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func Parse(content []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(content)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, decodeError(err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeError(err error) error {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return fmt.Errorf("%w: unknown keys:\n%s", ErrInvalidConfig, strict.String())
	}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return fmt.Errorf("%w: line %d column %d: %w", ErrInvalidConfig, row, col, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}

// Validate checks the color mode, every color name and every preset
// pattern, so that mistakes surface before any input is read.
func Validate(cfg *Config) error {
	if _, err := terminal.ParseColorMode(cfg.Color); err != nil {
		return fmt.Errorf("%w: color: %w", ErrInvalidConfig, err)
	}
	if err := validateColorSpecs("default_colors", cfg.DefaultColors); err != nil {
		return err
	}

	for _, name := range cfg.PresetNames() {
		p := cfg.Presets[name]
		if p.Pattern == "" {
			return &PresetError{Preset: name, Err: ErrEmptyPattern}
		}
		if _, err := pattern.Analyze(p.Pattern); err != nil {
			return &PresetError{Preset: name, Err: err}
		}
		if err := validateColorSpecs("colors", p.Colors); err != nil {
			return &PresetError{Preset: name, Err: err}
		}
	}
	return nil
}

func validateColorSpecs(key string, specs []string) error {
	for i, spec := range specs {
		for _, name := range color.SplitList(spec) {
			if err := color.Validate(name); err != nil {
				return fmt.Errorf("%s[%d]: %w", key, i, err)
			}
		}
	}
	return nil
}
