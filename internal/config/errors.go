package config

import (
	"errors"
	"fmt"
)

// Error definitions for the config package
var (
	// ErrInvalidConfigPath is returned when the config file cannot be read
	ErrInvalidConfigPath = errors.New("invalid config file path")

	// ErrInvalidConfig is returned when the file does not decode or holds unknown keys
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPresetNotFound is returned when --preset names a preset the file does not define
	ErrPresetNotFound = errors.New("preset not found")

	// ErrEmptyPattern is returned for a preset without a pattern
	ErrEmptyPattern = errors.New("pattern is empty")
)

// PresetError reports a problem inside one [presets.<name>] table.
type PresetError struct {
	Preset string
	Err    error
}

func (e *PresetError) Error() string {
	return fmt.Sprintf("preset %q: %v", e.Preset, e.Err)
}

func (e *PresetError) Unwrap() error {
	return e.Err
}
