package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrorType classifies failures that stop pipetint before or while it
// processes input.
type ErrorType string

const (
	// ErrorTypeInvalidArgument represents unusable command line arguments
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
	// ErrorTypeConfigParsing represents configuration file failures
	ErrorTypeConfigParsing ErrorType = "config_parsing_failed"
	// ErrorTypeInvalidPattern represents a pattern that does not compile
	ErrorTypeInvalidPattern ErrorType = "invalid_pattern"
	// ErrorTypeUnknownColor represents a color name missing from the registry
	ErrorTypeUnknownColor ErrorType = "unknown_color"
	// ErrorTypeLogFileOpen represents log file opening failures
	ErrorTypeLogFileOpen ErrorType = "log_file_open_failed"
	// ErrorTypeUserInterrupted represents user interruption
	ErrorTypeUserInterrupted ErrorType = "user_interrupted"
	// ErrorTypeIO represents read or write failures on the line streams
	ErrorTypeIO ErrorType = "io_error"
	// ErrorTypeSystemError represents system errors
	ErrorTypeSystemError ErrorType = "system_error"
)

// StartupError is a failure reported to the user with a type, the component
// it came from and the run it belongs to.
type StartupError struct {
	Type      ErrorType
	Message   string
	Component string
	RunID     string
	Err       error
}

// Error implements the error interface
func (e *StartupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements error wrapping for errors.Unwrap
func (e *StartupError) Unwrap() error {
	return e.Err
}

// NewStartupError builds a StartupError without a run ID; the caller fills
// it in once logging is up.
func NewStartupError(t ErrorType, component, message string, err error) *StartupError {
	return &StartupError{Type: t, Component: component, Message: message, Err: err}
}

// HandleStartupError writes a short report of err to w and logs it. Errors
// that are not StartupErrors are reported as system errors.
func HandleStartupError(w io.Writer, err error, runID string) {
	var se *StartupError
	if !errors.As(err, &se) {
		se = &StartupError{Type: ErrorTypeSystemError, Message: "unexpected failure", Err: err}
	}
	if se.RunID == "" {
		se.RunID = runID
	}

	details := se.Message
	if se.Err != nil {
		details = fmt.Sprintf("%s: %v", se.Message, se.Err)
	}

	// a single write keeps the report in one piece
	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", se.Type)
	if se.Component != "" {
		fmt.Fprintf(&sb, "  Component: %s\n", se.Component)
	}
	fmt.Fprintf(&sb, "  Details: %s\n", details)
	if se.RunID != "" {
		fmt.Fprintf(&sb, "  Run ID: %s\n", se.RunID)
	}
	_, _ = io.WriteString(w, sb.String())

	slog.Debug("Startup error reported",
		"error_type", string(se.Type),
		"error_message", details,
		"component", se.Component,
		"run_id", se.RunID)
}
