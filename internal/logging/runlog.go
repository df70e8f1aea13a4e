package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	logDirPerm  = 0o750
	logFilePerm = 0o600

	// unknownHost replaces the hostname when the system cannot report it
	unknownHost = "unknown"
)

// ErrEmptyLogDirectory is returned when a run log is requested without a directory.
var ErrEmptyLogDirectory = errors.New("log directory is empty")

// GenerateRunID returns a new ULID identifying one pipetint run. IDs sort by
// creation time, so run logs list in the order they were written.
func GenerateRunID() string {
	return ulid.Make().String()
}

// Hostname returns the host name, or "unknown" when it cannot be read.
func Hostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return unknownHost
	}
	return h
}

// RunLogName returns the file name of the JSON log for one run.
func RunLogName(hostname string, started time.Time, runID string) string {
	return fmt.Sprintf("%s_%s_%s.json", hostname, started.UTC().Format("20060102T150405Z"), runID)
}

// OpenRunLog creates dir if needed and opens a fresh JSON log file for runID
// inside it. An existing file is never overwritten.
func OpenRunLog(dir, runID string, started time.Time) (*os.File, error) {
	if dir == "" {
		return nil, ErrEmptyLogDirectory
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("cannot create log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, RunLogName(Hostname(), started, runID))
	// #nosec G304 - the name is built from the host, time and run ID only
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
