// Package bootstrap wires pipetint's logging from the terminal capabilities
// and the resolved command line options.
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/isseis/go-pipetint/internal/logging"
	"github.com/isseis/go-pipetint/internal/terminal"
)

// ErrCapabilitiesRequired is returned when LoggerConfig has no Capabilities.
var ErrCapabilitiesRequired = errors.New("terminal capabilities are required")

// LoggerConfig holds all configuration for logger setup
type LoggerConfig struct {
	Level   slog.Level
	LogDir  string
	RunID   string
	Started time.Time

	// ConsoleWriter receives diagnostics; nil means os.Stderr. Stdout is
	// reserved for the colorized stream.
	ConsoleWriter io.Writer

	Capabilities terminal.Capabilities
}

// Session is the logging set up for one run.
type Session struct {
	Logger  *slog.Logger
	LogPath string

	logFile *os.File
}

// Close closes the run log, if any.
func (s *Session) Close() error {
	if s.logFile == nil {
		return nil
	}
	err := s.logFile.Close()
	s.logFile = nil
	return err
}

// SetupLogger builds the handler chain and installs it as the slog default.
//
// The run log handler comes first so that an error shown on the terminal can
// name the JSON line it was just written to. SetupLogger must be called once,
// before any logging happens.
func SetupLogger(cfg LoggerConfig) (*Session, error) {
	if cfg.Capabilities == nil {
		return nil, ErrCapabilitiesRequired
	}
	console := cfg.ConsoleWriter
	if console == nil {
		console = os.Stderr
	}
	started := cfg.Started
	if started.IsZero() {
		started = time.Now()
	}
	hostname := logging.Hostname()

	session := &Session{}
	var handlers []slog.Handler
	var tracker logging.LogLineTracker

	// 1. Machine-readable run log (optional)
	if cfg.LogDir != "" {
		f, err := logging.OpenRunLog(cfg.LogDir, cfg.RunID, started)
		if err != nil {
			return nil, logging.NewStartupError(logging.ErrorTypeLogFileOpen, "bootstrap", "cannot open run log", err)
		}
		session.logFile = f
		session.LogPath = f.Name()

		tracker = logging.NewDefaultLogLineTracker()
		jsonHandler := slog.NewJSONHandler(logging.NewLineCountingWriter(f, tracker), &slog.HandlerOptions{
			Level: cfg.Level,
		})
		handlers = append(handlers, jsonHandler.WithAttrs([]slog.Attr{
			slog.String("hostname", hostname),
			slog.Int("pid", os.Getpid()),
			slog.Int("schema_version", 1),
			slog.String("run_id", cfg.RunID),
		}))
	}

	// 2. Colored handler for people at a terminal
	interactive, err := logging.NewInteractiveHandler(logging.InteractiveHandlerOptions{
		Level:        cfg.Level,
		Writer:       console,
		Capabilities: cfg.Capabilities,
		Formatter:    logging.NewDefaultMessageFormatter(),
		LineTracker:  tracker,
		LogFile:      session.LogPath,
	})
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to create interactive handler: %w", err)
	}
	handlers = append(handlers, interactive)

	// 3. Plain text for scripts and CI
	text, err := logging.NewConditionalTextHandler(logging.ConditionalTextHandlerOptions{
		TextHandlerOptions: &slog.HandlerOptions{Level: cfg.Level},
		Writer:             console,
		Capabilities:       cfg.Capabilities,
	})
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to create conditional text handler: %w", err)
	}
	handlers = append(handlers, text)

	session.Logger = slog.New(logging.NewMultiHandler(handlers...))
	slog.SetDefault(session.Logger)

	slog.Debug("Logger initialized",
		"log_level", cfg.Level.String(),
		"log_file", session.LogPath,
		"run_id", cfg.RunID,
		"hostname", hostname,
		"interactive_mode", cfg.Capabilities.IsInteractive(),
		"color_support", cfg.Capabilities.SupportsColor())

	return session, nil
}
