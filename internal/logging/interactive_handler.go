package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/isseis/go-pipetint/internal/terminal"
)

// Static errors for InteractiveHandler validation
var (
	ErrInteractiveHandlerWriterRequired       = errors.New("InteractiveHandler: Writer is required")
	ErrInteractiveHandlerCapabilitiesRequired = errors.New("InteractiveHandler: Capabilities is required")
	ErrInteractiveHandlerFormatterRequired    = errors.New("InteractiveHandler: Formatter is required")
)

// InteractiveHandler writes one formatted line per record for a person
// watching stderr. Records are dropped when the session is not interactive.
// When a run log is kept, error records are followed by a hint naming the
// file and line that hold the full record.
type InteractiveHandler struct {
	capabilities terminal.Capabilities
	formatter    MessageFormatter
	lineTracker  LogLineTracker
	logFile      string
	writer       io.Writer
	mu           *sync.Mutex
	level        slog.Leveler
	attrs        []slog.Attr
	groups       []string
}

// InteractiveHandlerOptions configures the InteractiveHandler.
type InteractiveHandlerOptions struct {
	// Level is the minimum log level to handle; nil means info
	Level slog.Leveler

	// Writer is the output destination, normally stderr
	Writer io.Writer

	// Capabilities decides interactivity and color
	Capabilities terminal.Capabilities

	// Formatter handles message formatting and coloring
	Formatter MessageFormatter

	// LineTracker and LogFile enable the log file hint. Both are optional.
	LineTracker LogLineTracker
	LogFile     string
}

// NewInteractiveHandler creates a new InteractiveHandler with the given options.
// Returns an error if any required options are missing.
func NewInteractiveHandler(opts InteractiveHandlerOptions) (*InteractiveHandler, error) {
	if opts.Writer == nil {
		return nil, ErrInteractiveHandlerWriterRequired
	}
	if opts.Capabilities == nil {
		return nil, ErrInteractiveHandlerCapabilitiesRequired
	}
	if opts.Formatter == nil {
		return nil, ErrInteractiveHandlerFormatterRequired
	}

	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	return &InteractiveHandler{
		capabilities: opts.Capabilities,
		formatter:    opts.Formatter,
		lineTracker:  opts.LineTracker,
		logFile:      opts.LogFile,
		writer:       opts.Writer,
		mu:           &sync.Mutex{},
		level:        level,
	}, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *InteractiveHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.capabilities.IsInteractive() && level >= h.level.Level()
}

// Handle processes a log record.
func (h *InteractiveHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.capabilities.IsInteractive() {
		return nil
	}

	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}

	// accumulated attributes come first, as with the built-in handlers
	record := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	for _, attr := range h.attrs {
		record.AddAttrs(slog.Attr{Key: prefix + attr.Key, Value: attr.Value})
	}
	r.Attrs(func(attr slog.Attr) bool {
		record.AddAttrs(slog.Attr{Key: prefix + attr.Key, Value: attr.Value})
		return true
	})

	useColor := h.capabilities.SupportsColor()
	var sb strings.Builder
	sb.WriteString(h.formatter.FormatRecordWithColor(record, useColor))
	sb.WriteString("\n")

	if record.Level >= slog.LevelError && h.lineTracker != nil {
		hint := h.formatter.FormatLogFileHint(h.logFile, h.lineTracker.GetCurrentLine(), useColor)
		if hint != "" {
			sb.WriteString(hint)
			sb.WriteString("\n")
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, sb.String())
	return err
}

// WithAttrs returns a new handler with additional attributes.
func (h *InteractiveHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	clone.attrs = append(clone.attrs, attrs...)
	return &clone
}

// WithGroup returns a new handler with an additional group.
func (h *InteractiveHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.groups = make([]string, 0, len(h.groups)+1)
	clone.groups = append(clone.groups, h.groups...)
	clone.groups = append(clone.groups, name)
	return &clone
}
