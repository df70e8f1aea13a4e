package logging

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/isseis/go-pipetint/internal/color"
	"github.com/isseis/go-pipetint/internal/tint"
)

// MessageFormatter turns log records into single terminal lines.
type MessageFormatter interface {
	// FormatRecordWithColor formats a log record with optional color support
	FormatRecordWithColor(record slog.Record, useColor bool) string

	// FormatLogFileHint points the reader at the JSON record for an error.
	// It returns "" when there is nothing to point at.
	FormatLogFileHint(path string, lineNumber int, useColor bool) string
}

// DefaultMessageFormatter writes "time badge message key=value...". Level
// badges are colored with the same engine that colors pipetint's output.
type DefaultMessageFormatter struct{}

// NewDefaultMessageFormatter creates a new DefaultMessageFormatter.
func NewDefaultMessageFormatter() *DefaultMessageFormatter {
	return &DefaultMessageFormatter{}
}

// contextKeys are attached to every record by bootstrap and only add noise
// on a terminal; the JSON log keeps them.
var contextKeys = []string{"run_id", "hostname", "pid", "schema_version"}

// FormatRecordWithColor formats a log record with optional color support.
func (f *DefaultMessageFormatter) FormatRecordWithColor(record slog.Record, useColor bool) string {
	var sb strings.Builder

	sb.WriteString(record.Time.Format("2006-01-02 15:04:05"))
	sb.WriteString(" ")
	sb.WriteString(f.formatLevel(record.Level, useColor))
	sb.WriteString(" ")
	sb.WriteString(record.Message)

	keyColor := color.ConditionalColor(color.Gray, useColor)
	record.Attrs(func(attr slog.Attr) bool {
		if slices.Contains(contextKeys, attr.Key) {
			return true
		}
		sb.WriteString(" ")
		sb.WriteString(keyColor(attr.Key + "="))
		sb.WriteString(f.formatValue(attr.Value))
		return true
	})

	return sb.String()
}

// FormatLogFileHint formats a log file hint message for error-level logs.
func (f *DefaultMessageFormatter) FormatLogFileHint(path string, lineNumber int, useColor bool) string {
	if path == "" || lineNumber <= 0 {
		return ""
	}

	var sb strings.Builder
	if useColor {
		sb.WriteString(color.Cyan("* "))
	} else {
		sb.WriteString("HINT: ")
	}
	sb.WriteString("See ")
	sb.WriteString(path)
	sb.WriteString(" line ")
	sb.WriteString(strconv.Itoa(lineNumber))
	sb.WriteString(" for details")
	return sb.String()
}

// levelBadge describes how one level is shown on a terminal.
type levelBadge struct {
	plain  string
	label  string
	colors []string
}

var levelBadges = map[slog.Level]levelBadge{
	slog.LevelDebug: {plain: "[DEBUG]", label: "* DEBUG", colors: []string{"darkgray"}},
	slog.LevelInfo:  {plain: "[INFO ]", label: "+ INFO ", colors: []string{"green"}},
	slog.LevelWarn:  {plain: "[WARN ]", label: "! WARN ", colors: []string{"yellow"}},
	slog.LevelError: {plain: "[ERROR]", label: "X ERROR", colors: []string{"red", "bright"}},
}

func (f *DefaultMessageFormatter) formatLevel(level slog.Level, useColor bool) string {
	b, ok := levelBadges[level]
	if !ok {
		b = levelBadge{
			plain:  "[" + level.String() + "]",
			label:  "> " + level.String(),
			colors: []string{"darkgray"},
		}
	}
	if !useColor {
		return b.plain
	}

	t := tint.New(b.label)
	for _, name := range b.colors {
		next, err := t.Colorize(name)
		if err != nil {
			return b.label
		}
		t = next
	}
	return t.String()
}

// formatValue formats a slog.Value for display
func (f *DefaultMessageFormatter) formatValue(value slog.Value) string {
	value = value.Resolve()
	switch value.Kind() {
	case slog.KindString:
		s := value.String()
		if s == "" || strings.ContainsAny(s, " \t\"=") {
			return strconv.Quote(s)
		}
		return s
	case slog.KindTime:
		return value.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return value.Duration().String()
	case slog.KindGroup:
		attrs := value.Group()
		if len(attrs) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			parts = append(parts, attr.Key+"="+f.formatValue(attr.Value))
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return value.String()
	}
}
