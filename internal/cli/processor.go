package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/isseis/go-pipetint/internal/logging"
	"github.com/isseis/go-pipetint/internal/pattern"
	"github.com/isseis/go-pipetint/internal/tint"
)

// Processor colorizes single lines. It is immutable after construction and
// safe for concurrent use.
type Processor struct {
	pattern    *pattern.Pattern
	groups     [][]string
	layers     [][]string
	replaceAll bool
	plain      bool
	verbose    bool
	logger     *slog.Logger
}

// ProcessorOptions configures NewProcessor.
type ProcessorOptions struct {
	// Plain strips every escape sequence from the output, for --color=never
	// or --color=auto without a color terminal.
	Plain bool

	// Logger receives per-line debug records when Verbose is set; nil
	// means slog.Default.
	Logger  *slog.Logger
	Verbose bool
}

// NewProcessor compiles the pattern in s.
func NewProcessor(s *Settings, opts ProcessorOptions) (*Processor, error) {
	p, err := pattern.Compile(s.Pattern, pattern.WithCaseSensitive(s.CaseSensitive))
	if err != nil {
		return nil, logging.NewStartupError(logging.ErrorTypeInvalidPattern, "cli", "cannot compile pattern", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		pattern:    p,
		groups:     s.ColorGroups,
		layers:     Layers(s.ColorGroups),
		replaceAll: s.ReplaceAll,
		plain:      opts.Plain,
		verbose:    opts.Verbose,
		logger:     logger,
	}, nil
}

// Pattern returns the compiled pattern.
func (p *Processor) Pattern() *pattern.Pattern {
	return p.pattern
}

// ProcessLine colorizes one line. A trailing newline is removed. Colors the
// line already carries are kept unless replace-all is set, and anything the
// processor adds takes precedence over them.
func (p *Processor) ProcessLine(line string) (string, error) {
	line = strings.TrimRight(line, "\n")

	t := tint.Parse(line)
	if p.replaceAll {
		t = t.ReplaceAll()
	}

	for _, layer := range p.layers {
		next, err := t.HighlightPattern(p.pattern, layer...)
		if err != nil {
			return "", fmt.Errorf("highlighting line: %w", err)
		}
		t = next
	}

	if p.verbose {
		p.logger.Debug("Processed line",
			"original", t.Plain(),
			"pattern", p.pattern.String(),
			"color_groups", fmt.Sprint(p.groups),
			"replace_all", p.replaceAll)
	}

	if p.plain {
		return t.Plain(), nil
	}
	return t.String(), nil
}
