package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/isseis/go-pipetint/internal/terminal"
)

// Static errors for ConditionalTextHandler validation
var (
	ErrConditionalTextHandlerCapabilitiesRequired = errors.New("ConditionalTextHandler: Capabilities is required")
	ErrConditionalTextHandlerWriterRequired       = errors.New("ConditionalTextHandler: Writer is required")
)

// ConditionalTextHandler wraps a slog.TextHandler and only writes when the
// session is not interactive, e.g. when pipetint runs inside a script or CI
// job. It is the counterpart of InteractiveHandler; exactly one of the two is
// active for any given session.
type ConditionalTextHandler struct {
	capabilities terminal.Capabilities
	textHandler  slog.Handler
}

// ConditionalTextHandlerOptions configures the ConditionalTextHandler.
type ConditionalTextHandlerOptions struct {
	// Capabilities decides whether the session is interactive
	Capabilities terminal.Capabilities

	// TextHandlerOptions will be passed to slog.NewTextHandler
	TextHandlerOptions *slog.HandlerOptions

	// Writer is the output destination, normally stderr
	Writer io.Writer
}

// NewConditionalTextHandler creates a ConditionalTextHandler.
// Returns an error if any required options are missing.
func NewConditionalTextHandler(opts ConditionalTextHandlerOptions) (*ConditionalTextHandler, error) {
	if opts.Capabilities == nil {
		return nil, ErrConditionalTextHandlerCapabilitiesRequired
	}
	if opts.Writer == nil {
		return nil, ErrConditionalTextHandlerWriterRequired
	}

	return &ConditionalTextHandler{
		capabilities: opts.Capabilities,
		textHandler:  slog.NewTextHandler(opts.Writer, opts.TextHandlerOptions),
	}, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *ConditionalTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.capabilities.IsInteractive() {
		return false
	}
	return h.textHandler.Enabled(ctx, level)
}

// Handle delegates to the text handler outside interactive sessions.
func (h *ConditionalTextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.capabilities.IsInteractive() {
		return nil
	}
	return h.textHandler.Handle(ctx, r)
}

// WithAttrs returns a new handler with additional attributes.
func (h *ConditionalTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ConditionalTextHandler{
		capabilities: h.capabilities,
		textHandler:  h.textHandler.WithAttrs(attrs),
	}
}

// WithGroup returns a new handler with an additional group.
func (h *ConditionalTextHandler) WithGroup(name string) slog.Handler {
	return &ConditionalTextHandler{
		capabilities: h.capabilities,
		textHandler:  h.textHandler.WithGroup(name),
	}
}
