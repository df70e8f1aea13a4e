package logging

import (
	"context"
	"log/slog"
	"sync"

	"github.com/isseis/go-pipetint/internal/terminal"
)

// testCapabilities implements terminal.Capabilities for testing
type testCapabilities struct {
	interactive   bool
	supportsColor bool
}

func (c *testCapabilities) IsInteractive() bool { return c.interactive }
func (c *testCapabilities) IsTerminal(terminal.Stream) bool { return c.interactive }
func (c *testCapabilities) SupportsColor() bool { return c.supportsColor }
func (c *testCapabilities) StreamSupportsColor(terminal.Stream) bool { return c.supportsColor }
func (c *testCapabilities) HasExplicitUserPreference() bool { return false }

// mockHandler is a test implementation of slog.Handler
type mockHandler struct {
	mu          sync.Mutex
	enabled     bool
	records     []slog.Record
	attrs       []slog.Attr
	groups      []string
	handleError error
}

func newMockHandler(enabled bool) *mockHandler {
	return &mockHandler{enabled: enabled}
}

func (m *mockHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return m.enabled
}

func (m *mockHandler) Handle(_ context.Context, r slog.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handleError != nil {
		return m.handleError
	}
	m.records = append(m.records, r.Clone())
	return nil
}

func (m *mockHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	m.mu.Lock()
	defer m.mu.Unlock()

	return &mockHandler{
		enabled:     m.enabled,
		attrs:       append(append([]slog.Attr{}, m.attrs...), attrs...),
		groups:      m.groups,
		handleError: m.handleError,
	}
}

func (m *mockHandler) WithGroup(name string) slog.Handler {
	m.mu.Lock()
	defer m.mu.Unlock()

	return &mockHandler{
		enabled:     m.enabled,
		attrs:       m.attrs,
		groups:      append(append([]string{}, m.groups...), name),
		handleError: m.handleError,
	}
}

func (m *mockHandler) getRecordCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
