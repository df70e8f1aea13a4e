package logging

import (
	"bytes"
	"io"
	"sync/atomic"
)

// LogLineTracker counts the lines written to the run log so that errors
// shown on the terminal can point at the matching JSON record.
type LogLineTracker interface {
	// GetCurrentLine returns the number of lines written so far
	GetCurrentLine() int

	// IncrementLine increments the line counter and returns the new line number
	IncrementLine() int

	// Reset resets the line counter to zero
	Reset()
}

// DefaultLogLineTracker is a LogLineTracker safe for concurrent use.
type DefaultLogLineTracker struct {
	lineCounter atomic.Int64
}

// NewDefaultLogLineTracker creates a new DefaultLogLineTracker.
func NewDefaultLogLineTracker() *DefaultLogLineTracker {
	return &DefaultLogLineTracker{}
}

// GetCurrentLine returns the number of lines written so far.
func (t *DefaultLogLineTracker) GetCurrentLine() int {
	return int(t.lineCounter.Load())
}

// IncrementLine increments the line counter and returns the new line number.
func (t *DefaultLogLineTracker) IncrementLine() int {
	return int(t.lineCounter.Add(1))
}

// Reset resets the line counter to zero.
func (t *DefaultLogLineTracker) Reset() {
	t.lineCounter.Store(0)
}

// LineCountingWriter forwards writes to an underlying writer and advances a
// tracker once per newline written.
type LineCountingWriter struct {
	w       io.Writer
	tracker LogLineTracker
}

// NewLineCountingWriter wraps w.
func NewLineCountingWriter(w io.Writer, tracker LogLineTracker) *LineCountingWriter {
	return &LineCountingWriter{w: w, tracker: tracker}
}

// Write implements io.Writer.
func (c *LineCountingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	lines := bytes.Count(p[:n], []byte{'\n'})
	for i := 0; i < lines; i++ {
		c.tracker.IncrementLine()
	}
	return n, err
}
