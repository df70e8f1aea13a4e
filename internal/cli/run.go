package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// LineProcessor colorizes one line of input.
type LineProcessor interface {
	ProcessLine(line string) (string, error)
}

// Stats summarizes one run.
type Stats struct {
	Lines        int64
	BytesRead    uint64
	BytesWritten uint64
	Duration     time.Duration
}

// LogValue implements slog.LogValuer with human readable counters.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("lines", humanize.Comma(s.Lines)),
		slog.String("read", humanize.Bytes(s.BytesRead)),
		slog.String("written", humanize.Bytes(s.BytesWritten)),
		slog.Duration("duration", s.Duration),
	)
}

type readResult struct {
	line string
	err  error
}

// Run reads lines from r until EOF, passes each through proc and writes the
// result followed by a newline to w. With unbuffered set every line is
// flushed as soon as it is written. Run stops early when ctx is canceled and
// then returns ctx.Err(). Write failures, including a closed pipe, are
// returned as they are.
func Run(ctx context.Context, r io.Reader, w io.Writer, proc LineProcessor, unbuffered bool) (Stats, error) {
	started := time.Now()
	var stats Stats

	// releases readLines when the loop stops before EOF
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := bufio.NewWriter(w)
	lines := make(chan readResult)
	go readLines(ctx, r, lines)

	err := func() error {
		for {
			var res readResult
			select {
			case <-ctx.Done():
				return ctx.Err()
			case res = <-lines:
			}

			if res.line != "" {
				stats.Lines++
				stats.BytesRead += uint64(len(res.line))

				colored, err := proc.ProcessLine(res.line)
				if err != nil {
					return err
				}
				n, err := out.WriteString(colored + "\n")
				stats.BytesWritten += uint64(n)
				if err != nil {
					return err
				}
				if unbuffered {
					if err := out.Flush(); err != nil {
						return err
					}
				}
			}

			if res.err != nil {
				if errors.Is(res.err, io.EOF) {
					return nil
				}
				return fmt.Errorf("reading input: %w", res.err)
			}
		}
	}()

	// flush what was produced even when stopping early
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	stats.Duration = time.Since(started)
	return stats, err
}

// readLines sends every line of r, newline included, then the terminating
// error. It gives up when ctx is canceled.
func readLines(ctx context.Context, r io.Reader, lines chan<- readResult) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		select {
		case lines <- readResult{line: line, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}
