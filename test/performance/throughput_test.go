// Package performance holds throughput and memory tests for the line loop.
// They are skipped in short mode.
package performance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/dustin/go-humanize"
	"github.com/stretchr/testify/require"

	"github.com/isseis/go-pipetint/internal/cli"
)

const logLine = "2024-01-15 10:30:45 ERROR: Connection timeout at server.py:42 (retry 3 of 5)\n"

func newProcessor(tb testing.TB, plain bool, args ...string) *cli.Processor {
	tb.Helper()
	opts, err := cli.ParseArgs(args, io.Discard)
	require.NoError(tb, err)
	settings, err := cli.Resolve(opts, nil)
	require.NoError(tb, err)
	proc, err := cli.NewProcessor(settings, cli.ProcessorOptions{Plain: plain})
	require.NoError(tb, err)
	return proc
}

// TestLargeInputMemoryUsage streams many lines and checks that memory use
// does not grow with the input.
func TestLargeInputMemoryUsage(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	const lines = 50_000
	input := strings.Repeat(logLine, lines)
	proc := newProcessor(t, false, `(\d{4}-\d{2}-\d{2}).*?(ERROR|WARN|INFO).*?([a-z_]+\.py:\d+)`, "cyan", "red,bold", "yellow")

	var initialMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&initialMem)

	stats, err := cli.Run(context.Background(), strings.NewReader(input), io.Discard, proc, false)
	require.NoError(t, err)
	require.Equal(t, int64(lines), stats.Lines)

	var finalMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&finalMem)

	var retained uint64
	if finalMem.HeapAlloc > initialMem.HeapAlloc {
		retained = finalMem.HeapAlloc - initialMem.HeapAlloc
	}
	t.Logf("processed %s lines (%s) in %v, heap retained %s",
		humanize.Comma(stats.Lines), humanize.Bytes(stats.BytesRead), stats.Duration, humanize.Bytes(retained))

	// nothing per line may survive the run
	require.Less(t, retained, uint64(len(input)), "heap grew with the input")
}

// TestPipelineStagesStayLinear feeds the output of one stage into the next
// and checks the escape overhead does not compound.
func TestPipelineStagesStayLinear(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}

	stages := []*cli.Processor{
		newProcessor(t, false, `ERROR`, "red,bold"),
		newProcessor(t, false, `\d{2}:\d{2}:\d{2}`, "blue"),
		newProcessor(t, false, `[a-z_]+\.py:\d+`, "yellow"),
		newProcessor(t, false, `ERROR`, "red,bold"),
	}

	input := strings.Repeat(logLine, 1000)
	var sizes []int
	for _, proc := range stages {
		var out bytes.Buffer
		_, err := cli.Run(context.Background(), strings.NewReader(input), &out, proc, false)
		require.NoError(t, err)
		sizes = append(sizes, out.Len())
		input = out.String()
	}

	// the last stage repeats the first, so it must not add anything
	require.Equal(t, sizes[2], sizes[3], fmt.Sprint(sizes))
}

func BenchmarkRun(b *testing.B) {
	cases := []struct {
		name  string
		plain bool
		args  []string
	}{
		{"default pattern", false, nil},
		{"three groups", false, []string{`(\d{4}-\d{2}-\d{2}).*?(ERROR|WARN|INFO).*?([a-z_]+\.py:\d+)`, "cyan", "red", "yellow"}},
		{"plain output", true, []string{"ERROR", "red"}},
	}

	input := strings.Repeat(logLine, 1000)
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			proc := newProcessor(b, c.plain, c.args...)
			b.SetBytes(int64(len(input)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := cli.Run(context.Background(), strings.NewReader(input), io.Discard, proc, false); err != nil {
					b.Fatalf("Run failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkProcessLine_Reingest(b *testing.B) {
	proc := newProcessor(b, false, `\d{2}:\d{2}:\d{2}`, "blue")
	colored, err := newProcessor(b, false, `ERROR`, "red,bold").ProcessLine(logLine)
	if err != nil {
		b.Fatalf("ProcessLine failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := proc.ProcessLine(colored); err != nil {
			b.Fatalf("ProcessLine failed: %v", err)
		}
	}
}
