package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/acarl005/stripansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintHelp_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHelp(&buf, false))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "usage: echo 'text' | pipetint"))
	assert.NotContains(t, out, "\x1b[")
	for _, flag := range []string{"-verbose", "-unbuffered", "-case-sensitive", "-replace-all", "-list-colors", "-filter", "-color", "-preset", "-config", "-log-level", "-log-dir"} {
		assert.Contains(t, out, flag)
	}
	assert.Contains(t, out, "pipetint '(h.(ll))' red,blue")
	assert.Contains(t, out, "$ pipetint --list-colors")
}

func TestPrintHelp_ColoredExamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHelp(&buf, true))
	out := buf.String()

	assert.Contains(t, out, "\x1b[31mERROR\x1b[0m: Connection failed")
	assert.Contains(t, out, "\x1b[31mhe\x1b[0m\x1b[34mll\x1b[0mo world")
	assert.Contains(t, out, "\x1b[30m\x1b[43mWARN\x1b[0m: Check logs")
	assert.Contains(t, out, "\x1b[31m\x1b[1mERROR\x1b[0m: Connection failed at \x1b[34m10:30:45\x1b[0m")

	var plain bytes.Buffer
	require.NoError(t, PrintHelp(&plain, false))
	assert.Equal(t, plain.String(), stripansi.Strip(out))
}

func TestHelpExamples_Compile(t *testing.T) {
	for _, e := range helpExamples {
		require.Len(t, e.colors, len(e.patterns), e.comment)
		assert.NotEqual(t, e.input, e.output(true), e.comment)
	}
}
