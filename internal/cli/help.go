package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/isseis/go-pipetint/internal/tint"
)

const usageText = `usage: echo 'text' | pipetint [flags] [PATTERN] [COLORS...]
       pipetint --list-colors [--filter GLOB]

Colorize text from stdin using ANSI color codes.

Arguments:
  PATTERN   regular expression matched against each line (default: ` + DefaultPattern + `)
  COLORS    colors for each capture group; use commas to stack several on one
            group, e.g. red,bold (default: ` + DefaultColors + `)

Flags:
`

// helpExample is one worked example: the command line, the input it reads
// and the highlight passes that produce its output.
type helpExample struct {
	comment  string
	command  string
	input    string
	patterns []string
	colors   [][]string
}

var helpExamples = []helpExample{
	{
		comment:  "Highlight errors in red",
		command:  `echo "ERROR: Connection failed" | pipetint 'ERROR' red`,
		input:    "ERROR: Connection failed",
		patterns: []string{`ERROR`},
		colors:   [][]string{{"red"}},
	},
	{
		comment:  "Highlight success in green",
		command:  `echo "SUCCESS: Task completed" | pipetint 'SUCCESS' green`,
		input:    "SUCCESS: Task completed",
		patterns: []string{`SUCCESS`},
		colors:   [][]string{{"green"}},
	},
	{
		comment:  "Nested groups - inner color wins",
		command:  `echo "hello world" | pipetint '(h.(ll))' red,blue`,
		input:    "hello world",
		patterns: []string{`(h.(ll))`},
		colors:   [][]string{{"red", "blue"}},
	},
	{
		comment:  "Background + foreground",
		command:  `echo "WARN: Check logs" | pipetint 'WARN' black,bg_yellow`,
		input:    "WARN: Check logs",
		patterns: []string{`WARN`, `WARN`},
		colors:   [][]string{{"black"}, {"bg_yellow"}},
	},
	{
		comment: "Multiple groups - log parsing with 3 groups (date, level, location)",
		command: `echo "2024-01-15 ERROR: Connection timeout at server.py:42" | \` + "\n" +
			`      pipetint '(\d{4}-\d{2}-\d{2}).*?(ERROR|WARN|INFO).*?([a-z_]+\.py:\d+)' \` + "\n" +
			`      cyan red yellow`,
		input:    "2024-01-15 ERROR: Connection timeout at server.py:42",
		patterns: []string{`(\d{4}-\d{2}-\d{2}).*?(ERROR|WARN|INFO).*?([a-z_]+\.py:\d+)`},
		colors:   [][]string{{"cyan", "red", "yellow"}},
	},
	{
		comment: "Pipeline composition - colors preserved across stages",
		command: `echo "ERROR: Connection failed at 10:30:45" | \` + "\n" +
			`      pipetint 'ERROR' red,bold | \` + "\n" +
			`      pipetint '\d{2}:\d{2}:\d{2}' blue`,
		input:    "ERROR: Connection failed at 10:30:45",
		patterns: []string{`ERROR`, `ERROR`, `\d{2}:\d{2}:\d{2}`},
		colors:   [][]string{{"red"}, {"bold"}, {"blue"}},
	},
}

// output renders the example's result, or the plain input when colored is
// false.
func (e helpExample) output(colored bool) string {
	if !colored {
		return e.input
	}
	t := tint.New(e.input)
	for i, expr := range e.patterns {
		next, err := t.Highlight(expr, e.colors[i]...)
		if err != nil {
			return e.input
		}
		t = next
	}
	return t.String()
}

// PrintHelp writes the usage, the flag list and the examples to w. The
// example outputs are colored only when colored is set, which the command
// does when stdout is a terminal.
func PrintHelp(w io.Writer, colored bool) error {
	var sb strings.Builder
	sb.WriteString(usageText)

	fs := newFlagSet(&Options{})
	fs.SetOutput(&sb)
	fs.PrintDefaults()

	sb.WriteString("\nExamples:\n")
	for _, e := range helpExamples {
		fmt.Fprintf(&sb, "  # %s\n  $ %s\n  %s\n\n", e.comment, e.command, e.output(colored))
	}
	sb.WriteString("  # List all available colors\n  $ pipetint --list-colors\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
