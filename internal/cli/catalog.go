package cli

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/isseis/go-pipetint/internal/color"
	"github.com/isseis/go-pipetint/internal/tint"
)

const (
	swatch         = "████"
	minRuleWidth   = 60
	maxAliasWidth  = 28
	hiddenStyle    = "hidden"
	catalogUsage   = "Usage: pipetint 'pattern' <color>"
	noMatchMessage = "No colors match %q\n"
)

// CatalogOptions configures ListColors.
type CatalogOptions struct {
	// Filter is a glob matched against canonical names and aliases; empty
	// shows everything
	Filter string

	// Color renders the samples; without it only the names are listed
	Color bool
}

type catalogSection struct {
	title string
	names []string
	row   func(p painter, name, aka string) []string
}

// painter renders text through the engine, or leaves it plain.
type painter struct {
	enabled bool
}

func (p painter) paint(text string, names ...string) string {
	if !p.enabled {
		return text
	}
	t := tint.New(text)
	for _, name := range names {
		next, err := t.Colorize(name)
		if err != nil {
			return text
		}
		t = next
	}
	return t.String()
}

// ListColors writes every color and style the registry knows, grouped into
// foreground colors, background colors and text styles, each with a sample
// rendered by the engine and the aliases that resolve to it.
func ListColors(w io.Writer, opts CatalogOptions) error {
	match := func(string) bool { return true }
	if opts.Filter != "" {
		g, err := glob.Compile(strings.ToLower(opts.Filter))
		if err != nil {
			return fmt.Errorf("%w: --filter %q: %w", ErrInvalidArguments, opts.Filter, err)
		}
		match = g.Match
	}

	aliases := aliasesByTarget()
	p := painter{enabled: opts.Color}

	sections := []catalogSection{
		{
			title: "Foreground Colors",
			names: color.ForegroundNames(),
			row: func(p painter, name, aka string) []string {
				return []string{p.paint(swatch, name), p.paint("This is "+name, name), aka}
			},
		},
		{
			title: "Background Colors",
			names: color.BackgroundNames(),
			row: func(p painter, name, aka string) []string {
				return []string{p.paint(swatch, name, "black"), p.paint("This is "+name, name, "black"), aka}
			},
		},
		{
			title: "Text Styles",
			names: color.StyleNames(),
			row: func(p painter, name, aka string) []string {
				if name == hiddenStyle {
					return []string{"", "This is " + name + " (text hidden in terminal)", aka}
				}
				return []string{"", p.paint("This is "+name, name), aka}
			},
		},
	}

	var body bytes.Buffer
	shown := 0
	for _, sec := range sections {
		var rows [][]string
		for _, name := range sec.names {
			names := append([]string{name}, aliases[name]...)
			if !slices.ContainsFunc(names, match) {
				continue
			}
			rows = append(rows, sec.row(p, name, runewidth.Truncate(strings.Join(aliases[name], ", "), maxAliasWidth, "…")))
		}
		if len(rows) == 0 {
			continue
		}
		shown += len(rows)
		writeSection(&body, p, sec.title, rows)
	}

	if shown == 0 {
		_, err := fmt.Fprintf(w, noMatchMessage, opts.Filter)
		return err
	}

	var out bytes.Buffer
	out.WriteString(p.paint("Available Colors", "bold") + "\n")
	out.WriteString(strings.Repeat("=", minRuleWidth) + "\n\n")
	out.Write(body.Bytes())
	out.WriteString(strings.Repeat("=", minRuleWidth) + "\n")
	out.WriteString(p.paint(catalogUsage, "dim") + "\n")
	_, err := w.Write(out.Bytes())
	return err
}

func writeSection(w *bytes.Buffer, p painter, title string, rows [][]string) {
	var table bytes.Buffer
	tw := tablewriter.NewWriter(&table)
	tw.SetBorder(false)
	tw.SetHeaderLine(false)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetNoWhiteSpace(true)
	tw.SetTablePadding("  ")
	tw.AppendBulk(rows)
	tw.Render()

	// the rule spans the widest row
	width := minRuleWidth
	lines := strings.Split(strings.TrimRight(table.String(), "\n"), "\n")
	for i, line := range lines {
		line = "  " + strings.TrimRight(line, " ")
		lines[i] = line
		width = max(width, runewidth.StringWidth(tint.Strip(line)))
	}

	w.WriteString(p.paint(title, "bold") + "\n")
	w.WriteString(strings.Repeat("-", width) + "\n")
	for _, line := range lines {
		w.WriteString(line + "\n")
	}
	w.WriteString("\n")
}

// aliasesByTarget lists, for every canonical name, the user-facing aliases
// that resolve to it. The fg_ and _bg spellings exist for every color and
// are left out.
func aliasesByTarget() map[string][]string {
	out := make(map[string][]string)
	for alias, target := range color.Aliases() {
		if strings.HasPrefix(alias, "fg_") || strings.HasSuffix(alias, "_bg") {
			continue
		}
		out[target] = append(out[target], alias)
	}
	for target := range out {
		slices.Sort(out[target])
	}
	return out
}
