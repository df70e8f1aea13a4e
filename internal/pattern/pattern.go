package pattern

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// Option configures Compile.
type Option func(*options)

type options struct {
	caseSensitive bool
	matchTimeout  time.Duration
}

// WithCaseSensitive selects case-sensitive matching. Matching is
// case-insensitive by default.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(o *options) {
		o.caseSensitive = caseSensitive
	}
}

// WithMatchTimeout bounds the time spent in a single match attempt. Zero
// leaves matching unbounded.
func WithMatchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.matchTimeout = d
	}
}

// Pattern is a compiled pattern together with its group analysis. It is safe
// for concurrent use.
type Pattern struct {
	analysis      *Analysis
	re            *regexp2.Regexp
	caseSensitive bool

	// slots[g] is the engine's number for group g
	slots []int
}

// Compile analyzes and compiles expr.
func Compile(expr string, opts ...Option) (*Pattern, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	analysis, err := Analyze(expr)
	if err != nil {
		return nil, err
	}

	flags := regexp2.None
	if !o.caseSensitive {
		flags |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(analysis.Source, flags)
	if err != nil {
		return nil, &SyntaxError{Pattern: expr, Offset: -1, Reason: err.Error()}
	}
	if o.matchTimeout > 0 {
		re.MatchTimeout = o.matchTimeout
	}

	slots := make([]int, len(analysis.Groups)+1)
	unnamed := 0
	for _, g := range analysis.Groups {
		if g.Name != "" {
			slots[g.Number] = re.GroupNumberFromName(g.Name)
			continue
		}
		unnamed++
		slots[g.Number] = unnamed
	}

	return &Pattern{
		analysis:      analysis,
		re:            re,
		caseSensitive: o.caseSensitive,
		slots:         slots,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, opts ...Option) *Pattern {
	p, err := Compile(expr, opts...)
	if err != nil {
		panic(fmt.Sprintf("pattern: Compile(%q): %v", expr, err))
	}
	return p
}

// String returns the pattern as given to Compile.
func (p *Pattern) String() string {
	return p.analysis.Expr
}

// CaseSensitive reports whether the pattern matches case-sensitively.
func (p *Pattern) CaseSensitive() bool {
	return p.caseSensitive
}

// NumGroups returns the number of capturing groups.
func (p *Pattern) NumGroups() int {
	return p.analysis.NumGroups()
}

// Depth returns the nesting depth of group g.
func (p *Pattern) Depth(g int) int {
	return p.analysis.Depth(g)
}

// Groups returns the capturing groups in order.
func (p *Pattern) Groups() []Group {
	out := make([]Group, len(p.analysis.Groups))
	copy(out, p.analysis.Groups)
	return out
}

// Span is a half-open range of rune offsets.
type Span struct {
	Start int
	End   int
}

// Match holds the spans of one match. Group 0 is the whole match.
type Match struct {
	spans   []Span
	present []bool
}

// Group returns the span of group g and whether the group took part in the
// match.
func (m Match) Group(g int) (Span, bool) {
	if g < 0 || g >= len(m.spans) || !m.present[g] {
		return Span{}, false
	}
	return m.spans[g], true
}

// FindAll returns every non-overlapping match in text, left to right. An
// error is returned only when the match timeout expires.
func (p *Pattern) FindAll(text []rune) ([]Match, error) {
	var matches []Match

	m, err := p.re.FindRunesMatch(text)
	for m != nil && err == nil {
		matches = append(matches, p.convert(m))
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("matching %q: %w", p.analysis.Expr, err)
	}
	return matches, nil
}

func (p *Pattern) convert(m *regexp2.Match) Match {
	out := Match{
		spans:   make([]Span, len(p.slots)),
		present: make([]bool, len(p.slots)),
	}
	out.spans[0] = Span{Start: m.Index, End: m.Index + m.Length}
	out.present[0] = true
	for g := 1; g < len(p.slots); g++ {
		grp := m.GroupByNumber(p.slots[g])
		if grp == nil || len(grp.Captures) == 0 {
			continue
		}
		out.spans[g] = Span{Start: grp.Index, End: grp.Index + grp.Length}
		out.present[g] = true
	}
	return out
}
