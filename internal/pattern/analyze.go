// Package pattern compiles the regular expressions used for highlighting and
// reports, for every capturing group, how deeply it is nested.
//
// Patterns use the familiar Perl/Python dialect: named groups may be written
// as (?P<name>...) or (?<name>...), lookahead and lookbehind are supported,
// and (?x) enables verbose mode. Analyze walks the pattern with a small
// recursive-descent parser. It numbers groups left to right and records the
// number of grouping constructs that enclose each one. While walking it also
// produces the equivalent source for the matching engine.
package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Group describes one capturing group.
type Group struct {
	Number int    // 1-based, counted by opening parenthesis
	Name   string // empty for unnamed groups
	Depth  int    // grouping constructs enclosing the group, itself included
}

// Analysis is the result of walking a pattern.
type Analysis struct {
	Expr   string  // pattern as given
	Source string  // equivalent source for the matching engine
	Groups []Group // capturing groups ordered by Number
}

// NumGroups returns the number of capturing groups.
func (a *Analysis) NumGroups() int {
	return len(a.Groups)
}

// Depth returns the nesting depth of group g. Group 0 and unknown groups
// have depth 0.
func (a *Analysis) Depth(g int) int {
	if g < 1 || g > len(a.Groups) {
		return 0
	}
	return a.Groups[g-1].Depth
}

// Depths returns the depth of every group keyed by group number, including
// group 0 at depth 0.
func (a *Analysis) Depths() map[int]int {
	depths := make(map[int]int, len(a.Groups)+1)
	depths[0] = 0
	for _, g := range a.Groups {
		depths[g.Number] = g.Depth
	}
	return depths
}

// Analyze parses expr and returns its group structure.
func Analyze(expr string) (*Analysis, error) {
	p := &parser{
		expr:  expr,
		src:   []rune(expr),
		names: make(map[string]int),
	}
	if err := p.parseAlternation(0, -1); err != nil {
		return nil, err
	}
	return &Analysis{
		Expr:   expr,
		Source: p.out.String(),
		Groups: p.groups,
	}, nil
}

type parser struct {
	expr    string
	src     []rune
	pos     int
	out     strings.Builder
	verbose bool
	groups  []Group
	names   map[string]int

	// ordinals[i] is the position of group i+1 among unnamed groups
	ordinals []int
	unnamed  int
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	return &SyntaxError{Pattern: p.expr, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek(ahead int) rune {
	if p.pos+ahead >= len(p.src) {
		return 0
	}
	return p.src[p.pos+ahead]
}

// parseAlternation parses branches separated by '|'. open is the offset of
// the enclosing '(' or -1 at top level. Every branch is parsed at the same
// depth, and the closing ')' is left for the caller.
func (p *parser) parseAlternation(depth, open int) error {
	for {
		if err := p.parseSequence(depth); err != nil {
			return err
		}
		if p.eof() {
			if open >= 0 {
				return p.errorf(open, "missing ), unterminated subpattern")
			}
			return nil
		}
		switch p.src[p.pos] {
		case '|':
			p.out.WriteRune('|')
			p.pos++
		case ')':
			if open < 0 {
				return p.errorf(p.pos, "unbalanced parenthesis")
			}
			return nil
		}
	}
}

func (p *parser) parseSequence(depth int) error {
	for !p.eof() {
		r := p.src[p.pos]
		switch {
		case r == '|' || r == ')':
			return nil
		case r == '\\':
			if err := p.parseEscape(); err != nil {
				return err
			}
		case r == '[':
			if err := p.parseClass(); err != nil {
				return err
			}
		case r == '(':
			if err := p.parseGroup(depth); err != nil {
				return err
			}
		case p.verbose && r == '#':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.out.WriteRune(p.src[p.pos])
				p.pos++
			}
		default:
			p.out.WriteRune(r)
			p.pos++
		}
	}
	return nil
}

func (p *parser) parseEscape() error {
	if p.pos+1 >= len(p.src) {
		return p.errorf(p.pos, "bad escape (end of pattern)")
	}
	next := p.src[p.pos+1]
	if next >= '1' && next <= '9' && !p.octalAhead() {
		return p.parseBackreference()
	}
	if next == 'Z' {
		// end of string without the trailing-newline allowance of \Z
		p.out.WriteString(`\z`)
	} else {
		p.out.WriteRune('\\')
		p.out.WriteRune(next)
	}
	p.pos += 2
	return nil
}

// octalAhead reports whether the escape at pos is a three digit octal escape.
func (p *parser) octalAhead() bool {
	for i := 1; i <= 3; i++ {
		if c := p.peek(i); c < '0' || c > '7' {
			return false
		}
	}
	return true
}

// parseBackreference rewrites \N so that it refers to the same group under
// the engine's numbering, which counts unnamed groups before named ones.
func (p *parser) parseBackreference() error {
	start := p.pos
	p.pos++
	n := 0
	for digits := 0; digits < 2 && !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9'; digits++ {
		n = n*10 + int(p.src[p.pos]-'0')
		p.pos++
	}
	ref, ok := p.engineRef(n)
	if !ok {
		return p.errorf(start, "invalid group reference %d", n)
	}
	if strings.HasPrefix(ref, "<") {
		p.out.WriteString(`\k` + ref)
	} else {
		p.out.WriteString(`\` + ref)
	}
	// keep a following literal digit from joining the reference
	if !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.out.WriteString("(?:)")
	}
	return nil
}

// engineRef returns how group n is addressed by the engine: "<name>" for
// named groups, otherwise its ordinal among unnamed groups.
func (p *parser) engineRef(n int) (string, bool) {
	if n < 1 || n > len(p.groups) {
		return "", false
	}
	if g := p.groups[n-1]; g.Name != "" {
		return "<" + g.Name + ">", true
	}
	return strconv.Itoa(p.ordinals[n-1]), true
}

func (p *parser) parseClass() error {
	start := p.pos
	p.out.WriteRune('[')
	p.pos++
	if p.peek(0) == '^' {
		p.out.WriteRune('^')
		p.pos++
	}
	// a leading ']' is literal
	if p.peek(0) == ']' {
		p.out.WriteRune(']')
		p.pos++
	}
	for {
		if p.eof() {
			return p.errorf(start, "unterminated character set")
		}
		r := p.src[p.pos]
		switch r {
		case '\\':
			if p.pos+1 >= len(p.src) {
				return p.errorf(start, "unterminated character set")
			}
			p.out.WriteRune(r)
			p.out.WriteRune(p.src[p.pos+1])
			p.pos += 2
		case ']':
			p.out.WriteRune(r)
			p.pos++
			return nil
		default:
			p.out.WriteRune(r)
			p.pos++
		}
	}
}

// parseGroup handles every construct that starts with '('. Constructs with a
// body add one level of depth whether or not they capture.
func (p *parser) parseGroup(depth int) error {
	open := p.pos
	p.pos++

	if p.peek(0) != '?' {
		p.addGroup("", depth+1)
		p.out.WriteRune('(')
		return p.parseBody(depth+1, open)
	}

	switch p.peek(1) {
	case 'P':
		return p.parsePythonExtension(depth, open)
	case ':', '=', '!', '>':
		p.out.WriteString("(?")
		p.out.WriteRune(p.peek(1))
		p.pos += 2
		return p.parseBody(depth+1, open)
	case '<':
		if c := p.peek(2); c == '=' || c == '!' {
			p.out.WriteString("(?<")
			p.out.WriteRune(c)
			p.pos += 3
			return p.parseBody(depth+1, open)
		}
		p.pos += 2
		return p.parseNamedGroup(depth, open, '>')
	case '\'':
		p.pos += 2
		return p.parseNamedGroup(depth, open, '\'')
	case '#':
		p.pos += 2
		for !p.eof() && p.src[p.pos] != ')' {
			p.pos++
		}
		if p.eof() {
			return p.errorf(open, "missing ), unterminated comment")
		}
		p.pos++
		return nil
	case '(':
		p.pos += 2
		cond, err := p.readUntil(')', open, "missing ), unterminated name")
		if err != nil {
			return err
		}
		if n, convErr := strconv.Atoi(cond); convErr == nil {
			ref, ok := p.engineRef(n)
			if !ok {
				return p.errorf(open, "invalid group reference %d", n)
			}
			cond = strings.Trim(ref, "<>")
		}
		p.out.WriteString("(?(" + cond + ")")
		return p.parseBody(depth+1, open)
	default:
		return p.parseFlags(depth, open)
	}
}

func (p *parser) parsePythonExtension(depth, open int) error {
	switch p.peek(2) {
	case '<':
		p.pos += 3
		return p.parseNamedGroup(depth, open, '>')
	case '=':
		p.pos += 3
		name, err := p.readUntil(')', open, "missing ), unterminated name")
		if err != nil {
			return err
		}
		if _, ok := p.names[name]; !ok {
			return &SyntaxError{Pattern: p.expr, Offset: open, Reason: fmt.Sprintf("unknown group name %q", name), Err: ErrUnknownGroupName}
		}
		p.out.WriteString(`\k<` + name + `>`)
		return nil
	default:
		return p.errorf(open, "unknown extension ?P%c", p.peek(2))
	}
}

// parseNamedGroup is entered just after the opening delimiter of the name.
func (p *parser) parseNamedGroup(depth, open int, terminator rune) error {
	name, err := p.readUntil(terminator, open, "missing %c, unterminated name", terminator)
	if err != nil {
		return err
	}
	if !validGroupName(name) {
		return p.errorf(open, "bad character in group name %q", name)
	}
	if _, dup := p.names[name]; dup {
		return &SyntaxError{Pattern: p.expr, Offset: open, Reason: fmt.Sprintf("redefinition of group name %q", name), Err: ErrDuplicateGroupName}
	}
	p.addGroup(name, depth+1)
	p.out.WriteString("(?<" + name + ">")
	return p.parseBody(depth+1, open)
}

// parseFlags handles (?flags) and (?flags:...). The a, L and u flags select
// the character semantics of other engines and are dropped.
func (p *parser) parseFlags(depth, open int) error {
	p.pos++
	var kept strings.Builder
	verbose := p.verbose
	off := false
	for {
		if p.eof() {
			return p.errorf(open, "missing -, : or )")
		}
		r := p.src[p.pos]
		switch {
		case r == ')' || r == ':':
			p.pos++
			flags := kept.String()
			if flags == "-" {
				flags = ""
			}
			if r == ')' {
				p.verbose = verbose
				if flags != "" {
					p.out.WriteString("(?" + flags + ")")
				}
				return nil
			}
			p.out.WriteString("(?" + flags + ":")
			saved := p.verbose
			p.verbose = verbose
			err := p.parseBody(depth+1, open)
			p.verbose = saved
			return err
		case r == '-':
			if off {
				return p.errorf(p.pos, "bad inline flags")
			}
			off = true
			kept.WriteRune(r)
		case strings.ContainsRune("imsx", r):
			if r == 'x' {
				verbose = !off
			}
			kept.WriteRune(r)
		case strings.ContainsRune("aLu", r):
		default:
			return p.errorf(p.pos, "unknown extension ?%c", r)
		}
		p.pos++
	}
}

// parseBody parses the contents of a group opened at open and consumes the
// closing parenthesis.
func (p *parser) parseBody(depth, open int) error {
	if err := p.parseAlternation(depth, open); err != nil {
		return err
	}
	p.out.WriteRune(')')
	p.pos++
	return nil
}

func (p *parser) readUntil(terminator rune, open int, format string, args ...any) (string, error) {
	start := p.pos
	for !p.eof() && p.src[p.pos] != terminator {
		p.pos++
	}
	if p.eof() {
		return "", p.errorf(open, format, args...)
	}
	s := string(p.src[start:p.pos])
	p.pos++
	return s, nil
}

func (p *parser) addGroup(name string, depth int) {
	g := Group{Number: len(p.groups) + 1, Name: name, Depth: depth}
	p.groups = append(p.groups, g)
	if name != "" {
		p.names[name] = g.Number
		p.ordinals = append(p.ordinals, 0)
		return
	}
	p.unnamed++
	p.ordinals = append(p.ordinals, p.unnamed)
}

func validGroupName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
