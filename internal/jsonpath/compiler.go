package jsonpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sliceRe = regexp.MustCompile(`^\s*(-?\d*)\s*:\s*(-?\d*)\s*$`)

// Parse compiles a path expression into the steps Evaluate applies.
// Errors wrap ErrSyntax.
func Parse(expr string) ([]Step, error) {
	if !strings.HasPrefix(expr, "$") {
		return nil, fmt.Errorf("%w: path must start with root marker '$'", ErrSyntax)
	}

	p := &parser{expr: expr, pos: 1}
	for p.pos < len(p.expr) {
		var err error
		switch p.expr[p.pos] {
		case '.':
			err = p.parseDot()
		case '[':
			err = p.parseBracket()
		default:
			err = fmt.Errorf("%w: unexpected %q at position %d, expected '.' or '['", ErrSyntax, p.expr[p.pos], p.pos)
		}
		if err != nil {
			return nil, err
		}
	}

	if p.steps == nil {
		return []Step{}, nil
	}
	return p.steps, nil
}

// Validate reports whether expr compiles.
func Validate(expr string) error {
	_, err := Parse(expr)
	return err
}

type parser struct {
	expr  string
	pos   int
	steps []Step
}

func (p *parser) add(s Step) {
	p.steps = append(p.steps, s)
}

// parseDot handles `.name`, `.*`, `.**` and `..`.
func (p *parser) parseDot() error {
	p.pos++ // consume '.'

	if p.pos < len(p.expr) && p.expr[p.pos] == '.' {
		p.pos++
		p.add(RecursiveDescent{})
		if p.pos == len(p.expr) {
			return fmt.Errorf("%w: path cannot end with '..'", ErrSyntax)
		}
		if c := p.expr[p.pos]; c == '[' || c == '.' {
			return nil
		}
	}

	start := p.pos
	for p.pos < len(p.expr) && p.expr[p.pos] != '.' && p.expr[p.pos] != '[' {
		p.pos++
	}
	name := p.expr[start:p.pos]

	switch {
	case name == "":
		// empty segments such as a trailing '.' are skipped
	case strings.ContainsRune(name, ']'):
		return fmt.Errorf("%w: unbalanced ']' in segment %q", ErrSyntax, name)
	case name == "*":
		p.add(Wildcard{})
	case name == "**":
		p.add(RecursiveDescent{})
	default:
		p.add(Property{Name: name})
	}
	return nil
}

// parseBracket handles one bracket group: a quoted name, a wildcard, an
// index list or a slice.
func (p *parser) parseBracket() error {
	open := p.pos
	p.pos++ // consume '['
	p.skipSpace()

	if p.pos < len(p.expr) && (p.expr[p.pos] == '\'' || p.expr[p.pos] == '"') {
		name, err := p.quoted()
		if err != nil {
			return err
		}
		p.skipSpace()
		if p.pos >= len(p.expr) || p.expr[p.pos] != ']' {
			return fmt.Errorf("%w: expected ']' after quoted name at position %d", ErrSyntax, p.pos)
		}
		p.pos++
		p.add(Property{Name: name})
		return nil
	}

	end := strings.IndexByte(p.expr[p.pos:], ']')
	if end == -1 {
		return fmt.Errorf("%w: unterminated bracket at position %d", ErrSyntax, open)
	}
	content := p.expr[p.pos : p.pos+end]
	p.pos += end + 1

	if strings.ContainsRune(content, '[') {
		return fmt.Errorf("%w: nested '[' in bracket at position %d", ErrSyntax, open)
	}

	step, err := parseSelector(content)
	if err != nil {
		return err
	}
	p.add(step)
	return nil
}

// quoted reads a single or double quoted name. A backslash escapes the
// following character.
func (p *parser) quoted() (string, error) {
	quote := p.expr[p.pos]
	start := p.pos
	p.pos++

	var b strings.Builder
	for p.pos < len(p.expr) {
		c := p.expr[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.expr):
			b.WriteByte(p.expr[p.pos+1])
			p.pos += 2
		case c == quote:
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("%w: unterminated quoted name at position %d", ErrSyntax, start)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.expr) && (p.expr[p.pos] == ' ' || p.expr[p.pos] == '\t') {
		p.pos++
	}
}

func parseSelector(content string) (Step, error) {
	trimmed := strings.TrimSpace(content)

	switch {
	case trimmed == "":
		return nil, fmt.Errorf("%w: empty bracket selector '[]'", ErrSyntax)
	case trimmed == "*":
		return Wildcard{}, nil
	case strings.ContainsRune(trimmed, ':'):
		return parseSlice(trimmed)
	}

	parts := strings.Split(trimmed, ",")
	idx := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid index %q in '[%s]'", ErrSyntax, strings.TrimSpace(part), content)
		}
		idx = append(idx, n)
	}
	return Index{Indexes: idx}, nil
}

func parseSlice(content string) (Step, error) {
	m := sliceRe.FindStringSubmatch(content)
	if m == nil {
		return nil, fmt.Errorf("%w: invalid slice '[%s]', expected [start:end]", ErrSyntax, content)
	}

	var (
		s   Slice
		err error
	)
	if s.Start, s.HasStart, err = sliceBound(m[1], "start"); err != nil {
		return nil, err
	}
	if s.End, s.HasEnd, err = sliceBound(m[2], "end"); err != nil {
		return nil, err
	}
	return s, nil
}

func sliceBound(text, which string) (int, bool, error) {
	if text == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false, fmt.Errorf("%w: slice %s %q is not a number", ErrSyntax, which, text)
	}
	return n, true, nil
}
