package textdiff

import (
	"strings"
)

// Mode selects how a pair of lines is compared.
type Mode string

const (
	// ModeToken aligns the lines token by token.
	ModeToken Mode = "token"
	// ModeChar marks characters that differ at the same position.
	ModeChar Mode = "char"
)

// LineOptions controls Lines.
type LineOptions struct {
	Mode        Mode
	IgnoreCase  bool
	OnlyChanged bool
}

// Line is the comparison of the n-th line of both texts. Ops is set in token
// mode, LeftSpans and RightSpans in char mode.
type Line struct {
	Number  int
	Left    string
	Right   string
	Changed bool

	Ops        []Op
	LeftSpans  []Span
	RightSpans []Span
}

// Lines compares two texts line by line. The shorter text is padded with
// empty lines so both sides have the same number of lines. With IgnoreCase
// both texts are lower-cased before comparison.
func Lines(a, b string, opts LineOptions) []Line {
	if opts.IgnoreCase {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}

	left, right := splitLines(a), splitLines(b)
	n := max(len(left), len(right))

	out := make([]Line, 0, n)
	for i := range n {
		l := Line{Number: i + 1, Left: at(left, i), Right: at(right, i)}

		switch opts.Mode {
		case ModeChar:
			l.Changed = l.Left != l.Right
			l.LeftSpans = Chars(l.Left, l.Right)
			l.RightSpans = Chars(l.Right, l.Left)
		default:
			l.Ops = Tokens(l.Left, l.Right)
			l.Changed = HasChanges(l.Ops)
		}

		if opts.OnlyChanged && !l.Changed {
			continue
		}
		out = append(out, l)
	}

	return out
}

// AnyChanged reports whether any line differs.
func AnyChanged(lines []Line) bool {
	for _, l := range lines {
		if l.Changed {
			return true
		}
	}
	return false
}

// splitLines splits on \n and \r\n.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func at(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
