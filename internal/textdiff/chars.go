package textdiff

import "strings"

// Span is a run of characters of one side of a positional comparison.
type Span struct {
	Text    string
	Changed bool
}

// Chars compares source with other rune by rune at equal positions and
// returns the runs of source, each marked as changed or not. Positions past
// the end of other count as changed.
func Chars(source, other string) []Span {
	src, cmp := []rune(source), []rune(other)

	var spans []Span
	var cur strings.Builder
	changed := false

	for i, r := range src {
		diff := i >= len(cmp) || cmp[i] != r
		if cur.Len() > 0 && diff != changed {
			spans = append(spans, Span{Text: cur.String(), Changed: changed})
			cur.Reset()
		}
		changed = diff
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		spans = append(spans, Span{Text: cur.String(), Changed: changed})
	}

	return spans
}
