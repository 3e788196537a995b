package textdiff

import "unicode/utf8"

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
	// maxTokens is the number of runes available once surrogates are skipped.
	maxTokens = utf8.MaxRune + 1 - (surrogateMax - surrogateMin + 1)
)

// encoder assigns every distinct token a rune, shared across both inputs so
// equal tokens map to equal runes.
type encoder struct {
	ids    map[string]rune
	tokens []string
}

func newEncoder() *encoder {
	return &encoder{ids: make(map[string]rune)}
}

func (e *encoder) encode(tokens []string) ([]rune, bool) {
	out := make([]rune, len(tokens))
	for i, tok := range tokens {
		r, ok := e.ids[tok]
		if !ok {
			if len(e.tokens) >= maxTokens {
				return nil, false
			}
			r = indexToRune(len(e.tokens))
			e.ids[tok] = r
			e.tokens = append(e.tokens, tok)
		}
		out[i] = r
	}
	return out, true
}

func (e *encoder) decode(text string) []string {
	out := make([]string, 0, len(text))
	for _, r := range text {
		out = append(out, e.tokens[runeToIndex(r)])
	}
	return out
}

// indexToRune skips the surrogate block, which does not survive a round trip
// through a Go string.
func indexToRune(i int) rune {
	r := rune(i)
	if r >= surrogateMin {
		r += surrogateMax - surrogateMin + 1
	}
	return r
}

func runeToIndex(r rune) int {
	if r > surrogateMax {
		r -= surrogateMax - surrogateMin + 1
	}
	return int(r)
}
