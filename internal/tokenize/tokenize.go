// Package tokenize splits a line of text into tokens for token-level diffing.
package tokenize

import (
	"unicode"
	"unicode/utf8"
)

// operators are matched longest first so that "<>" never splits into "<" ">".
var operators = []string{"<>", "!=", ">=", "<="}

// single holds the one-byte delimiters.
var single = func() [utf8.RuneSelf]bool {
	var table [utf8.RuneSelf]bool
	for _, c := range ",.()=<>;" {
		table[c] = true
	}
	return table
}()

// Line splits line on whitespace runs and on the delimiters
// `, . ( ) = <> != >= <= > < ;`. Delimiters and whitespace runs are kept
// as tokens, so concatenating the result reproduces line exactly.
func Line(line string) []string {
	tokens := make([]string, 0, len(line)/2)
	start := 0
	pos := 0

	flush := func() {
		if pos > start {
			tokens = append(tokens, line[start:pos])
		}
	}

	for pos < len(line) {
		if n := delimiterLen(line, pos); n > 0 {
			flush()
			tokens = append(tokens, line[pos:pos+n])
			pos += n
			start = pos
			continue
		}

		if n := spaceLen(line, pos); n > 0 {
			flush()
			tokens = append(tokens, line[pos:pos+n])
			pos += n
			start = pos
			continue
		}

		_, size := utf8.DecodeRuneInString(line[pos:])
		pos += size
	}
	flush()

	return tokens
}

func delimiterLen(line string, pos int) int {
	for _, op := range operators {
		if len(line)-pos >= len(op) && line[pos:pos+len(op)] == op {
			return len(op)
		}
	}
	if c := line[pos]; c < utf8.RuneSelf && single[c] {
		return 1
	}
	return 0
}

// spaceLen returns the byte length of the whitespace run starting at pos.
func spaceLen(line string, pos int) int {
	end := pos
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if !unicode.IsSpace(r) {
			break
		}
		end += size
	}
	return end - pos
}
