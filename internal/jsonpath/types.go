package jsonpath

import (
	"strconv"
	"strings"
)

// Step is one compiled element of a path expression.
// The set of steps is closed: Property, Wildcard, RecursiveDescent, Index
// and Slice.
type Step interface {
	String() string
	isStep()
}

type (
	// Property selects the member of an object with the given name.
	Property struct{ Name string }

	// Wildcard selects every element of an array or every member of an object.
	Wildcard struct{}

	// RecursiveDescent applies the remaining steps to every node strictly
	// below the current one.
	RecursiveDescent struct{}

	// Index selects array elements by position, in list order.
	Index struct{ Indexes []int }

	// Slice selects a contiguous range of array elements.
	// Bounds are only meaningful when the matching Has flag is set; negative
	// bounds count from the end of the array.
	Slice struct {
		Start, End       int
		HasStart, HasEnd bool
	}
)

func (Property) isStep()         {}
func (Wildcard) isStep()         {}
func (RecursiveDescent) isStep() {}
func (Index) isStep()            {}
func (Slice) isStep()            {}

func (p Property) String() string {
	if isIdentifier(p.Name) {
		return "." + p.Name
	}
	return "[" + quoteName(p.Name) + "]"
}

func (Wildcard) String() string { return "[*]" }

func (RecursiveDescent) String() string { return ".." }

func (x Index) String() string {
	parts := make([]string, len(x.Indexes))
	for i, idx := range x.Indexes {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (s Slice) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if s.HasStart {
		b.WriteString(strconv.Itoa(s.Start))
	}
	b.WriteByte(':')
	if s.HasEnd {
		b.WriteString(strconv.Itoa(s.End))
	}
	b.WriteByte(']')
	return b.String()
}

// bounds resolves the slice against an array of length n.
// The returned range is clamped to [0, n] and may be empty.
func (s Slice) bounds(n int) (int, int) {
	start, end := 0, n
	if s.HasStart {
		start = resolve(s.Start, n)
	}
	if s.HasEnd {
		end = resolve(s.End, n)
	}
	if end < start {
		end = start
	}
	return start, end
}

func resolve(i, n int) int {
	if i < 0 {
		i += n
	}
	return min(max(i, 0), n)
}

// String renders steps back into an expression starting at the root.
func String(steps []Step) string {
	var b strings.Builder
	b.WriteByte('$')
	for i, s := range steps {
		// a descent followed by a named child prints as `..name`
		if p, ok := s.(Property); ok && i > 0 && isIdentifier(p.Name) {
			if _, rd := steps[i-1].(RecursiveDescent); rd {
				b.WriteString(p.Name)
				continue
			}
		}
		b.WriteString(s.String())
	}
	return b.String()
}

func isIdentifier(name string) bool {
	if name == "" || name == "*" || name == "**" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !idByte(name[i]) {
			return false
		}
	}
	return true
}

// idByte checks if a byte is valid in an unquoted name.
func idByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_' || b == '-' || b >= 0x80
}

func quoteName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", `\'`) + "'"
}
