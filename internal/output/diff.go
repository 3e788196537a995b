package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacoelho/dq/internal/textdiff"
	"github.com/jacoelho/dq/internal/tree"
)

// Markers around changed text in the text format.
const (
	DeleteStart = "[-"
	DeleteEnd   = "-]"
	InsertStart = "{+"
	InsertEnd   = "+}"
)

// Diff renders a line by line text comparison.
//
// In text format an unchanged line is printed once. A changed line is
// printed twice, prefixed with - for the left side and + for the right, and
// the differing tokens are wrapped in [-...-] and {+...+}.
func Diff(w io.Writer, format Format, meta Meta, lines []textdiff.Line) error {
	if format == FormatText {
		return diffText(w, lines)
	}

	items := make(tree.Array, 0, len(lines))
	for _, l := range lines {
		item := tree.NewObject(6)
		item.Set("line", number(l.Number))
		item.Set("left", tree.String(l.Left))
		item.Set("right", tree.String(l.Right))
		item.Set("changed", tree.Bool(l.Changed))
		if l.Ops != nil {
			item.Set("ops", opsValue(l.Ops))
		}
		if l.LeftSpans != nil || l.RightSpans != nil {
			item.Set("left_spans", spansValue(l.LeftSpans))
			item.Set("right_spans", spansValue(l.RightSpans))
		}
		items = append(items, item)
	}

	report := newReport(meta)
	report.Set("identical", tree.Bool(!textdiff.AnyChanged(lines)))
	report.Set("lines", items)
	return writeReport(w, format, report)
}

func diffText(w io.Writer, lines []textdiff.Line) error {
	width := len(fmt.Sprint(maxLine(lines)))

	for _, l := range lines {
		if !l.Changed {
			if _, err := fmt.Fprintf(w, "  %*d  %s\n", width, l.Number, l.Left); err != nil {
				return err
			}
			continue
		}

		left, right := markLine(l)
		if _, err := fmt.Fprintf(w, "- %*d  %s\n+ %*d  %s\n", width, l.Number, left, width, l.Number, right); err != nil {
			return err
		}
	}
	return nil
}

// markLine renders both sides of a changed line with the changes marked.
func markLine(l textdiff.Line) (string, string) {
	var left, right strings.Builder

	if l.Ops == nil {
		writeSpans(&left, l.LeftSpans, DeleteStart, DeleteEnd)
		writeSpans(&right, l.RightSpans, InsertStart, InsertEnd)
		return left.String(), right.String()
	}

	for _, op := range l.Ops {
		switch op.Kind {
		case textdiff.Equal:
			left.WriteString(op.Text())
			right.WriteString(op.Text())
		case textdiff.Delete:
			left.WriteString(DeleteStart + op.Text() + DeleteEnd)
		case textdiff.Insert:
			right.WriteString(InsertStart + op.Text() + InsertEnd)
		}
	}
	return left.String(), right.String()
}

func writeSpans(b *strings.Builder, spans []textdiff.Span, start, end string) {
	for _, s := range spans {
		if s.Changed {
			b.WriteString(start + s.Text + end)
			continue
		}
		b.WriteString(s.Text)
	}
}

func maxLine(lines []textdiff.Line) int {
	n := 0
	for _, l := range lines {
		n = max(n, l.Number)
	}
	return n
}

func opsValue(ops []textdiff.Op) tree.Array {
	arr := make(tree.Array, 0, len(ops))
	for _, op := range ops {
		item := tree.NewObject(2)
		item.Set("op", tree.String(op.Kind.String()))
		item.Set("text", tree.String(op.Text()))
		arr = append(arr, item)
	}
	return arr
}

func spansValue(spans []textdiff.Span) tree.Array {
	arr := make(tree.Array, 0, len(spans))
	for _, s := range spans {
		item := tree.NewObject(2)
		item.Set("text", tree.String(s.Text))
		item.Set("changed", tree.Bool(s.Changed))
		arr = append(arr, item)
	}
	return arr
}
