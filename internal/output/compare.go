package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jacoelho/dq/internal/compare"
	"github.com/jacoelho/dq/internal/tree"
)

// Absent marks a position missing from one side of a comparison.
const Absent = "<absent>"

// Compare renders the rows of a structural comparison.
func Compare(w io.Writer, format Format, meta Meta, rows []compare.Row) error {
	stats := compare.Summarize(rows)
	if format == FormatText {
		return compareText(w, rows, stats)
	}

	items := make(tree.Array, 0, len(rows))
	for _, r := range rows {
		item := tree.NewObject(4)
		item.Set("path", tree.String(r.Path))
		if r.Left != nil {
			item.Set("left", r.Left)
		}
		if r.Right != nil {
			item.Set("right", r.Right)
		}
		item.Set("status", tree.String(r.Status.String()))
		items = append(items, item)
	}

	summary := tree.NewObject(5)
	summary.Set("rows", number(stats.Rows))
	summary.Set("same", number(stats.Same))
	summary.Set("different", number(stats.Different))
	summary.Set("left_only", number(stats.LeftOnly))
	summary.Set("right_only", number(stats.RightOnly))

	report := newReport(meta)
	report.Set("identical", tree.Bool(stats.Identical()))
	report.Set("summary", summary)
	report.Set("rows", items)
	return writeReport(w, format, report)
}

func compareText(w io.Writer, rows []compare.Row, stats compare.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "PATH\tLEFT\tRIGHT\tSTATUS"); err != nil {
		return err
	}

	for _, r := range rows {
		left, err := cell(r.Left)
		if err != nil {
			return err
		}
		right, err := cell(r.Right)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Path, left, right, r.Status); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "--------------------------------------------------------------------------------"); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Rows: %d  Same: %d  Different: %d  Left only: %d  Right only: %d\n",
		stats.Rows, stats.Same, stats.Different, stats.LeftOnly, stats.RightOnly)
	return err
}

func cell(v tree.Value) (string, error) {
	if v == nil {
		return Absent, nil
	}
	return compact(v)
}
