package output

import (
	"fmt"
	"io"

	"github.com/jacoelho/dq/internal/query"
	"github.com/jacoelho/dq/internal/tree"
)

// QueryMeta describes a query invocation.
type QueryMeta struct {
	Meta
	Expression string
	Engine     string
	Paths      bool
}

// Query renders the matches of a path expression. Text format prints one
// compact JSON value per line, preceded by its path and a tab when
// meta.Paths is set.
func Query(w io.Writer, format Format, meta QueryMeta, matches []query.Match) error {
	if format == FormatText {
		return queryText(w, meta.Paths, matches)
	}

	items := make(tree.Array, 0, len(matches))
	for _, m := range matches {
		if !meta.Paths {
			items = append(items, m.Value)
			continue
		}
		item := tree.NewObject(2)
		item.Set("path", tree.String(m.Path))
		item.Set("value", m.Value)
		items = append(items, item)
	}

	report := newReport(meta.Meta)
	report.Set("expression", tree.String(meta.Expression))
	report.Set("engine", tree.String(meta.Engine))
	report.Set("count", number(len(matches)))
	report.Set("matches", items)
	return writeReport(w, format, report)
}

func queryText(w io.Writer, paths bool, matches []query.Match) error {
	for _, m := range matches {
		value, err := compact(m.Value)
		if err != nil {
			return fmt.Errorf("encoding match at %s: %w", m.Path, err)
		}
		if paths {
			_, err = fmt.Fprintf(w, "%s\t%s\n", m.Path, value)
		} else {
			_, err = fmt.Fprintln(w, value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
