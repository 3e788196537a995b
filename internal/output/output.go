// Package output renders command results as text, JSON or YAML.
//
// JSON and YAML reports are built as tree values so object members keep the
// order they are written in, then encoded with the tree encoders.
package output

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	"github.com/jacoelho/dq/internal/tree"
)

var ErrUnknownFormat = errors.New("output: unknown format")

// Format selects how results are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Meta describes the invocation a report belongs to.
type Meta struct {
	Command string
	Inputs  []string
}

// newReport starts a report with its identifying members.
func newReport(meta Meta) *tree.Object {
	report := tree.NewObject(8)
	report.Set("id", tree.String(uuid.NewString()))
	report.Set("command", tree.String(meta.Command))
	report.Set("inputs", stringArray(meta.Inputs))
	return report
}

// writeReport encodes a structured report. Text output is handled by each
// command before reaching here.
func writeReport(w io.Writer, format Format, report tree.Value) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON:
		data, err = tree.MarshalIndent(report, "  ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = tree.MarshalYAML(report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s report: %w", format, err)
	}

	_, err = w.Write(data)
	return err
}

func stringArray(values []string) tree.Array {
	arr := make(tree.Array, len(values))
	for i, v := range values {
		arr[i] = tree.String(v)
	}
	return arr
}

func number(n int) tree.Number {
	return tree.Number(strconv.Itoa(n))
}

// compact renders v as single line JSON.
func compact(v tree.Value) (string, error) {
	b, err := tree.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
