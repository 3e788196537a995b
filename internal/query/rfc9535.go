package query

import (
	"fmt"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/dq/internal/tree"
)

type rfcEngine struct{}

func (rfcEngine) Name() string { return RFC9535 }

func (rfcEngine) Validate(expr string) error {
	_, err := compile(expr)
	return err
}

// Select converts root into the plain shapes the library walks and converts
// every match back. Numbers round trip through float64.
func (rfcEngine) Select(root tree.Value, expr string) ([]Match, error) {
	path, err := compile(expr)
	if err != nil {
		return nil, err
	}

	located := path.SelectLocated(tree.ToAny(root))
	matches := make([]Match, 0, len(located))
	for _, node := range located {
		v, err := tree.FromAny(node.Node)
		if err != nil {
			return nil, fmt.Errorf("converting match at %s: %w", node.Path, err)
		}
		matches = append(matches, Match{Path: node.Path.String(), Value: v})
	}
	return matches, nil
}

func compile(expr string) (*jsonpath.Path, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: expression is empty", ErrInvalidExpression)
	}

	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONPath %s: %v", ErrInvalidExpression, expr, err)
	}
	return path, nil
}
