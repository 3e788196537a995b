package query

import (
	"fmt"

	"github.com/jacoelho/dq/internal/jsonpath"
	"github.com/jacoelho/dq/internal/tree"
)

type nativeEngine struct{}

func (nativeEngine) Name() string { return Native }

func (nativeEngine) Validate(expr string) error {
	if err := jsonpath.Validate(expr); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}
	return nil
}

func (nativeEngine) Select(root tree.Value, expr string) ([]Match, error) {
	results, err := jsonpath.Query(root, expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}

	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{Path: r.Path, Value: r.Value}
	}
	return matches, nil
}
