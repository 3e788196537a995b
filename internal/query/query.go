// Package query runs path expressions against decoded documents through a
// selectable engine.
//
// The native engine is this module's jsonpath dialect and keeps document
// order for object members. The rfc9535 engine delegates to
// github.com/theory/jsonpath, which adds filter expressions and functions but
// visits object members in no particular order.
package query

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jacoelho/dq/internal/tree"
)

var (
	// ErrUnknownEngine indicates an engine name that Lookup does not know.
	ErrUnknownEngine = errors.New("query: unknown engine")

	// ErrInvalidExpression indicates an expression the engine cannot compile.
	ErrInvalidExpression = errors.New("query: invalid expression")
)

// Engine names accepted by Lookup.
const (
	Native  = "native"
	RFC9535 = "rfc9535"
)

// Match is a selected node and its location in the document.
type Match struct {
	Path  string
	Value tree.Value
}

// Engine compiles and evaluates path expressions.
type Engine interface {
	Name() string
	// Validate reports whether expr compiles.
	Validate(expr string) error
	// Select evaluates expr against root.
	Select(root tree.Value, expr string) ([]Match, error)
}

var engines = map[string]Engine{
	Native:  nativeEngine{},
	RFC9535: rfcEngine{},
}

// Lookup returns the engine registered under name.
func Lookup(name string) (Engine, error) {
	e, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownEngine, name, Names())
	}
	return e, nil
}

// Names lists the registered engines in sorted order.
func Names() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
