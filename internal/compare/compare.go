// Package compare reconciles two decoded documents path by path.
//
// Both documents are walked in lockstep. Containers present on both sides are
// descended into; every other position yields one Row holding the value of
// each side and whether they match. Array elements are addressed by index,
// so `$.items.0` is the first element of items.
//
// Only leaves produce rows. Two empty containers contribute nothing, even
// when one is an object and the other an array: comparing {"a":{}} with
// {"a":[]} yields no rows and counts as identical.
package compare

import (
	"slices"

	"github.com/jacoelho/dq/internal/tree"
)

// Root is the path of the document root.
const Root = "$"

// Status tells whether both sides of a Row hold the same value.
type Status uint8

const (
	Same Status = iota
	Different
)

func (s Status) String() string {
	if s == Same {
		return "Same"
	}
	return "Different"
}

// Row is one reconciled position. A nil Left or Right means the position
// does not exist on that side.
type Row struct {
	Path   string
	Left   tree.Value
	Right  tree.Value
	Status Status
}

// LeftOnly reports whether the position exists only in the left document.
func (r Row) LeftOnly() bool {
	return r.Left != nil && r.Right == nil
}

// RightOnly reports whether the position exists only in the right document.
func (r Row) RightOnly() bool {
	return r.Left == nil && r.Right != nil
}

// Config holds the options of a comparison.
type Config struct {
	OnlyDifferences bool
}

// Option adjusts a Config.
type Option func(cfg *Config)

// OnlyDifferences drops rows whose status is Same.
func OnlyDifferences() Option {
	return func(cfg *Config) {
		cfg.OnlyDifferences = true
	}
}

// Trees compares two documents starting at the root path.
func Trees(a, b tree.Value, opts ...Option) []Row {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	rows := Compare(a, b, Root)
	if cfg.OnlyDifferences {
		rows = slices.DeleteFunc(rows, func(r Row) bool { return r.Status == Same })
	}
	return rows
}

// Compare reconciles a and b below path and returns the rows in traversal
// order.
//
// When either side is not a container a single row is emitted for path.
// Otherwise the keys of a are visited in order, followed by the keys only b
// has. Children that are containers on both sides are compared recursively,
// anything else becomes a leaf row.
func Compare(a, b tree.Value, path string) []Row {
	var rows []Row
	compareInto(&rows, a, b, path)
	return rows
}

func compareInto(rows *[]Row, a, b tree.Value, path string) {
	if !tree.IsContainer(a) || !tree.IsContainer(b) {
		*rows = append(*rows, leaf(path, a, b))
		return
	}

	for _, key := range unionKeys(a, b) {
		childPath := path + "." + key
		av, _ := tree.Child(a, key)
		bv, _ := tree.Child(b, key)

		if tree.IsContainer(av) && tree.IsContainer(bv) {
			compareInto(rows, av, bv, childPath)
			continue
		}
		*rows = append(*rows, leaf(childPath, av, bv))
	}
}

func leaf(path string, a, b tree.Value) Row {
	status := Different
	if tree.Equal(a, b) {
		status = Same
	}
	return Row{Path: path, Left: a, Right: b, Status: status}
}

// unionKeys returns the keys of a followed by the keys only b has.
func unionKeys(a, b tree.Value) []string {
	keys := tree.Keys(a)
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		seen[k] = struct{}{}
	}
	for _, k := range tree.Keys(b) {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
			seen[k] = struct{}{}
		}
	}
	return keys
}
