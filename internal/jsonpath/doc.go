// Package jsonpath evaluates a small JSONPath dialect over decoded trees.
//
// An expression starts at the root marker `$` and is followed by steps:
//   - Child names `.name`, `['name']` or `["name"]`
//   - Wildcards `.*` and `[*]`
//   - Recursive descent `..` (also spelled `.**`)
//   - Index lists `[0]`, `[0,2]`
//   - Slices `[start:end]` where either bound may be omitted or negative
//
// Parse compiles an expression into Steps, Evaluate applies them to a
// tree.Value. Matches are produced depth first in document order. Shape
// mismatches such as a name applied to an array yield no matches rather than
// an error.
//
// Filter expressions are not part of the dialect; see the query package for
// an RFC 9535 engine that supports them.
package jsonpath
