package jsonpath

import (
	"slices"
	"strconv"

	"github.com/jacoelho/dq/internal/stack"
	"github.com/jacoelho/dq/internal/tree"
)

// Result represents a single match from a JSONPath query.
// It contains both the normalized path and the matched value.
type Result struct {
	Path  string     // normalized path, e.g. $.store.book[0].title
	Value tree.Value // matched node
}

// task is a pending unit of work: steps still to apply at value.
type task struct {
	value tree.Value
	steps []Step
	path  string
}

// Evaluate applies steps to root and returns the matched values in
// traversal order. A nil root yields no matches.
func Evaluate(root tree.Value, steps []Step) []tree.Value {
	results := Select(root, steps)
	values := make([]tree.Value, len(results))
	for i, r := range results {
		values[i] = r.Value
	}
	return values
}

// Select is Evaluate with the normalized path of every match.
//
// Traversal is depth first and uses an explicit worklist, so document depth
// is bounded by memory rather than the call stack. Children are pushed in
// reverse so they are popped in document order.
func Select(root tree.Value, steps []Step) []Result {
	if root == nil {
		return nil
	}

	var out []Result
	work := stack.NewWithCapacity[task](16)
	work.Push(task{value: root, steps: steps, path: "$"})

	for !work.IsEmpty() {
		t, _ := work.Pop()
		if len(t.steps) == 0 {
			out = append(out, Result{Path: t.path, Value: t.value})
			continue
		}

		next := expand(t)
		slices.Reverse(next)
		work.Push(next...)
	}
	return out
}

// Query compiles expr and selects it against root.
func Query(root tree.Value, expr string) ([]Result, error) {
	steps, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return Select(root, steps), nil
}

// expand applies the first step of t and returns the follow-up tasks in
// document order. A node of the wrong shape yields nothing.
func expand(t task) []task {
	step, rest := t.steps[0], t.steps[1:]

	switch s := step.(type) {
	case Property:
		obj, ok := t.value.(*tree.Object)
		if !ok {
			return nil
		}
		v, ok := obj.Get(s.Name)
		if !ok {
			return nil
		}
		return []task{{value: v, steps: rest, path: t.path + s.String()}}

	case Wildcard:
		return children(t, rest)

	case RecursiveDescent:
		// every child is visited twice: once with the remaining steps, so
		// they match right below this node, and once still carrying the
		// descent, so the search continues one level deeper. The remaining
		// steps never run at this node itself.
		var out []task
		for _, child := range children(t, rest) {
			deeper := child
			deeper.steps = t.steps
			out = append(out, child, deeper)
		}
		return out

	case Index:
		arr, ok := t.value.(tree.Array)
		if !ok {
			return nil
		}
		var out []task
		for _, i := range s.Indexes {
			if i < 0 || i >= len(arr) {
				continue
			}
			out = append(out, elem(t, arr, i, rest))
		}
		return out

	case Slice:
		arr, ok := t.value.(tree.Array)
		if !ok {
			return nil
		}
		start, end := s.bounds(len(arr))
		out := make([]task, 0, end-start)
		for i := start; i < end; i++ {
			out = append(out, elem(t, arr, i, rest))
		}
		return out
	}

	return nil
}

// children returns a task per child of t.value carrying steps.
func children(t task, steps []Step) []task {
	switch v := t.value.(type) {
	case tree.Array:
		out := make([]task, len(v))
		for i := range v {
			out[i] = elem(t, v, i, steps)
		}
		return out
	case *tree.Object:
		out := make([]task, 0, v.Len())
		for k, child := range v.All() {
			out = append(out, task{value: child, steps: steps, path: t.path + Property{Name: k}.String()})
		}
		return out
	}
	return nil
}

func elem(t task, arr tree.Array, i int, steps []Step) task {
	return task{value: arr[i], steps: steps, path: t.path + "[" + strconv.Itoa(i) + "]"}
}
