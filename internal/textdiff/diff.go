// Package textdiff computes token-level edit scripts between lines of text.
package textdiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jacoelho/dq/internal/tokenize"
)

// OpKind classifies a run of tokens in an edit script.
type OpKind int8

const (
	Equal OpKind = iota
	Delete
	Insert
)

func (k OpKind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// Op is one run of an edit script.
type Op struct {
	Kind   OpKind
	Tokens []string
}

// Text concatenates the tokens of the run.
func (o Op) Text() string {
	return strings.Join(o.Tokens, "")
}

// Tokens tokenizes both lines and diffs the token sequences.
func Tokens(a, b string) []Op {
	return Diff(tokenize.Line(a), tokenize.Line(b))
}

// Diff computes an edit script turning a into b. Equal and Delete runs
// concatenate to a, Equal and Insert runs concatenate to b. Within every
// changed region deletions come before insertions.
//
// Each distinct token is encoded as a single rune so the character-based
// diff_match_patch engine aligns whole tokens, then the efficiency cleanup
// pass folds short equalities that are surrounded by edits.
func Diff(a, b []string) []Op {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	enc := newEncoder()
	ra, ok := enc.encode(a)
	if !ok {
		return replaceAll(a, b)
	}
	rb, ok := enc.encode(b)
	if !ok {
		return replaceAll(a, b)
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	diffs := dmp.DiffMainRunes(ra, rb, false)
	diffs = dmp.DiffCleanupEfficiency(diffs)

	ops := make([]Op, 0, len(diffs))
	for _, d := range diffs {
		ops = append(ops, Op{Kind: opKind(d.Type), Tokens: enc.decode(d.Text)})
	}

	return normalize(ops)
}

func opKind(t diffmatchpatch.Operation) OpKind {
	switch t {
	case diffmatchpatch.DiffDelete:
		return Delete
	case diffmatchpatch.DiffInsert:
		return Insert
	default:
		return Equal
	}
}

// replaceAll is the edit script that shares nothing between a and b.
func replaceAll(a, b []string) []Op {
	var ops []Op
	if len(a) > 0 {
		ops = append(ops, Op{Kind: Delete, Tokens: a})
	}
	if len(b) > 0 {
		ops = append(ops, Op{Kind: Insert, Tokens: b})
	}
	return ops
}

// normalize drops empty runs, merges adjacent runs of the same kind and
// moves deletions ahead of insertions inside every changed region.
func normalize(ops []Op) []Op {
	out := make([]Op, 0, len(ops))
	var del, ins []string

	flush := func() {
		if len(del) > 0 {
			out = append(out, Op{Kind: Delete, Tokens: del})
		}
		if len(ins) > 0 {
			out = append(out, Op{Kind: Insert, Tokens: ins})
		}
		del, ins = nil, nil
	}

	for _, op := range ops {
		if len(op.Tokens) == 0 {
			continue
		}
		switch op.Kind {
		case Delete:
			del = append(del, op.Tokens...)
		case Insert:
			ins = append(ins, op.Tokens...)
		default:
			flush()
			if n := len(out); n > 0 && out[n-1].Kind == Equal {
				out[n-1].Tokens = append(out[n-1].Tokens, op.Tokens...)
				continue
			}
			out = append(out, Op{Kind: Equal, Tokens: op.Tokens})
		}
	}
	flush()

	return out
}

// Source rebuilds the first input of an edit script.
func Source(ops []Op) []string {
	return side(ops, Delete)
}

// Target rebuilds the second input of an edit script.
func Target(ops []Op) []string {
	return side(ops, Insert)
}

func side(ops []Op, keep OpKind) []string {
	var out []string
	for _, op := range ops {
		if op.Kind == Equal || op.Kind == keep {
			out = append(out, op.Tokens...)
		}
	}
	return out
}

// HasChanges reports whether the script contains any insertion or deletion.
func HasChanges(ops []Op) bool {
	for _, op := range ops {
		if op.Kind != Equal {
			return true
		}
	}
	return false
}
