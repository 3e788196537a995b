// Package tree defines the decoded document model shared by the compare and
// query engines.
//
// A document is a closed set of node types: Null, Bool, Number, String,
// Array and *Object. Objects keep their keys in insertion order, so every
// traversal over a document is deterministic. Values are never mutated once
// decoding finishes.
package tree

import (
	"strconv"
)

// Kind identifies the concrete type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a node of a decoded document.
// A nil Value means "absent" and is never produced by the decoders.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	Null   struct{}
	Bool   bool
	String string
	// Number holds the literal text of a numeric value.
	Number string
	Array  []Value
)

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}

// Float64 parses the literal as a float64.
func (n Number) Float64() (float64, bool) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int64 parses the literal as an integer. Fractional or exponent forms fail.
func (n Number) Int64() (int64, bool) {
	i, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// IsContainer reports whether v is an Array or an Object.
func IsContainer(v Value) bool {
	if v == nil {
		return false
	}
	k := v.Kind()
	return k == KindArray || k == KindObject
}

// Keys returns the child keys of a container in enumeration order.
// Array children are keyed by their decimal index.
func Keys(v Value) []string {
	switch c := v.(type) {
	case Array:
		keys := make([]string, len(c))
		for i := range c {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	case *Object:
		return c.Keys()
	default:
		return nil
	}
}

// Child looks up a child of a container by key as returned by Keys.
func Child(v Value, key string) (Value, bool) {
	switch c := v.(type) {
	case Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(c) || strconv.Itoa(i) != key {
			return nil, false
		}
		return c[i], true
	case *Object:
		return c.Get(key)
	default:
		return nil, false
	}
}

// Equal reports deep equality. Numbers compare by numeric value, objects
// compare by key set regardless of key order, and two absent values are equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case String:
		return av == b.(String)
	case Number:
		return numbersEqual(av, b.(Number))
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if av.Len() != bv.Len() {
			return false
		}
		for k, v := range av.All() {
			other, ok := bv.Get(k)
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b Number) bool {
	if a == b {
		return true
	}
	af, aok := a.Float64()
	bf, bok := b.Float64()
	if !aok || !bok {
		return false
	}
	return af == bf
}
