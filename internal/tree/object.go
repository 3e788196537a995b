package tree

import (
	"iter"
	"slices"
)

// Object is a string-keyed mapping that remembers insertion order.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty object with room for size keys.
func NewObject(size int) *Object {
	return &Object{
		keys:   make([]string, 0, size),
		values: make(map[string]Value, size),
	}
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) isValue()   {}

// Set stores v under key. A repeated key keeps its first position and takes
// the latest value.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns a copy of the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// All iterates over key/value pairs in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}
