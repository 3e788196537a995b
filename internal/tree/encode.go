package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !json.Valid([]byte(n)) {
		return nil, fmt.Errorf("tree: invalid number literal %q", string(n))
	}
	return []byte(n), nil
}

func (s String) MarshalJSON() ([]byte, error) {
	return marshalString(string(s))
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for k, v := range o.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := marshalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := encode(v, "")
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Marshal renders v as compact JSON. An absent value renders as nothing.
func Marshal(v Value) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return encode(v, "")
}

// MarshalIndent renders v as JSON indented with indent per level.
func MarshalIndent(v Value, indent string) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return encode(v, indent)
}

func encode(v Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
