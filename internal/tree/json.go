package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// ParseJSON decodes a JSON document, keeping object keys in source order.
// Line (//) and block (/* */) comments outside string literals are ignored.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(StripComments(data)))
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, parseError("empty document")
	}
	if err != nil {
		return nil, parseError("%v", err)
	}

	v, err := decodeToken(dec, tok)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, parseError("unexpected data after top-level value")
	}

	return v, nil
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, parseError("unexpected delimiter %q", t)
		}
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	default:
		return nil, parseError("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewObject(0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, parseError("%v", err)
		}

		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}

		key, ok := tok.(string)
		if !ok {
			return nil, parseError("object key must be a string, got %v", tok)
		}

		valueTok, err := dec.Token()
		if err != nil {
			return nil, parseError("%v", err)
		}

		v, err := decodeToken(dec, valueTok)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := make(Array, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, parseError("%v", err)
		}

		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}

		v, err := decodeToken(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// StripComments removes // and /* */ comments that appear outside JSON string
// literals. Newlines ending line comments are kept so offsets in error
// messages still point at the right line.
func StripComments(data []byte) []byte {
	if !bytes.Contains(data, []byte("/")) {
		return data
	}

	out := make([]byte, 0, len(data))
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out = append(out, c)
			switch c {
			case '\\':
				if i+1 < len(data) {
					i++
					out = append(out, data[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}

		if c == '/' && i+1 < len(data) {
			switch data[i+1] {
			case '/':
				for i < len(data) && data[i] != '\n' {
					i++
				}
				if i < len(data) {
					out = append(out, '\n')
				}
				continue
			case '*':
				end := bytes.Index(data[i+2:], []byte("*/"))
				if end == -1 {
					// left in place for the decoder to reject
					return append(out, data[i:]...)
				}
				i += 2 + end + 1
				out = append(out, ' ')
				continue
			}
		}

		out = append(out, c)
	}

	return out
}
