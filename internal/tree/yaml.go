package tree

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
)

// document receives the root node of the first YAML document.
type document struct {
	root    Value
	anchors map[string]Value
}

func (d *document) UnmarshalYAML(node ast.Node) error {
	d.anchors = make(map[string]Value)
	v, err := d.nodeToValue(node)
	if err != nil {
		return err
	}
	d.root = v
	return nil
}

// ParseYAML decodes the first document of a YAML stream, keeping mapping
// keys in source order. Aliases resolve to the anchored value.
func ParseYAML(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, parseError("empty document")
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, parseError("%v", err)
	}

	if doc.root == nil {
		return Null{}, nil
	}
	return doc.root, nil
}

// MarshalYAML renders v as a YAML document in key order.
func MarshalYAML(v Value) ([]byte, error) {
	out, err := yaml.Marshal(ToYAML(v))
	if err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return out, nil
}

func (d *document) nodeToValue(node ast.Node) (Value, error) {
	switch n := node.(type) {
	case nil:
		return Null{}, nil
	case *ast.NullNode:
		return Null{}, nil
	case *ast.BoolNode:
		return Bool(n.Value), nil
	case *ast.StringNode:
		return String(n.Value), nil
	case *ast.LiteralNode:
		if n.Value == nil {
			return String(""), nil
		}
		return String(n.Value.Value), nil
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case int64:
			return Number(strconv.FormatInt(v, 10)), nil
		case uint64:
			return Number(strconv.FormatUint(v, 10)), nil
		default:
			return nil, parseError("unexpected integer node value type: %T", n.Value)
		}
	case *ast.FloatNode:
		v, err := floatNumber(n.Value)
		if err != nil {
			return nil, parseError("%v", err)
		}
		return v, nil
	case *ast.InfinityNode, *ast.NanNode:
		return nil, parseError("%s is not representable as a JSON number", node.String())
	case *ast.SequenceNode:
		arr := make(Array, 0, len(n.Values))
		for i, item := range n.Values {
			v, err := d.nodeToValue(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			arr = append(arr, v)
		}
		return arr, nil
	case *ast.MappingNode:
		obj := NewObject(len(n.Values))
		for _, pair := range n.Values {
			if err := d.setPair(obj, pair); err != nil {
				return nil, err
			}
		}
		return obj, nil
	case *ast.MappingValueNode:
		obj := NewObject(1)
		if err := d.setPair(obj, n); err != nil {
			return nil, err
		}
		return obj, nil
	case *ast.AnchorNode:
		v, err := d.nodeToValue(n.Value)
		if err != nil {
			return nil, err
		}
		d.anchors[n.Name.GetToken().Value] = v
		return v, nil
	case *ast.AliasNode:
		name := n.Value.GetToken().Value
		v, ok := d.anchors[name]
		if !ok {
			return nil, parseError("unknown alias %q", name)
		}
		return v, nil
	case *ast.TagNode:
		return d.nodeToValue(n.Value)
	default:
		return nil, parseError("unsupported YAML node %T", node)
	}
}

func (d *document) setPair(obj *Object, pair *ast.MappingValueNode) error {
	var key string
	if s, ok := pair.Key.(*ast.StringNode); ok {
		key = s.Value
	} else {
		key = pair.Key.GetToken().Value
	}

	if key == "<<" {
		return parseError("merge keys are not supported")
	}

	v, err := d.nodeToValue(pair.Value)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	obj.Set(key, v)
	return nil
}
