package tree

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// FromAny converts plain Go values, as produced by encoding/json or a YAML
// decoder, into a Value. Map keys are sorted because Go maps carry no order.
func FromAny(v any) (Value, error) {
	switch current := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return current, nil
	case bool:
		return Bool(current), nil
	case string:
		return String(current), nil
	case json.Number:
		return Number(current), nil
	case int:
		return Number(strconv.FormatInt(int64(current), 10)), nil
	case int8:
		return Number(strconv.FormatInt(int64(current), 10)), nil
	case int16:
		return Number(strconv.FormatInt(int64(current), 10)), nil
	case int32:
		return Number(strconv.FormatInt(int64(current), 10)), nil
	case int64:
		return Number(strconv.FormatInt(current, 10)), nil
	case uint:
		return Number(strconv.FormatUint(uint64(current), 10)), nil
	case uint8:
		return Number(strconv.FormatUint(uint64(current), 10)), nil
	case uint16:
		return Number(strconv.FormatUint(uint64(current), 10)), nil
	case uint32:
		return Number(strconv.FormatUint(uint64(current), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(current, 10)), nil
	case float32:
		return floatNumber(float64(current))
	case float64:
		return floatNumber(current)
	case []any:
		arr := make(Array, 0, len(current))
		for i, item := range current {
			child, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			arr = append(arr, child)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(current))
		for k := range current {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		obj := NewObject(len(keys))
		for _, k := range keys {
			child, err := FromAny(current[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			obj.Set(k, child)
		}
		return obj, nil
	case yaml.MapSlice:
		obj := NewObject(len(current))
		for _, item := range current {
			child, err := FromAny(item.Value)
			if err != nil {
				return nil, fmt.Errorf("key %v: %w", item.Key, err)
			}
			obj.Set(fmt.Sprint(item.Key), child)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("tree: unsupported value type %T", v)
	}
}

func floatNumber(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("tree: %v is not representable as a JSON number", f)
	}
	return Number(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// ToAny converts v into the plain shapes encoding/json.Unmarshal produces:
// nil, bool, float64, string, []any and map[string]any. Object key order is
// lost in the conversion.
func ToAny(v Value) any {
	switch current := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(current)
	case String:
		return string(current)
	case Number:
		f, _ := current.Float64()
		return f
	case Array:
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = ToAny(item)
		}
		return out
	case *Object:
		out := make(map[string]any, current.Len())
		for k, item := range current.All() {
			out[k] = ToAny(item)
		}
		return out
	default:
		return nil
	}
}

// ToYAML converts v into values the YAML encoder renders in document order.
// Objects become yaml.MapSlice, numbers become int64, uint64 or float64.
func ToYAML(v Value) any {
	switch current := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(current)
	case String:
		return string(current)
	case Number:
		if i, ok := current.Int64(); ok {
			return i
		}
		if u, err := strconv.ParseUint(string(current), 10, 64); err == nil {
			return u
		}
		f, _ := current.Float64()
		return f
	case Array:
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = ToYAML(item)
		}
		return out
	case *Object:
		out := make(yaml.MapSlice, 0, current.Len())
		for k, item := range current.All() {
			out = append(out, yaml.MapItem{Key: k, Value: ToYAML(item)})
		}
		return out
	default:
		return nil
	}
}
