package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"regexp"
	"time"
)

// FromGo converts a decoded Go value (JSON, YAML, or native) into a Value
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return NewNull(), nil
	case Value:
		return val, nil
	case bool:
		return NewBool(val), nil
	case int:
		return NewInt(int64(val)), nil
	case int8:
		return NewInt(int64(val)), nil
	case int16:
		return NewInt(int64(val)), nil
	case int32:
		return NewInt(int64(val)), nil
	case int64:
		return NewInt(val), nil
	case uint:
		return fromUint(uint64(val)), nil
	case uint8:
		return NewInt(int64(val)), nil
	case uint16:
		return NewInt(int64(val)), nil
	case uint32:
		return NewInt(int64(val)), nil
	case uint64:
		return fromUint(val), nil
	case float32:
		return NewFloat(float64(val)), nil
	case float64:
		return NewFloat(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return NewInt(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", val.String(), err)
		}
		return NewFloat(f), nil
	case string:
		return NewString(val), nil
	case []byte:
		return NewBytes(val), nil
	case time.Time:
		return NewTimestamp(val), nil
	case *regexp.Regexp:
		return NewRegex(val), nil
	case []any:
		elems := make([]Value, len(val))
		for i, e := range val {
			ev, err := FromGo(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = ev
		}
		return NewArray(elems), nil
	case map[string]any:
		fields := make(map[string]Value, len(val))
		for k, e := range val {
			ev, err := FromGo(e)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			fields[k] = ev
		}
		return NewObject(fields), nil
	case map[any]any:
		fields := make(map[string]Value, len(val))
		for k, e := range val {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			ev, err := FromGo(e)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", ks, err)
			}
			fields[ks] = ev
		}
		return NewObject(fields), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// ToGo converts a Value into plain Go data suitable for JSON encoding.
// Timestamps render as RFC 3339 strings and regexes as their pattern.
func ToGo(v Value) any {
	switch val := v.(type) {
	case nil, NullValue:
		return nil
	case BoolValue:
		return val.Val
	case IntValue:
		return val.Val
	case FloatValue:
		return val.Val
	case BytesValue:
		return val.val
	case TimestampValue:
		return val.val.Format(time.RFC3339Nano)
	case RegexValue:
		if val.re == nil {
			return ""
		}
		return val.re.String()
	case ArrayValue:
		out := make([]any, len(val.elements))
		for i, e := range val.elements {
			out[i] = ToGo(e)
		}
		return out
	case ObjectValue:
		out := make(map[string]any, len(val.fields))
		for k, e := range val.fields {
			out[k] = ToGo(e)
		}
		return out
	default:
		return v.String()
	}
}

// fromUint keeps integers that fit and, like JSON numbers too large for an
// integer, turns the rest into floats
func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return NewFloat(float64(u))
	}
	return NewInt(int64(u))
}

// ParseJSON decodes a single JSON document. Integral numbers become
// integers, other numbers floats.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return FromGo(raw)
}

// MarshalJSON encodes v as JSON
func MarshalJSON(v Value) ([]byte, error) {
	return json.Marshal(ToGo(v))
}
