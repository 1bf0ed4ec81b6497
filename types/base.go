package types

import (
	"fmt"
	"regexp"
	"time"
)

// Value is the interface all runtime values implement
type Value interface {
	Kind() Kind
	String() string   // script literal representation
	Equal(Value) bool // deep equality
}

// CoercionError is returned when a value does not hold the shape an
// operation requires. It is the only way runtime type mismatches surface.
type CoercionError struct {
	Want Kind
	Got  Kind
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

// KindOf returns the exact kind of v, treating a nil interface as null
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.Kind()
}

func coercionError(want Kind, v Value) error {
	return &CoercionError{Want: want, Got: KindOf(v)}
}

// ============================================================================
// COERCIONS
// ============================================================================

// TryArray interprets v as an array, returning a copy of its elements
// that the caller may own and mutate.
func TryArray(v Value) ([]Value, error) {
	a, ok := v.(ArrayValue)
	if !ok {
		return nil, coercionError(KindArray, v)
	}
	out := make([]Value, len(a.elements))
	copy(out, a.elements)
	return out, nil
}

// TryObject interprets v as an object, returning a shallow copy of its fields
func TryObject(v Value) (map[string]Value, error) {
	o, ok := v.(ObjectValue)
	if !ok {
		return nil, coercionError(KindObject, v)
	}
	out := make(map[string]Value, len(o.fields))
	for k, fv := range o.fields {
		out[k] = fv
	}
	return out, nil
}

// TryBytes interprets v as a byte string
func TryBytes(v Value) ([]byte, error) {
	b, ok := v.(BytesValue)
	if !ok {
		return nil, coercionError(KindBytes, v)
	}
	return []byte(b.val), nil
}

// TryString interprets v as a byte string and returns it as a Go string
func TryString(v Value) (string, error) {
	b, ok := v.(BytesValue)
	if !ok {
		return "", coercionError(KindBytes, v)
	}
	return b.val, nil
}

// TryInteger interprets v as an integer
func TryInteger(v Value) (int64, error) {
	i, ok := v.(IntValue)
	if !ok {
		return 0, coercionError(KindInteger, v)
	}
	return i.Val, nil
}

// TryFloat interprets v as a float
func TryFloat(v Value) (float64, error) {
	f, ok := v.(FloatValue)
	if !ok {
		return 0, coercionError(KindFloat, v)
	}
	return f.Val, nil
}

// TryBoolean interprets v as a boolean
func TryBoolean(v Value) (bool, error) {
	b, ok := v.(BoolValue)
	if !ok {
		return false, coercionError(KindBoolean, v)
	}
	return b.Val, nil
}

// TryTimestamp interprets v as a timestamp
func TryTimestamp(v Value) (time.Time, error) {
	t, ok := v.(TimestampValue)
	if !ok {
		return time.Time{}, coercionError(KindTimestamp, v)
	}
	return t.val, nil
}

// TryRegex interprets v as a compiled regular expression
func TryRegex(v Value) (*regexp.Regexp, error) {
	r, ok := v.(RegexValue)
	if !ok {
		return nil, coercionError(KindRegex, v)
	}
	return r.re, nil
}

// Clone returns a deep copy of v. Scalars are immutable and returned as is.
func Clone(v Value) Value {
	switch val := v.(type) {
	case ArrayValue:
		elems := make([]Value, len(val.elements))
		for i, e := range val.elements {
			elems[i] = Clone(e)
		}
		return ArrayValue{elements: elems}
	case ObjectValue:
		fields := make(map[string]Value, len(val.fields))
		for k, fv := range val.fields {
			fields[k] = Clone(fv)
		}
		return ObjectValue{fields: fields}
	case nil:
		return NewNull()
	default:
		return v
	}
}
