package types

import (
	"math"
	"strconv"
	"strings"
)

// NullValue represents the absence of a value
type NullValue struct{}

// NewNull creates a null value
func NewNull() NullValue {
	return NullValue{}
}

// Kind returns KindNull
func (NullValue) Kind() Kind { return KindNull }

// String returns the literal representation
func (NullValue) String() string { return "null" }

// Equal reports whether other is also null
func (NullValue) Equal(other Value) bool {
	_, ok := other.(NullValue)
	return ok || other == nil
}

// BoolValue represents a boolean
type BoolValue struct {
	Val bool
}

// NewBool creates a new BoolValue
func NewBool(val bool) BoolValue {
	return BoolValue{Val: val}
}

// Kind returns KindBoolean
func (b BoolValue) Kind() Kind { return KindBoolean }

// String returns the literal representation
func (b BoolValue) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// Equal checks equality
func (b BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && o.Val == b.Val
}

// IntValue represents a signed 64-bit integer
type IntValue struct {
	Val int64
}

// NewInt creates a new IntValue
func NewInt(val int64) IntValue {
	return IntValue{Val: val}
}

// Kind returns KindInteger
func (i IntValue) Kind() Kind { return KindInteger }

// String returns the literal representation
func (i IntValue) String() string {
	return strconv.FormatInt(i.Val, 10)
}

// Equal checks equality. Integers never equal floats.
func (i IntValue) Equal(other Value) bool {
	o, ok := other.(IntValue)
	return ok && o.Val == i.Val
}

// FloatValue represents a 64-bit float
type FloatValue struct {
	Val float64
}

// NewFloat creates a new FloatValue
func NewFloat(val float64) FloatValue {
	return FloatValue{Val: val}
}

// Kind returns KindFloat
func (f FloatValue) Kind() Kind { return KindFloat }

// String returns the literal representation.
// Whole numbers keep a trailing ".0" so they read back as floats.
func (f FloatValue) String() string {
	if math.IsNaN(f.Val) {
		return "NaN"
	}
	if math.IsInf(f.Val, 1) {
		return "Infinity"
	}
	if math.IsInf(f.Val, -1) {
		return "-Infinity"
	}
	s := strconv.FormatFloat(f.Val, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Equal checks equality
func (f FloatValue) Equal(other Value) bool {
	o, ok := other.(FloatValue)
	return ok && o.Val == f.Val
}

// BytesValue represents an opaque byte string
type BytesValue struct {
	val string
}

// NewBytes creates a new BytesValue from raw bytes
func NewBytes(b []byte) BytesValue {
	return BytesValue{val: string(b)}
}

// NewString creates a new BytesValue from a Go string
func NewString(s string) BytesValue {
	return BytesValue{val: s}
}

// Kind returns KindBytes
func (s BytesValue) Kind() Kind { return KindBytes }

// String returns the quoted literal representation
func (s BytesValue) String() string {
	return strconv.Quote(s.val)
}

// Value returns the raw contents
func (s BytesValue) Value() string {
	return s.val
}

// Len returns the length in bytes
func (s BytesValue) Len() int {
	return len(s.val)
}

// Equal compares byte-wise
func (s BytesValue) Equal(other Value) bool {
	o, ok := other.(BytesValue)
	return ok && o.val == s.val
}
