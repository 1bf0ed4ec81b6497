package types

import (
	"errors"
	"math"
	"regexp"
	"testing"
	"time"
)

func TestValueString(t *testing.T) {
	ts := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", NewNull(), "null"},
		{"true", NewBool(true), "true"},
		{"int", NewInt(-42), "-42"},
		{"float", NewFloat(5), "5.0"},
		{"float_frac", NewFloat(2.5), "2.5"},
		{"nan", NewFloat(math.NaN()), "NaN"},
		{"bytes", NewString("bar\n"), `"bar\n"`},
		{"timestamp", NewTimestamp(ts), "t'2021-01-01T00:00:00Z'"},
		{"regex", NewRegex(regexp.MustCompile(`^\d+$`)), `r'^\d+$'`},
		{"empty_array", NewEmptyArray(), "[]"},
		{"array", NewArray([]Value{NewInt(1), NewBool(true), NewString("x")}), `[1, true, "x"]`},
		{"empty_object", NewEmptyObject(), "{}"},
		{"object", NewObject(map[string]Value{"b": NewInt(2), "a": NewInt(1)}), `{ "a": 1, "b": 2 }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"int_int", NewInt(1), NewInt(1), true},
		{"int_float", NewInt(1), NewFloat(1), false},
		{"bytes_case", NewString("A"), NewString("a"), false},
		{"null_nil", NewNull(), nil, true},
		{"arrays", NewArray([]Value{NewInt(1)}), NewArray([]Value{NewInt(1)}), true},
		{"array_order", NewArray([]Value{NewInt(1), NewInt(2)}), NewArray([]Value{NewInt(2), NewInt(1)}), false},
		{"objects", NewObject(map[string]Value{"a": NewInt(1)}), NewObject(map[string]Value{"a": NewInt(1)}), true},
		{"object_value", NewObject(map[string]Value{"a": NewInt(1)}), NewObject(map[string]Value{"a": NewInt(2)}), false},
		{"regex", NewRegex(regexp.MustCompile("a")), NewRegex(regexp.MustCompile("a")), true},
		{"timestamp_zone", NewTimestamp(time.Unix(0, 0)), NewTimestamp(time.Unix(0, 0).In(time.FixedZone("x", 3600))), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArrayOperations(t *testing.T) {
	arr := NewArray([]Value{NewInt(1), NewInt(2)})

	if got := arr.Get(-1); !got.Equal(NewInt(2)) {
		t.Errorf("Get(-1) = %v", got)
	}
	if got := arr.Get(5); got != nil {
		t.Errorf("Get(5) = %v, want nil", got)
	}

	appended := arr.Append(NewInt(3))
	if arr.Len() != 2 || appended.Len() != 3 {
		t.Errorf("Append() must copy: len %d, %d", arr.Len(), appended.Len())
	}

	padded, err := arr.Set(3, NewString("x"))
	if err != nil || padded.String() != `[1, 2, null, "x"]` {
		t.Errorf("Set() = %v, %v", padded, err)
	}
	if last, err := arr.Set(-1, NewInt(9)); err != nil || last.String() != "[1, 9]" {
		t.Errorf("Set(-1) = %v, %v", last, err)
	}
}

func TestArraySetBounds(t *testing.T) {
	arr := NewArray([]Value{NewInt(1), NewInt(2)})

	tests := []struct {
		name  string
		index int
	}{
		{"negative past start", -3},
		{"past the limit", MaxArrayIndex + 1},
		{"huge", 1 << 40},
		{"max int", int(^uint(0) >> 1)},
		{"min int", -int(^uint(0)>>1) - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := arr.Set(tt.index, NewNull())
			var ie *IndexError
			if !errors.As(err, &ie) || ie.Index != tt.index {
				t.Fatalf("Set(%d) error = %v, want IndexError", tt.index, err)
			}
			if !got.Equal(arr) {
				t.Errorf("Set(%d) = %v, want the array unchanged", tt.index, got)
			}
		})
	}

	edge, err := NewEmptyArray().Set(MaxArrayIndex, NewInt(1))
	if err != nil || edge.Len() != MaxArrayIndex+1 {
		t.Errorf("Set(MaxArrayIndex) = len %d, %v", edge.Len(), err)
	}
}

func TestObjectOperations(t *testing.T) {
	obj := NewEmptyObject().Set("b", NewInt(2)).Set("a", NewInt(1))

	if keys := obj.Keys(); len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v", keys)
	}

	deleted := obj.Delete("a")
	if _, ok := deleted.Get("a"); ok {
		t.Error("Delete() left the key")
	}
	if _, ok := obj.Get("a"); !ok {
		t.Error("Delete() must not mutate the receiver")
	}
}

func TestFromGoRoundTrip(t *testing.T) {
	in := map[string]any{
		"message": "hello",
		"count":   float64(3),
		"tags":    []any{"a", true, nil},
	}

	v, err := FromGo(in)
	if err != nil {
		t.Fatalf("FromGo() error = %v", err)
	}
	obj, ok := v.(ObjectValue)
	if !ok {
		t.Fatalf("expected ObjectValue, got %T", v)
	}
	tags, _ := obj.Get("tags")
	if tags.String() != `["a", true, null]` {
		t.Errorf("tags = %v", tags)
	}

	out := ToGo(v).(map[string]any)
	if out["message"] != "hello" || out["count"] != float64(3) {
		t.Errorf("ToGo() = %v", out)
	}

	if _, err := FromGo(struct{}{}); err == nil {
		t.Error("FromGo() should reject unsupported types")
	}
}

func TestFromGoUnsigned(t *testing.T) {
	tests := []struct {
		in   any
		want Value
	}{
		{uint8(255), NewInt(255)},
		{uint64(math.MaxInt64), NewInt(math.MaxInt64)},
		{uint64(math.MaxInt64) + 1, NewFloat(9223372036854775808)},
		{uint64(math.MaxUint64), NewFloat(math.MaxUint64)},
	}
	for _, tt := range tests {
		got, err := FromGo(tt.in)
		if err != nil {
			t.Fatalf("FromGo(%v) error = %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("FromGo(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if i, ok := got.(IntValue); ok && i.Val < 0 {
			t.Errorf("FromGo(%v) wrapped to %d", tt.in, i.Val)
		}
	}
}
