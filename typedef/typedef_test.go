package typedef

import (
	"testing"

	"remap/types"
)

func TestLiteral(t *testing.T) {
	v := types.NewArray([]types.Value{
		types.NewInt(1),
		types.NewBool(true),
		types.NewObject(map[string]types.Value{"a": types.NewString("x")}),
	})

	got := Literal(v)
	want := Array([]TypeDef{
		FromKind(types.KindInteger),
		FromKind(types.KindBoolean),
		ObjectMapped(map[string]TypeDef{"a": FromKind(types.KindBytes)}),
	})
	if !got.Equal(want) {
		t.Errorf("Literal() = %v, want %v", got, want)
	}
	if n, ok := got.ExactLen(); !ok || n != 3 {
		t.Errorf("ExactLen() = %d, %v", n, ok)
	}
}

func TestArrayMappedClosed(t *testing.T) {
	tests := []struct {
		name    string
		indices map[int]TypeDef
		exact   bool
	}{
		{"empty", map[int]TypeDef{}, true},
		{"nil", nil, true},
		{"contiguous", map[int]TypeDef{0: New(), 1: New()}, true},
		{"gap", map[int]TypeDef{0: New(), 2: New()}, false},
		{"negative", map[int]TypeDef{-1: New()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, exact := ArrayMapped(tt.indices).ExactLen()
			if exact != tt.exact {
				t.Errorf("ExactLen() exact = %v, want %v", exact, tt.exact)
			}
		})
	}

	if !ArrayMapped(nil).Equal(Array(nil)) {
		t.Error("empty ArrayMapped should equal empty Array")
	}
}

var mergeSamples = []TypeDef{
	FromKind(types.KindInteger),
	FromKind(types.KindBytes).WithFallible(true),
	New(),
	Array([]TypeDef{FromKind(types.KindInteger)}),
	Array([]TypeDef{FromKind(types.KindFloat), FromKind(types.KindNull)}),
	FromKind(types.KindArray),
	ObjectMapped(map[string]TypeDef{"a": FromKind(types.KindInteger)}),
	FromKind(types.KindNull | types.KindTimestamp),
}

func TestMergeKindLaws(t *testing.T) {
	for i, a := range mergeSamples {
		for j, b := range mergeSamples {
			ab := a.Merge(b)
			ba := b.Merge(a)
			if ab.Kind != ba.Kind {
				t.Errorf("[%d,%d] merge not commutative on kind: %v vs %v", i, j, ab.Kind, ba.Kind)
			}
			if !ab.Equal(ba) {
				t.Errorf("[%d,%d] merge not commutative: %v vs %v", i, j, ab, ba)
			}
			if !ab.Kind.Contains(a.Kind) || !ab.Kind.Contains(b.Kind) {
				t.Errorf("[%d,%d] merge lost kinds: %v", i, j, ab.Kind)
			}
			if ab.Fallible != (a.Fallible || b.Fallible) {
				t.Errorf("[%d,%d] fallible = %v", i, j, ab.Fallible)
			}
			for k, c := range mergeSamples {
				left := a.Merge(b).Merge(c)
				right := a.Merge(b.Merge(c))
				if left.Kind != right.Kind {
					t.Errorf("[%d,%d,%d] merge not associative on kind: %v vs %v", i, j, k, left.Kind, right.Kind)
				}
			}
		}
	}
}

func TestMergeMaps(t *testing.T) {
	ints := Array([]TypeDef{FromKind(types.KindInteger), FromKind(types.KindInteger)})
	mixed := Array([]TypeDef{FromKind(types.KindBytes)})

	merged := ints.Merge(mixed)
	if _, exact := merged.ExactLen(); exact {
		t.Error("arrays of different lengths must not stay exact")
	}
	if got := merged.At(0).Kind; got != types.KindInteger|types.KindBytes {
		t.Errorf("At(0) = %v", got)
	}
	if got := merged.At(1); !got.Equal(New()) {
		t.Errorf("At(1) should degrade to unknown, got %v", got)
	}

	same := ints.Merge(ints)
	if n, exact := same.ExactLen(); !exact || n != 2 {
		t.Errorf("merging identical exact arrays should stay exact, got %d %v", n, exact)
	}

	// an unshaped array side degrades the map
	if got := ints.Merge(FromKind(types.KindArray)); got.Array != nil {
		t.Errorf("expected no index map, got %v", got)
	}

	// a side that is never an array keeps the map
	nullable := ints.Merge(FromKind(types.KindNull))
	if n, exact := nullable.ExactLen(); !exact || n != 2 {
		t.Errorf("null side should not constrain the array map, got %v", nullable)
	}
}

func TestMergeObjects(t *testing.T) {
	a := ObjectMapped(map[string]TypeDef{"x": FromKind(types.KindInteger), "y": FromKind(types.KindBytes)})
	b := ObjectMapped(map[string]TypeDef{"x": FromKind(types.KindFloat)})

	merged := a.Merge(b)
	if merged.ExactFields() {
		t.Error("objects with different fields must not stay exact")
	}
	if got := merged.Field("x").Kind; got != types.KindInteger|types.KindFloat {
		t.Errorf("Field(x) = %v", got)
	}
	if got := merged.Field("y"); !got.Equal(New()) {
		t.Errorf("Field(y) = %v, want unknown", got)
	}
	if got := a.Field("missing"); got.Kind != types.KindNull {
		t.Errorf("missing field of exact object = %v, want null", got)
	}
}

func TestAt(t *testing.T) {
	td := Array([]TypeDef{FromKind(types.KindInteger), FromKind(types.KindBytes)})

	tests := []struct {
		index int
		want  types.Kind
	}{
		{0, types.KindInteger},
		{1, types.KindBytes},
		{-1, types.KindBytes},
		{2, types.KindNull},
		{-3, types.KindNull},
	}
	for _, tt := range tests {
		if got := td.At(tt.index).Kind; got != tt.want {
			t.Errorf("At(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}

	if got := FromKind(types.KindArray).At(0); !got.Equal(New()) {
		t.Errorf("At() on unshaped array = %v", got)
	}
}

func TestWithKind(t *testing.T) {
	td := Array([]TypeDef{FromKind(types.KindInteger)}).Merge(FromKind(types.KindNull))

	narrowed := td.WithKind(types.KindArray)
	if _, exact := narrowed.ExactLen(); !exact {
		t.Error("narrowing to array should keep the index map")
	}

	scalar := td.WithKind(types.KindNull)
	if scalar.Array != nil {
		t.Error("dropping the array kind should drop the index map")
	}
}

func TestCompatible(t *testing.T) {
	td := FromKind(types.KindInteger | types.KindArray)
	if !td.Compatible(types.KindArray) {
		t.Error("integer|array should be compatible with array")
	}
	if td.Compatible(types.KindBytes) {
		t.Error("integer|array should not be compatible with bytes")
	}
	if !New().Compatible(types.KindRegex) {
		t.Error("any should be compatible with everything")
	}
}

func TestConcat(t *testing.T) {
	left := Array([]TypeDef{FromKind(types.KindInteger)})
	right := Array([]TypeDef{FromKind(types.KindBoolean), FromKind(types.KindFloat)})

	got, ok := Concat(left, right)
	if !ok {
		t.Fatal("Concat() should succeed on exact arrays")
	}
	want := ArrayMapped(map[int]TypeDef{
		0: FromKind(types.KindInteger),
		1: FromKind(types.KindBoolean),
		2: FromKind(types.KindFloat),
	})
	if !got.Equal(want) {
		t.Errorf("Concat() = %v, want %v", got, want)
	}

	if _, ok := Concat(left, FromKind(types.KindArray)); ok {
		t.Error("Concat() should refuse an unshaped operand")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		td   TypeDef
		want string
	}{
		{FromKind(types.KindInteger), "integer"},
		{FromKind(types.KindBytes).WithFallible(true), "fallible string"},
		{Array([]TypeDef{FromKind(types.KindInteger)}), "array [0: integer]"},
		{ObjectMapped(map[string]TypeDef{"a": FromKind(types.KindNull)}), `object { "a": null }`},
		{Array([]TypeDef{FromKind(types.KindInteger)}).Merge(Array(nil)), "array [..]"},
	}
	for _, tt := range tests {
		if got := tt.td.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
