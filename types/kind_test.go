package types

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindArray, "array"},
		{KindBytes, "string"},
		{KindInteger | KindFloat, "integer or float"},
		{KindNull | KindInteger | KindArray, "null, integer or array"},
		{KindAny, "any"},
		{0, "never"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindSetOperations(t *testing.T) {
	numeric := KindInteger | KindFloat

	if !numeric.Contains(KindInteger) {
		t.Error("numeric should contain integer")
	}
	if numeric.Contains(KindInteger | KindBytes) {
		t.Error("numeric should not contain integer|bytes")
	}
	if numeric.Contains(0) {
		t.Error("the empty set is not a meaningful subset")
	}
	if !numeric.Intersects(KindFloat | KindArray) {
		t.Error("numeric should intersect float|array")
	}
	if numeric.Intersects(KindArray) {
		t.Error("numeric should not intersect array")
	}
	if got := numeric.Union(KindArray); got != KindInteger|KindFloat|KindArray {
		t.Errorf("Union() = %v", got)
	}
	if got := numeric.Intersect(KindFloat | KindArray); got != KindFloat {
		t.Errorf("Intersect() = %v", got)
	}
	if !KindAny.IsAny() || KindScalar.IsAny() {
		t.Error("IsAny() mismatch")
	}
	if KindAny.Count() != 9 {
		t.Errorf("KindAny.Count() = %d, want 9", KindAny.Count())
	}
	if KindScalar.Intersects(KindContainer) {
		t.Error("scalar and container kinds must be disjoint")
	}
}

func TestKindFromString(t *testing.T) {
	for _, name := range KindAny.Names() {
		k, ok := KindFromString(name)
		if !ok {
			t.Errorf("KindFromString(%q) failed", name)
			continue
		}
		if k.String() != name {
			t.Errorf("KindFromString(%q) = %v", name, k)
		}
	}
	if k, ok := KindFromString("bytes"); !ok || k != KindBytes {
		t.Errorf("bytes alias = %v, %v", k, ok)
	}
	if _, ok := KindFromString("list"); ok {
		t.Error("unknown kind name should not parse")
	}
}
