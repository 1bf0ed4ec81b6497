// Package typedef implements the compile-time type descriptors attached to
// every compiled expression.
//
// A TypeDef is a conservative description: the set of kinds an expression may
// produce, whether evaluating it may fail, and optionally the exact type of
// individual array indices or object fields. The static type is always a
// superset of what can occur at runtime; operations may widen it but never
// narrow it below that.
package typedef

import (
	"sort"
	"strconv"
	"strings"

	"remap/types"
)

// TypeDef describes what an expression can produce.
//
// Array and Object are optional precision maps. A nil map means nothing is
// known per index / per field; indices or fields absent from a non-nil map are
// of unknown kind. A map is closed when it enumerates every index (0..n-1) or
// every field of every value the expression may produce.
type TypeDef struct {
	Fallible bool
	Kind     types.Kind
	Array    map[int]TypeDef
	Object   map[string]TypeDef

	arrayClosed  bool
	objectClosed bool
}

// New returns a TypeDef that may be of any kind and never fails
func New() TypeDef {
	return TypeDef{Kind: types.KindAny}
}

// FromKind returns an infallible TypeDef of kind k
func FromKind(k types.Kind) TypeDef {
	return TypeDef{Kind: k}
}

// Literal returns the exact TypeDef of a constant value.
// Arrays and objects get closed precision maps, recursively.
func Literal(v types.Value) TypeDef {
	switch val := v.(type) {
	case types.ArrayValue:
		elems := make([]TypeDef, val.Len())
		for i, e := range val.Elements() {
			elems[i] = Literal(e)
		}
		return Array(elems)
	case types.ObjectValue:
		fields := make(map[string]TypeDef, val.Len())
		for k, fv := range val.Fields() {
			fields[k] = Literal(fv)
		}
		return ObjectMapped(fields)
	default:
		return FromKind(types.KindOf(v))
	}
}

// Array returns an array TypeDef whose index i has type elements[i]
func Array(elements []TypeDef) TypeDef {
	m := make(map[int]TypeDef, len(elements))
	for i, e := range elements {
		m[i] = e
	}
	return TypeDef{Kind: types.KindArray, Array: m, arrayClosed: true}
}

// ArrayMapped returns an array TypeDef with the given index map.
// The map is closed when its keys are exactly 0..len-1.
func ArrayMapped(indices map[int]TypeDef) TypeDef {
	m := make(map[int]TypeDef, len(indices))
	closed := true
	for i, td := range indices {
		if i < 0 || i >= len(indices) {
			closed = false
		}
		if i >= 0 {
			m[i] = td
		}
	}
	return TypeDef{Kind: types.KindArray, Array: m, arrayClosed: closed && len(m) == len(indices)}
}

// ObjectMapped returns an object TypeDef with exactly the given fields
func ObjectMapped(fields map[string]TypeDef) TypeDef {
	m := make(map[string]TypeDef, len(fields))
	for k, td := range fields {
		m[k] = td
	}
	return TypeDef{Kind: types.KindObject, Object: m, objectClosed: true}
}

// IsFallible reports whether evaluation may fail
func (t TypeDef) IsFallible() bool {
	return t.Fallible
}

// WithFallible returns a copy with fallibility set
func (t TypeDef) WithFallible(fallible bool) TypeDef {
	t.Fallible = fallible
	return t
}

// OrFallible returns a copy that is fallible when either t or fallible is
func (t TypeDef) OrFallible(fallible bool) TypeDef {
	t.Fallible = t.Fallible || fallible
	return t
}

// WithKind returns a copy restricted to kind k. Precision maps survive only
// if k still admits the corresponding container kind.
func (t TypeDef) WithKind(k types.Kind) TypeDef {
	t.Kind = k
	if !k.Intersects(types.KindArray) {
		t.Array, t.arrayClosed = nil, false
	}
	if !k.Intersects(types.KindObject) {
		t.Object, t.objectClosed = nil, false
	}
	return t
}

// Compatible reports whether t can possibly satisfy the accepted kinds.
// It is false only when the two sets are disjoint.
func (t TypeDef) Compatible(accepted types.Kind) bool {
	return t.Kind.Intersects(accepted)
}

// IsExactly reports whether t is certain to produce kind k
func (t TypeDef) IsExactly(k types.Kind) bool {
	return t.Kind == k
}

// ExactLen returns the array length when every produced array is known to
// have exactly that many elements with known per-index types.
func (t TypeDef) ExactLen() (int, bool) {
	if t.Array == nil || !t.arrayClosed {
		return 0, false
	}
	return len(t.Array), true
}

// ExactFields reports whether the object field map is closed
func (t TypeDef) ExactFields() bool {
	return t.Object != nil && t.objectClosed
}

// At returns the TypeDef of array index i. Negative indices count from the
// end when the length is exactly known. Out-of-range reads of a closed array
// yield null; unknown indices are of any kind.
func (t TypeDef) At(i int) TypeDef {
	n, exact := t.ExactLen()
	if i < 0 {
		if !exact {
			return New()
		}
		i += n
		if i < 0 {
			return FromKind(types.KindNull)
		}
	}
	if td, ok := t.Array[i]; ok {
		return td
	}
	if exact {
		return FromKind(types.KindNull)
	}
	return New()
}

// Field returns the TypeDef of object field key. Missing fields of a closed
// object yield null; unknown fields are of any kind.
func (t TypeDef) Field(key string) TypeDef {
	if td, ok := t.Object[key]; ok {
		return td
	}
	if t.ExactFields() {
		return FromKind(types.KindNull)
	}
	return New()
}

// Merge returns the union of two TypeDefs: kinds are unioned, fallibility
// ORed, and precision maps merged key-wise where both sides define the key.
// A side that cannot produce arrays (or objects) at all does not constrain
// the other side's map.
func (t TypeDef) Merge(other TypeDef) TypeDef {
	out := TypeDef{
		Fallible: t.Fallible || other.Fallible,
		Kind:     t.Kind | other.Kind,
	}
	out.Array, out.arrayClosed = mergeArrays(t, other)
	out.Object, out.objectClosed = mergeObjects(t, other)
	return out
}

func mergeArrays(a, b TypeDef) (map[int]TypeDef, bool) {
	aArr := a.Kind.Intersects(types.KindArray)
	bArr := b.Kind.Intersects(types.KindArray)
	switch {
	case !aArr && !bArr:
		return nil, false
	case !aArr:
		return copyArray(b.Array), b.arrayClosed
	case !bArr:
		return copyArray(a.Array), a.arrayClosed
	case a.Array == nil || b.Array == nil:
		return nil, false
	}

	out := make(map[int]TypeDef)
	for i, ta := range a.Array {
		if tb, ok := b.Array[i]; ok {
			out[i] = ta.Merge(tb)
		}
	}
	closed := a.arrayClosed && b.arrayClosed &&
		len(a.Array) == len(b.Array) && len(out) == len(a.Array)
	return out, closed
}

func mergeObjects(a, b TypeDef) (map[string]TypeDef, bool) {
	aObj := a.Kind.Intersects(types.KindObject)
	bObj := b.Kind.Intersects(types.KindObject)
	switch {
	case !aObj && !bObj:
		return nil, false
	case !aObj:
		return copyObject(b.Object), b.objectClosed
	case !bObj:
		return copyObject(a.Object), a.objectClosed
	case a.Object == nil || b.Object == nil:
		return nil, false
	}

	out := make(map[string]TypeDef)
	for k, ta := range a.Object {
		if tb, ok := b.Object[k]; ok {
			out[k] = ta.Merge(tb)
		}
	}
	closed := a.objectClosed && b.objectClosed &&
		len(a.Object) == len(b.Object) && len(out) == len(a.Object)
	return out, closed
}

func copyArray(m map[int]TypeDef) map[int]TypeDef {
	if m == nil {
		return nil
	}
	out := make(map[int]TypeDef, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyObject(m map[string]TypeDef) map[string]TypeDef {
	if m == nil {
		return nil
	}
	out := make(map[string]TypeDef, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether two TypeDefs describe exactly the same type
func (t TypeDef) Equal(other TypeDef) bool {
	if t.Fallible != other.Fallible || t.Kind != other.Kind {
		return false
	}
	if (t.Array == nil) != (other.Array == nil) || t.arrayClosed != other.arrayClosed {
		return false
	}
	if (t.Object == nil) != (other.Object == nil) || t.objectClosed != other.objectClosed {
		return false
	}
	if len(t.Array) != len(other.Array) || len(t.Object) != len(other.Object) {
		return false
	}
	for i, td := range t.Array {
		o, ok := other.Array[i]
		if !ok || !td.Equal(o) {
			return false
		}
	}
	for k, td := range t.Object {
		o, ok := other.Object[k]
		if !ok || !td.Equal(o) {
			return false
		}
	}
	return true
}

// String renders the TypeDef for diagnostics, e.g.
// "array [0: integer, 1: string]" or "fallible integer or float".
func (t TypeDef) String() string {
	var sb strings.Builder
	if t.Fallible {
		sb.WriteString("fallible ")
	}
	sb.WriteString(t.Kind.String())

	if t.Array != nil {
		indices := make([]int, 0, len(t.Array))
		for i := range t.Array {
			indices = append(indices, i)
		}
		sort.Ints(indices)
		parts := make([]string, 0, len(indices)+1)
		for _, i := range indices {
			parts = append(parts, strconv.Itoa(i)+": "+t.Array[i].String())
		}
		if !t.arrayClosed {
			parts = append(parts, "..")
		}
		sb.WriteString(" [" + strings.Join(parts, ", ") + "]")
	}

	if t.Object != nil {
		keys := make([]string, 0, len(t.Object))
		for k := range t.Object {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys)+1)
		for _, k := range keys {
			parts = append(parts, strconv.Quote(k)+": "+t.Object[k].String())
		}
		if !t.objectClosed {
			parts = append(parts, "..")
		}
		sb.WriteString(" { " + strings.Join(parts, ", ") + " }")
	}
	return sb.String()
}

// Concat returns the exact TypeDef of concatenating two arrays whose lengths
// and per-index types are fully known: left's indices keep their position and
// right's are shifted by left's length. It reports false when either side is
// not exact, in which case callers fall back to Merge.
func Concat(left, right TypeDef) (TypeDef, bool) {
	n, ok := left.ExactLen()
	if !ok {
		return TypeDef{}, false
	}
	m, ok := right.ExactLen()
	if !ok {
		return TypeDef{}, false
	}

	indices := make(map[int]TypeDef, n+m)
	for i := 0; i < n; i++ {
		indices[i] = left.Array[i]
	}
	for j := 0; j < m; j++ {
		indices[n+j] = right.Array[j]
	}
	return ArrayMapped(indices).OrFallible(left.Fallible || right.Fallible), true
}

// Infallible returns a copy that never fails
func (t TypeDef) Infallible() TypeDef {
	t.Fallible = false
	return t
}
