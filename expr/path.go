package expr

import (
	"strconv"
	"strings"

	"remap/typedef"
	"remap/types"
)

// Segment is one step of a Path: an object field or an array index
type Segment struct {
	Field   string
	Index   int
	IsIndex bool
}

// FieldSegment returns a field step
func FieldSegment(name string) Segment {
	return Segment{Field: name}
}

// IndexSegment returns an index step
func IndexSegment(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// Path addresses a value inside a record, e.g. .a.b[0]. The empty path is
// the record itself.
type Path []Segment

func (p Path) String() string {
	if len(p) == 0 {
		return "."
	}
	var sb strings.Builder
	for _, seg := range p {
		if seg.IsIndex {
			sb.WriteString("[" + strconv.Itoa(seg.Index) + "]")
			continue
		}
		sb.WriteByte('.')
		if isPlainField(seg.Field) {
			sb.WriteString(seg.Field)
		} else {
			sb.WriteString(strconv.Quote(seg.Field))
		}
	}
	return sb.String()
}

func isPlainField(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Get reads the value at p. Missing fields, out-of-range indices and steps
// through non-containers all yield null.
func (p Path) Get(root types.Value) types.Value {
	cur := root
	for _, seg := range p {
		var next types.Value
		if seg.IsIndex {
			if arr, ok := cur.(types.ArrayValue); ok {
				next = arr.Get(seg.Index)
			}
		} else if obj, ok := cur.(types.ObjectValue); ok {
			next, _ = obj.Get(seg.Field)
		}
		if next == nil {
			return types.NewNull()
		}
		cur = next
	}
	if cur == nil {
		return types.NewNull()
	}
	return cur
}

// Set returns a copy of root with v written at p. Intermediate containers
// are created as needed; a non-container in the way is replaced.
func (p Path) Set(root types.Value, v types.Value) (types.Value, error) {
	if len(p) == 0 {
		return v, nil
	}
	seg, rest := p[0], p[1:]

	if seg.IsIndex {
		arr, ok := root.(types.ArrayValue)
		if !ok {
			arr = types.NewEmptyArray()
		}
		idx := seg.Index
		if idx < 0 {
			idx += arr.Len()
		}
		if idx < 0 || idx > types.MaxArrayIndex {
			return nil, &types.IndexError{Index: seg.Index, Len: arr.Len()}
		}
		child, err := rest.Set(arr.Get(idx), v)
		if err != nil {
			return nil, err
		}
		out, err := arr.Set(idx, child)
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	obj, ok := root.(types.ObjectValue)
	if !ok {
		obj = types.NewEmptyObject()
	}
	existing, _ := obj.Get(seg.Field)
	child, err := rest.Set(existing, v)
	if err != nil {
		return nil, err
	}
	return obj.Set(seg.Field, child), nil
}

// MayFailOnWrite reports whether writing through p may fail at runtime:
// a negative index can reach before the start of the array, and an index
// past MaxArrayIndex is never written.
func (p Path) MayFailOnWrite() bool {
	for _, seg := range p {
		if seg.IsIndex && (seg.Index < 0 || seg.Index > types.MaxArrayIndex) {
			return true
		}
	}
	return false
}

// TypeOf returns the static type of the value at p given the root's type
func (p Path) TypeOf(root typedef.TypeDef) typedef.TypeDef {
	null := typedef.FromKind(types.KindNull)
	td := root.Infallible()
	for _, seg := range p {
		container := types.KindObject
		if seg.IsIndex {
			container = types.KindArray
		}
		if !td.Kind.Intersects(container) {
			return null
		}

		var next typedef.TypeDef
		if seg.IsIndex {
			next = td.At(seg.Index)
		} else {
			next = td.Field(seg.Field)
		}
		if !td.IsExactly(container) {
			next = next.Merge(null)
		}
		td = next.Infallible()
	}
	return td
}

// WithType returns the root type after a value of type v is written at p
func (p Path) WithType(root, v typedef.TypeDef) typedef.TypeDef {
	if len(p) == 0 {
		return v.Infallible()
	}
	seg, rest := p[0], p[1:]
	null := typedef.FromKind(types.KindNull)

	if seg.IsIndex {
		child := null
		if root.Kind.Intersects(types.KindArray) {
			child = root.At(seg.Index)
		}
		newChild := rest.WithType(child, v)

		n, exact := root.ExactLen()
		if root.IsExactly(types.KindArray) && exact {
			idx := seg.Index
			if idx < 0 {
				idx += n
			}
			switch {
			case idx >= 0 && idx <= n:
				elems := make([]typedef.TypeDef, n, n+1)
				for i := range elems {
					elems[i] = root.At(i)
				}
				if idx == n {
					elems = append(elems, newChild)
				} else {
					elems[idx] = newChild
				}
				return typedef.Array(elems)
			case idx > n && idx <= types.MaxArrayIndex:
				// the gap is padded at runtime; left unknown here
				indices := make(map[int]typedef.TypeDef, n+1)
				for i := 0; i < n; i++ {
					indices[i] = root.At(i)
				}
				indices[idx] = newChild
				return typedef.ArrayMapped(indices)
			}
		}

		indices := make(map[int]typedef.TypeDef)
		if root.Kind.Intersects(types.KindArray) {
			for i, td := range root.Array {
				if !root.IsExactly(types.KindArray) {
					td = td.Merge(null)
				}
				if seg.Index < 0 {
					// a negative write may land on any existing index
					td = td.Merge(newChild)
				}
				indices[i] = td
			}
		}
		if seg.Index >= 0 && seg.Index <= types.MaxArrayIndex {
			indices[seg.Index] = newChild
		}
		return typedef.TypeDef{Kind: types.KindArray, Array: indices}
	}

	child := null
	if root.Kind.Intersects(types.KindObject) {
		child = root.Field(seg.Field)
		if !root.IsExactly(types.KindObject) {
			child = child.Merge(null)
		}
	}
	newChild := rest.WithType(child, v)

	fields := make(map[string]typedef.TypeDef)
	if root.Kind.Intersects(types.KindObject) {
		for k, td := range root.Object {
			if !root.IsExactly(types.KindObject) {
				td = td.Merge(null)
			}
			fields[k] = td
		}
	}
	fields[seg.Field] = newChild
	if root.IsExactly(types.KindObject) && root.ExactFields() {
		return typedef.ObjectMapped(fields)
	}
	return typedef.TypeDef{Kind: types.KindObject, Object: fields}
}
