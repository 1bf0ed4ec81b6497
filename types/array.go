package types

import (
	"fmt"
	"strings"
)

// ArrayValue represents an ordered sequence of values.
// Operations never mutate the receiver; they return new arrays.
type ArrayValue struct {
	elements []Value
}

// NewArray creates a new array value that takes ownership of elements
func NewArray(elements []Value) ArrayValue {
	if elements == nil {
		elements = []Value{}
	}
	return ArrayValue{elements: elements}
}

// NewEmptyArray creates an empty array
func NewEmptyArray() ArrayValue {
	return ArrayValue{elements: []Value{}}
}

// Kind returns KindArray
func (a ArrayValue) Kind() Kind { return KindArray }

// String returns the literal representation
func (a ArrayValue) String() string {
	if len(a.elements) == 0 {
		return "[]"
	}
	parts := make([]string, len(a.elements))
	for i, elem := range a.elements {
		parts[i] = Render(elem)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal compares two arrays element by element
func (a ArrayValue) Equal(other Value) bool {
	o, ok := other.(ArrayValue)
	if !ok || len(a.elements) != len(o.elements) {
		return false
	}
	for i := range a.elements {
		if !valuesEqual(a.elements[i], o.elements[i]) {
			return false
		}
	}
	return true
}

// Len returns the number of elements
func (a ArrayValue) Len() int {
	return len(a.elements)
}

// Get returns the element at a 0-based index, or nil when out of range.
// Negative indices count from the end.
func (a ArrayValue) Get(index int) Value {
	if index < 0 {
		index += len(a.elements)
	}
	if index < 0 || index >= len(a.elements) {
		return nil
	}
	return a.elements[index]
}

// MaxArrayIndex is the largest index a write may pad an array to
const MaxArrayIndex = 1<<16 - 1

// IndexError reports a write to an index the array cannot hold
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for array of length %d", e.Index, e.Len)
}

// Set returns a new array with index replaced, padding with nulls
// when index is past the end. Negative indices count from the end.
func (a ArrayValue) Set(index int, v Value) (ArrayValue, error) {
	pos := index
	if pos < 0 {
		pos += len(a.elements)
	}
	if pos < 0 || pos > MaxArrayIndex {
		return a, &IndexError{Index: index, Len: len(a.elements)}
	}
	size := len(a.elements)
	if pos >= size {
		size = pos + 1
	}
	elems := make([]Value, size)
	copy(elems, a.elements)
	for i := len(a.elements); i < size; i++ {
		elems[i] = NewNull()
	}
	elems[pos] = v
	return ArrayValue{elements: elems}, nil
}

// Append returns a new array with v appended
func (a ArrayValue) Append(v Value) ArrayValue {
	elems := make([]Value, len(a.elements)+1)
	copy(elems, a.elements)
	elems[len(a.elements)] = v
	return ArrayValue{elements: elems}
}

// Elements returns the internal slice for iteration; callers must not mutate it
func (a ArrayValue) Elements() []Value {
	return a.elements
}

// Render renders v as a literal, treating a nil interface as null
func Render(v Value) string {
	if v == nil {
		return "null"
	}
	return v.String()
}

func valuesEqual(a, b Value) bool {
	if a == nil {
		return KindOf(b) == KindNull
	}
	return a.Equal(b)
}
