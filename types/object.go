package types

import (
	"sort"
	"strconv"
	"strings"
)

// ObjectValue represents a mapping of byte-string keys to values.
// Insertion order is not significant; rendering sorts keys.
type ObjectValue struct {
	fields map[string]Value
}

// NewObject creates a new object value that takes ownership of fields
func NewObject(fields map[string]Value) ObjectValue {
	if fields == nil {
		fields = map[string]Value{}
	}
	return ObjectValue{fields: fields}
}

// NewEmptyObject creates an empty object
func NewEmptyObject() ObjectValue {
	return ObjectValue{fields: map[string]Value{}}
}

// Kind returns KindObject
func (o ObjectValue) Kind() Kind { return KindObject }

// String returns the literal representation with sorted keys
func (o ObjectValue) String() string {
	if len(o.fields) == 0 {
		return "{}"
	}
	keys := o.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Quote(k) + ": " + Render(o.fields[k])
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// Equal compares two objects key by key
func (o ObjectValue) Equal(other Value) bool {
	ov, ok := other.(ObjectValue)
	if !ok || len(o.fields) != len(ov.fields) {
		return false
	}
	for k, v := range o.fields {
		w, exists := ov.fields[k]
		if !exists || !valuesEqual(v, w) {
			return false
		}
	}
	return true
}

// Len returns the number of fields
func (o ObjectValue) Len() int {
	return len(o.fields)
}

// Get returns the value for key
func (o ObjectValue) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Set returns a new object with key set (copy on write)
func (o ObjectValue) Set(key string, v Value) ObjectValue {
	fields := make(map[string]Value, len(o.fields)+1)
	for k, fv := range o.fields {
		fields[k] = fv
	}
	fields[key] = v
	return ObjectValue{fields: fields}
}

// Delete returns a new object without key
func (o ObjectValue) Delete(key string) ObjectValue {
	if _, ok := o.fields[key]; !ok {
		return o
	}
	fields := make(map[string]Value, len(o.fields))
	for k, fv := range o.fields {
		if k != key {
			fields[k] = fv
		}
	}
	return ObjectValue{fields: fields}
}

// Keys returns all keys in sorted order
func (o ObjectValue) Keys() []string {
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fields returns the internal map for iteration; callers must not mutate it
func (o ObjectValue) Fields() map[string]Value {
	return o.fields
}
