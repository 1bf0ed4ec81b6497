package types

import "strings"

// Kind is a bit-set classification of the runtime shapes a Value may take.
// A Kind with several bits set means "any of these at runtime".
type Kind uint16

const (
	KindNull Kind = 1 << iota
	KindBoolean
	KindInteger
	KindFloat
	KindBytes
	KindTimestamp
	KindRegex
	KindArray
	KindObject
)

const (
	// KindAny is the union of every variant
	KindAny = KindNull | KindBoolean | KindInteger | KindFloat | KindBytes |
		KindTimestamp | KindRegex | KindArray | KindObject

	// KindScalar excludes the container variants
	KindScalar = KindAny &^ (KindArray | KindObject)

	// KindNumeric covers integer and float
	KindNumeric = KindInteger | KindFloat

	// KindContainer covers array and object
	KindContainer = KindArray | KindObject
)

// kindNames is ordered by bit position
var kindNames = []struct {
	kind Kind
	name string
}{
	{KindNull, "null"},
	{KindBoolean, "boolean"},
	{KindInteger, "integer"},
	{KindFloat, "float"},
	{KindBytes, "string"},
	{KindTimestamp, "timestamp"},
	{KindRegex, "regex"},
	{KindArray, "array"},
	{KindObject, "object"},
}

// Union returns the kinds present in either set
func (k Kind) Union(other Kind) Kind {
	return k | other
}

// Intersect returns the kinds present in both sets
func (k Kind) Intersect(other Kind) Kind {
	return k & other
}

// Intersects reports whether the two sets share at least one kind
func (k Kind) Intersects(other Kind) bool {
	return k&other != 0
}

// Contains reports whether other is a subset of k
func (k Kind) Contains(other Kind) bool {
	return other != 0 && k&other == other
}

// IsExactly reports whether k holds exactly the given kinds and nothing else
func (k Kind) IsExactly(other Kind) bool {
	return k == other
}

// IsAny reports whether every kind is possible
func (k Kind) IsAny() bool {
	return k == KindAny
}

// IsEmpty reports whether no kind is possible (unreachable expression)
func (k Kind) IsEmpty() bool {
	return k == 0
}

// Count returns the number of kinds in the set
func (k Kind) Count() int {
	n := 0
	for _, kn := range kindNames {
		if k&kn.kind != 0 {
			n++
		}
	}
	return n
}

// Names returns the names of every kind in the set, in bit order
func (k Kind) Names() []string {
	var names []string
	for _, kn := range kindNames {
		if k&kn.kind != 0 {
			names = append(names, kn.name)
		}
	}
	return names
}

// String renders the set for diagnostics: "array", "integer or float", "any"
func (k Kind) String() string {
	switch {
	case k == 0:
		return "never"
	case k == KindAny:
		return "any"
	}
	names := k.Names()
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// KindFromString parses a single kind name as produced by String.
// "bytes" is accepted as an alias of "string".
func KindFromString(s string) (Kind, bool) {
	switch s {
	case "any":
		return KindAny, true
	case "bytes":
		return KindBytes, true
	}
	for _, kn := range kindNames {
		if kn.name == s {
			return kn.kind, true
		}
	}
	return 0, false
}
