package types

import (
	"regexp"
	"time"
)

// TimestampValue represents an instant in time, normalised to UTC
type TimestampValue struct {
	val time.Time
}

// NewTimestamp creates a new TimestampValue
func NewTimestamp(t time.Time) TimestampValue {
	return TimestampValue{val: t.UTC()}
}

// Kind returns KindTimestamp
func (t TimestampValue) Kind() Kind { return KindTimestamp }

// String returns the literal representation t'RFC3339'
func (t TimestampValue) String() string {
	return "t'" + t.val.Format(time.RFC3339Nano) + "'"
}

// Time returns the underlying time
func (t TimestampValue) Time() time.Time {
	return t.val
}

// Equal compares instants
func (t TimestampValue) Equal(other Value) bool {
	o, ok := other.(TimestampValue)
	return ok && o.val.Equal(t.val)
}

// RegexValue represents a compiled regular expression
type RegexValue struct {
	re *regexp.Regexp
}

// NewRegex creates a new RegexValue from a compiled pattern
func NewRegex(re *regexp.Regexp) RegexValue {
	return RegexValue{re: re}
}

// CompileRegex compiles pattern into a RegexValue
func CompileRegex(pattern string) (RegexValue, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return RegexValue{}, err
	}
	return RegexValue{re: re}, nil
}

// Kind returns KindRegex
func (r RegexValue) Kind() Kind { return KindRegex }

// String returns the literal representation r'pattern'
func (r RegexValue) String() string {
	if r.re == nil {
		return "r''"
	}
	return "r'" + r.re.String() + "'"
}

// Regexp returns the compiled pattern
func (r RegexValue) Regexp() *regexp.Regexp {
	return r.re
}

// Equal compares pattern source
func (r RegexValue) Equal(other Value) bool {
	o, ok := other.(RegexValue)
	if !ok {
		return false
	}
	if r.re == nil || o.re == nil {
		return r.re == o.re
	}
	return r.re.String() == o.re.String()
}
