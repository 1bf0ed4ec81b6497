package conformance

import "gopkg.in/yaml.v3"

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"`     // bool or string
	Source      string      `yaml:"source"`             // program text
	Event       interface{} `yaml:"event,omitempty"`    // incoming record, {} when absent
	Timezone    string      `yaml:"timezone,omitempty"` // IANA name, UTC when absent
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a test.
// Value and Event are nodes so that an explicit null can be told apart from
// an absent key.
type Expectation struct {
	Value        yaml.Node `yaml:"value,omitempty"`         // program result, exact match
	Literal      string    `yaml:"literal,omitempty"`       // program result written as a literal
	Event        yaml.Node `yaml:"event,omitempty"`         // record after the program ran
	Error        string    `yaml:"error,omitempty"`         // substring of the compile or runtime error
	CompileError string    `yaml:"compile_error,omitempty"` // code, e.g. type_mismatch
	Kind         string    `yaml:"kind,omitempty"`          // static kind, e.g. "array" or "integer or null"
	Fallible     *bool     `yaml:"fallible,omitempty"`      // static fallibility
}

// HasValue reports whether an expected result value was given
func (e *Expectation) HasValue() bool {
	return e.Value.Kind != 0 || e.Literal != ""
}

// HasEvent reports whether an expected record was given
func (e *Expectation) HasEvent() bool {
	return e.Event.Kind != 0
}

// IsEmpty reports whether the expectation checks nothing
func (e *Expectation) IsEmpty() bool {
	return !e.HasValue() && !e.HasEvent() && e.Error == "" && e.CompileError == "" &&
		e.Kind == "" && e.Fallible == nil
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
