package conformance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"remap/compiler"
	"remap/expr"
	"remap/function"
	"remap/parser"
	"remap/stdlib"
	"remap/types"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance tests
type Runner struct {
	registry *function.Registry
}

// NewRunner creates a runner with the standard library
func NewRunner() *Runner {
	return NewRunnerWithRegistry(stdlib.NewRegistry())
}

// NewRunnerWithRegistry creates a runner resolving calls in registry
func NewRunnerWithRegistry(registry *function.Registry) *Runner {
	return &Runner{registry: registry}
}

// outcome is everything a test can be checked against
type outcome struct {
	program    *compiler.Program
	compileErr error
	value      types.Value
	event      types.Value
	runtimeErr error
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	// Check if test should be skipped
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}

	if test.Test.Expect.IsEmpty() {
		return TestResult{Test: test, Error: errors.New("no expectation specified")}
	}

	out, err := r.execute(test.Test)
	if err != nil {
		return TestResult{Test: test, Error: err}
	}

	err = checkExpectation(test.Test.Expect, out)
	return TestResult{
		Test:   test,
		Passed: err == nil,
		Error:  err,
	}
}

// execute compiles and runs the test's program. Only malformed tests
// return an error; compile and runtime failures are part of the outcome.
func (r *Runner) execute(test TestCase) (*outcome, error) {
	event, err := types.FromGo(test.Event)
	if err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	if test.Event == nil {
		event = types.NewEmptyObject()
	}

	loc := time.UTC
	if test.Timezone != "" {
		if loc, err = time.LoadLocation(test.Timezone); err != nil {
			return nil, fmt.Errorf("invalid timezone: %w", err)
		}
	}

	state := expr.NewState()
	state.Timezone = loc

	out := &outcome{}
	out.program, out.compileErr = compiler.Compile(test.Source, r.registry, state)
	if out.compileErr != nil {
		return out, nil
	}

	ctx := expr.NewContext(event)
	ctx.Timezone = loc
	out.value, out.runtimeErr = out.program.Resolve(ctx)
	out.event = ctx.Event
	return out, nil
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation checks the outcome against every expectation given
func checkExpectation(expect Expectation, out *outcome) error {
	// Compile-time expectations
	if expect.CompileError != "" {
		code, ok := expr.ErrorCodeFromString(expect.CompileError)
		if !ok {
			return fmt.Errorf("unknown compile error code: %s", expect.CompileError)
		}
		var ce *expr.CompileError
		if !errors.As(out.compileErr, &ce) {
			return fmt.Errorf("expected compile error %s, got %v", expect.CompileError, out.compileErr)
		}
		if ce.Code != code {
			return fmt.Errorf("expected compile error %s, got %s", expect.CompileError, ce.Code)
		}
		if expect.Error != "" && !strings.Contains(ce.Error(), expect.Error) {
			return fmt.Errorf("expected error containing %q, got %q", expect.Error, ce.Error())
		}
		return nil
	}
	if out.compileErr != nil {
		if expect.Error != "" && !expect.HasValue() && strings.Contains(out.compileErr.Error(), expect.Error) {
			return nil
		}
		return fmt.Errorf("unexpected compile error: %v", out.compileErr)
	}

	// Static type expectations
	td := out.program.TypeDef()
	if expect.Kind != "" {
		want, err := parseKind(expect.Kind)
		if err != nil {
			return err
		}
		if td.Kind != want {
			return fmt.Errorf("expected kind %s, got %s", want, td.Kind)
		}
	}
	if expect.Fallible != nil && td.Fallible != *expect.Fallible {
		return fmt.Errorf("expected fallible %v, got %v", *expect.Fallible, td.Fallible)
	}

	// Runtime expectations
	if expect.Error != "" {
		if out.runtimeErr == nil {
			return fmt.Errorf("expected error %q, got value: %v", expect.Error, out.value)
		}
		if !strings.Contains(out.runtimeErr.Error(), expect.Error) {
			return fmt.Errorf("expected error containing %q, got %q", expect.Error, out.runtimeErr.Error())
		}
		if !td.Fallible {
			return fmt.Errorf("runtime error %v from an infallible program", out.runtimeErr)
		}
		return nil
	}
	if out.runtimeErr != nil {
		return fmt.Errorf("unexpected error: %v", out.runtimeErr)
	}
	if !td.Kind.Contains(types.KindOf(out.value)) {
		return fmt.Errorf("result %v outside static kind %s", out.value, td.Kind)
	}

	if expect.HasValue() {
		want, err := expectedValue(expect)
		if err != nil {
			return fmt.Errorf("failed to convert expected value: %w", err)
		}
		if !out.value.Equal(want) {
			return fmt.Errorf("expected %v, got %v", want, out.value)
		}
	}
	if expect.HasEvent() {
		want, err := convertYAMLNode(&expect.Event)
		if err != nil {
			return fmt.Errorf("failed to convert expected event: %w", err)
		}
		if !out.event.Equal(want) {
			return fmt.Errorf("expected event %v, got %v", want, out.event)
		}
	}
	return nil
}

func expectedValue(expect Expectation) (types.Value, error) {
	if expect.Literal != "" {
		return parseLiteral(expect.Literal)
	}
	return convertYAMLNode(&expect.Value)
}

// convertYAMLNode converts a YAML node to a Value
func convertYAMLNode(n *yaml.Node) (types.Value, error) {
	var v interface{}
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return types.FromGo(v)
}

// parseLiteral reads a value written in program syntax. Arrays and objects
// may nest; calls and paths are not allowed.
func parseLiteral(src string) (types.Value, error) {
	e, err := parser.NewParser(src).ParseExpression()
	if err != nil {
		return nil, err
	}
	return literalValue(e)
}

func literalValue(e parser.Expr) (types.Value, error) {
	switch n := e.(type) {
	case *parser.LiteralExpr:
		return n.Value, nil
	case *parser.ArrayExpr:
		elems := make([]types.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := literalValue(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return types.NewArray(elems), nil
	case *parser.ObjectExpr:
		fields := make(map[string]types.Value, len(n.Keys))
		for i, k := range n.Keys {
			v, err := literalValue(n.Values[i])
			if err != nil {
				return nil, err
			}
			fields[k] = v
		}
		return types.NewObject(fields), nil
	default:
		return nil, fmt.Errorf("not a literal: %s", parser.Unparse(e))
	}
}

// parseKind reads "array", "integer or null" or "integer, float or null"
func parseKind(s string) (types.Kind, error) {
	var k types.Kind
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' }) {
		for _, name := range strings.Split(part, " or ") {
			name = strings.TrimSpace(name)
			kind, ok := types.KindFromString(name)
			if !ok {
				return 0, fmt.Errorf("unknown kind: %s", name)
			}
			k |= kind
		}
	}
	return k, nil
}
