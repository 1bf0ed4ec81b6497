package conformance

import (
	"fmt"
	"testing"

	"remap/stdlib"
)

func runResults(t *testing.T, results []TestResult) {
	t.Helper()

	// Group results by file for organized output
	fileGroups := make(map[string][]TestResult)
	var files []string
	for _, result := range results {
		if _, ok := fileGroups[result.Test.File]; !ok {
			files = append(files, result.Test.File)
		}
		fileGroups[result.Test.File] = append(fileGroups[result.Test.File], result)
	}

	// Run each test file as a subtest
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			for _, result := range fileGroups[file] {
				t.Run(result.Test.Test.Name, func(t *testing.T) {
					if result.Skipped {
						t.Skipf("Skipped: %s", result.SkipReason)
					} else if !result.Passed {
						if result.Error != nil {
							t.Errorf("%s: %v", result.Test.Test.Source, result.Error)
						} else {
							t.Error("Test failed")
						}
					}
				})
			}
		})
	}
}

func TestConformance(t *testing.T) {
	tests, err := LoadSuites(DefaultDir)
	if err != nil {
		t.Fatalf("Failed to load tests: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("No tests loaded")
	}

	results := NewRunner().RunAll(tests)
	runResults(t, results)

	stats := ComputeStats(results)
	t.Logf("\n=== Summary ===\n%s", FormatStats(stats))
}

func TestExamples(t *testing.T) {
	tests := ExampleTests(stdlib.All())
	if len(tests) == 0 {
		t.Fatal("No examples")
	}
	results := NewRunner().RunAll(tests)
	runResults(t, results)

	stats := ComputeStats(results)
	if stats.Passed != stats.Total {
		t.Logf("%s", FormatStats(stats))
	}
}

func TestLoadSuites(t *testing.T) {
	tests, err := LoadSuites(DefaultDir)
	if err != nil {
		t.Fatalf("Failed to load tests: %v", err)
	}

	files := make(map[string]int)
	for _, test := range tests {
		files[test.File]++
	}
	for _, want := range []string{"append.yaml", "paths.yaml", "functions.yaml", "typedefs.yaml"} {
		if files[want] == 0 {
			t.Errorf("no tests loaded from %s", want)
		}
	}

	// Suites load in file name order
	if tests[0].File != "append.yaml" || tests[0].Suite.Name != "append" {
		t.Errorf("first test from %s (%s)", tests[0].File, tests[0].Suite.Name)
	}
}

func TestYAMLParsing(t *testing.T) {
	tests, err := LoadSuites(DefaultDir)
	if err != nil {
		t.Fatalf("YAML parsing failed: %v", err)
	}

	names := make(map[string]bool)
	for i, test := range tests {
		// Each test must have a unique name within its file
		key := test.File + "/" + test.Test.Name
		if test.Test.Name == "" {
			t.Errorf("Test %d in %s has no name", i, test.File)
		} else if names[key] {
			t.Errorf("Duplicate test %s", key)
		}
		names[key] = true

		if test.Test.Expect.IsEmpty() {
			t.Errorf("Test %s in %s has no expectation", test.Test.Name, test.File)
		}
	}
}

func TestRunnerReportsFailures(t *testing.T) {
	fallible := false
	tests := []struct {
		name string
		tc   TestCase
	}{
		{"wrong value", TestCase{Source: "append([1], [2])", Expect: Expectation{Literal: "[2, 1]"}}},
		{"unexpected compile error", TestCase{Source: "append([1])", Expect: Expectation{Literal: "[1]"}}},
		{"wrong compile error", TestCase{Source: "append([1])", Expect: Expectation{CompileError: "type_mismatch"}}},
		{"missing runtime error", TestCase{Source: "append([1], [2])", Expect: Expectation{Error: "expected array"}}},
		{"wrong kind", TestCase{Source: "append([1], [2])", Expect: Expectation{Kind: "object"}}},
		{"wrong fallibility", TestCase{Source: "append(.a, [2])", Expect: Expectation{Fallible: &fallible}}},
		{"no expectation", TestCase{Source: "."}},
	}

	runner := NewRunner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runner.Run(LoadedTest{File: "inline", Test: tt.tc})
			if res.Passed || res.Error == nil {
				t.Errorf("Run() passed, want failure")
			}
		})
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		skip interface{}
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"not supported", true},
	}
	for _, tt := range tests {
		tc := TestCase{Skip: tt.skip}
		if got, _ := tc.IsSkipped(); got != tt.want {
			t.Errorf("IsSkipped(%v) = %v, want %v", tt.skip, got, tt.want)
		}
	}
}

// ExampleRunner shows how to run a directory of suites
func ExampleRunner() {
	tests, err := LoadSuites(DefaultDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	stats := ComputeStats(NewRunner().RunAll(tests))
	fmt.Println(FormatStats(stats))
}
