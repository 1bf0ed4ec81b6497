package conformance

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"remap/function"
)

// DefaultDir holds the suites shipped with the package, relative to it
const DefaultDir = "testdata"

// LoadedTest represents a test with its source file path
type LoadedTest struct {
	File  string
	Suite TestSuite
	Test  TestCase
}

// LoadSuites walks dir and loads every test case from its .yaml files, in
// file name order
func LoadSuites(dir string) ([]LoadedTest, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".yaml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var loaded []LoadedTest
	for _, path := range paths {
		tests, err := loadTestFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		// Relative paths give cleaner test names
		relPath, _ := filepath.Rel(dir, path)
		for _, test := range tests {
			test.File = filepath.ToSlash(relPath)
			loaded = append(loaded, test)
		}
	}
	return loaded, nil
}

// loadTestFile parses a single YAML file and returns all test cases.
// Unknown keys are rejected so that typos do not silently drop a check.
func loadTestFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var suite TestSuite
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&suite); err != nil {
		return nil, err
	}

	var tests []LoadedTest
	for _, test := range suite.Tests {
		tests = append(tests, LoadedTest{
			Suite: suite,
			Test:  test,
		})
	}
	return tests, nil
}

// ExampleTests turns the documented examples of fns into test cases, one
// suite per function
func ExampleTests(fns []function.Function) []LoadedTest {
	var tests []LoadedTest
	for _, fn := range fns {
		suite := TestSuite{Name: fn.Identifier()}
		for _, ex := range fn.Examples() {
			tc := TestCase{
				Name:   ex.Title,
				Source: ex.Source,
				Expect: Expectation{Literal: ex.Result, Error: ex.Error},
			}
			suite.Tests = append(suite.Tests, tc)
			tests = append(tests, LoadedTest{
				File:  "examples/" + fn.Identifier(),
				Suite: suite,
				Test:  tc,
			})
		}
	}
	return tests
}
