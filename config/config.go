// Package config loads the YAML configuration of the remap command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config holds everything needed to run a transform
type Config struct {
	BaseDir     string        `yaml:"-"`            // directory containing the config file
	Program     string        `yaml:"program"`      // inline program source
	ProgramFile string        `yaml:"program_file"` // path to a program file, relative to BaseDir
	Workers     int           `yaml:"workers"`      // 0 means one per CPU
	Timezone    string        `yaml:"timezone"`     // IANA name or "local"
	Trace       bool          `yaml:"trace"`
	TraceFilter StringOrSlice `yaml:"trace_filter"` // glob patterns on function names
}

// StringOrSlice supports YAML fields that can be either a string or a slice of strings
type StringOrSlice []string

// UnmarshalYAML implements yaml.Unmarshaler to handle both string and []string
func (s *StringOrSlice) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*s = splitList(single)
		return nil
	}

	var slice []string
	if err := value.Decode(&slice); err != nil {
		return err
	}
	*s = slice
	return nil
}

// splitList splits a comma separated list, trimming blanks
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SplitList is the flag-friendly form of a trace filter
func SplitList(s string) []string {
	return splitList(s)
}

// Defaults returns a Config with sensible defaults
func Defaults() *Config {
	return &Config{
		Workers:  0,
		Timezone: "UTC",
	}
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		value := getenv(string(parts[1]))
		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}
		return []byte(value)
	})
}

// Load reads and validates a config file. Environment references of the form
// ${VAR} or ${VAR:-default} are expanded with getenv before parsing; a nil
// getenv uses os.Getenv.
func Load(path string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	data = interpolateEnv(data, getenv)

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.BaseDir = filepath.Dir(absPath)
	if cfg.ProgramFile != "" && !filepath.IsAbs(cfg.ProgramFile) {
		cfg.ProgramFile = filepath.Join(cfg.BaseDir, cfg.ProgramFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once
func (c *Config) Validate() error {
	var errs []string

	switch {
	case c.Program == "" && c.ProgramFile == "":
		errs = append(errs, "one of program or program_file is required")
	case c.Program != "" && c.ProgramFile != "":
		errs = append(errs, "program and program_file are mutually exclusive")
	}

	if c.Workers < 0 {
		errs = append(errs, fmt.Sprintf("invalid workers: %d (must be 0 or more)", c.Workers))
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Location resolves the configured timezone. An empty name means UTC.
func (c *Config) Location() (*time.Location, error) {
	switch strings.ToLower(c.Timezone) {
	case "", "utc":
		return time.UTC, nil
	case "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %s", c.Timezone)
	}
	return loc, nil
}

// Source returns the program text, reading ProgramFile when set
func (c *Config) Source() (string, error) {
	if c.ProgramFile == "" {
		return c.Program, nil
	}
	data, err := os.ReadFile(c.ProgramFile)
	if err != nil {
		return "", fmt.Errorf("failed to read program: %w", err)
	}
	return string(data), nil
}
