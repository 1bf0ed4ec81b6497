package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"remap/types"
)

// Tracer provides execution tracing for debugging.
// A nil *Tracer is valid and traces nothing.
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// New creates a tracer writing to w (stderr when nil)
func New(enabled bool, filters []string, writer io.Writer) *Tracer {
	if writer == nil {
		writer = os.Stderr
	}
	return &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// Init initializes the global tracer
func Init(enabled bool, filters []string, writer io.Writer) {
	globalTracer = New(enabled, filters, writer)
}

// Global returns the tracer installed by Init, or nil
func Global() *Tracer {
	return globalTracer
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	return globalTracer.Enabled()
}

// Enabled returns whether t traces anything
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// matchesFilter checks if a function name matches any of the filter patterns
func (t *Tracer) matchesFilter(name string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func (t *Tracer) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, format, args...)
}

// CallStart logs entry into a function call
func (t *Tracer) CallStart(function string) {
	if !t.Enabled() || !t.matchesFilter(function) {
		return
	}
	t.printf("[TRACE] CALL %s\n", function)
}

// CallReturn logs a function's result
func (t *Tracer) CallReturn(function string, result types.Value) {
	if !t.Enabled() || !t.matchesFilter(function) {
		return
	}

	resultStr := types.Render(result)
	// Truncate long values for readability
	if len(resultStr) > 120 {
		resultStr = resultStr[:117] + "..."
	}
	t.printf("[TRACE] RETURN %s => %s\n", function, resultStr)
}

// CallError logs a function failing at runtime
func (t *Tracer) CallError(function string, err error) {
	if !t.Enabled() || !t.matchesFilter(function) {
		return
	}
	t.printf("[TRACE] ERROR %s %v\n", function, err)
}

// Event logs a named component event. Tracer satisfies Sink.
func (t *Tracer) Event(name string) {
	if !t.Enabled() {
		return
	}
	t.printf("[TRACE] EVENT %s\n", name)
}

// Counter logs a counter increment with its tags
func (t *Tracer) Counter(name string, delta int64, tags map[string]string) {
	if !t.Enabled() {
		return
	}
	if len(tags) == 0 {
		t.printf("[TRACE] COUNTER %s +%d\n", name, delta)
		return
	}
	t.printf("[TRACE] COUNTER %s{%s} +%d\n", name, formatTags(tags), delta)
}

func formatTags(tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + tags[k]
	}
	return strings.Join(parts, ",")
}

// Global convenience functions

// CallStart logs a call using the global tracer
func CallStart(function string) {
	globalTracer.CallStart(function)
}

// CallReturn logs a call result using the global tracer
func CallReturn(function string, result types.Value) {
	globalTracer.CallReturn(function, result)
}

// CallError logs a call failure using the global tracer
func CallError(function string, err error) {
	globalTracer.CallError(function, err)
}
