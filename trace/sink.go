package trace

import (
	"sort"
	"strings"
	"sync"
)

// Sink receives component events and counter increments
type Sink interface {
	Event(name string)
	Counter(name string, delta int64, tags map[string]string)
}

// Discard is a Sink that drops everything
var Discard Sink = discard{}

type discard struct{}

func (discard) Event(string)                             {}
func (discard) Counter(string, int64, map[string]string) {}

// Tee returns a Sink forwarding to every non-nil sink
func Tee(sinks ...Sink) Sink {
	var out tee
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type tee []Sink

func (t tee) Event(name string) {
	for _, s := range t {
		s.Event(name)
	}
}

func (t tee) Counter(name string, delta int64, tags map[string]string) {
	for _, s := range t {
		s.Counter(name, delta, tags)
	}
}

// CounterSample is one recorded counter increment
type CounterSample struct {
	Name  string
	Delta int64
	Tags  map[string]string
}

// Recorder accumulates events and counters so tests can assert on what a
// component emitted. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	events   []string
	counters []CounterSample
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Event records a named event
func (r *Recorder) Event(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

// Counter records a counter increment. Tags are copied.
func (r *Recorder) Counter(name string, delta int64, tags map[string]string) {
	copied := make(map[string]string, len(tags))
	for k, v := range tags {
		copied[k] = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = append(r.counters, CounterSample{Name: name, Delta: delta, Tags: copied})
}

// Events returns the recorded event names in emission order
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Counters returns the recorded counter increments in emission order
func (r *Recorder) Counters() []CounterSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CounterSample, len(r.counters))
	copy(out, r.counters)
	return out
}

// HasEvent reports whether an event whose name ends with suffix was recorded
func (r *Recorder) HasEvent(suffix string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if strings.HasSuffix(e, suffix) {
			return true
		}
	}
	return false
}

// CounterTotal returns the sum of all increments of the named counter
func (r *Recorder) CounterTotal(name string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, c := range r.counters {
		if c.Name == name {
			total += c.Delta
		}
	}
	return total
}

// HasCounter reports whether the named counter was incremented with every
// given tag name present
func (r *Recorder) HasCounter(name string, tagNames ...string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
outer:
	for _, c := range r.counters {
		if c.Name != name {
			continue
		}
		for _, tag := range tagNames {
			if _, ok := c.Tags[tag]; !ok {
				continue outer
			}
		}
		return true
	}
	return false
}

// Missing returns the expected events (by suffix) and counters (by name)
// that were never recorded, sorted
func (r *Recorder) Missing(events []string, counters ...string) []string {
	var missing []string
	for _, e := range events {
		if !r.HasEvent(e) {
			missing = append(missing, "event "+e)
		}
	}
	for _, c := range counters {
		if !r.HasCounter(c) {
			missing = append(missing, "counter "+c)
		}
	}
	sort.Strings(missing)
	return missing
}

// Reset discards everything recorded so far
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.counters = nil
}
