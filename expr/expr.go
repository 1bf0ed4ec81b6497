// Package expr defines the compiled expression tree and the two-phase
// contract every node satisfies: a static TypeDef derived at compile time
// and a Value produced per record at run time.
package expr

import (
	"time"

	"remap/trace"
	"remap/typedef"
	"remap/types"
)

// Expression is a compiled node. Nodes are immutable once built and may be
// resolved concurrently from many goroutines; all per-record state flows
// through the Context.
type Expression interface {
	// Resolve evaluates the node against one record
	Resolve(ctx *Context) (types.Value, error)

	// TypeDef describes what Resolve can produce. It never touches runtime
	// data and returns the same result every time it is called.
	TypeDef(state *State) typedef.TypeDef
}

// Context is the per-record runtime environment. It is owned by exactly one
// evaluation at a time.
type Context struct {
	Event    types.Value
	Timezone *time.Location
	Vars     map[string]types.Value
	Tracer   *trace.Tracer
}

// NewContext creates a context for one record. A nil event becomes an
// empty object.
func NewContext(event types.Value) *Context {
	if event == nil {
		event = types.NewEmptyObject()
	}
	return &Context{
		Event:    event,
		Timezone: time.UTC,
		Vars:     make(map[string]types.Value),
	}
}

// Var returns a local variable, or null when it was never assigned
func (c *Context) Var(name string) types.Value {
	if v, ok := c.Vars[name]; ok {
		return v
	}
	return types.NewNull()
}

// SetVar assigns a local variable
func (c *Context) SetVar(name string, v types.Value) {
	if c.Vars == nil {
		c.Vars = make(map[string]types.Value)
	}
	c.Vars[name] = v
}

// Location returns the context timezone, defaulting to UTC
func (c *Context) Location() *time.Location {
	if c.Timezone == nil {
		return time.UTC
	}
	return c.Timezone
}

// State is the compiler state threaded through every TypeDef and Compile
// call: what is statically known about the incoming record and the local
// variables assigned so far.
type State struct {
	Event     typedef.TypeDef
	Variables map[string]typedef.TypeDef
	Timezone  *time.Location
}

// NewState returns a state where the record is an object of unknown shape
func NewState() *State {
	return &State{
		Event:     typedef.FromKind(types.KindObject),
		Variables: make(map[string]typedef.TypeDef),
		Timezone:  time.UTC,
	}
}

// Variable returns the static type of a local variable
func (s *State) Variable(name string) (typedef.TypeDef, bool) {
	td, ok := s.Variables[name]
	return td, ok
}

// SetVariable records the static type of a local variable
func (s *State) SetVariable(name string, td typedef.TypeDef) {
	if s.Variables == nil {
		s.Variables = make(map[string]typedef.TypeDef)
	}
	s.Variables[name] = td
}

// Clone returns an independent copy of the state
func (s *State) Clone() *State {
	vars := make(map[string]typedef.TypeDef, len(s.Variables))
	for k, v := range s.Variables {
		vars[k] = v
	}
	return &State{
		Event:     s.Event,
		Variables: vars,
		Timezone:  s.Timezone,
	}
}
