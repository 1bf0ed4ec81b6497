package function

import (
	"fmt"
	"sort"

	"remap/expr"
)

// Registry holds functions keyed by identifier. It is populated before
// compilation and only read afterwards.
type Registry struct {
	funcs map[string]Function
}

// NewRegistry creates a registry holding fns. It panics on duplicate
// identifiers, which are programming errors.
func NewRegistry(fns ...Function) *Registry {
	r := &Registry{funcs: make(map[string]Function)}
	for _, fn := range fns {
		if err := r.Register(fn); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds fn under its identifier
func (r *Registry) Register(fn Function) error {
	name := fn.Identifier()
	if _, ok := r.funcs[name]; ok {
		return fmt.Errorf("function %q already registered", name)
	}
	r.funcs[name] = fn
	return nil
}

// Get retrieves a function by name
// Returns (function, true) if found, (nil, false) if not found
func (r *Registry) Get(name string) (Function, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Lookup is Get with an UnknownFunction diagnostic
func (r *Registry) Lookup(name string) (Function, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, expr.Errorf(expr.UnknownFunction, "", "call to undefined function %q", name)
	}
	return fn, nil
}

// Has checks if a function is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Names returns every registered identifier, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered functions
func (r *Registry) Len() int {
	return len(r.funcs)
}
