// Package function defines the contract built-in functions implement and
// the compile-time binding of call-site arguments to their parameters.
package function

import (
	"remap/expr"
	"remap/types"
)

// Function is a built-in callable. Compile is invoked once per call site,
// after arguments have been bound and checked, and returns a fresh node.
type Function interface {
	Identifier() string
	Parameters() []Parameter
	Examples() []Example
	Compile(state *expr.State, ctx *CompileContext, args *ArgumentList) (expr.Expression, error)
}

// Parameter is one named, typed slot of a function signature
type Parameter struct {
	Keyword  string
	Kind     types.Kind
	Required bool
}

// Example is executable documentation: Source must evaluate to Result, or
// fail with an error containing Error.
type Example struct {
	Title  string
	Source string
	Result string
	Error  string
}

// CompileContext carries call-site information
type CompileContext struct {
	Span     int // byte offset of the call in the program source
	Function string
}

// Builtin adapts plain values and a compile func to the Function interface
type Builtin struct {
	Name        string
	Params      []Parameter
	Docs        []Example
	CompileFunc func(state *expr.State, ctx *CompileContext, args *ArgumentList) (expr.Expression, error)
}

func (b *Builtin) Identifier() string      { return b.Name }
func (b *Builtin) Parameters() []Parameter { return b.Params }
func (b *Builtin) Examples() []Example     { return b.Docs }

func (b *Builtin) Compile(state *expr.State, ctx *CompileContext, args *ArgumentList) (expr.Expression, error) {
	return b.CompileFunc(state, ctx, args)
}
