package expr

import (
	"errors"

	"remap/typedef"
	"remap/types"
)

// Call wraps the node a function compiled for one call site. It traces the
// call and tags runtime errors with the function name.
type Call struct {
	Function string
	Pos      int
	Node     Expression
}

func (c *Call) Resolve(ctx *Context) (types.Value, error) {
	ctx.Tracer.CallStart(c.Function)

	v, err := c.Node.Resolve(ctx)
	if err != nil {
		ctx.Tracer.CallError(c.Function, err)
		var fnErr *FunctionError
		if errors.As(err, &fnErr) {
			return nil, err
		}
		return nil, &FunctionError{Function: c.Function, Err: err}
	}

	ctx.Tracer.CallReturn(c.Function, v)
	return v, nil
}

func (c *Call) TypeDef(state *State) typedef.TypeDef {
	return c.Node.TypeDef(state)
}
