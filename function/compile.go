package function

import (
	"errors"

	"remap/expr"
)

// Check validates bound arguments against fn's signature: every required
// parameter is present, every argument's static kind can satisfy its
// parameter, and no argument targets an unknown keyword. Arguments that
// might have the wrong kind at runtime are accepted.
func Check(state *expr.State, fn Function, args *ArgumentList) error {
	name := fn.Identifier()
	params := fn.Parameters()

	for _, k := range args.Keywords() {
		if !hasParameter(params, k) {
			return expr.Errorf(expr.UnknownKeyword, name, "unknown keyword argument %q", k)
		}
	}

	for _, p := range params {
		e, ok := args.args[p.Keyword]
		if !ok {
			if p.Required {
				return expr.NewMissingArgument(name, p.Keyword)
			}
			continue
		}
		td := e.TypeDef(state)
		if !td.Compatible(p.Kind) {
			return expr.NewTypeMismatch(name, p.Keyword, p.Kind, td.Kind)
		}
	}
	return nil
}

// Compile checks args and asks fn for its node, wrapping it in a Call so
// runtime errors carry the function name
func Compile(state *expr.State, ctx *CompileContext, fn Function, args *ArgumentList) (expr.Expression, error) {
	if ctx == nil {
		ctx = &CompileContext{Span: -1}
	}
	name := fn.Identifier()
	if ctx.Function == "" {
		ctx.Function = name
	}
	args.function = name

	if err := Check(state, fn, args); err != nil {
		return nil, atSpan(err, ctx.Span)
	}
	node, err := fn.Compile(state, ctx, args)
	if err != nil {
		return nil, atSpan(err, ctx.Span)
	}
	return &expr.Call{Function: name, Pos: ctx.Span, Node: node}, nil
}

func atSpan(err error, span int) error {
	var ce *expr.CompileError
	if errors.As(err, &ce) && ce.Pos < 0 {
		ce.Pos = span
	}
	return err
}
