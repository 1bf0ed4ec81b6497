// Package stdlib holds the built-in functions available to every program.
package stdlib

import (
	"remap/expr"
	"remap/function"
	"remap/typedef"
	"remap/types"
)

// All returns every built-in function
func All() []function.Function {
	return []function.Function{
		// arrays
		Append{},
		push,
		flatten,
		length,
		includes,
		join,

		// objects
		merge,
		keys,
		values,

		// strings
		upcase,
		downcase,
		contains,
		match,

		// conversion
		toString,
		toInt,
		parseJSON,

		// timestamps
		parseTimestamp,
		formatTimestamp,

		// hashing and ids
		sha2Digest,
		sha3Digest,
		uuidV4,

		// codecs
		encodeBase64,
		decodeBase64,
		encodeZstd,
		decodeZstd,
	}
}

// NewRegistry returns a registry holding All()
func NewRegistry() *function.Registry {
	return function.NewRegistry(All()...)
}

type applyFunc func(ctx *expr.Context, args []types.Value) (types.Value, error)
type typeDefFunc func(args []typedef.TypeDef) typedef.TypeDef

// call is the node shared by most built-ins: operands are resolved in
// parameter order (nil for absent optionals) and handed to apply.
type call struct {
	params  []function.Parameter
	args    []expr.Expression
	apply   applyFunc
	typeDef typeDefFunc
}

func (c *call) Resolve(ctx *expr.Context) (types.Value, error) {
	vals := make([]types.Value, len(c.args))
	for i, a := range c.args {
		if a == nil {
			continue
		}
		v, err := a.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return c.apply(ctx, vals)
}

// TypeDef is fallible when an operand is, or when an operand's static kind
// is wider than its parameter accepts.
func (c *call) TypeDef(state *expr.State) typedef.TypeDef {
	tds := make([]typedef.TypeDef, len(c.args))
	fallible := false
	for i, a := range c.args {
		if a == nil {
			continue
		}
		tds[i] = a.TypeDef(state)
		if tds[i].Fallible || !c.params[i].Kind.Contains(tds[i].Kind) {
			fallible = true
		}
	}
	return c.typeDef(tds).OrFallible(fallible)
}

// newCall binds args in parameter order
func newCall(params []function.Parameter, args *function.ArgumentList, apply applyFunc, td typeDefFunc) (*call, error) {
	bound := make([]expr.Expression, len(params))
	for i, p := range params {
		if !p.Required {
			bound[i] = args.Optional(p.Keyword)
			continue
		}
		e, err := args.Required(p.Keyword)
		if err != nil {
			return nil, err
		}
		bound[i] = e
	}
	return &call{params: params, args: bound, apply: apply, typeDef: td}, nil
}

// simple builds a function whose compile step only binds arguments
func simple(name string, params []function.Parameter, examples []function.Example, apply applyFunc, td typeDefFunc) *function.Builtin {
	return &function.Builtin{
		Name:   name,
		Params: params,
		Docs:   examples,
		CompileFunc: func(state *expr.State, ctx *function.CompileContext, args *function.ArgumentList) (expr.Expression, error) {
			return newCall(params, args, apply, td)
		},
	}
}

// returns is a typeDefFunc yielding a fixed kind
func returns(k types.Kind) typeDefFunc {
	return func([]typedef.TypeDef) typedef.TypeDef {
		return typedef.FromKind(k)
	}
}

// fallibly is a typeDefFunc yielding a fixed kind that may always fail
func fallibly(k types.Kind) typeDefFunc {
	return func([]typedef.TypeDef) typedef.TypeDef {
		return typedef.FromKind(k).WithFallible(true)
	}
}

func required(keyword string, k types.Kind) function.Parameter {
	return function.Parameter{Keyword: keyword, Kind: k, Required: true}
}

func optional(keyword string, k types.Kind) function.Parameter {
	return function.Parameter{Keyword: keyword, Kind: k}
}

// literalString reads an optional literal bytes argument, checking its kind
func literalString(name string, args *function.ArgumentList, keyword, fallback string) (string, error) {
	v, err := args.OptionalLiteral(keyword)
	if err != nil || v == nil {
		return fallback, err
	}
	s, err := types.TryString(v)
	if err != nil {
		return "", expr.NewTypeMismatch(name, keyword, types.KindBytes, types.KindOf(v))
	}
	return s, nil
}
