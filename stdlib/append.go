package stdlib

import (
	"remap/expr"
	"remap/function"
	"remap/typedef"
	"remap/types"
)

// Append concatenates two arrays
type Append struct{}

func (Append) Identifier() string {
	return "append"
}

func (Append) Parameters() []function.Parameter {
	return []function.Parameter{
		required("value", types.KindArray),
		required("items", types.KindArray),
	}
}

func (Append) Examples() []function.Example {
	return []function.Example{
		{
			Title:  "append to array",
			Source: `append([0, 1], [2, 3])`,
			Result: `[0, 1, 2, 3]`,
		},
		{
			Title:  "mixed element kinds",
			Source: `append([1], [true, 5.0, "bar"])`,
			Result: `[1, true, 5.0, "bar"]`,
		},
		{
			Title:  "value is not an array",
			Source: `append(.missing, [1])`,
			Error:  "expected array, got null",
		},
	}
}

func (Append) Compile(state *expr.State, ctx *function.CompileContext, args *function.ArgumentList) (expr.Expression, error) {
	value, err := args.Required("value")
	if err != nil {
		return nil, err
	}
	items, err := args.Required("items")
	if err != nil {
		return nil, err
	}
	return &appendFn{value: value, items: items}, nil
}

type appendFn struct {
	value expr.Expression
	items expr.Expression
}

func (f *appendFn) Resolve(ctx *expr.Context) (types.Value, error) {
	v, err := f.value.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	value, err := types.TryArray(v)
	if err != nil {
		return nil, err
	}

	v, err = f.items.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	items, err := types.TryArray(v)
	if err != nil {
		return nil, err
	}

	return types.NewArray(append(value, items...)), nil
}

// TypeDef is exact per index when both operands have a known length.
// Otherwise it is the merge of both operands narrowed to array, keeping only
// the left operand's indices when its length is known, since every index of
// the right operand moves.
func (f *appendFn) TypeDef(state *expr.State) typedef.TypeDef {
	left := f.value.TypeDef(state)
	right := f.items.TypeDef(state)
	fallible := left.Fallible || right.Fallible ||
		!left.IsExactly(types.KindArray) || !right.IsExactly(types.KindArray)

	if td, ok := typedef.Concat(left, right); ok {
		return td.WithFallible(fallible)
	}

	td := left.Merge(right).WithKind(types.KindArray).WithFallible(fallible)
	td.Array = nil
	if n, ok := left.ExactLen(); ok {
		td.Array = make(map[int]typedef.TypeDef, n)
		for i := 0; i < n; i++ {
			td.Array[i] = left.At(i)
		}
	}
	return td
}
