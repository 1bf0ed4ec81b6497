package stdlib

import (
	"sort"

	"remap/expr"
	"remap/function"
	"remap/typedef"
	"remap/types"
)

var mergeParams = []function.Parameter{
	required("to", types.KindObject),
	required("from", types.KindObject),
	optional("deep", types.KindBoolean),
}

var merge = &function.Builtin{
	Name:   "merge",
	Params: mergeParams,
	Docs: []function.Example{
		{Title: "shallow", Source: `merge({"a": 1, "b": {"x": 1}}, {"b": {"y": 2}})`, Result: `{ "a": 1, "b": { "y": 2 } }`},
		{Title: "deep", Source: `merge({"a": 1, "b": {"x": 1}}, {"b": {"y": 2}}, deep: true)`, Result: `{ "a": 1, "b": { "x": 1, "y": 2 } }`},
	},
	CompileFunc: func(state *expr.State, ctx *function.CompileContext, args *function.ArgumentList) (expr.Expression, error) {
		deep := false
		v, err := args.OptionalLiteral("deep")
		if err != nil {
			return nil, err
		}
		if v != nil {
			if deep, err = types.TryBoolean(v); err != nil {
				return nil, expr.NewTypeMismatch("merge", "deep", types.KindBoolean, types.KindOf(v))
			}
		}

		apply := func(_ *expr.Context, vals []types.Value) (types.Value, error) {
			to, err := types.TryObject(vals[0])
			if err != nil {
				return nil, err
			}
			from, err := types.TryObject(vals[1])
			if err != nil {
				return nil, err
			}
			return types.NewObject(mergeFields(to, from, deep)), nil
		}

		td := func(tds []typedef.TypeDef) typedef.TypeDef {
			to, from := tds[0], tds[1]
			if deep || !to.ExactFields() || !from.ExactFields() ||
				!to.IsExactly(types.KindObject) || !from.IsExactly(types.KindObject) {
				return typedef.FromKind(types.KindObject)
			}
			fields := make(map[string]typedef.TypeDef, len(to.Object)+len(from.Object))
			for k, t := range to.Object {
				fields[k] = t
			}
			for k, t := range from.Object {
				fields[k] = t
			}
			return typedef.ObjectMapped(fields)
		}

		return newCall(mergeParams, args, apply, td)
	},
}

// mergeFields overwrites to with from. With deep set, nested objects present
// on both sides are merged recursively instead of replaced.
func mergeFields(to, from map[string]types.Value, deep bool) map[string]types.Value {
	for k, fv := range from {
		if deep {
			tobj, tok := to[k].(types.ObjectValue)
			fobj, fok := fv.(types.ObjectValue)
			if tok && fok {
				nested, _ := types.TryObject(tobj)
				incoming, _ := types.TryObject(fobj)
				to[k] = types.NewObject(mergeFields(nested, incoming, true))
				continue
			}
		}
		to[k] = fv
	}
	return to
}

var keys = simple("keys",
	[]function.Parameter{
		required("value", types.KindObject),
	},
	[]function.Example{
		{Title: "sorted keys", Source: `keys({"b": 1, "a": 2})`, Result: `["a", "b"]`},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		obj, ok := args[0].(types.ObjectValue)
		if !ok {
			return nil, &types.CoercionError{Want: types.KindObject, Got: types.KindOf(args[0])}
		}
		names := obj.Keys()
		out := make([]types.Value, len(names))
		for i, k := range names {
			out[i] = types.NewString(k)
		}
		return types.NewArray(out), nil
	},
	func(args []typedef.TypeDef) typedef.TypeDef {
		if !args[0].ExactFields() || !args[0].IsExactly(types.KindObject) {
			return typedef.FromKind(types.KindArray)
		}
		elems := make([]typedef.TypeDef, len(args[0].Object))
		for i := range elems {
			elems[i] = typedef.FromKind(types.KindBytes)
		}
		return typedef.Array(elems)
	},
)

var values = simple("values",
	[]function.Parameter{
		required("value", types.KindObject),
	},
	[]function.Example{
		{Title: "values by key order", Source: `values({"b": 1, "a": "x"})`, Result: `["x", 1]`},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		obj, ok := args[0].(types.ObjectValue)
		if !ok {
			return nil, &types.CoercionError{Want: types.KindObject, Got: types.KindOf(args[0])}
		}
		names := obj.Keys()
		out := make([]types.Value, len(names))
		for i, k := range names {
			out[i], _ = obj.Get(k)
		}
		return types.NewArray(out), nil
	},
	func(args []typedef.TypeDef) typedef.TypeDef {
		if !args[0].ExactFields() || !args[0].IsExactly(types.KindObject) {
			return typedef.FromKind(types.KindArray)
		}
		names := make([]string, 0, len(args[0].Object))
		for k := range args[0].Object {
			names = append(names, k)
		}
		sort.Strings(names)
		elems := make([]typedef.TypeDef, len(names))
		for i, k := range names {
			elems[i] = args[0].Object[k]
		}
		return typedef.Array(elems)
	},
)
