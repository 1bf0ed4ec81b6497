package stdlib

import (
	"fmt"
	"strings"

	"remap/expr"
	"remap/function"
	"remap/typedef"
	"remap/types"
)

var push = simple("push",
	[]function.Parameter{
		required("value", types.KindArray),
		required("item", types.KindAny),
	},
	[]function.Example{
		{Title: "push item", Source: `push([1, 2], 3)`, Result: `[1, 2, 3]`},
		{Title: "push array", Source: `push([], [1])`, Result: `[[1]]`},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		arr, err := types.TryArray(args[0])
		if err != nil {
			return nil, err
		}
		return types.NewArray(append(arr, args[1])), nil
	},
	func(args []typedef.TypeDef) typedef.TypeDef {
		item := typedef.Array([]typedef.TypeDef{args[1].Infallible()})
		if td, ok := typedef.Concat(args[0].Infallible(), item); ok {
			return td
		}
		return typedef.FromKind(types.KindArray)
	},
)

var flatten = simple("flatten",
	[]function.Parameter{
		required("value", types.KindArray|types.KindObject),
		optional("separator", types.KindBytes),
	},
	[]function.Example{
		{Title: "flatten array", Source: `flatten([1, [2, [3]], []])`, Result: `[1, 2, 3]`},
		{Title: "flatten object", Source: `flatten({"a": {"b": 1, "c": [2]}})`, Result: `{ "a.b": 1, "a.c": [2] }`},
		{Title: "custom separator", Source: `flatten({"a": {"b": 1}}, separator: "_")`, Result: `{ "a_b": 1 }`},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		sep := "."
		if args[1] != nil {
			s, err := types.TryString(args[1])
			if err != nil {
				return nil, err
			}
			sep = s
		}

		switch v := args[0].(type) {
		case types.ArrayValue:
			return types.NewArray(flattenArray(nil, v)), nil
		case types.ObjectValue:
			out := make(map[string]types.Value)
			flattenObject(out, "", sep, v)
			return types.NewObject(out), nil
		default:
			return nil, &types.CoercionError{Want: types.KindArray | types.KindObject, Got: types.KindOf(v)}
		}
	},
	func(args []typedef.TypeDef) typedef.TypeDef {
		return typedef.FromKind(args[0].Kind.Intersect(types.KindArray | types.KindObject))
	},
)

func flattenArray(out []types.Value, arr types.ArrayValue) []types.Value {
	for _, e := range arr.Elements() {
		if nested, ok := e.(types.ArrayValue); ok {
			out = flattenArray(out, nested)
			continue
		}
		out = append(out, e)
	}
	return out
}

func flattenObject(out map[string]types.Value, prefix, sep string, obj types.ObjectValue) {
	for k, v := range obj.Fields() {
		key := k
		if prefix != "" {
			key = prefix + sep + k
		}
		if nested, ok := v.(types.ObjectValue); ok && nested.Len() > 0 {
			flattenObject(out, key, sep, nested)
			continue
		}
		out[key] = v
	}
}

var length = simple("length",
	[]function.Parameter{
		required("value", types.KindArray|types.KindObject|types.KindBytes),
	},
	[]function.Example{
		{Title: "array", Source: `length([1, 2, 3])`, Result: `3`},
		{Title: "object", Source: `length({"a": 1})`, Result: `1`},
		{Title: "string bytes", Source: `length("héllo")`, Result: `6`},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		switch v := args[0].(type) {
		case types.ArrayValue:
			return types.NewInt(int64(v.Len())), nil
		case types.ObjectValue:
			return types.NewInt(int64(v.Len())), nil
		case types.BytesValue:
			return types.NewInt(int64(v.Len())), nil
		default:
			return nil, &types.CoercionError{Want: types.KindArray | types.KindObject | types.KindBytes, Got: types.KindOf(v)}
		}
	},
	returns(types.KindInteger),
)

var includes = simple("includes",
	[]function.Parameter{
		required("value", types.KindArray),
		required("item", types.KindAny),
	},
	[]function.Example{
		{Title: "present", Source: `includes(["a", [1]], [1])`, Result: `true`},
		{Title: "absent", Source: `includes([1, 2], 1.0)`, Result: `false`},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		arr, err := types.TryArray(args[0])
		if err != nil {
			return nil, err
		}
		for _, e := range arr {
			if e.Equal(args[1]) {
				return types.NewBool(true), nil
			}
		}
		return types.NewBool(false), nil
	},
	returns(types.KindBoolean),
)

var join = simple("join",
	[]function.Parameter{
		required("value", types.KindArray),
		optional("separator", types.KindBytes),
	},
	[]function.Example{
		{Title: "with separator", Source: `join(["a", "b"], ", ")`, Result: `"a, b"`},
		{Title: "without separator", Source: `join(["a", "b"])`, Result: `"ab"`},
		{Title: "non-string item", Source: `join(["a", 1])`, Error: "expected string, got integer"},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		arr, err := types.TryArray(args[0])
		if err != nil {
			return nil, err
		}
		sep := ""
		if args[1] != nil {
			if sep, err = types.TryString(args[1]); err != nil {
				return nil, err
			}
		}

		parts := make([]string, len(arr))
		for i, e := range arr {
			s, err := types.TryString(e)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			parts[i] = s
		}
		return types.NewString(strings.Join(parts, sep)), nil
	},
	fallibly(types.KindBytes),
)
