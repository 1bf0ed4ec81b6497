package stdlib

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"remap/expr"
	"remap/function"
	"remap/typedef"
	"remap/types"
)

var toString = simple("to_string",
	[]function.Parameter{
		required("value", types.KindAny),
	},
	[]function.Example{
		{Title: "integer", Source: `to_string(52)`, Result: `"52"`},
		{Title: "boolean", Source: `to_string(true)`, Result: `"true"`},
		{Title: "null", Source: `to_string(null)`, Result: `""`},
		{Title: "timestamp", Source: `to_string(t'2021-01-01T10:00:00Z')`, Result: `"2021-01-01T10:00:00Z"`},
		{Title: "array", Source: `to_string([1])`, Error: "unable to coerce array into string"},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		switch v := args[0].(type) {
		case types.NullValue:
			return types.NewString(""), nil
		case types.BytesValue:
			return v, nil
		case types.BoolValue:
			return types.NewString(strconv.FormatBool(v.Val)), nil
		case types.IntValue:
			return types.NewString(strconv.FormatInt(v.Val, 10)), nil
		case types.FloatValue:
			return types.NewString(strconv.FormatFloat(v.Val, 'f', -1, 64)), nil
		case types.TimestampValue:
			return types.NewString(v.Time().Format(time.RFC3339Nano)), nil
		default:
			return nil, fmt.Errorf("unable to coerce %s into string", types.KindOf(v))
		}
	},
	func(args []typedef.TypeDef) typedef.TypeDef {
		fallible := args[0].Kind.Intersects(types.KindContainer | types.KindRegex)
		return typedef.FromKind(types.KindBytes).WithFallible(fallible)
	},
)

var toInt = simple("to_int",
	[]function.Parameter{
		required("value", types.KindAny),
	},
	[]function.Example{
		{Title: "string", Source: `to_int("-42")`, Result: `-42`},
		{Title: "float truncates", Source: `to_int(3.99)`, Result: `3`},
		{Title: "boolean", Source: `to_int(true)`, Result: `1`},
		{Title: "timestamp", Source: `to_int(t'2020-12-30T22:20:53.824727Z')`, Result: `1609366853`},
		{Title: "invalid string", Source: `to_int("nope")`, Error: "invalid integer"},
		{Title: "float out of range", Source: `to_int(1e300)`, Error: "out of range"},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		switch v := args[0].(type) {
		case types.NullValue:
			return types.NewInt(0), nil
		case types.IntValue:
			return v, nil
		case types.BoolValue:
			if v.Val {
				return types.NewInt(1), nil
			}
			return types.NewInt(0), nil
		case types.FloatValue:
			// NaN fails both comparisons
			if !(v.Val >= math.MinInt64 && v.Val < math.MaxInt64) {
				return nil, fmt.Errorf("unable to coerce %s into integer: out of range", v)
			}
			return types.NewInt(int64(v.Val)), nil
		case types.BytesValue:
			i, err := strconv.ParseInt(strings.TrimSpace(v.Value()), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid integer %s", v)
			}
			return types.NewInt(i), nil
		case types.TimestampValue:
			return types.NewInt(v.Time().Unix()), nil
		default:
			return nil, fmt.Errorf("unable to coerce %s into integer", types.KindOf(v))
		}
	},
	func(args []typedef.TypeDef) typedef.TypeDef {
		fallible := args[0].Kind.Intersects(types.KindBytes | types.KindFloat | types.KindContainer | types.KindRegex)
		return typedef.FromKind(types.KindInteger).WithFallible(fallible)
	},
)

var parseJSON = simple("parse_json",
	[]function.Parameter{
		required("value", types.KindBytes),
	},
	[]function.Example{
		{Title: "object", Source: `parse_json(s'{"a": [1, 2.5, null]}')`, Result: `{ "a": [1, 2.5, null] }`},
		{Title: "scalar", Source: `parse_json("true")`, Result: `true`},
		{Title: "invalid", Source: `parse_json("{")`, Error: "unable to parse json"},
	},
	func(_ *expr.Context, args []types.Value) (types.Value, error) {
		data, err := types.TryBytes(args[0])
		if err != nil {
			return nil, err
		}
		v, err := types.ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("unable to parse json: %w", err)
		}
		return v, nil
	},
	fallibly(types.KindAny),
)
