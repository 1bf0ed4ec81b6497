package stdlib

import (
	"errors"
	"testing"

	"remap/expr"
	"remap/function"
	"remap/typedef"
	"remap/types"
)

func ints(vals ...int64) types.Value {
	elems := make([]types.Value, len(vals))
	for i, v := range vals {
		elems[i] = types.NewInt(v)
	}
	return types.NewArray(elems)
}

func compileAppend(t *testing.T, state *expr.State, value, items expr.Expression) expr.Expression {
	t.Helper()
	args, err := function.Bind(Append{}, []expr.Expression{value, items}, nil)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	node, err := function.Compile(state, nil, Append{}, args)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return node
}

func kinds(ks ...types.Kind) []typedef.TypeDef {
	out := make([]typedef.TypeDef, len(ks))
	for i, k := range ks {
		out[i] = typedef.FromKind(k)
	}
	return out
}

func TestAppend(t *testing.T) {
	tests := []struct {
		name  string
		value types.Value
		items types.Value
		want  types.Value
		tdef  typedef.TypeDef
	}{
		{
			name:  "both arrays empty",
			value: ints(),
			items: ints(),
			want:  ints(),
			tdef:  typedef.Array(nil),
		},
		{
			name:  "one array empty",
			value: ints(),
			items: ints(1, 2, 3),
			want:  ints(1, 2, 3),
			tdef:  typedef.Array(kinds(types.KindInteger, types.KindInteger, types.KindInteger)),
		},
		{
			name:  "neither array empty",
			value: ints(1, 2, 3),
			items: ints(4, 5, 6),
			want:  ints(1, 2, 3, 4, 5, 6),
			tdef: typedef.ArrayMapped(map[int]typedef.TypeDef{
				0: typedef.FromKind(types.KindInteger),
				1: typedef.FromKind(types.KindInteger),
				2: typedef.FromKind(types.KindInteger),
				3: typedef.FromKind(types.KindInteger),
				4: typedef.FromKind(types.KindInteger),
				5: typedef.FromKind(types.KindInteger),
			}),
		},
		{
			name:  "mixed array types",
			value: ints(1, 2, 3),
			items: types.NewArray([]types.Value{types.NewBool(true), types.NewFloat(5.0), types.NewString("bar")}),
			want: types.NewArray([]types.Value{
				types.NewInt(1), types.NewInt(2), types.NewInt(3),
				types.NewBool(true), types.NewFloat(5.0), types.NewString("bar"),
			}),
			tdef: typedef.ArrayMapped(map[int]typedef.TypeDef{
				0: typedef.FromKind(types.KindInteger),
				1: typedef.FromKind(types.KindInteger),
				2: typedef.FromKind(types.KindInteger),
				3: typedef.FromKind(types.KindBoolean),
				4: typedef.FromKind(types.KindFloat),
				5: typedef.FromKind(types.KindBytes),
			}),
		},
		{
			name:  "duplicates kept",
			value: ints(1, 1),
			items: ints(1),
			want:  ints(1, 1, 1),
			tdef:  typedef.Array(kinds(types.KindInteger, types.KindInteger, types.KindInteger)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := expr.NewState()
			node := compileAppend(t, state, expr.NewLiteral(tt.value), expr.NewLiteral(tt.items))

			got, err := node.Resolve(expr.NewContext(nil))
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
			if td := node.TypeDef(state); !td.Equal(tt.tdef) {
				t.Errorf("TypeDef() = %v, want %v", td, tt.tdef)
			}
		})
	}
}

func TestAppendIdentity(t *testing.T) {
	operands := []types.Value{
		ints(),
		ints(7),
		types.NewArray([]types.Value{types.NewString("a"), types.NewNull(), ints(1)}),
	}
	empty := expr.NewLiteral(ints())

	for _, v := range operands {
		state := expr.NewState()
		lit := expr.NewLiteral(v)
		want := typedef.Literal(v)

		for _, node := range []expr.Expression{
			compileAppend(t, state, empty, lit),
			compileAppend(t, state, lit, empty),
		} {
			got, err := node.Resolve(expr.NewContext(nil))
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !got.Equal(v) {
				t.Errorf("append identity on %v = %v", v, got)
			}
			if td := node.TypeDef(state); !td.Equal(want) {
				t.Errorf("append identity TypeDef on %v = %v, want %v", v, td, want)
			}
		}
	}
}

func TestAppendPreciseMapShift(t *testing.T) {
	left := types.NewArray([]types.Value{types.NewString("a"), types.NewNull()})
	right := types.NewArray([]types.Value{types.NewFloat(1.5), ints(), types.NewBool(false)})
	state := expr.NewState()

	td := compileAppend(t, state, expr.NewLiteral(left), expr.NewLiteral(right)).TypeDef(state)
	lt, rt := typedef.Literal(left), typedef.Literal(right)

	n, ok := td.ExactLen()
	if !ok || n != 5 {
		t.Fatalf("ExactLen() = %d, %v, want 5", n, ok)
	}
	for i := 0; i < 2; i++ {
		if !td.At(i).Equal(lt.At(i)) {
			t.Errorf("At(%d) = %v, want %v", i, td.At(i), lt.At(i))
		}
	}
	for j := 0; j < 3; j++ {
		if !td.At(2 + j).Equal(rt.At(j)) {
			t.Errorf("At(%d) = %v, want %v", 2+j, td.At(2+j), rt.At(j))
		}
	}
}

func TestAppendDynamicOperand(t *testing.T) {
	state := expr.NewState()
	foo := &expr.Query{Path: expr.Path{expr.FieldSegment("foo")}}
	node := compileAppend(t, state, foo, expr.NewLiteral(ints(1, 2)))

	td := node.TypeDef(state)
	if !td.Fallible {
		t.Error("append of an unknown operand must be fallible")
	}
	if !td.IsExactly(types.KindArray) {
		t.Errorf("TypeDef().Kind = %v, want array", td.Kind)
	}
	if _, exact := td.ExactLen(); exact {
		t.Error("length must not be known when an operand is dynamic")
	}

	ev, _ := types.FromGo(map[string]any{"foo": int64(5)})
	_, err := node.Resolve(expr.NewContext(ev))
	var coercion *types.CoercionError
	if !errors.As(err, &coercion) {
		t.Fatalf("Resolve() error = %v, want coercion error", err)
	}
	if coercion.Want != types.KindArray || coercion.Got != types.KindInteger {
		t.Errorf("coercion = %+v", coercion)
	}
	var fnErr *expr.FunctionError
	if !errors.As(err, &fnErr) || fnErr.Function != "append" {
		t.Errorf("error %v is not attributed to append", err)
	}

	ev, _ = types.FromGo(map[string]any{"foo": []any{"x"}})
	got, err := node.Resolve(expr.NewContext(ev))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.String() != `["x", 1, 2]` {
		t.Errorf("Resolve() = %v", got)
	}
}

func TestAppendKnownPrefix(t *testing.T) {
	state := expr.NewState()
	foo := &expr.Query{Path: expr.Path{expr.FieldSegment("foo")}}
	td := compileAppend(t, state, expr.NewLiteral(ints(1)), foo).TypeDef(state)

	if got := td.At(0).Kind; got != types.KindInteger {
		t.Errorf("At(0) = %v, want integer", got)
	}
	if got := td.At(1); !got.Equal(typedef.New()) {
		t.Errorf("At(1) = %v, want unknown", got)
	}
}

func TestAppendCompileErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]expr.Expression
		sentinel error
		keyword  string
	}{
		{"missing value", map[string]expr.Expression{"items": expr.NewLiteral(ints())}, expr.ErrMissingArgument, "value"},
		{"missing items", map[string]expr.Expression{"value": expr.NewLiteral(ints())}, expr.ErrMissingArgument, "items"},
		{"missing both", nil, expr.ErrMissingArgument, "value"},
		{"literal integer", map[string]expr.Expression{
			"value": expr.NewLiteral(types.NewInt(5)),
			"items": expr.NewLiteral(ints(1, 2)),
		}, expr.ErrTypeMismatch, "value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := function.Bind(Append{}, nil, tt.args)
			if err != nil {
				t.Fatalf("Bind() error = %v", err)
			}
			_, err = function.Compile(expr.NewState(), nil, Append{}, args)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("Compile() error = %v, want %v", err, tt.sentinel)
			}
			var ce *expr.CompileError
			if errors.As(err, &ce) && ce.Keyword != tt.keyword {
				t.Errorf("CompileError.Keyword = %q, want %q", ce.Keyword, tt.keyword)
			}
		})
	}
}

func TestAppendFallibleOperand(t *testing.T) {
	state := expr.NewState()
	parsed := &expr.Call{Function: "parse_json", Node: &call{
		params:  []function.Parameter{required("value", types.KindBytes)},
		args:    []expr.Expression{expr.NewLiteral(types.NewString("[1]"))},
		apply:   func(*expr.Context, []types.Value) (types.Value, error) { return ints(1), nil },
		typeDef: fallibly(types.KindArray),
	}}

	td := compileAppend(t, state, parsed, expr.NewLiteral(ints())).TypeDef(state)
	if !td.Fallible {
		t.Error("a fallible operand must make append fallible")
	}
}
