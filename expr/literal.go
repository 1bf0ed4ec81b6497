package expr

import (
	"sort"

	"remap/typedef"
	"remap/types"
)

// Literal is a compile-time constant
type Literal struct {
	Value types.Value
}

// NewLiteral wraps a constant value
func NewLiteral(v types.Value) *Literal {
	if v == nil {
		v = types.NewNull()
	}
	return &Literal{Value: v}
}

func (l *Literal) Resolve(*Context) (types.Value, error) {
	return l.Value, nil
}

func (l *Literal) TypeDef(*State) typedef.TypeDef {
	return typedef.Literal(l.Value)
}

// AsLiteral returns the constant value of e when it is a Literal
func AsLiteral(e Expression) (types.Value, bool) {
	l, ok := e.(*Literal)
	if !ok {
		return nil, false
	}
	return l.Value, true
}

// ArrayExpr builds an array from sub-expressions
type ArrayExpr struct {
	Elements []Expression
}

func (a *ArrayExpr) Resolve(ctx *Context) (types.Value, error) {
	elems := make([]types.Value, len(a.Elements))
	for i, e := range a.Elements {
		v, err := e.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return types.NewArray(elems), nil
}

func (a *ArrayExpr) TypeDef(state *State) typedef.TypeDef {
	elems := make([]typedef.TypeDef, len(a.Elements))
	fallible := false
	for i, e := range a.Elements {
		td := e.TypeDef(state)
		fallible = fallible || td.Fallible
		elems[i] = td.Infallible()
	}
	return typedef.Array(elems).WithFallible(fallible)
}

// ObjectExpr builds an object from sub-expressions
type ObjectExpr struct {
	Fields map[string]Expression
}

// keys returns field names in a stable order so errors are deterministic
func (o *ObjectExpr) keys() []string {
	keys := make([]string, 0, len(o.Fields))
	for k := range o.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (o *ObjectExpr) Resolve(ctx *Context) (types.Value, error) {
	fields := make(map[string]types.Value, len(o.Fields))
	for _, k := range o.keys() {
		v, err := o.Fields[k].Resolve(ctx)
		if err != nil {
			return nil, err
		}
		fields[k] = v
	}
	return types.NewObject(fields), nil
}

func (o *ObjectExpr) TypeDef(state *State) typedef.TypeDef {
	fields := make(map[string]typedef.TypeDef, len(o.Fields))
	fallible := false
	for k, e := range o.Fields {
		td := e.TypeDef(state)
		fallible = fallible || td.Fallible
		fields[k] = td.Infallible()
	}
	return typedef.ObjectMapped(fields).WithFallible(fallible)
}
