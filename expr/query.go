package expr

import (
	"remap/typedef"
	"remap/types"
)

// Query reads a path from the current record
type Query struct {
	Path Path
}

func (q *Query) Resolve(ctx *Context) (types.Value, error) {
	return q.Path.Get(ctx.Event), nil
}

func (q *Query) TypeDef(state *State) typedef.TypeDef {
	return q.Path.TypeOf(state.Event)
}

func (q *Query) String() string {
	return q.Path.String()
}

// Variable reads a local variable
type Variable struct {
	Name string
}

func (v *Variable) Resolve(ctx *Context) (types.Value, error) {
	return ctx.Var(v.Name), nil
}

func (v *Variable) TypeDef(state *State) typedef.TypeDef {
	if td, ok := state.Variable(v.Name); ok {
		return td.Infallible()
	}
	return typedef.FromKind(types.KindNull)
}

// Assignment writes a value into the record or a local variable and
// evaluates to the written value
type Assignment struct {
	Variable string // empty for path targets
	Path     Path
	Value    Expression

	td typedef.TypeDef
}

// NewPathAssignment builds an assignment to a record path and records the
// target's new type in state
func NewPathAssignment(state *State, path Path, value Expression) *Assignment {
	td := value.TypeDef(state)
	state.Event = path.WithType(state.Event, td)
	return &Assignment{
		Path:  path,
		Value: value,
		td:    td.OrFallible(path.MayFailOnWrite()),
	}
}

// NewVariableAssignment builds an assignment to a local variable and records
// its type in state
func NewVariableAssignment(state *State, name string, value Expression) *Assignment {
	td := value.TypeDef(state)
	state.SetVariable(name, td.Infallible())
	return &Assignment{
		Variable: name,
		Value:    value,
		td:       td,
	}
}

func (a *Assignment) Resolve(ctx *Context) (types.Value, error) {
	v, err := a.Value.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if a.Variable != "" {
		ctx.SetVar(a.Variable, v)
		return v, nil
	}
	event, err := a.Path.Set(ctx.Event, v)
	if err != nil {
		return nil, err
	}
	ctx.Event = event
	return v, nil
}

// TypeDef returns the type captured when the assignment was compiled, so
// later assignments to the same target do not change it
func (a *Assignment) TypeDef(*State) typedef.TypeDef {
	return a.td
}

// Block evaluates expressions in order and yields the last value
type Block struct {
	Exprs []Expression
}

func (b *Block) Resolve(ctx *Context) (types.Value, error) {
	var last types.Value = types.NewNull()
	for _, e := range b.Exprs {
		v, err := e.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (b *Block) TypeDef(state *State) typedef.TypeDef {
	if len(b.Exprs) == 0 {
		return typedef.FromKind(types.KindNull)
	}
	fallible := false
	for _, e := range b.Exprs {
		fallible = fallible || e.TypeDef(state).Fallible
	}
	return b.Exprs[len(b.Exprs)-1].TypeDef(state).OrFallible(fallible)
}
