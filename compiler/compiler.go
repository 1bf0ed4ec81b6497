// Package compiler turns program source into an immutable expression tree.
//
// Compilation is a single bottom-up pass over the parsed AST. Every call
// site is looked up in a function registry, bound and checked against the
// function's signature, and compiled into a node that owns its operands.
// Static types flow through an expr.State, so each assignment refines what
// later expressions know about the record.
package compiler

import (
	"errors"
	"fmt"

	"remap/expr"
	"remap/function"
	"remap/parser"
	"remap/typedef"
	"remap/types"
)

// Program is a compiled program. It is safe for concurrent use.
type Program struct {
	source string
	root   *expr.Block
	state  *expr.State
	td     typedef.TypeDef
}

// Resolve runs the program against one record. The possibly modified record
// is left in ctx.Event; the returned value is that of the last expression.
func (p *Program) Resolve(ctx *expr.Context) (types.Value, error) {
	return p.root.Resolve(ctx)
}

// TypeDef returns the static type of the program's result
func (p *Program) TypeDef() typedef.TypeDef {
	return p.td
}

// State returns what is statically known after the last expression. The
// returned state must not be modified.
func (p *Program) State() *expr.State {
	return p.state
}

// Source returns the text the program was compiled from
func (p *Program) Source() string {
	return p.source
}

// Expressions returns the top-level compiled expressions
func (p *Program) Expressions() []expr.Expression {
	out := make([]expr.Expression, len(p.root.Exprs))
	copy(out, p.root.Exprs)
	return out
}

// Compile parses and compiles source. The state describes the incoming
// record and is not modified; nil means an object of unknown shape.
func Compile(source string, registry *function.Registry, state *expr.State) (*Program, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	if state == nil {
		state = expr.NewState()
	} else {
		state = state.Clone()
	}

	c := &compiler{registry: registry, state: state}
	root := &expr.Block{Exprs: make([]expr.Expression, 0, len(prog.Exprs))}
	for _, node := range prog.Exprs {
		e, err := c.compile(node)
		if err != nil {
			return nil, err
		}
		root.Exprs = append(root.Exprs, e)
	}

	return &Program{
		source: source,
		root:   root,
		state:  state,
		td:     root.TypeDef(state),
	}, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// programs embedded in code and tests.
func MustCompile(source string, registry *function.Registry) *Program {
	p, err := Compile(source, registry, nil)
	if err != nil {
		panic(fmt.Sprintf("compiler: %v", err))
	}
	return p
}

type compiler struct {
	registry *function.Registry
	state    *expr.State
}

func (c *compiler) compile(node parser.Expr) (expr.Expression, error) {
	switch n := node.(type) {
	case *parser.LiteralExpr:
		return expr.NewLiteral(n.Value), nil

	case *parser.PathExpr:
		return &expr.Query{Path: convertPath(n.Segments)}, nil

	case *parser.IdentifierExpr:
		if _, ok := c.state.Variable(n.Name); !ok {
			ce := expr.Errorf(expr.UndefinedVariable, "", "undefined variable %q", n.Name)
			ce.Pos = n.Pos.Offset
			return nil, ce
		}
		return &expr.Variable{Name: n.Name}, nil

	case *parser.ParenExpr:
		return c.compile(n.Expr)

	case *parser.ArrayExpr:
		return c.compileArray(n)

	case *parser.ObjectExpr:
		return c.compileObject(n)

	case *parser.CallExpr:
		return c.compileCall(n)

	case *parser.AssignExpr:
		return c.compileAssign(n)

	default:
		return nil, fmt.Errorf("cannot compile %T", node)
	}
}

// compileArray folds arrays of constants into a single literal
func (c *compiler) compileArray(n *parser.ArrayExpr) (expr.Expression, error) {
	elems := make([]expr.Expression, len(n.Elements))
	values := make([]types.Value, len(n.Elements))
	constant := true
	for i, el := range n.Elements {
		e, err := c.compile(el)
		if err != nil {
			return nil, err
		}
		elems[i] = e
		if v, ok := expr.AsLiteral(e); ok {
			values[i] = v
		} else {
			constant = false
		}
	}
	if constant {
		return expr.NewLiteral(types.NewArray(values)), nil
	}
	return &expr.ArrayExpr{Elements: elems}, nil
}

func (c *compiler) compileObject(n *parser.ObjectExpr) (expr.Expression, error) {
	fields := make(map[string]expr.Expression, len(n.Keys))
	values := make(map[string]types.Value, len(n.Keys))
	constant := true
	for i, k := range n.Keys {
		e, err := c.compile(n.Values[i])
		if err != nil {
			return nil, err
		}
		fields[k] = e
		if v, ok := expr.AsLiteral(e); ok {
			values[k] = v
		} else {
			constant = false
		}
	}
	if constant {
		return expr.NewLiteral(types.NewObject(values)), nil
	}
	return &expr.ObjectExpr{Fields: fields}, nil
}

func (c *compiler) compileCall(n *parser.CallExpr) (expr.Expression, error) {
	fn, err := c.registry.Lookup(n.Name)
	if err != nil {
		return nil, at(err, n.Pos.Offset)
	}

	var positional []expr.Expression
	keyword := make(map[string]expr.Expression)
	for _, arg := range n.Args {
		e, err := c.compile(arg.Value)
		if err != nil {
			return nil, err
		}
		if arg.Keyword == "" {
			positional = append(positional, e)
			continue
		}
		if _, dup := keyword[arg.Keyword]; dup {
			ce := expr.Errorf(expr.DuplicateArgument, n.Name, "argument %q given more than once", arg.Keyword)
			ce.Pos = arg.Pos.Offset
			return nil, ce
		}
		keyword[arg.Keyword] = e
	}

	args, err := function.Bind(fn, positional, keyword)
	if err != nil {
		return nil, at(err, n.Pos.Offset)
	}

	ctx := &function.CompileContext{Span: n.Pos.Offset, Function: n.Name}
	return function.Compile(c.state, ctx, fn, args)
}

func (c *compiler) compileAssign(n *parser.AssignExpr) (expr.Expression, error) {
	value, err := c.compile(n.Value)
	if err != nil {
		return nil, err
	}

	switch target := n.Target.(type) {
	case *parser.PathExpr:
		return expr.NewPathAssignment(c.state, convertPath(target.Segments), value), nil
	case *parser.IdentifierExpr:
		return expr.NewVariableAssignment(c.state, target.Name, value), nil
	default:
		return nil, fmt.Errorf("invalid assignment target %T", n.Target)
	}
}

func convertPath(segments []parser.PathSegment) expr.Path {
	path := make(expr.Path, len(segments))
	for i, seg := range segments {
		if seg.IsIndex {
			path[i] = expr.IndexSegment(seg.Index)
		} else {
			path[i] = expr.FieldSegment(seg.Field)
		}
	}
	return path
}

// at attaches a source offset to a compile error that has none
func at(err error, offset int) error {
	var ce *expr.CompileError
	if errors.As(err, &ce) && ce.Pos < 0 {
		ce.Pos = offset
	}
	return err
}
