package parser

import "remap/types"

// Node is the base interface for all AST nodes
type Node interface {
	Position() Position
}

// Expr represents an expression node
type Expr interface {
	Node
	exprNode()
}

// Program is a parsed source: expressions evaluated in order
type Program struct {
	Exprs []Expr
}

// LiteralExpr wraps a constant value
type LiteralExpr struct {
	Pos   Position
	Value types.Value
}

func (e *LiteralExpr) Position() Position { return e.Pos }
func (e *LiteralExpr) exprNode()          {}

// IdentifierExpr represents a local variable reference
type IdentifierExpr struct {
	Pos  Position
	Name string
}

func (e *IdentifierExpr) Position() Position { return e.Pos }
func (e *IdentifierExpr) exprNode()          {}

// PathSegment is one step of a record path
type PathSegment struct {
	Field   string
	Index   int
	IsIndex bool
}

// PathExpr represents a path into the current record: . .foo .foo[0].bar
type PathExpr struct {
	Pos      Position
	Segments []PathSegment
}

func (e *PathExpr) Position() Position { return e.Pos }
func (e *PathExpr) exprNode()          {}

// ArrayExpr represents an array literal: [expr, expr, ...]
type ArrayExpr struct {
	Pos      Position
	Elements []Expr
}

func (e *ArrayExpr) Position() Position { return e.Pos }
func (e *ArrayExpr) exprNode()          {}

// ObjectExpr represents an object literal: {"key": expr, ...}
type ObjectExpr struct {
	Pos    Position
	Keys   []string
	Values []Expr
}

func (e *ObjectExpr) Position() Position { return e.Pos }
func (e *ObjectExpr) exprNode()          {}

// Argument is one call argument; Keyword is empty for positional ones
type Argument struct {
	Pos     Position
	Keyword string
	Value   Expr
}

// CallExpr represents a function call: name(arg, keyword: arg)
type CallExpr struct {
	Pos  Position
	Name string
	Args []Argument
}

func (e *CallExpr) Position() Position { return e.Pos }
func (e *CallExpr) exprNode()          {}

// ParenExpr represents a parenthesized expression
type ParenExpr struct {
	Pos  Position
	Expr Expr
}

func (e *ParenExpr) Position() Position { return e.Pos }
func (e *ParenExpr) exprNode()          {}

// AssignExpr represents target = value, where target is a PathExpr or an
// IdentifierExpr
type AssignExpr struct {
	Pos    Position
	Target Expr
	Value  Expr
}

func (e *AssignExpr) Position() Position { return e.Pos }
func (e *AssignExpr) exprNode()          {}
