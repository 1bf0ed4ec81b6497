package parser

import (
	"strconv"
	"time"

	"remap/types"
)

// Parser parses program source into an AST
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser creates a new Parser instance
func NewParser(input string) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a whole program
func Parse(input string) (*Program, error) {
	return NewParser(input).ParseProgram()
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) isSeparator() bool {
	return p.current.Type == TOKEN_SEMICOLON || p.current.Type == TOKEN_NEWLINE
}

// ParseProgram parses expressions separated by ';' or newlines
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{}

	for {
		for p.isSeparator() {
			p.nextToken()
		}
		if p.current.Type == TOKEN_EOF {
			return prog, nil
		}

		e, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Exprs = append(prog.Exprs, e)

		if !p.isSeparator() && p.current.Type != TOKEN_EOF {
			return nil, p.errorf("expected end of expression, got %s", p.describe())
		}
	}
}

// parseStatement parses an expression or an assignment
func (p *Parser) parseStatement() (Expr, error) {
	pos := p.current.Position
	target, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_ASSIGN {
		return target, nil
	}

	switch target.(type) {
	case *PathExpr, *IdentifierExpr:
	default:
		return nil, &ParseError{Pos: pos, Message: "invalid assignment target"}
	}
	p.nextToken() // skip '='

	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &AssignExpr{Pos: pos, Target: target, Value: value}, nil
}

// ParseExpression parses a single expression
func (p *Parser) ParseExpression() (Expr, error) {
	pos := p.current.Position

	switch p.current.Type {
	case TOKEN_LBRACKET:
		return p.parseArrayLiteral()
	case TOKEN_LBRACE:
		return p.parseObjectLiteral()
	case TOKEN_DOT:
		return p.parsePath()
	case TOKEN_LPAREN:
		p.nextToken() // skip '('
		inner, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if p.current.Type != TOKEN_RPAREN {
			return nil, p.errorf("expected ')', got %s", p.describe())
		}
		p.nextToken() // skip ')'
		return &ParenExpr{Pos: pos, Expr: inner}, nil
	case TOKEN_IDENTIFIER:
		if p.peek.Type == TOKEN_LPAREN && p.peek.Position.Offset == p.current.End() {
			return p.parseCall()
		}
		name := p.current.Value
		p.nextToken()
		return &IdentifierExpr{Pos: pos, Name: name}, nil
	default:
		v, err := p.ParseLiteral()
		if err != nil {
			return nil, err
		}
		return &LiteralExpr{Pos: pos, Value: v}, nil
	}
}

// ParseLiteral parses a scalar literal value
func (p *Parser) ParseLiteral() (types.Value, error) {
	switch p.current.Type {
	case TOKEN_INT:
		return p.parseIntLiteral()
	case TOKEN_FLOAT:
		return p.parseFloatLiteral()
	case TOKEN_STRING:
		v := types.NewString(p.current.Literal)
		p.nextToken()
		return v, nil
	case TOKEN_TIMESTAMP:
		t, err := time.Parse(time.RFC3339Nano, p.current.Literal)
		if err != nil {
			return nil, p.errorf("invalid timestamp literal %q", p.current.Literal)
		}
		p.nextToken()
		return types.NewTimestamp(t), nil
	case TOKEN_REGEX:
		re, err := types.CompileRegex(p.current.Literal)
		if err != nil {
			return nil, p.errorf("invalid regex literal: %v", err)
		}
		p.nextToken()
		return re, nil
	case TOKEN_TRUE:
		p.nextToken()
		return types.NewBool(true), nil
	case TOKEN_FALSE:
		p.nextToken()
		return types.NewBool(false), nil
	case TOKEN_NULL:
		p.nextToken()
		return types.NewNull(), nil
	default:
		return nil, p.errorf("unexpected %s", p.describe())
	}
}

// parseIntLiteral parses an integer literal
func (p *Parser) parseIntLiteral() (types.Value, error) {
	val, err := strconv.ParseInt(p.current.Value, 10, 64)
	if err != nil {
		return nil, p.errorf("failed to parse integer: %v", err)
	}
	p.nextToken()
	return types.NewInt(val), nil
}

// parseFloatLiteral parses a float literal
func (p *Parser) parseFloatLiteral() (types.Value, error) {
	val, err := strconv.ParseFloat(p.current.Value, 64)
	if err != nil {
		return nil, p.errorf("failed to parse float: %v", err)
	}
	p.nextToken()
	return types.NewFloat(val), nil
}
