package parser

import "fmt"

// ParseError reports a syntax error at a source position
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Pos: p.current.Position, Message: fmt.Sprintf(format, args...)}
}

// describe renders the current token for diagnostics
func (p *Parser) describe() string {
	if p.current.Type == TOKEN_EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", p.current.Type, p.current.Value)
}
