package parser

import (
	"strconv"

	"remap/types"
)

// parseCall parses name(arg, keyword: arg, ...)
func (p *Parser) parseCall() (Expr, error) {
	call := &CallExpr{Pos: p.current.Position, Name: p.current.Value}
	p.nextToken() // skip name
	p.nextToken() // skip '('

	seenKeyword := false
	for p.current.Type != TOKEN_RPAREN {
		arg := Argument{Pos: p.current.Position}
		if p.current.Type == TOKEN_IDENTIFIER && p.peek.Type == TOKEN_COLON {
			arg.Keyword = p.current.Value
			seenKeyword = true
			p.nextToken() // skip keyword
			p.nextToken() // skip ':'
		} else if seenKeyword {
			return nil, p.errorf("positional argument after keyword argument")
		}

		val, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		arg.Value = val
		call.Args = append(call.Args, arg)

		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken() // skip ',' (a trailing comma is allowed)
	}

	if p.current.Type != TOKEN_RPAREN {
		return nil, p.errorf("expected ')', got %s", p.describe())
	}
	p.nextToken() // skip ')'

	return call, nil
}

// parsePath parses . followed by adjacent field and index segments
func (p *Parser) parsePath() (Expr, error) {
	path := &PathExpr{Pos: p.current.Position}
	end := p.current.End()
	p.nextToken() // skip '.'

	first := true
	for p.current.Position.Offset == end {
		switch {
		case first && isFieldToken(p.current.Type):
			path.Segments = append(path.Segments, p.fieldSegment())
			end = p.current.End()
			p.nextToken()
		case !first && p.current.Type == TOKEN_DOT:
			dotEnd := p.current.End()
			p.nextToken() // skip '.'
			if p.current.Position.Offset != dotEnd || !isFieldToken(p.current.Type) {
				return nil, p.errorf("expected path field, got %s", p.describe())
			}
			path.Segments = append(path.Segments, p.fieldSegment())
			end = p.current.End()
			p.nextToken()
		case p.current.Type == TOKEN_LBRACKET:
			seg, rbracketEnd, err := p.parseIndexSegment()
			if err != nil {
				return nil, err
			}
			path.Segments = append(path.Segments, seg)
			end = rbracketEnd
		default:
			return path, nil
		}
		first = false
	}
	return path, nil
}

func isFieldToken(t TokenType) bool {
	switch t {
	case TOKEN_IDENTIFIER, TOKEN_STRING, TOKEN_TRUE, TOKEN_FALSE, TOKEN_NULL:
		return true
	}
	return false
}

func (p *Parser) fieldSegment() PathSegment {
	if p.current.Type == TOKEN_STRING {
		return PathSegment{Field: p.current.Literal}
	}
	return PathSegment{Field: p.current.Value}
}

// parseIndexSegment parses [n] and returns the offset just past ']'
func (p *Parser) parseIndexSegment() (PathSegment, int, error) {
	p.nextToken() // skip '['
	if p.current.Type != TOKEN_INT {
		return PathSegment{}, 0, p.errorf("expected integer index, got %s", p.describe())
	}
	idx, err := strconv.Atoi(p.current.Value)
	if err != nil || idx > types.MaxArrayIndex {
		return PathSegment{}, 0, p.errorf("index %s out of range (maximum %d)", p.current.Value, types.MaxArrayIndex)
	}
	p.nextToken()
	if p.current.Type != TOKEN_RBRACKET {
		return PathSegment{}, 0, p.errorf("expected ']', got %s", p.describe())
	}
	end := p.current.End()
	p.nextToken() // skip ']'
	return PathSegment{Index: idx, IsIndex: true}, end, nil
}
