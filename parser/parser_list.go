package parser

// parseArrayLiteral parses an array literal [expr, expr, ...]
func (p *Parser) parseArrayLiteral() (Expr, error) {
	arr := &ArrayExpr{Pos: p.current.Position}
	// current is '['
	p.nextToken() // skip '['

	// Check for empty array
	if p.current.Type == TOKEN_RBRACKET {
		p.nextToken() // skip ']'
		return arr, nil
	}

	// Parse first element
	elem, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	arr.Elements = append(arr.Elements, elem)

	// Parse remaining elements
	for p.current.Type == TOKEN_COMMA {
		p.nextToken() // skip ','

		// Check for trailing comma
		if p.current.Type == TOKEN_RBRACKET {
			break
		}

		elem, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, elem)
	}

	// Expect closing ']'
	if p.current.Type != TOKEN_RBRACKET {
		return nil, p.errorf("expected ']', got %s", p.describe())
	}
	p.nextToken() // skip ']'

	return arr, nil
}
