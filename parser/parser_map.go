package parser

// parseObjectLiteral parses an object literal {"key": expr, ...}
func (p *Parser) parseObjectLiteral() (Expr, error) {
	obj := &ObjectExpr{Pos: p.current.Position}
	// current is '{'
	p.nextToken() // skip '{'

	// Check for empty object
	if p.current.Type == TOKEN_RBRACE {
		p.nextToken() // skip '}'
		return obj, nil
	}

	seen := make(map[string]bool)

	// Parse first pair
	if err := p.parseObjectPair(obj, seen); err != nil {
		return nil, err
	}

	// Parse remaining pairs
	for p.current.Type == TOKEN_COMMA {
		p.nextToken() // skip ','

		// Check for trailing comma
		if p.current.Type == TOKEN_RBRACE {
			break
		}

		if err := p.parseObjectPair(obj, seen); err != nil {
			return nil, err
		}
	}

	// Expect closing '}'
	if p.current.Type != TOKEN_RBRACE {
		return nil, p.errorf("expected '}', got %s", p.describe())
	}
	p.nextToken() // skip '}'

	return obj, nil
}

// parseObjectPair parses a single "key": value pair
func (p *Parser) parseObjectPair(obj *ObjectExpr, seen map[string]bool) error {
	// Parse key
	if p.current.Type != TOKEN_STRING {
		return p.errorf("expected string object key, got %s", p.describe())
	}
	key := p.current.Literal
	if seen[key] {
		return p.errorf("duplicate object key %q", key)
	}
	seen[key] = true
	p.nextToken()

	// Expect ':'
	if p.current.Type != TOKEN_COLON {
		return p.errorf("expected ':', got %s", p.describe())
	}
	p.nextToken() // skip ':'

	// Parse value
	val, err := p.ParseExpression()
	if err != nil {
		return err
	}

	obj.Keys = append(obj.Keys, key)
	obj.Values = append(obj.Values, val)
	return nil
}
