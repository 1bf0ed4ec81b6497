package parser

import "testing"

func TestLexerTokens(t *testing.T) {
	input := `.foo[0] = append([1, -2.5], s'raw\d') # comment
x = t'2021-01-01T00:00:00Z'; r'^a' null`

	want := []struct {
		typ   TokenType
		value string
	}{
		{TOKEN_DOT, "."},
		{TOKEN_IDENTIFIER, "foo"},
		{TOKEN_LBRACKET, "["},
		{TOKEN_INT, "0"},
		{TOKEN_RBRACKET, "]"},
		{TOKEN_ASSIGN, "="},
		{TOKEN_IDENTIFIER, "append"},
		{TOKEN_LPAREN, "("},
		{TOKEN_LBRACKET, "["},
		{TOKEN_INT, "1"},
		{TOKEN_COMMA, ","},
		{TOKEN_FLOAT, "-2.5"},
		{TOKEN_RBRACKET, "]"},
		{TOKEN_COMMA, ","},
		{TOKEN_STRING, `s'raw\d'`},
		{TOKEN_RPAREN, ")"},
		{TOKEN_NEWLINE, "\n"},
		{TOKEN_IDENTIFIER, "x"},
		{TOKEN_ASSIGN, "="},
		{TOKEN_TIMESTAMP, "t'2021-01-01T00:00:00Z'"},
		{TOKEN_SEMICOLON, ";"},
		{TOKEN_REGEX, "r'^a'"},
		{TOKEN_NULL, "null"},
		{TOKEN_EOF, ""},
	}

	l := NewLexer(input)
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.typ || tok.Value != w.value {
			t.Fatalf("token %d = %s %q, want %s %q", i, tok.Type, tok.Value, w.typ, w.value)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"say \"hi\""`, `say "hi"`},
		{`"back\\slash"`, `back\slash`},
		{`s'it\'s'`, "it's"},
		{`s'\n stays'`, `\n stays`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewLexer(tt.input).NextToken()
			if tok.Type != TOKEN_STRING {
				t.Fatalf("type = %s, want STRING", tok.Type)
			}
			if tok.Literal != tt.literal {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.literal)
			}
		})
	}
}

func TestLexerNewlinesInsideBrackets(t *testing.T) {
	l := NewLexer("[\n1,\n2\n]\n")
	var got []TokenType
	for {
		tok := l.NextToken()
		got = append(got, tok.Type)
		if tok.Type == TOKEN_EOF {
			break
		}
	}

	want := []TokenType{TOKEN_LBRACKET, TOKEN_INT, TOKEN_COMMA, TOKEN_INT, TOKEN_RBRACKET, TOKEN_NEWLINE, TOKEN_EOF}
	if len(got) != len(want) {
		t.Fatalf("tokens = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexerPositions(t *testing.T) {
	l := NewLexer("a\n  b")
	a := l.NextToken()
	l.NextToken() // newline
	b := l.NextToken()

	if a.Position.Line != 1 || a.Position.Column != 1 {
		t.Errorf("a at %+v", a.Position)
	}
	if b.Position.Line != 2 || b.Position.Column != 3 || b.Position.Offset != 4 {
		t.Errorf("b at %+v", b.Position)
	}
}

func TestLexerUnterminated(t *testing.T) {
	for _, input := range []string{`"open`, `r'open`} {
		if tok := NewLexer(input).NextToken(); tok.Type != TOKEN_ILLEGAL {
			t.Errorf("%s: type = %s, want ILLEGAL", input, tok.Type)
		}
	}
}
