package parser

import (
	"unicode"
)

// Lexer tokenizes program source
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
	nesting      int // open ( [ { ; newlines inside them are not separators
}

// NewLexer creates a new Lexer instance
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipWhitespace skips blanks, and newlines while nested
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n' && l.nesting > 0:
			l.readChar()
		case l.ch == '#':
			l.skipComment()
		default:
			return
		}
	}
}

// skipComment skips over a comment (# to end of line)
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) single(tok *Token, typ TokenType) {
	tok.Type = typ
	tok.Value = string(l.ch)
	l.readChar()
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	tok.Position = Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}

	switch l.ch {
	case 0:
		tok.Type = TOKEN_EOF
		tok.Value = ""
	case '\n':
		l.single(&tok, TOKEN_NEWLINE)
	case '(':
		l.nesting++
		l.single(&tok, TOKEN_LPAREN)
	case ')':
		l.unnest()
		l.single(&tok, TOKEN_RPAREN)
	case '{':
		l.nesting++
		l.single(&tok, TOKEN_LBRACE)
	case '}':
		l.unnest()
		l.single(&tok, TOKEN_RBRACE)
	case '[':
		l.nesting++
		l.single(&tok, TOKEN_LBRACKET)
	case ']':
		l.unnest()
		l.single(&tok, TOKEN_RBRACKET)
	case ',':
		l.single(&tok, TOKEN_COMMA)
	case ';':
		l.single(&tok, TOKEN_SEMICOLON)
	case ':':
		l.single(&tok, TOKEN_COLON)
	case '.':
		l.single(&tok, TOKEN_DOT)
	case '=':
		l.single(&tok, TOKEN_ASSIGN)
	case '"':
		return l.readString()
	case '-':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		l.single(&tok, TOKEN_ILLEGAL)
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		l.single(&tok, TOKEN_ILLEGAL)
	}

	return tok
}

func (l *Lexer) unnest() {
	if l.nesting > 0 {
		l.nesting--
	}
}

// readNumber reads an integer or float literal
func (l *Lexer) readNumber() Token {
	tok := Token{
		Type: TOKEN_INT,
		Position: Position{
			Line:   l.line,
			Column: l.column,
			Offset: l.position,
		},
	}
	start := l.position

	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		tok.Type = TOKEN_FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			tok.Type = TOKEN_FLOAT
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	tok.Value = l.input[start:l.position]
	return tok
}

// readIdentifier reads an identifier, keyword, or prefixed literal (s'', t'', r'')
func (l *Lexer) readIdentifier() Token {
	pos := Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
	start := l.position

	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	ident := l.input[start:l.position]

	if l.ch == '\'' {
		switch ident {
		case "s":
			return l.readQuoted(TOKEN_STRING, pos, start)
		case "t":
			return l.readQuoted(TOKEN_TIMESTAMP, pos, start)
		case "r":
			return l.readQuoted(TOKEN_REGEX, pos, start)
		}
	}

	return Token{
		Type:     LookupIdent(ident),
		Value:    ident,
		Position: pos,
	}
}

// isLetter returns true if the character is a letter or underscore
func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

// isDigit returns true if the character is a digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
