package parser

// TokenType represents different types of lexical tokens
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL
	TOKEN_NEWLINE

	// Literals
	TOKEN_INT       // 42
	TOKEN_FLOAT     // 3.14
	TOKEN_STRING    // "hello" or s'raw'
	TOKEN_TIMESTAMP // t'2021-01-01T00:00:00Z'
	TOKEN_REGEX     // r'^foo'

	// Keywords
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NULL

	// Identifiers
	TOKEN_IDENTIFIER

	// Operators
	TOKEN_ASSIGN // =

	// Delimiters
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_DOT       // .
	TOKEN_COLON     // :
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:        "EOF",
	TOKEN_ILLEGAL:    "ILLEGAL",
	TOKEN_NEWLINE:    "NEWLINE",
	TOKEN_INT:        "INT",
	TOKEN_FLOAT:      "FLOAT",
	TOKEN_STRING:     "STRING",
	TOKEN_TIMESTAMP:  "TIMESTAMP",
	TOKEN_REGEX:      "REGEX",
	TOKEN_TRUE:       "TRUE",
	TOKEN_FALSE:      "FALSE",
	TOKEN_NULL:       "NULL",
	TOKEN_IDENTIFIER: "IDENTIFIER",
	TOKEN_ASSIGN:     "ASSIGN",
	TOKEN_LPAREN:     "LPAREN",
	TOKEN_RPAREN:     "RPAREN",
	TOKEN_LBRACE:     "LBRACE",
	TOKEN_RBRACE:     "RBRACE",
	TOKEN_LBRACKET:   "LBRACKET",
	TOKEN_RBRACKET:   "RBRACKET",
	TOKEN_COMMA:      "COMMA",
	TOKEN_SEMICOLON:  "SEMICOLON",
	TOKEN_DOT:        "DOT",
	TOKEN_COLON:      "COLON",
}

var keywords = map[string]TokenType{
	"true":  TOKEN_TRUE,
	"false": TOKEN_FALSE,
	"null":  TOKEN_NULL,
}

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Value    string // raw source text
	Literal  string // decoded value for string-like tokens
	Position Position
}

// End returns the offset just past the token
func (t Token) End() int {
	return t.Position.Offset + len(t.Value)
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// LookupIdent returns the keyword token for ident, or TOKEN_IDENTIFIER
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENTIFIER
}
