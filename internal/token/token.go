package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers and literals
	IDENT  = "IDENT"  // type keywords and class names
	INT    = "INT"    // integer shape keys
	STRING = "STRING" // quoted shape keys

	// Delimiters
	LT       = "<"
	GT       = ">"
	LBRACE   = "{"
	RBRACE   = "}"
	COMMA    = ","
	COLON    = ":"
	QUESTION = "?"
	PIPE     = "|"
	AMP      = "&"
	LPAREN   = "("
	RPAREN   = ")"
)

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Column  int
}
