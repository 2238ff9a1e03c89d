package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable name
	NUM        // decimal integer literal

	// Keywords
	WHILE   // "while"
	IF      // "if"
	SWITCH  // "switch"
	CASE    // "case"
	DEFAULT // "default"
	FOR     // "for"
	PRINT   // "print"

	// Punctuation
	ASSIGN    // =
	SEMICOLON // ;
	COMMA     // ,
	LBRACE    // {
	RBRACE    // }
	LPAREN    // (
	RPAREN    // )
	COLON     // :

	// Arithmetic operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /

	// Relational operators
	GREATER // >
	LESS    // <
	NOT_EQ  // !=

	ILLEGAL // character the lexer could not classify
)

var tokenNames = [...]string{
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	NUM:        "NUM",
	WHILE:      "WHILE",
	IF:         "IF",
	SWITCH:     "SWITCH",
	CASE:       "CASE",
	DEFAULT:    "DEFAULT",
	FOR:        "FOR",
	PRINT:      "PRINT",
	ASSIGN:     "ASSIGN",
	SEMICOLON:  "SEMICOLON",
	COMMA:      "COMMA",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	COLON:      "COLON",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	GREATER:    "GREATER",
	LESS:       "LESS",
	NOT_EQ:     "NOT_EQ",
	ILLEGAL:    "ILLEGAL",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// startsStatement reports whether tt can begin a stmt production.
func (tt TokenType) startsStatement() bool {
	switch tt {
	case IDENTIFIER, PRINT, WHILE, IF, SWITCH, FOR:
		return true
	}
	return false
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d", t.Type, t.Lexeme, t.Line)
}
