package compiler

import (
	"fmt"
	"unicode"
)

// keywords maps source text to its keyword TokenType. The upper-case
// spellings are accepted for compatibility with older course programs.
var keywords = map[string]TokenType{
	"while":   WHILE,
	"if":      IF,
	"switch":  SWITCH,
	"case":    CASE,
	"default": DEFAULT,
	"for":     FOR,
	"print":   PRINT,

	"WHILE":   WHILE,
	"IF":      IF,
	"SWITCH":  SWITCH,
	"CASE":    CASE,
	"DEFAULT": DEFAULT,
	"FOR":     FOR,
}

// Lexer holds all mutable state for a single scanning pass over src.
// It implements TokenSource.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// skipLineComment discards everything from the current position to end-of-line.
// The opening "//" must already have been consumed.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards everything up to and including the closing "*/".
// The opening "/*" must already have been consumed.
func (l *Lexer) skipBlockComment() error {
	startLine := l.line
	for l.pos < len(l.src) {
		if l.peek() == '*' && l.peek2() == '/' {
			l.advance() // *
			l.advance() // /
			return nil
		}
		l.advance()
	}
	return fmt.Errorf("%w: unterminated block comment (opened on line %d)", ErrLex, startLine)
}

// scanIdent collects a full identifier or keyword token.
func (l *Lexer) scanIdent() Token {
	line := l.line
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := IDENTIFIER
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line}
}

// scanNum collects a run of decimal digits. Range checking is left to the
// symbol table, which is where the literal becomes a cell.
func (l *Lexer) scanNum() Token {
	line := l.line
	start := l.pos
	for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
		l.advance()
	}
	return Token{Type: NUM, Lexeme: string(l.src[start:l.pos]), Line: line}
}

// Next skips whitespace/comments and returns the next Token. Once the input
// is exhausted every call returns an EOF token. On error the returned token
// still carries the offending line: an ILLEGAL token for a bad character,
// EOF for an unterminated comment.
func (l *Lexer) Next() (Token, error) {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			return Token{Type: EOF, Lexeme: "", Line: l.line}, nil
		}
		if l.peek() == '/' && l.peek2() == '/' {
			l.advance()
			l.advance()
			l.skipLineComment()
			continue
		}
		if l.peek() == '/' && l.peek2() == '*' {
			l.advance()
			l.advance()
			if err := l.skipBlockComment(); err != nil {
				return Token{Type: EOF, Line: l.line}, err
			}
			continue
		}
		break
	}

	ch := l.peek()
	line := l.line

	if unicode.IsLetter(ch) || ch == '_' {
		return l.scanIdent(), nil
	}
	if unicode.IsDigit(ch) {
		return l.scanNum(), nil
	}

	l.advance() // consume the character before the switch
	switch ch {
	case '{':
		return Token{LBRACE, "{", line}, nil
	case '}':
		return Token{RBRACE, "}", line}, nil
	case '(':
		return Token{LPAREN, "(", line}, nil
	case ')':
		return Token{RPAREN, ")", line}, nil
	case ';':
		return Token{SEMICOLON, ";", line}, nil
	case ',':
		return Token{COMMA, ",", line}, nil
	case ':':
		return Token{COLON, ":", line}, nil
	case '=':
		return Token{ASSIGN, "=", line}, nil
	case '+':
		return Token{PLUS, "+", line}, nil
	case '-':
		return Token{MINUS, "-", line}, nil
	case '*':
		return Token{STAR, "*", line}, nil
	case '/':
		return Token{SLASH, "/", line}, nil
	case '>':
		return Token{GREATER, ">", line}, nil
	case '<':
		return Token{LESS, "<", line}, nil
	case '!':
		if l.peek() == '=' {
			l.advance()
			return Token{NOT_EQ, "!=", line}, nil
		}
	}
	return Token{ILLEGAL, string(ch), line}, fmt.Errorf("%w: unexpected character %q on line %d", ErrLex, ch, line)
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It returns a non-nil error on the first illegal character or unterminated comment.
func Lex(src string) ([]Token, error) {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
