package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by every error the parser reports for malformed input.
	ErrSyntax = errors.New("syntax error")

	// ErrLex indicates the lexer met an illegal character or unterminated comment.
	ErrLex = errors.New("lex error")

	// ErrDuplicateDeclaration indicates a name appeared twice in the declaration section.
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
)

// SyntaxError describes the first token that did not fit the grammar.
// Parsing stops at the first one; no partial program is returned with it.
type SyntaxError struct {
	Tok     Token
	Msg     string
	Snippet string // trimmed source line holding Tok, if known
	Err     error  // optional cause, e.g. ErrDuplicateDeclaration
}

func (e *SyntaxError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("line %d: %s", e.Tok.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s\n  |> %s", e.Tok.Line, e.Msg, e.Snippet)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

func (e *SyntaxError) Unwrap() error { return e.Err }

// Incomplete reports whether err is a syntax error caused by running out of
// input, i.e. more source could still turn it into a valid program.
func Incomplete(err error) bool {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Tok.Type == EOF
	}
	return false
}
