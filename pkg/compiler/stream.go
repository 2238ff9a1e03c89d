package compiler

// TokenSource supplies tokens one at a time. After the end of input it must
// keep returning EOF tokens.
type TokenSource interface {
	Next() (Token, error)
}

// tokenSlice replays a pre-lexed token slice.
type tokenSlice struct {
	tokens []Token
	pos    int
}

// NewTokenSlice adapts the output of Lex to a TokenSource.
func NewTokenSlice(tokens []Token) TokenSource {
	return &tokenSlice{tokens: tokens}
}

func (s *tokenSlice) Next() (Token, error) {
	if s.pos >= len(s.tokens) {
		line := 1
		if n := len(s.tokens); n > 0 {
			line = s.tokens[n-1].Line
		}
		return Token{Type: EOF, Line: line}, nil
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

// Lookahead puts a single-slot push-back buffer in front of a TokenSource.
type Lookahead struct {
	src      TokenSource
	buf      Token
	buffered bool
}

func NewLookahead(src TokenSource) *Lookahead {
	return &Lookahead{src: src}
}

// Next consumes a token, taking the pushed-back one first if present.
func (la *Lookahead) Next() (Token, error) {
	if la.buffered {
		la.buffered = false
		return la.buf, nil
	}
	return la.src.Next()
}

// PushBack returns tok to the stream so the following Next yields it again.
// Only one token may be pending; a second PushBack without an intervening
// Next is a programming error and panics.
func (la *Lookahead) PushBack(tok Token) {
	if la.buffered {
		panic("compiler: PushBack called with a token already pending")
	}
	la.buf = tok
	la.buffered = true
}

// Peek returns the next token without consuming it.
func (la *Lookahead) Peek() (Token, error) {
	tok, err := la.Next()
	if err != nil {
		return tok, err
	}
	la.PushBack(tok)
	return tok, nil
}
