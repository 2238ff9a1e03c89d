package compiler

// Compile lexes and parses src in one streaming pass. The lexer feeds the
// parser directly, so a syntax error stops scanning at the offending token.
func Compile(src string) (*Program, error) {
	return NewParser(NewLexer(src), src).ParseProgram()
}
