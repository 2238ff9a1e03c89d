package compiler

import (
	"fmt"
	"strings"
)

// Parser recognises the grammar below and builds the IR graph as it goes.
// Every production returns the handle of the first node it produced; control
// flow statements are lowered to conditionals, jumps and no-op join nodes.
//
//	program      = decl_section stmt_block EOF
//	decl_section = id_list ";"
//	id_list      = IDENTIFIER ("," IDENTIFIER)*
//	stmt_block   = "{" stmt+ "}"
//	stmt         = assign_stmt | print_stmt | while_stmt | if_stmt | switch_stmt | for_stmt
//	assign_stmt  = IDENTIFIER "=" primary (op primary)? ";"
//	print_stmt   = "print" IDENTIFIER ";"
//	while_stmt   = "while" condition stmt_block
//	if_stmt      = "if" condition stmt_block
//	for_stmt     = "for" "(" assign_stmt condition ";" assign_stmt ")" stmt_block
//	switch_stmt  = "switch" IDENTIFIER "{" case+ default? "}"
//	case         = "case" NUM ":" stmt_block
//	default      = "default" ":" stmt_block
//	condition    = primary relop primary
//	primary      = IDENTIFIER | NUM
//	op           = "+" | "-" | "*" | "/"
//	relop        = ">" | "<" | "!="
type Parser struct {
	la          *Lookahead
	syms        *SymbolTable
	prog        *Program
	sourceLines []string
}

// NewParser returns a parser reading from src. rawSource is only used to
// quote the offending line in error messages and may be empty.
func NewParser(src TokenSource, rawSource string) *Parser {
	syms := NewSymbolTable()
	var lines []string
	if rawSource != "" {
		lines = strings.Split(rawSource, "\n")
	}
	return &Parser{
		la:          NewLookahead(src),
		syms:        syms,
		prog:        newProgram(syms),
		sourceLines: lines,
	}
}

// Parse builds the program for a pre-lexed token slice.
func Parse(tokens []Token, rawSource string) (*Program, error) {
	return NewParser(NewTokenSlice(tokens), rawSource).ParseProgram()
}

// fmtError builds a SyntaxError quoting the source line where tok appears.
func (p *Parser) fmtError(tok Token, cause error, msg string) error {
	snippet := ""
	if i := tok.Line - 1; i >= 0 && i < len(p.sourceLines) {
		snippet = strings.TrimSpace(p.sourceLines[i])
	}
	return &SyntaxError{Tok: tok, Msg: msg, Snippet: snippet, Err: cause}
}

func (p *Parser) unexpected(tok Token, want string) error {
	if tok.Type == EOF {
		return p.fmtError(tok, nil, fmt.Sprintf("expected %s, got end of input", want))
	}
	return p.fmtError(tok, nil, fmt.Sprintf("expected %s, got %s (%q)", want, tok.Type, tok.Lexeme))
}

// peek returns the next token without consuming it.
func (p *Parser) peek() (Token, error) {
	tok, err := p.la.Peek()
	if err != nil {
		return tok, p.fmtError(tok, err, err.Error())
	}
	return tok, nil
}

// advance consumes and returns the next token.
func (p *Parser) advance() (Token, error) {
	tok, err := p.la.Next()
	if err != nil {
		return tok, p.fmtError(tok, err, err.Error())
	}
	return tok, nil
}

// expect consumes the next token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok, err := p.advance()
	if err != nil {
		return tok, err
	}
	if tok.Type != tt {
		return tok, p.unexpected(tok, tt.String())
	}
	return tok, nil
}

// resolve turns an operand token into its cell.
func (p *Parser) resolve(tok Token) (CellID, error) {
	id, err := p.syms.Resolve(tok)
	if err != nil {
		return NoCell, p.fmtError(tok, err, err.Error())
	}
	return id, nil
}

// ParseProgram parses a whole program and requires the input to end after
// the statement block.
func (p *Parser) ParseProgram() (*Program, error) {
	if err := p.parseVarSection(); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EOF); err != nil {
		return nil, err
	}
	p.prog.Entry = body
	return p.prog, nil
}

// parseVarSection declares every listed name as a zero-valued cell.
func (p *Parser) parseVarSection() error {
	ids, err := p.parseIDList()
	if err != nil {
		return err
	}
	for _, tok := range ids {
		if _, err := p.syms.Declare(tok.Lexeme); err != nil {
			return p.fmtError(tok, err, err.Error())
		}
	}
	_, err = p.expect(SEMICOLON)
	return err
}

func (p *Parser) parseIDList() ([]Token, error) {
	id, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	ids := []Token{id}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case COMMA:
			p.advance()
			id, err := p.expect(IDENTIFIER)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		case SEMICOLON:
			return ids, nil
		default:
			return nil, p.unexpected(tok, "COMMA or SEMICOLON")
		}
	}
}

// parseBody parses { stmt+ } and returns the head of the statement chain.
func (p *Parser) parseBody() (NodeID, error) {
	if _, err := p.expect(LBRACE); err != nil {
		return NoNode, err
	}
	head, err := p.parseStmtList()
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(RBRACE); err != nil {
		return NoNode, err
	}
	return head, nil
}

// parseStmtList links each statement after the tail of the previous one.
// The tail is found by walking Next, so a lowered while or if hands its exit
// no-op to the following statement.
func (p *Parser) parseStmtList() (NodeID, error) {
	head, prev := NoNode, NoNode
	for {
		st, err := p.parseStmt()
		if err != nil {
			return NoNode, err
		}
		if head == NoNode {
			head = st
		} else {
			p.prog.Append(prev, st)
		}
		prev = st

		tok, err := p.peek()
		if err != nil {
			return NoNode, err
		}
		if tok.Type == RBRACE {
			return head, nil
		}
		if !tok.Type.startsStatement() {
			return NoNode, p.unexpected(tok, "statement or RBRACE")
		}
	}
}

func (p *Parser) parseStmt() (NodeID, error) {
	tok, err := p.peek()
	if err != nil {
		return NoNode, err
	}
	switch tok.Type {
	case IDENTIFIER:
		return p.parseAssignStmt()
	case PRINT:
		return p.parsePrintStmt()
	case WHILE:
		return p.parseWhileStmt()
	case IF:
		return p.parseIfStmt()
	case SWITCH:
		return p.parseSwitchStmt()
	case FOR:
		return p.parseForStmt()
	default:
		return NoNode, p.unexpected(tok, "statement")
	}
}

// parseAssignStmt parses  ID = primary [op primary] ;
func (p *Parser) parseAssignStmt() (NodeID, error) {
	lhs, err := p.expect(IDENTIFIER)
	if err != nil {
		return NoNode, err
	}
	st := &AssignStmt{Op: OpNone, Right: NoCell}
	if st.Target, err = p.resolve(lhs); err != nil {
		return NoNode, err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return NoNode, err
	}
	if st.Left, err = p.parseOperand(); err != nil {
		return NoNode, err
	}

	tok, err := p.peek()
	if err != nil {
		return NoNode, err
	}
	if isArithOp(tok.Type) {
		if st.Op, err = p.parseOp(); err != nil {
			return NoNode, err
		}
		if st.Right, err = p.parseOperand(); err != nil {
			return NoNode, err
		}
	}

	if _, err := p.expect(SEMICOLON); err != nil {
		return NoNode, err
	}
	return p.prog.add(Node{Kind: NodeAssign, Line: lhs.Line, Assign: st}), nil
}

// parsePrintStmt parses  print ID ;
func (p *Parser) parsePrintStmt() (NodeID, error) {
	kw, err := p.expect(PRINT)
	if err != nil {
		return NoNode, err
	}
	id, err := p.expect(IDENTIFIER)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return NoNode, err
	}
	cell, err := p.resolve(id)
	if err != nil {
		return NoNode, err
	}
	return p.prog.add(Node{Kind: NodePrint, Line: kw.Line, Print: &PrintStmt{Cell: cell}}), nil
}

// parseWhileStmt lowers  while cond { body }  to
//
//	C: IF cond THEN body ELSE N     (C.Next = N)
//	body...; GOTO C
//	N: NOOP
func (p *Parser) parseWhileStmt() (NodeID, error) {
	kw, err := p.expect(WHILE)
	if err != nil {
		return NoNode, err
	}
	c, err := p.parseCondition(kw.Line)
	if err != nil {
		return NoNode, err
	}
	body, err := p.parseBody()
	if err != nil {
		return NoNode, err
	}
	p.closeLoop(c, body)
	return c, nil
}

// closeLoop wires body as the true branch of c, appends the back-edge and
// gives c a fresh exit no-op as both false branch and successor.
func (p *Parser) closeLoop(c, body NodeID) {
	p.prog.Node(c).Cond.True = body
	p.prog.Append(body, p.prog.newJump(c))
	exit := p.prog.newNoop()
	p.prog.Node(c).Cond.False = exit
	p.prog.Node(c).Next = exit
}

// parseIfStmt lowers  if cond { body }  to
//
//	C: IF cond THEN body            (C.Next = J)
//	body...; J
//	J: NOOP
func (p *Parser) parseIfStmt() (NodeID, error) {
	kw, err := p.expect(IF)
	if err != nil {
		return NoNode, err
	}
	c, err := p.parseCondition(kw.Line)
	if err != nil {
		return NoNode, err
	}
	body, err := p.parseBody()
	if err != nil {
		return NoNode, err
	}
	p.prog.Node(c).Cond.True = body
	join := p.prog.newNoop()
	p.prog.Append(body, join)
	p.prog.Node(c).Next = join
	return c, nil
}

// parseForStmt lowers  for ( init cond ; step ) { body }  to init followed
// by a while loop whose body ends with step.
func (p *Parser) parseForStmt() (NodeID, error) {
	kw, err := p.expect(FOR)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return NoNode, err
	}
	init, err := p.parseAssignStmt()
	if err != nil {
		return NoNode, err
	}
	c, err := p.parseCondition(kw.Line)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return NoNode, err
	}
	step, err := p.parseAssignStmt()
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return NoNode, err
	}
	body, err := p.parseBody()
	if err != nil {
		return NoNode, err
	}
	p.prog.Append(body, step)
	p.closeLoop(c, body)
	p.prog.Node(init).Next = c
	return init, nil
}

// parseSwitchStmt lowers  switch x { case N1: {B1} ... default: {D} }  to a
// chain of tests, one per case:
//
//	Ci: IF x != Ni THEN Ci+1 ELSE Bi   (Ci.Next = Ci+1)
//	Bi...; J
//
// The last test continues to D (which also ends at J) or directly to J.
func (p *Parser) parseSwitchStmt() (NodeID, error) {
	kw, err := p.expect(SWITCH)
	if err != nil {
		return NoNode, err
	}
	subjectTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return NoNode, err
	}
	subject, err := p.resolve(subjectTok)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return NoNode, err
	}

	join := p.prog.newNoop()
	var tests []NodeID
	for {
		tok, err := p.peek()
		if err != nil {
			return NoNode, err
		}
		if tok.Type != CASE {
			if len(tests) == 0 {
				return NoNode, p.unexpected(tok, CASE.String())
			}
			break
		}
		c, err := p.parseCase(subject)
		if err != nil {
			return NoNode, err
		}
		p.prog.Append(p.prog.Node(c).Cond.False, join)
		tests = append(tests, c)
	}

	fallback := join
	tok, err := p.peek()
	if err != nil {
		return NoNode, err
	}
	if tok.Type == DEFAULT {
		if fallback, err = p.parseDefaultCase(); err != nil {
			return NoNode, err
		}
		p.prog.Append(fallback, join)
	}
	if _, err := p.expect(RBRACE); err != nil {
		return NoNode, err
	}

	for i, c := range tests {
		miss := fallback
		if i+1 < len(tests) {
			miss = tests[i+1]
		}
		n := p.prog.Node(c)
		n.Cond.True = miss
		n.Next = miss
	}
	p.prog.Node(tests[0]).Line = kw.Line
	return tests[0], nil
}

// parseCase parses  case NUM : { body }  into a test of subject against NUM
// whose false branch (a match) is the body.
func (p *Parser) parseCase(subject CellID) (NodeID, error) {
	kw, err := p.expect(CASE)
	if err != nil {
		return NoNode, err
	}
	numTok, err := p.expect(NUM)
	if err != nil {
		return NoNode, err
	}
	value, err := p.resolve(numTok)
	if err != nil {
		return NoNode, err
	}
	if _, err := p.expect(COLON); err != nil {
		return NoNode, err
	}
	body, err := p.parseBody()
	if err != nil {
		return NoNode, err
	}
	return p.prog.add(Node{
		Kind: NodeCond,
		Line: kw.Line,
		Cond: &CondStmt{Left: subject, Op: RelNotEqual, Right: value, True: NoNode, False: body},
	}), nil
}

func (p *Parser) parseDefaultCase() (NodeID, error) {
	if _, err := p.expect(DEFAULT); err != nil {
		return NoNode, err
	}
	if _, err := p.expect(COLON); err != nil {
		return NoNode, err
	}
	return p.parseBody()
}

// parseCondition parses  primary relop primary  into an unlinked conditional.
func (p *Parser) parseCondition(line int) (NodeID, error) {
	st := &CondStmt{True: NoNode, False: NoNode}
	var err error
	if st.Left, err = p.parseOperand(); err != nil {
		return NoNode, err
	}
	if st.Op, err = p.parseRelop(); err != nil {
		return NoNode, err
	}
	if st.Right, err = p.parseOperand(); err != nil {
		return NoNode, err
	}
	return p.prog.add(Node{Kind: NodeCond, Line: line, Cond: st}), nil
}

// parseOperand parses a primary and resolves it to a cell immediately.
func (p *Parser) parseOperand() (CellID, error) {
	tok, err := p.parsePrimary()
	if err != nil {
		return NoCell, err
	}
	return p.resolve(tok)
}

func (p *Parser) parsePrimary() (Token, error) {
	tok, err := p.advance()
	if err != nil {
		return tok, err
	}
	if tok.Type != IDENTIFIER && tok.Type != NUM {
		return tok, p.unexpected(tok, "IDENTIFIER or NUM")
	}
	return tok, nil
}

func isArithOp(tt TokenType) bool {
	return tt == PLUS || tt == MINUS || tt == STAR || tt == SLASH
}

func (p *Parser) parseOp() (ArithOp, error) {
	tok, err := p.advance()
	if err != nil {
		return OpNone, err
	}
	switch tok.Type {
	case PLUS:
		return OpPlus, nil
	case MINUS:
		return OpMinus, nil
	case STAR:
		return OpMult, nil
	case SLASH:
		return OpDiv, nil
	}
	return OpNone, p.unexpected(tok, "arithmetic operator")
}

func (p *Parser) parseRelop() (RelOp, error) {
	tok, err := p.advance()
	if err != nil {
		return 0, err
	}
	switch tok.Type {
	case GREATER:
		return RelGreater, nil
	case LESS:
		return RelLess, nil
	case NOT_EQ:
		return RelNotEqual, nil
	}
	return 0, p.unexpected(tok, "relational operator")
}
