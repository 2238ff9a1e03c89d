package compiler

import (
	"strings"
	"testing"
)

const factorial = `a, b;
{
    a = 10;
    b = 1;
    while a > 0 {
        b = b * a;
        a = a - 1;
    }
    print b;
}
`

func TestProgramString(t *testing.T) {
	prog := mustCompile(t, factorial)
	listing := prog.String()
	for _, want := range []string{
		"entry: 0",
		"ASSIGN a = 10",
		"ASSIGN b = b * a",
		"IF a > 0 THEN",
		"GOTO 2",
		"NOOP",
		"PRINT b",
	} {
		if !strings.Contains(listing, want) {
			t.Errorf("listing missing %q:\n%s", want, listing)
		}
	}
}

func TestShapeIsStableAcrossParses(t *testing.T) {
	sources := []string{
		factorial,
		"x, y; { switch x { case 1: { y = 1; } case 2: { y = 2; } default: { y = 3; } } print y; }",
		"i, s; { for (i = 0; i < 5; i = i + 1;) { if i != 2 { s = s + i; } } print s; }",
	}
	for _, src := range sources {
		p1 := mustCompile(t, src)
		p2 := mustCompile(t, src)
		if p1.Shape() != p2.Shape() {
			t.Errorf("shapes differ for %q:\n%s\nvs\n%s", src, p1.Shape(), p2.Shape())
		}
		if p1.Symbols == p2.Symbols {
			t.Error("parses must not share a symbol table")
		}
	}
}

func TestShapeDistinguishesPrograms(t *testing.T) {
	a := mustCompile(t, "a; { a = a + 1; }")
	b := mustCompile(t, "a; { a = a - 1; }")
	if a.Shape() == b.Shape() {
		t.Errorf("different operators produced the same shape:\n%s", a.Shape())
	}
}

func TestShapeRenumbersFromEntry(t *testing.T) {
	prog := mustCompile(t, factorial)
	shape := prog.Shape()
	if !strings.HasPrefix(shape, "n0: ASSIGN a = 10 ; n1\n") {
		t.Errorf("shape does not start at entry:\n%s", shape)
	}
	if strings.Count(shape, "\n") != len(prog.Nodes) {
		t.Errorf("every node of the factorial program is reachable; shape:\n%s", shape)
	}
}

func TestSuccessors(t *testing.T) {
	prog := mustCompile(t, "a; { while a > 0 { a = a - 1; } }")
	c := prog.Node(prog.Entry)
	succ := prog.Successors(prog.Entry)
	want := []NodeID{c.Cond.True, c.Cond.False, c.Next}
	if len(succ) != 3 || succ[0] != want[0] || succ[1] != want[1] || succ[2] != want[2] {
		t.Errorf("Successors = %v; want %v", succ, want)
	}
	jump := prog.Tail(c.Cond.True)
	if got := prog.Successors(jump); len(got) != 1 || got[0] != prog.Entry {
		t.Errorf("jump successors = %v; want [entry]", got)
	}
}

func TestKindAndOperatorStrings(t *testing.T) {
	if NodeJump.String() != "GOTO" || NodeKind(42).String() != "NodeKind(42)" {
		t.Error("NodeKind.String mismatch")
	}
	if OpDiv.String() != "/" || OpNone.String() != "" {
		t.Error("ArithOp.String mismatch")
	}
	if RelNotEqual.String() != "!=" {
		t.Error("RelOp.String mismatch")
	}
}
