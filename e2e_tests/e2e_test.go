package main

import (
	"bytes"
	"testing"

	"irgen/pkg/compiler"
	"irgen/pkg/machine"
)

func TestCompilerAndMachine(t *testing.T) {
	// 1. Define source
	source := `
n, a, b, t, i;
{
    n = 12;
    a = 0;
    b = 1;
    for (i = 0; i < n; i = i + 1;) {
        t = a + b;
        a = b;
        b = t;
    }
    print a;
}
`

	// 2. Lex and Parse
	tokens, err := compiler.Lex(source)
	if err != nil {
		t.Fatalf("Lexing failed: %v", err)
	}

	prog, err := compiler.Parse(tokens, source)
	if err != nil {
		t.Fatalf("Parsing failed: %v", err)
	}

	t.Logf("IR:\n%s", prog)

	// 3. Run
	var out bytes.Buffer
	vm := machine.New(prog, &out, nil)
	if err := vm.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 4. Verify
	if out.String() != "144\n" {
		t.Errorf("Expected fib(12) = 144, got %q", out.String())
	}
	if v, _ := vm.Value("i"); v != 12 {
		t.Errorf("Expected loop counter 12 at exit, got %d", v)
	}
}

func TestMalformedProgramProducesNoIR(t *testing.T) {
	prog, err := compiler.Compile("a; { a = 5 }")
	if err == nil || prog != nil {
		t.Fatalf("expected syntax error and no program, got %v / %v", prog, err)
	}
}
