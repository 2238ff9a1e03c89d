package compiler

import (
	"strings"
	"testing"
)

// simpleSource is a minimal program used for benchmarking the fast path.
const simpleSource = `
a, b;
{
	a = 3;
	b = a + 4;
	print b;
}
`

// complexSource exercises every statement form, nested loops and switch
// dispatch.
const complexSource = `
i, j, n, total, mode, tmp;
{
	total = 0;
	for (i = 0; i < 10; i = i + 1;) {
		j = 0;
		while j < i {
			n = i * j;
			if n > 20 {
				total = total + n;
			}
			j = j + 1;
		}
	}
	mode = total / 7;
	switch mode {
		case 0: { tmp = 1; }
		case 1: { tmp = 2; }
		case 2: { tmp = 3; }
		default: { tmp = 4; }
	}
	print total;
	print tmp;
}
`

// generatedSource builds a program with n sequential if statements.
func generatedSource(n int) string {
	var sb strings.Builder
	sb.WriteString("x, y;\n{\n")
	for i := 0; i < n; i++ {
		sb.WriteString("\tif x < 100 { x = x + 1; y = y * 2; }\n")
	}
	sb.WriteString("\tprint x;\n}\n")
	return sb.String()
}

func BenchmarkLex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Lex(complexSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompileSimple(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Compile(simpleSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompileComplex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Compile(complexSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompileLongStatementList(b *testing.B) {
	src := generatedSource(2000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compile(src); err != nil {
			b.Fatal(err)
		}
	}
}

func TestCompileLongStatementList(t *testing.T) {
	prog := mustCompile(t, generatedSource(5000))
	// Each if contributes a conditional, two assignments and a join.
	if want := 5000*4 + 1; len(prog.Nodes) != want {
		t.Errorf("node count = %d; want %d", len(prog.Nodes), want)
	}
}
