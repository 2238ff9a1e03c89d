package main

import (
	"fmt"
	"os"

	"irgen/pkg/compiler"
	"irgen/pkg/utils"
)

const testSource = `a, b;
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

func main() {
	src := testSource
	if len(os.Args) > 1 {
		data, err := utils.ReadSource(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = data
	}

	fmt.Printf("Source:\n%s\n", src)

	// Lex
	tokens, err := compiler.Lex(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lex error:", err)
		os.Exit(1)
	}

	fmt.Printf("Tokens (%d)\n", len(tokens))
	for _, tok := range tokens {
		fmt.Println(" ", tok)
	}
	fmt.Println()

	// Parse
	prog, err := compiler.Parse(tokens, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		os.Exit(1)
	}

	fmt.Println("IR")
	fmt.Print(prog)
	fmt.Println()
	fmt.Print(prog.Symbols)
}
