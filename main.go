package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"irgen/pkg/compiler"
	"irgen/pkg/machine"
	"irgen/pkg/utils"
)

func main() {
	inPath := flag.String("in", "", "input program path (default: read stdin)")
	dumpIR := flag.Bool("dump", false, "print the IR listing before running")
	dumpSyms := flag.Bool("symbols", false, "print the symbol table before running")
	parseOnly := flag.Bool("parse-only", false, "build the IR but do not execute it")
	maxSteps := flag.Int("max-steps", machine.DefaultMaxSteps, "abort execution after this many statements (negative: unlimited)")
	flag.Parse()

	source, err := utils.ReadSource(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input %q: %v\n", *inPath, err)
		os.Exit(1)
	}

	prog, err := compiler.Compile(source)
	if err != nil {
		os.Exit(reportCompileError(err))
	}

	if *dumpSyms {
		fmt.Print(prog.Symbols)
	}
	if *dumpIR {
		fmt.Print(prog)
	}
	if *parseOnly {
		return
	}

	vm := machine.New(prog, os.Stdout, &machine.Options{MaxSteps: *maxSteps})
	if err := vm.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "run failed after %d steps: %v\n", vm.Steps, err)
		os.Exit(1)
	}
}

// reportCompileError prints the diagnostic for a failed parse and returns
// the process exit status.
func reportCompileError(err error) int {
	if errors.Is(err, compiler.ErrSyntax) {
		fmt.Println("Syntax Error")
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}
