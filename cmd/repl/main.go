package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"irgen/pkg/compiler"
	"irgen/pkg/machine"
)

const (
	historyFile = ".irgen_history"
	promptMain  = "==> "
	promptCont  = "... "
)

const banner = `irgen REPL
Enter a whole program (declarations, then a { ... } block); it runs once complete.
Ctrl+C cancels input, Ctrl+D exits. Type :help for commands.`

const helpText = `REPL commands:
  :ir      Show the IR listing of the last program
  :vars    Show variable values after the last run
  :quit    Exit the REPL
`

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

type session struct {
	last *compiler.Program
	vm   *machine.Machine
}

func main() {
	os.Exit(run())
}

func run() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	var s session
	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if s.command(strings.ToLower(trimmed)) {
				return 0
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if err := s.execute(code, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
	}
	return 0
}

// command handles a ":" directive and reports whether the REPL should exit.
func (s *session) command(cmd string) (exit bool) {
	switch cmd {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(helpText)
	case ":ir":
		if s.last == nil {
			fmt.Println("no program yet")
			return false
		}
		fmt.Print(s.last)
	case ":vars":
		if s.vm == nil {
			fmt.Println("no program yet")
			return false
		}
		for _, name := range s.last.Symbols.Names() {
			v, _ := s.vm.Value(name)
			fmt.Printf("  %s = %d\n", name, v)
		}
	default:
		fmt.Println("unknown command. Type :help for a list.")
	}
	return false
}

// execute compiles code and runs it to completion, writing prints to out.
func (s *session) execute(code string, out io.Writer) error {
	prog, err := compiler.Compile(code)
	if err != nil {
		return err
	}
	s.last = prog
	s.vm = machine.New(prog, out, nil)
	return s.vm.Run()
}

// readByParseProbe keeps prompting for continuation lines while the parser
// reports that the input ended too early.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		_, perr := compiler.Compile(src)
		if perr != nil && compiler.Incomplete(perr) {
			continue
		}
		return src, true
	}
}
