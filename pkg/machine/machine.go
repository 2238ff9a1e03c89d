// Package machine executes the IR graph produced by package compiler.
package machine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"irgen/pkg/compiler"
)

var (
	// ErrStepLimit is returned by Run when the program did not halt within
	// Options.MaxSteps statements.
	ErrStepLimit = errors.New("step limit exceeded")

	// ErrDivideByZero is returned when an assignment divides by a zero cell.
	ErrDivideByZero = errors.New("division by zero")
)

// DefaultMaxSteps bounds Run when no limit is configured.
const DefaultMaxSteps = 1_000_000

// Options controls execution.
type Options struct {
	// MaxSteps is the number of nodes Run may execute before giving up.
	// Zero means DefaultMaxSteps; a negative value disables the limit.
	MaxSteps int
}

func (o *Options) normalize() Options {
	if o == nil {
		return Options{MaxSteps: DefaultMaxSteps}
	}
	out := *o
	if out.MaxSteps == 0 {
		out.MaxSteps = DefaultMaxSteps
	}
	return out
}

// Machine walks a Program one node at a time. Cell values are copied out of
// the program on construction, so the same Program can back many machines.
type Machine struct {
	prog *compiler.Program
	opt  Options

	PC     compiler.NodeID
	Values []int
	Steps  int
	Halted bool

	// Output receives print statements. If nil, os.Stdout is used.
	Output io.Writer
}

func New(prog *compiler.Program, out io.Writer, opt *Options) *Machine {
	cells := prog.Symbols.Cells()
	values := make([]int, len(cells))
	for i, c := range cells {
		values[i] = c.Value
	}
	m := &Machine{
		prog:   prog,
		opt:    opt.normalize(),
		PC:     prog.Entry,
		Values: values,
		Output: out,
	}
	m.Halted = m.PC == compiler.NoNode
	return m
}

func (m *Machine) outputSink() io.Writer {
	if m.Output != nil {
		return m.Output
	}
	return os.Stdout
}

// Value returns the current value of a declared variable.
func (m *Machine) Value(name string) (int, bool) {
	id, ok := m.prog.Symbols.Lookup(name)
	if !ok {
		return 0, false
	}
	return m.Values[id], true
}

// Step executes the node at PC and advances. It is a no-op once halted.
func (m *Machine) Step() error {
	if m.Halted {
		return nil
	}
	n := m.prog.Node(m.PC)
	next := n.Next

	switch n.Kind {
	case compiler.NodeAssign:
		v, err := m.eval(n.Assign)
		if err != nil {
			m.Halted = true
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		m.Values[n.Assign.Target] = v

	case compiler.NodePrint:
		if _, err := fmt.Fprintf(m.outputSink(), "%d\n", m.Values[n.Print.Cell]); err != nil {
			m.Halted = true
			return err
		}

	case compiler.NodeCond:
		c := n.Cond
		if m.compare(c) {
			next = c.True
		} else if c.False != compiler.NoNode {
			next = c.False
		}

	case compiler.NodeJump:
		next = n.Jump.Target

	case compiler.NodeNoop:
		// join point
	}

	m.Steps++
	m.PC = next
	if next == compiler.NoNode {
		m.Halted = true
	}
	return nil
}

func (m *Machine) eval(a *compiler.AssignStmt) (int, error) {
	l := m.Values[a.Left]
	if a.Op == compiler.OpNone {
		return l, nil
	}
	r := m.Values[a.Right]
	switch a.Op {
	case compiler.OpPlus:
		return l + r, nil
	case compiler.OpMinus:
		return l - r, nil
	case compiler.OpMult:
		return l * r, nil
	case compiler.OpDiv:
		if r == 0 {
			return 0, ErrDivideByZero
		}
		return l / r, nil
	}
	return 0, fmt.Errorf("unknown operator %v", a.Op)
}

func (m *Machine) compare(c *compiler.CondStmt) bool {
	l, r := m.Values[c.Left], m.Values[c.Right]
	switch c.Op {
	case compiler.RelGreater:
		return l > r
	case compiler.RelLess:
		return l < r
	case compiler.RelNotEqual:
		return l != r
	}
	return false
}

// Run steps until the program halts, fails, or exceeds MaxSteps.
func (m *Machine) Run() error {
	for !m.Halted {
		if m.opt.MaxSteps > 0 && m.Steps >= m.opt.MaxSteps {
			return fmt.Errorf("%w (%d)", ErrStepLimit, m.opt.MaxSteps)
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Reset rewinds the machine to the program entry with the initial cell values.
func (m *Machine) Reset() {
	for i, c := range m.prog.Symbols.Cells() {
		m.Values[i] = c.Value
	}
	m.PC = m.prog.Entry
	m.Steps = 0
	m.Halted = m.PC == compiler.NoNode
}
