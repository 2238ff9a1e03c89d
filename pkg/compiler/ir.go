package compiler

import (
	"fmt"
	"strings"
)

// NodeID is a handle to a Node in a Program's arena. Branch and jump targets
// are handles, which lets a while loop point back at its own condition.
type NodeID int

// NoNode terminates a chain or marks an unset branch.
const NoNode NodeID = -1

// NodeKind discriminates the statement variants.
type NodeKind int

const (
	NodeNoop NodeKind = iota
	NodeAssign
	NodePrint
	NodeCond
	NodeJump
)

var nodeKindNames = [...]string{
	NodeNoop:   "NOOP",
	NodeAssign: "ASSIGN",
	NodePrint:  "PRINT",
	NodeCond:   "IF",
	NodeJump:   "GOTO",
}

func (k NodeKind) String() string {
	if int(k) >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// ArithOp is the optional operator of an assignment.
type ArithOp int

const (
	OpNone ArithOp = iota
	OpPlus
	OpMinus
	OpMult
	OpDiv
)

func (op ArithOp) String() string {
	switch op {
	case OpNone:
		return ""
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMult:
		return "*"
	case OpDiv:
		return "/"
	}
	return fmt.Sprintf("ArithOp(%d)", int(op))
}

// RelOp is the comparison of a conditional.
type RelOp int

const (
	RelGreater RelOp = iota
	RelLess
	RelNotEqual
)

func (op RelOp) String() string {
	switch op {
	case RelGreater:
		return ">"
	case RelLess:
		return "<"
	case RelNotEqual:
		return "!="
	}
	return fmt.Sprintf("RelOp(%d)", int(op))
}

// AssignStmt is Target = Left [Op Right]. Op is OpNone and Right is NoCell
// for a plain copy.
type AssignStmt struct {
	Target CellID
	Left   CellID
	Op     ArithOp
	Right  CellID
}

// PrintStmt outputs the value of Cell.
type PrintStmt struct {
	Cell CellID
}

// CondStmt evaluates Left Op Right and continues at True when it holds.
// Otherwise execution continues at False, or at the node's Next when False
// is NoNode.
type CondStmt struct {
	Left  CellID
	Op    RelOp
	Right CellID
	True  NodeID
	False NodeID
}

// JumpStmt transfers control to Target unconditionally.
type JumpStmt struct {
	Target NodeID
}

// Node is one statement of the IR graph. Exactly one of the variant
// pointers matching Kind is set; a NOOP has none.
type Node struct {
	Kind NodeKind
	Line int    // source line of the statement's first token, 0 if synthesized
	Next NodeID // sequential successor

	Assign *AssignStmt
	Print  *PrintStmt
	Cond   *CondStmt
	Jump   *JumpStmt
}

// Program is the result of a parse: a node arena, the cells its nodes
// refer to, and the handle of the first statement.
type Program struct {
	Nodes   []Node
	Symbols *SymbolTable
	Entry   NodeID
}

func newProgram(syms *SymbolTable) *Program {
	return &Program{Symbols: syms, Entry: NoNode}
}

func (p *Program) add(n Node) NodeID {
	n.Next = NoNode
	p.Nodes = append(p.Nodes, n)
	return NodeID(len(p.Nodes) - 1)
}

func (p *Program) newNoop() NodeID {
	return p.add(Node{Kind: NodeNoop})
}

func (p *Program) newJump(target NodeID) NodeID {
	return p.add(Node{Kind: NodeJump, Jump: &JumpStmt{Target: target}})
}

// Node returns the node behind id. The pointer stays valid until the next
// node is added to the arena.
func (p *Program) Node(id NodeID) *Node {
	return &p.Nodes[id]
}

// Tail follows Next links from id and returns the last node of the chain.
func (p *Program) Tail(id NodeID) NodeID {
	for p.Nodes[id].Next != NoNode {
		id = p.Nodes[id].Next
	}
	return id
}

// Append links id after the tail of the chain starting at head.
func (p *Program) Append(head, id NodeID) {
	p.Nodes[p.Tail(head)].Next = id
}

// Successors lists every handle a node can transfer control to.
func (p *Program) Successors(id NodeID) []NodeID {
	n := &p.Nodes[id]
	var out []NodeID
	add := func(s NodeID) {
		if s != NoNode {
			out = append(out, s)
		}
	}
	switch n.Kind {
	case NodeCond:
		add(n.Cond.True)
		add(n.Cond.False)
		add(n.Next)
	case NodeJump:
		add(n.Jump.Target)
	default:
		add(n.Next)
	}
	return out
}

func (p *Program) describe(n *Node, id func(NodeID) string) string {
	d := p.Symbols.Describe
	switch n.Kind {
	case NodeAssign:
		a := n.Assign
		if a.Op == OpNone {
			return fmt.Sprintf("ASSIGN %s = %s", d(a.Target), d(a.Left))
		}
		return fmt.Sprintf("ASSIGN %s = %s %s %s", d(a.Target), d(a.Left), a.Op, d(a.Right))
	case NodePrint:
		return fmt.Sprintf("PRINT %s", d(n.Print.Cell))
	case NodeCond:
		c := n.Cond
		return fmt.Sprintf("IF %s %s %s THEN %s ELSE %s", d(c.Left), c.Op, d(c.Right), id(c.True), id(c.False))
	case NodeJump:
		return fmt.Sprintf("GOTO %s", id(n.Jump.Target))
	}
	return "NOOP"
}

func handle(id NodeID) string {
	if id == NoNode {
		return "-"
	}
	return fmt.Sprint(int(id))
}

// String renders a numbered listing of every node in arena order.
func (p *Program) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "entry: %s\n", handle(p.Entry))
	for i := range p.Nodes {
		n := &p.Nodes[i]
		fmt.Fprintf(&sb, "%4d  %-36s next %s\n", i, p.describe(n, handle), handle(n.Next))
	}
	return sb.String()
}

// Shape renders the graph reachable from Entry with nodes renumbered in
// depth-first visiting order. Two parses of the same source have equal shapes
// even though their literal cells are distinct.
func (p *Program) Shape() string {
	if p.Entry == NoNode {
		return ""
	}
	order := []NodeID{}
	index := map[NodeID]int{}
	stack := []NodeID{p.Entry}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := index[id]; seen {
			continue
		}
		index[id] = len(order)
		order = append(order, id)
		succ := p.Successors(id)
		for i := len(succ) - 1; i >= 0; i-- {
			stack = append(stack, succ[i])
		}
	}

	canon := func(id NodeID) string {
		if id == NoNode {
			return "-"
		}
		return fmt.Sprintf("n%d", index[id])
	}
	var sb strings.Builder
	for _, id := range order {
		n := &p.Nodes[id]
		fmt.Fprintf(&sb, "%s: %s ; %s\n", canon(id), p.describe(n, canon), canon(n.Next))
	}
	return sb.String()
}
