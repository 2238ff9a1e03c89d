package compiler

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUndeclared indicates an identifier that never appeared in the
// declaration section.
var ErrUndeclared = errors.New("undeclared identifier")

// CellID is a handle to a Cell owned by a SymbolTable.
type CellID int

// NoCell marks an absent operand.
const NoCell CellID = -1

// Cell is one storage location. Declared variables have a Name; literal
// constants are anonymous.
type Cell struct {
	Name  string
	Value int
}

// IsConst reports whether the cell was allocated for a numeric literal.
func (c Cell) IsConst() bool { return c.Name == "" }

// SymbolTable maps declared names to cells and owns every cell of one parse,
// literal constants included.
type SymbolTable struct {
	cells []Cell
	names map[string]CellID
	order []string // declaration order
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{names: make(map[string]CellID)}
}

// Declare creates a zero-valued cell for name. Declaring the same name twice
// is an error.
func (s *SymbolTable) Declare(name string) (CellID, error) {
	if id, ok := s.names[name]; ok {
		return id, fmt.Errorf("%w: %q", ErrDuplicateDeclaration, name)
	}
	id := s.alloc(Cell{Name: name})
	s.names[name] = id
	s.order = append(s.order, name)
	return id, nil
}

// Resolve maps an operand token to a cell. Identifiers return their declared
// cell. Every numeral gets a fresh anonymous cell: two occurrences of the same
// literal never share storage.
func (s *SymbolTable) Resolve(tok Token) (CellID, error) {
	switch tok.Type {
	case IDENTIFIER:
		id, ok := s.names[tok.Lexeme]
		if !ok {
			return NoCell, fmt.Errorf("%w %q", ErrUndeclared, tok.Lexeme)
		}
		return id, nil
	case NUM:
		v, err := strconv.Atoi(tok.Lexeme)
		if err != nil {
			return NoCell, fmt.Errorf("invalid numeric literal %q", tok.Lexeme)
		}
		return s.alloc(Cell{Value: v}), nil
	default:
		return NoCell, fmt.Errorf("expected identifier or number, got %s", tok.Type)
	}
}

func (s *SymbolTable) alloc(c Cell) CellID {
	s.cells = append(s.cells, c)
	return CellID(len(s.cells) - 1)
}

// Lookup returns the cell declared for name and whether it exists.
func (s *SymbolTable) Lookup(name string) (CellID, bool) {
	id, ok := s.names[name]
	return id, ok
}

// Cell returns a copy of the cell behind id.
func (s *SymbolTable) Cell(id CellID) Cell {
	return s.cells[id]
}

// Cells returns a copy of every cell, indexed by CellID.
func (s *SymbolTable) Cells() []Cell {
	return append([]Cell(nil), s.cells...)
}

// Len is the number of declared variables; literal cells are not counted.
func (s *SymbolTable) Len() int { return len(s.order) }

// Names returns the declared names in declaration order.
func (s *SymbolTable) Names() []string {
	return append([]string(nil), s.order...)
}

// Describe renders an operand the way it appears in source.
func (s *SymbolTable) Describe(id CellID) string {
	if id == NoCell {
		return "<none>"
	}
	c := s.cells[id]
	if c.IsConst() {
		return strconv.Itoa(c.Value)
	}
	return c.Name
}

// String returns a deterministically ordered dump of the table.
func (s *SymbolTable) String() string {
	var sb strings.Builder
	if len(s.names) == 0 {
		sb.WriteString("Variables: (empty)\n")
	} else {
		sb.WriteString("Variables:\n")
		names := s.Names()
		sort.Strings(names)
		for _, name := range names {
			id := s.names[name]
			fmt.Fprintf(&sb, "  %-20s  Cell: %d (Value: %d)\n", name, id, s.cells[id].Value)
		}
	}
	consts := 0
	for _, c := range s.cells {
		if c.IsConst() {
			consts++
		}
	}
	fmt.Fprintf(&sb, "Constants: %d\n", consts)
	return sb.String()
}
