package compiler

import (
	"errors"
	"strings"
	"testing"
)

func TestSymbolTable(t *testing.T) {
	t.Run("Declare", func(t *testing.T) {
		s := NewSymbolTable()
		for _, name := range []string{"x", "y", "z"} {
			if _, err := s.Declare(name); err != nil {
				t.Fatalf("Declare(%q): %v", name, err)
			}
		}
		if s.Len() != 3 {
			t.Fatalf("Len() = %d; want 3", s.Len())
		}
		for _, name := range []string{"x", "y", "z"} {
			id, ok := s.Lookup(name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", name)
			}
			c := s.Cell(id)
			if c.Name != name || c.Value != 0 {
				t.Errorf("cell %q = %+v; want zero-valued named cell", name, c)
			}
		}
		if got := strings.Join(s.Names(), ","); got != "x,y,z" {
			t.Errorf("Names() = %s; want declaration order", got)
		}
	})

	t.Run("DuplicateDeclaration", func(t *testing.T) {
		s := NewSymbolTable()
		first, _ := s.Declare("a")
		again, err := s.Declare("a")
		if !errors.Is(err, ErrDuplicateDeclaration) {
			t.Fatalf("expected ErrDuplicateDeclaration, got %v", err)
		}
		if again != first || s.Len() != 1 {
			t.Errorf("duplicate must not allocate a new cell")
		}
	})

	t.Run("ResolveIdentifierSharesCell", func(t *testing.T) {
		s := NewSymbolTable()
		want, _ := s.Declare("a")
		tok := Token{Type: IDENTIFIER, Lexeme: "a", Line: 1}
		for i := 0; i < 2; i++ {
			got, err := s.Resolve(tok)
			if err != nil || got != want {
				t.Fatalf("Resolve(a) = %d, %v; want %d", got, err, want)
			}
		}
	})

	t.Run("ResolveNumberAllocatesFreshCells", func(t *testing.T) {
		s := NewSymbolTable()
		tok := Token{Type: NUM, Lexeme: "5", Line: 1}
		c1, err := s.Resolve(tok)
		if err != nil {
			t.Fatal(err)
		}
		c2, _ := s.Resolve(tok)
		if c1 == c2 {
			t.Fatalf("two occurrences of 5 share cell %d", c1)
		}
		for _, id := range []CellID{c1, c2} {
			c := s.Cell(id)
			if !c.IsConst() || c.Value != 5 {
				t.Errorf("literal cell %d = %+v", id, c)
			}
		}
		if s.Len() != 0 {
			t.Errorf("literals must not count as declared variables, Len() = %d", s.Len())
		}
	})

	t.Run("ResolveErrors", func(t *testing.T) {
		s := NewSymbolTable()
		if _, err := s.Resolve(Token{Type: IDENTIFIER, Lexeme: "ghost"}); !errors.Is(err, ErrUndeclared) {
			t.Errorf("undeclared: got %v", err)
		}
		if _, err := s.Resolve(Token{Type: NUM, Lexeme: "99999999999999999999999"}); err == nil {
			t.Error("out-of-range literal should fail")
		}
		if _, err := s.Resolve(Token{Type: SEMICOLON, Lexeme: ";"}); err == nil {
			t.Error("resolving punctuation should fail")
		}
	})

	t.Run("String", func(t *testing.T) {
		s := NewSymbolTable()
		s.Declare("b")
		s.Declare("a")
		s.Resolve(Token{Type: NUM, Lexeme: "1"})
		dump := s.String()
		if strings.Index(dump, "a ") > strings.Index(dump, "b ") {
			t.Errorf("dump not sorted:\n%s", dump)
		}
		if !strings.Contains(dump, "Constants: 1") {
			t.Errorf("dump missing constant count:\n%s", dump)
		}
	})
}
