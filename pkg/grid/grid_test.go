package grid

import (
	"fmt"
	"testing"
)

func TestGetGridCoords(t *testing.T) {
	tests := []struct {
		index int
		cols  int
		wantX int
		wantY int
	}{
		// 64 cols (Standard)
		{0, 64, 0, 0},
		{1, 64, 1, 0},
		{63, 64, 63, 0},
		{64, 64, 0, 1},
		{65, 64, 1, 1},
		{127, 64, 63, 1},
		{128, 64, 0, 2},
		{1023, 64, 63, 15},

		// 32 cols (Low Res)
		{0, 32, 0, 0},
		{31, 32, 31, 0},
		{32, 32, 0, 1},
		{63, 32, 31, 1},
		{1023, 32, 31, 31},
	}

	for _, tc := range tests {
		gotX, gotY := GetGridCoords(tc.index, tc.cols)
		if gotX != tc.wantX || gotY != tc.wantY {
			t.Errorf("GetGridCoords(%d, %d) = (%d, %d); want (%d, %d)", tc.index, tc.cols, gotX, gotY, tc.wantX, tc.wantY)
		}
	}
}

func lines(b *Buffer) []string {
	out := make([]string, b.Rows)
	for y := range out {
		out[y] = b.Line(y)
	}
	return out
}

func TestBufferWrite(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single line", "42\n", []string{"42", "", ""}},
		{"three lines", "1\n2\n3\n", []string{"1", "2", "3"}},
		{"scrolls", "1\n2\n3\n4\n", []string{"2", "3", "4"}},
		{"wraps long line", "abcdefg", []string{"abcd", "efg", ""}},
		{"wraps then scrolls", "abcdefghijklm", []string{"efgh", "ijkl", "m"}},
		{"blank line", "1\n\n2\n", []string{"1", "", "2"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuffer(4, 3)
			if _, err := fmt.Fprint(b, tc.input); err != nil {
				t.Fatalf("write: %v", err)
			}
			got := lines(b)
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("row %d = %q; want %q (screen %q)", i, got[i], tc.want[i], got)
				}
			}
		})
	}
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer(4, 2)
	fmt.Fprint(b, "hello")
	b.Clear()
	if b.Line(0) != "" || b.Line(1) != "" {
		t.Fatalf("expected empty screen, got %q %q", b.Line(0), b.Line(1))
	}
	fmt.Fprint(b, "x")
	if b.Line(0) != "x" {
		t.Errorf("cursor not homed: row 0 = %q", b.Line(0))
	}
}
