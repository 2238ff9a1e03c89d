// Package grid lays text out on a fixed-size character screen.
package grid

import "unicode/utf8"

// GetGridCoords converts a linear cell index to column/row coordinates.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Buffer is a cols×rows character screen that scrolls up by one row when
// writing past the last cell. It implements io.Writer.
type Buffer struct {
	Cols, Rows int
	Cells      []rune // 0 marks an empty cell
	cursor     int
}

func NewBuffer(cols, rows int) *Buffer {
	return &Buffer{Cols: cols, Rows: rows, Cells: make([]rune, cols*rows)}
}

// Write places p on the screen starting at the cursor. A newline moves the
// cursor to the start of the next row.
func (b *Buffer) Write(p []byte) (int, error) {
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		i += size
		if b.cursor >= len(b.Cells) {
			b.scroll()
		}
		if r == '\n' {
			_, row := GetGridCoords(b.cursor, b.Cols)
			b.cursor = (row + 1) * b.Cols
			continue
		}
		b.Cells[b.cursor] = r
		b.cursor++
	}
	return len(p), nil
}

// scroll drops the top row and moves the cursor up with the text.
func (b *Buffer) scroll() {
	copy(b.Cells, b.Cells[b.Cols:])
	last := b.Cells[len(b.Cells)-b.Cols:]
	for i := range last {
		last[i] = 0
	}
	b.cursor -= b.Cols
}

// Clear blanks the screen and homes the cursor.
func (b *Buffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = 0
	}
	b.cursor = 0
}

// Line returns the text of row y with trailing empty cells removed.
func (b *Buffer) Line(y int) string {
	row := b.Cells[y*b.Cols : (y+1)*b.Cols]
	end := len(row)
	for end > 0 && row[end-1] == 0 {
		end--
	}
	out := make([]rune, end)
	for i, r := range row[:end] {
		if r == 0 {
			r = ' '
		}
		out[i] = r
	}
	return string(out)
}
