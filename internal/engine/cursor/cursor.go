package cursor

import (
	"fmt"

	"github.com/dshills/onree/internal/engine/document"
	"github.com/dshills/onree/internal/input/key"
)

// Cursor is the editing position.
type Cursor struct {
	X  int // character index in row Y
	Y  int // row index, may equal the row count
	RX int // render column of X
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d rx=%d)", c.Y, c.X, c.RX)
}

func rowLen(doc *document.Document, y int) int {
	if row := doc.Row(y); row != nil {
		return row.Len()
	}
	return 0
}

// Move applies an arrow key. Left at the start of a row moves to the end of
// the previous row; right at the end of a row moves to the start of the
// next. X is then snapped to the length of the new row.
func (c *Cursor) Move(doc *document.Document, k key.Key) {
	row := doc.Row(c.Y)

	switch k {
	case key.KeyLeft:
		if c.X != 0 {
			c.X--
		} else if c.Y > 0 {
			c.Y--
			c.X = rowLen(doc, c.Y)
		}
	case key.KeyRight:
		if row != nil && c.X < row.Len() {
			c.X++
		} else if row != nil && c.X == row.Len() {
			c.Y++
			c.X = 0
		}
	case key.KeyUp:
		if c.Y != 0 {
			c.Y--
		}
	case key.KeyDown:
		if c.Y < doc.NumRows() {
			c.Y++
		}
	}

	if n := rowLen(doc, c.Y); c.X > n {
		c.X = n
	}
}

// Home moves to the start of the row.
func (c *Cursor) Home() {
	c.X = 0
}

// End moves to the end of the row.
func (c *Cursor) End(doc *document.Document) {
	if c.Y < doc.NumRows() {
		c.X = rowLen(doc, c.Y)
	}
}

// Page moves one screen up or down. The cursor first jumps to the top or
// bottom row of the viewport, then moves a full screen of rows.
func (c *Cursor) Page(doc *document.Document, vp *Viewport, k key.Key) {
	dir := key.KeyUp
	if k == key.KeyPageUp {
		c.Y = vp.RowOff
	} else {
		dir = key.KeyDown
		c.Y = vp.RowOff + vp.Rows - 1
		if c.Y > doc.NumRows() {
			c.Y = doc.NumRows()
		}
	}

	for i := 0; i < vp.Rows; i++ {
		c.Move(doc, dir)
	}
}

// Clamp keeps the cursor inside the document after rows were removed
// behind its back.
func (c *Cursor) Clamp(doc *document.Document) {
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y > doc.NumRows() {
		c.Y = doc.NumRows()
	}
	if c.X < 0 {
		c.X = 0
	}
	if n := rowLen(doc, c.Y); c.X > n {
		c.X = n
	}
}
