package cursor

import (
	"fmt"

	"github.com/dshills/onree/internal/engine/document"
)

// Viewport is the window of the document shown on screen.
type Viewport struct {
	RowOff int // first visible row
	ColOff int // first visible render column
	Rows   int // text rows on screen
	Cols   int // columns on screen
}

// NewViewport creates a viewport of the given size at the top of the
// document.
func NewViewport(rows, cols int) Viewport {
	return Viewport{Rows: max(rows, 1), Cols: max(cols, 1)}
}

// String returns a string representation of the viewport.
func (v Viewport) String() string {
	return fmt.Sprintf("Viewport(%dx%d at %d,%d)", v.Rows, v.Cols, v.RowOff, v.ColOff)
}

// Resize changes the viewport size.
func (v *Viewport) Resize(rows, cols int) {
	v.Rows = max(rows, 1)
	v.Cols = max(cols, 1)
}

// Scroll refreshes c.RX and moves the viewport the minimum distance needed
// to keep the cursor visible.
func (v *Viewport) Scroll(doc *document.Document, c *Cursor) {
	c.RX = 0
	if row := doc.Row(c.Y); row != nil {
		c.RX = row.CxToRx(c.X)
	}

	if c.Y < v.RowOff {
		v.RowOff = c.Y
	}
	if c.Y >= v.RowOff+v.Rows {
		v.RowOff = c.Y - v.Rows + 1
	}
	if c.RX < v.ColOff {
		v.ColOff = c.RX
	}
	if c.RX >= v.ColOff+v.Cols {
		v.ColOff = c.RX - v.Cols + 1
	}
}

// Visible reports whether the document row is inside the viewport.
func (v Viewport) Visible(row int) bool {
	return row >= v.RowOff && row < v.RowOff+v.Rows
}
