// Package cursor tracks the editing position within a document and the
// window of the document shown on screen.
//
// The cursor lives in logical coordinates: Y is a row index and X a
// character index in that row. Y may equal the row count, which places the
// cursor on the virtual empty line after the last row. RX is the render
// column of X and is refreshed by Viewport.Scroll.
//
// Basic usage:
//
//	var cur cursor.Cursor
//	vp := cursor.NewViewport(24, 80)
//
//	cur.Move(doc, key.KeyDown)
//	vp.Scroll(doc, &cur)
package cursor
