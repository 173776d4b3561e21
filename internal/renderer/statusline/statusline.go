// Package statusline provides the status bar and message bar drawn below
// the text area.
package statusline

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/dshills/onree/internal/renderer/backend"
	"github.com/dshills/onree/internal/renderer/core"
)

// MaxFilenameWidth is the number of grapheme clusters of the filename
// shown in the status bar.
const MaxFilenameWidth = 20

// Info is the document state shown in the status bar.
type Info struct {
	Filename string // empty for an unnamed document
	Lines    int
	Modified bool
	Filetype string // empty when no grammar is active
	Line     int    // 1-based cursor row
}

// Left returns the left-aligned part of the status bar.
func (i Info) Left() string {
	name := i.Filename
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if i.Modified {
		modified = "(modified)"
	}
	return fmt.Sprintf("%s - %d lines %s", Truncate(name, MaxFilenameWidth), i.Lines, modified)
}

// Right returns the right-aligned part of the status bar.
func (i Info) Right() string {
	filetype := i.Filetype
	if filetype == "" {
		filetype = "no filetype"
	}
	return fmt.Sprintf("File Type: %s | %d/%d", filetype, i.Line, i.Lines)
}

// Truncate returns the first n grapheme clusters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	g := uniseg.NewGraphemes(s)
	end := 0
	for count := 0; count < n && g.Next(); count++ {
		_, end = g.Positions()
	}
	return s[:end]
}

// TruncateWidth returns the longest prefix of s, on grapheme boundaries,
// that fits in width screen cells.
func TruncateWidth(s string, width int) string {
	g := uniseg.NewGraphemes(s)
	end, used := 0, 0
	for g.Next() {
		w := g.Width()
		if used+w > width {
			break
		}
		used += w
		_, end = g.Positions()
	}
	return s[:end]
}

// StatusLine draws the status and message bars.
type StatusLine struct {
	barStyle     core.Style
	messageStyle core.Style
}

// New creates a status line drawn in reverse video.
func New() *StatusLine {
	return &StatusLine{
		barStyle:     core.DefaultStyle().Reverse(),
		messageStyle: core.DefaultStyle(),
	}
}

// SetStyles replaces the bar and message styles.
func (s *StatusLine) SetStyles(bar, message core.Style) {
	s.barStyle = bar
	s.messageStyle = message
}

// Render draws the status bar on row. The right part is drawn only when
// it fits after the left part.
func (s *StatusLine) Render(b backend.Backend, row, width int, info Info) {
	b.Fill(core.ScreenRect{Top: row, Left: 0, Bottom: row + 1, Right: width},
		core.Cell{Rune: ' ', Width: 1, Style: s.barStyle})

	left := TruncateWidth(info.Left(), width)
	col := drawString(b, 0, row, left, s.barStyle)

	right := info.Right()
	if rw := uniseg.StringWidth(right); width-col >= rw {
		drawString(b, width-rw, row, right, s.barStyle)
	}
}

// RenderMessage draws msg on row, clipped to width.
func (s *StatusLine) RenderMessage(b backend.Backend, row, width int, msg string) {
	b.Fill(core.ScreenRect{Top: row, Left: 0, Bottom: row + 1, Right: width},
		core.Cell{Rune: ' ', Width: 1, Style: s.messageStyle})
	drawString(b, 0, row, TruncateWidth(msg, width), s.messageStyle)
}

// drawString draws s starting at x and returns the column after it.
func drawString(b backend.Backend, x, y int, s string, style core.Style) int {
	for _, r := range s {
		cell := core.NewStyledCell(r, style)
		b.SetCell(x, y, cell)
		for i := 1; i < cell.Width; i++ {
			b.SetCell(x+i, y, core.Cell{Style: style})
		}
		x += cell.Width
	}
	return x
}
