package renderer

import (
	"sync"
	"unicode"

	"github.com/dshills/onree/internal/engine/cursor"
	"github.com/dshills/onree/internal/engine/document"
	"github.com/dshills/onree/internal/renderer/backend"
	"github.com/dshills/onree/internal/renderer/core"
	"github.com/dshills/onree/internal/renderer/highlight"
	"github.com/dshills/onree/internal/renderer/statusline"
)

// barRows is the number of rows below the text area.
const barRows = 2

// View is the editing state a frame is drawn from.
type View interface {
	Document() *document.Document
	Position() cursor.Cursor
	Viewport() cursor.Viewport
	Message() string
}

// frame is a View captured at the start of Render.
type frame struct {
	doc *document.Document
	cur cursor.Cursor
	vp  cursor.Viewport
}

// Renderer draws views to a backend.
type Renderer struct {
	mu      sync.Mutex
	backend backend.Backend
	theme   *highlight.Theme
	status  *statusline.StatusLine
	welcome string

	width  int
	height int
}

// New creates a renderer sized to the backend.
func New(b backend.Backend, theme *highlight.Theme) *Renderer {
	if theme == nil {
		theme = highlight.DefaultTheme()
	}
	w, h := b.Size()
	return &Renderer{
		backend: b,
		theme:   theme,
		status:  statusline.New(),
		width:   w,
		height:  h,
	}
}

// Resize updates the screen size.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = width
	r.height = height
}

// Size returns the screen size.
func (r *Renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// TextRows returns the number of rows available for document text.
func (r *Renderer) TextRows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return max(r.height-barRows, 1)
}

// SetTheme replaces the active theme. A nil theme is ignored.
func (r *Renderer) SetTheme(theme *highlight.Theme) {
	if theme == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theme = theme
}

// SetWelcome sets the line shown a third of the way down an empty
// document. Empty shows only filler.
func (r *Renderer) SetWelcome(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.welcome = text
}

// Theme returns the active theme.
func (r *Renderer) Theme() *highlight.Theme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.theme
}

// Render draws a full frame for v. The caller scrolls the view first so
// the cursor is inside the viewport.
func (r *Renderer) Render(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.width <= 0 || r.height <= 0 {
		return
	}
	f := frame{doc: v.Document(), cur: v.Position(), vp: v.Viewport()}

	base := r.baseStyle()
	r.backend.HideCursor()
	r.backend.Fill(core.ScreenRect{Top: 0, Left: 0, Bottom: r.height, Right: r.width},
		core.Cell{Rune: ' ', Width: 1, Style: base})

	rows := max(r.height-barRows, 1)
	for y := 0; y < rows && y < r.height; y++ {
		filerow := y + f.vp.RowOff
		if filerow < f.doc.NumRows() {
			r.drawRow(f, y, filerow)
			continue
		}
		r.drawFiller(f, y, rows)
	}

	if rows < r.height {
		r.status.Render(r.backend, rows, r.width, statusInfo(f))
	}
	if rows+1 < r.height {
		r.status.RenderMessage(r.backend, rows+1, r.width, v.Message())
	}

	r.backend.ShowCursor(cursorColumn(f), f.cur.Y-f.vp.RowOff)
	r.backend.Show()
}

func (r *Renderer) baseStyle() core.Style {
	return core.Style{Foreground: core.ColorDefault, Background: r.theme.Background}
}

// drawRow draws the visible part of a document row.
func (r *Renderer) drawRow(f frame, y, filerow int) {
	x := 0
	for _, run := range f.doc.Runs(filerow, f.vp.ColOff, r.width) {
		style := r.theme.StyleFor(run.Class)
		for _, ch := range run.Text {
			cell := core.NewStyledCell(ch, style)
			if unicode.IsControl(ch) {
				cell = core.NewStyledCell(controlGlyph(ch), r.baseStyle().Reverse())
			}
			if x+cell.Width > r.width {
				return
			}
			r.backend.SetCell(x, y, cell)
			for i := 1; i < cell.Width; i++ {
				r.backend.SetCell(x+i, y, core.Cell{Style: cell.Style})
			}
			x += cell.Width
		}
	}
}

// controlGlyph returns the printable stand-in for a control character:
// '@'+c for the first 27 codes, '?' otherwise.
func controlGlyph(ch rune) rune {
	if ch <= 26 {
		return '@' + ch
	}
	return '?'
}

// drawFiller draws a row past the end of the document.
func (r *Renderer) drawFiller(f frame, y, rows int) {
	style := r.baseStyle()
	if r.welcome == "" || f.doc.NumRows() != 0 || y != rows/3 {
		r.backend.SetCell(0, y, core.NewStyledCell('~', style))
		return
	}

	welcome := statusline.TruncateWidth(r.welcome, r.width)
	padding := (r.width - len(welcome)) / 2
	x := 0
	if padding > 0 {
		r.backend.SetCell(0, y, core.NewStyledCell('~', style))
		x = padding
	}
	for _, ch := range welcome {
		r.backend.SetCell(x, y, core.NewStyledCell(ch, style))
		x++
	}
}

func statusInfo(f frame) statusline.Info {
	info := statusline.Info{
		Filename: f.doc.Filename(),
		Lines:    f.doc.NumRows(),
		Modified: f.doc.IsDirty(),
		Line:     f.cur.Y + 1,
	}
	if g := f.doc.Grammar(); g != nil {
		info.Filetype = g.Filetype
	}
	return info
}

// cursorColumn returns the screen column of the cursor, accounting for
// wide runes between the column offset and the cursor.
func cursorColumn(f frame) int {
	row := f.doc.Row(f.cur.Y)
	if row == nil {
		return f.cur.RX - f.vp.ColOff
	}
	render := []rune(row.RenderText())
	x := 0
	for rx := f.vp.ColOff; rx < f.cur.RX; rx++ {
		if rx < len(render) {
			x += core.RuneWidth(render[rx])
		} else {
			x++
		}
	}
	return x
}
