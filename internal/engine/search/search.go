// Package search implements incremental substring search over a document
// with a transient highlight on the current match.
package search

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/onree/internal/engine/cursor"
	"github.com/dshills/onree/internal/engine/document"
	"github.com/dshills/onree/internal/input/key"
	"github.com/dshills/onree/internal/renderer/highlight"
)

// snapshot is a row's highlight classes saved before the match overlay was
// written over them.
type snapshot struct {
	row     int
	classes []highlight.Class
}

// Overlay holds the state of one incremental search session. It owns at
// most one outstanding snapshot; the previous match is always restored
// before a new one is highlighted.
type Overlay struct {
	lastMatch int
	direction int
	saved     *snapshot
}

// New creates an overlay with no match, searching forward.
func New() *Overlay {
	return &Overlay{lastMatch: -1, direction: 1}
}

// LastMatch returns the row of the current match, or -1.
func (o *Overlay) LastMatch() int { return o.lastMatch }

// Direction returns +1 when searching forward and -1 when backward.
func (o *Overlay) Direction() int { return o.direction }

// Holding reports whether a match highlight is currently applied.
func (o *Overlay) Holding() bool { return o.saved != nil }

// Reset restores any held highlight and forgets the last match.
func (o *Overlay) Reset(doc *document.Document) {
	o.restore(doc)
	o.lastMatch = -1
	o.direction = 1
}

func (o *Overlay) restore(doc *document.Document) {
	if o.saved == nil {
		return
	}
	doc.RestoreClasses(o.saved.row, o.saved.classes)
	o.saved = nil
}

// Update advances the search for query after input token tok. Enter and
// Escape end the session. Arrow keys step to the next (right, down) or
// previous (left, up) match; any other token restarts the search from the
// top. On a match the cursor moves onto it, the viewport scrolls it to the
// top and the matched columns are highlighted. Update reports whether a
// match was found.
func (o *Overlay) Update(doc *document.Document, cur *cursor.Cursor, vp *cursor.Viewport, query string, tok key.Event) bool {
	o.restore(doc)

	switch tok.Key {
	case key.KeyEnter, key.KeyEscape:
		o.lastMatch = -1
		o.direction = 1
		return false
	case key.KeyRight, key.KeyDown:
		o.direction = 1
	case key.KeyLeft, key.KeyUp:
		o.direction = -1
	default:
		o.lastMatch = -1
		o.direction = 1
	}
	if o.lastMatch == -1 {
		o.direction = 1
	}

	n := doc.NumRows()
	if query == "" || n == 0 {
		return false
	}
	if o.lastMatch >= n {
		o.lastMatch = -1
	}

	current := o.lastMatch
	for i := 0; i < n; i++ {
		current += o.direction
		switch {
		case current == -1:
			current = n - 1
		case current == n:
			current = 0
		}

		row := doc.Row(current)
		render := row.RenderText()
		idx := strings.Index(render, query)
		if idx < 0 {
			continue
		}

		rx := utf8.RuneCountInString(render[:idx])
		o.lastMatch = current
		cur.Y = current
		cur.X = row.RxToCx(rx)
		vp.RowOff = current

		o.saved = &snapshot{row: current, classes: doc.ClassesSnapshot(current)}
		doc.OverlayClasses(current, rx, utf8.RuneCountInString(query), highlight.ClassMatch)
		return true
	}
	return false
}
