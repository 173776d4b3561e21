package document

import (
	"github.com/dshills/onree/internal/renderer/highlight"
)

// Row is one line of the document. Its derived fields are owned by the
// Document; callers only read them.
type Row struct {
	idx         int
	chars       []rune
	render      []rune
	classes     []highlight.Class
	openComment bool
	tabStop     int
}

// Index returns the row's position in the document.
func (r *Row) Index() int { return r.idx }

// Len returns the number of logical characters.
func (r *Row) Len() int { return len(r.chars) }

// Text returns the logical content.
func (r *Row) Text() string { return string(r.chars) }

// Chars returns a copy of the logical content.
func (r *Row) Chars() []rune {
	out := make([]rune, len(r.chars))
	copy(out, r.chars)
	return out
}

// RenderLen returns the number of render columns.
func (r *Row) RenderLen() int { return len(r.render) }

// RenderText returns the tab-expanded content.
func (r *Row) RenderText() string { return string(r.render) }

// Classes returns a copy of the per-column highlight classes.
func (r *Row) Classes() []highlight.Class {
	out := make([]highlight.Class, len(r.classes))
	copy(out, r.classes)
	return out
}

// OpenComment reports whether the row ends inside an unclosed block comment.
func (r *Row) OpenComment() bool { return r.openComment }

// CxToRx converts a logical column of this row to a render column.
func (r *Row) CxToRx(cx int) int { return CxToRx(r.chars, cx, r.tabStop) }

// RxToCx converts a render column of this row to a logical column.
func (r *Row) RxToCx(rx int) int { return RxToCx(r.chars, rx, r.tabStop) }
