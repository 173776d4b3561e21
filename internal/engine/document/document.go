package document

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/onree/internal/renderer/highlight"
)

// Logger receives debug traces from the document.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Document is an ordered sequence of rows with the syntax state needed to
// highlight them.
type Document struct {
	id       uuid.UUID
	rows     []*Row
	dirty    int
	filename string

	registry *highlight.Registry
	grammar  *highlight.Grammar
	lexer    *highlight.Lexer

	tabStop int
	logger  Logger
}

// Option configures a Document.
type Option func(*Document)

// WithTabStop sets the tab stop used by the render transform.
func WithTabStop(n int) Option {
	return func(d *Document) {
		if n > 0 {
			d.tabStop = n
		}
	}
}

// WithRegistry sets the grammar registry consulted by SetFilename.
func WithRegistry(r *highlight.Registry) Option {
	return func(d *Document) {
		if r != nil {
			d.registry = r
		}
	}
}

// WithLogger sets the logger for debug traces.
func WithLogger(l Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates an empty document with no filename and no grammar.
func New(opts ...Option) *Document {
	d := &Document{
		id:       uuid.New(),
		registry: highlight.DefaultRegistry(),
		lexer:    highlight.NewLexer(nil),
		tabStop:  DefaultTabStop,
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the document's unique identifier.
func (d *Document) ID() uuid.UUID { return d.id }

// NumRows returns the number of rows.
func (d *Document) NumRows() int { return len(d.rows) }

// Row returns row i, or nil if i is out of range.
func (d *Document) Row(i int) *Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

// Dirty returns the number of modifications since the last ClearDirty.
func (d *Document) Dirty() int { return d.dirty }

// IsDirty reports whether the document has unsaved modifications.
func (d *Document) IsDirty() bool { return d.dirty > 0 }

// ClearDirty marks the document as saved.
func (d *Document) ClearDirty() { d.dirty = 0 }

// Filename returns the associated filename, or "" if none.
func (d *Document) Filename() string { return d.filename }

// Grammar returns the active grammar, or nil.
func (d *Document) Grammar() *highlight.Grammar { return d.grammar }

// TabStop returns the document tab stop.
func (d *Document) TabStop() int { return d.tabStop }

// Registry returns the grammar registry.
func (d *Document) Registry() *highlight.Registry { return d.registry }

// SetFilename associates name with the document, selects the matching
// grammar and reclassifies every row.
func (d *Document) SetFilename(name string) {
	d.filename = name
	d.SetGrammar(d.registry.Select(name))
}

// SetGrammar replaces the active grammar and reclassifies every row.
func (d *Document) SetGrammar(g *highlight.Grammar) {
	d.grammar = g
	d.lexer = highlight.NewLexer(g)

	inComment := false
	for _, row := range d.rows {
		row.classes, row.openComment = d.lexer.Line(row.render, inComment)
		inComment = row.openComment
	}

	filetype := "none"
	if g != nil {
		filetype = g.Filetype
	}
	d.logger.Debug("document %s: grammar %s, %d rows reclassified", d.id, filetype, len(d.rows))
}

// Serialize joins the rows with '\n'. It returns the text and its length
// in bytes.
func (d *Document) Serialize() (string, int) {
	var sb strings.Builder
	for i, row := range d.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row.chars))
	}
	return sb.String(), sb.Len()
}

// Load appends lines as rows, in order, and marks the document clean.
// Lines must not contain line terminators.
func (d *Document) Load(lines []string) {
	for _, line := range lines {
		d.InsertRow(len(d.rows), line)
	}
	d.ClearDirty()
}

// Run is a maximal span of render columns sharing one highlight class.
type Run struct {
	Text  string
	Class highlight.Class
	Col   int
}

// Runs returns the same-class runs of row's render content that fall inside
// the render columns [from, from+width).
func (d *Document) Runs(row, from, width int) []Run {
	r := d.Row(row)
	if r == nil || width <= 0 {
		return nil
	}
	start := clamp(from, 0, len(r.render))
	end := clamp(from+width, start, len(r.render))
	if start == end {
		return nil
	}

	var runs []Run
	runStart := start
	for i := start + 1; i <= end; i++ {
		if i == end || r.classes[i] != r.classes[runStart] {
			runs = append(runs, Run{
				Text:  string(r.render[runStart:i]),
				Class: r.classes[runStart],
				Col:   runStart,
			})
			runStart = i
		}
	}
	return runs
}

// ClassesSnapshot returns a copy of row's classes, or nil if row is out of
// range.
func (d *Document) ClassesSnapshot(row int) []highlight.Class {
	r := d.Row(row)
	if r == nil {
		return nil
	}
	return r.Classes()
}

// OverlayClasses sets the class of n render columns of row starting at
// from. The span is clipped to the row.
func (d *Document) OverlayClasses(row, from, n int, c highlight.Class) {
	r := d.Row(row)
	if r == nil {
		return
	}
	start := clamp(from, 0, len(r.classes))
	end := clamp(from+n, start, len(r.classes))
	for i := start; i < end; i++ {
		r.classes[i] = c
	}
}

// RestoreClasses writes a snapshot taken by ClassesSnapshot back to row. It
// reports false, leaving the row alone, if the row no longer exists or its
// render length has changed.
func (d *Document) RestoreClasses(row int, classes []highlight.Class) bool {
	r := d.Row(row)
	if r == nil || len(classes) != len(r.classes) {
		return false
	}
	copy(r.classes, classes)
	return true
}

// checkInvariants verifies the structural invariants of the row table.
func (d *Document) checkInvariants() error {
	for i, row := range d.rows {
		if row.idx != i {
			return fmt.Errorf("row at slot %d has index %d", i, row.idx)
		}
		if len(row.render) != len(row.classes) {
			return fmt.Errorf("row %d: render length %d, classes length %d", i, len(row.render), len(row.classes))
		}
		if string(row.render) != string(Render(row.chars, d.tabStop)) {
			return fmt.Errorf("row %d: stale render", i)
		}
	}
	return nil
}
