package search

import (
	"slices"
	"testing"

	"github.com/dshills/onree/internal/engine/cursor"
	"github.com/dshills/onree/internal/engine/document"
	"github.com/dshills/onree/internal/input/key"
	"github.com/dshills/onree/internal/renderer/highlight"
)

var (
	typed = key.NewRuneEvent('o')
	next  = key.NewSpecialEvent(key.KeyDown)
	prev  = key.NewSpecialEvent(key.KeyUp)
	enter = key.NewSpecialEvent(key.KeyEnter)
	esc   = key.NewSpecialEvent(key.KeyEscape)
)

func newDoc(opts []document.Option, lines ...string) *document.Document {
	d := document.New(opts...)
	d.SetFilename("search.c")
	d.Load(lines)
	return d
}

func TestUpdateMovesCursorToMatch(t *testing.T) {
	doc := newDoc([]document.Option{document.WithTabStop(4)}, "alpha", "beta", "a\tbfoo", "gamma")
	cur := cursor.Cursor{}
	vp := cursor.NewViewport(2, 40)
	o := New()

	if !o.Update(doc, &cur, &vp, "foo", typed) {
		t.Fatal("expected a match")
	}
	if got := doc.Row(2).RenderText(); got != "a   bfoo" {
		t.Fatalf("render = %q", got)
	}
	if cur.Y != 2 {
		t.Errorf("cursor Y = %d, want 2", cur.Y)
	}
	if want := doc.Row(2).RxToCx(5); cur.X != want || cur.X != 3 {
		t.Errorf("cursor X = %d, want %d", cur.X, want)
	}
	if vp.RowOff != 2 {
		t.Errorf("RowOff = %d, want 2", vp.RowOff)
	}
	if o.LastMatch() != 2 || !o.Holding() {
		t.Errorf("LastMatch = %d, Holding = %v", o.LastMatch(), o.Holding())
	}

	classes := doc.Row(2).Classes()
	for i := 5; i < 8; i++ {
		if classes[i] != highlight.ClassMatch {
			t.Errorf("col %d = %v, want match", i, classes[i])
		}
	}
	if classes[4] == highlight.ClassMatch {
		t.Error("column before the match should keep its class")
	}
}

func TestAdvanceRestoresPreviousRow(t *testing.T) {
	doc := newDoc(nil, "int x = 1; // x", "/* x", "x */ 42", "char *x;")
	before := make([][]highlight.Class, doc.NumRows())
	for i := range before {
		before[i] = doc.Row(i).Classes()
	}

	var cur cursor.Cursor
	vp := cursor.NewViewport(10, 80)
	o := New()

	o.Update(doc, &cur, &vp, "x", typed)
	rowA := o.LastMatch()
	o.Update(doc, &cur, &vp, "x", next)
	rowB := o.LastMatch()
	if rowA == rowB {
		t.Fatalf("expected to advance, stayed on row %d", rowA)
	}
	if !slices.Equal(doc.Row(rowA).Classes(), before[rowA]) {
		t.Errorf("row %d classes = %v, want %v", rowA, doc.Row(rowA).Classes(), before[rowA])
	}

	o.Update(doc, &cur, &vp, "x", esc)
	for i := range before {
		if !slices.Equal(doc.Row(i).Classes(), before[i]) {
			t.Errorf("row %d not restored after cancel", i)
		}
	}
	if o.Holding() {
		t.Error("no snapshot should be held after cancel")
	}
}

func TestUpdateWrapsAround(t *testing.T) {
	doc := newDoc(nil, "foo", "bar", "foo bar")
	var cur cursor.Cursor
	vp := cursor.NewViewport(10, 80)
	o := New()

	var rows []int
	o.Update(doc, &cur, &vp, "foo", typed)
	rows = append(rows, o.LastMatch())
	for i := 0; i < 3; i++ {
		o.Update(doc, &cur, &vp, "foo", next)
		rows = append(rows, o.LastMatch())
	}
	if want := []int{0, 2, 0, 2}; !slices.Equal(rows, want) {
		t.Errorf("forward rows = %v, want %v", rows, want)
	}

	rows = rows[:0]
	for i := 0; i < 3; i++ {
		o.Update(doc, &cur, &vp, "foo", prev)
		rows = append(rows, o.LastMatch())
	}
	if want := []int{0, 2, 0}; !slices.Equal(rows, want) {
		t.Errorf("backward rows = %v, want %v", rows, want)
	}
	if o.Direction() != -1 {
		t.Errorf("Direction = %d, want -1", o.Direction())
	}
}

func TestBackwardWithoutMatchSearchesForward(t *testing.T) {
	doc := newDoc(nil, "a", "foo", "foo")
	var cur cursor.Cursor
	vp := cursor.NewViewport(10, 80)
	o := New()

	o.Update(doc, &cur, &vp, "foo", prev)
	if o.LastMatch() != 1 || o.Direction() != 1 {
		t.Errorf("LastMatch = %d Direction = %d, want 1 and +1", o.LastMatch(), o.Direction())
	}
}

func TestTypingRestartsSearch(t *testing.T) {
	doc := newDoc(nil, "fo", "foo", "xx", "foo")
	var cur cursor.Cursor
	vp := cursor.NewViewport(10, 80)
	o := New()

	o.Update(doc, &cur, &vp, "fo", key.NewRuneEvent('o'))
	o.Update(doc, &cur, &vp, "fo", next)
	if o.LastMatch() != 1 {
		t.Fatalf("LastMatch = %d, want 1", o.LastMatch())
	}

	o.Update(doc, &cur, &vp, "foo", key.NewRuneEvent('o'))
	if o.LastMatch() != 1 {
		t.Errorf("typing should restart from the top: LastMatch = %d, want 1", o.LastMatch())
	}
}

func TestUpdateNoMatch(t *testing.T) {
	doc := newDoc(nil, "alpha", "beta")
	cur := cursor.Cursor{X: 2, Y: 1}
	vp := cursor.NewViewport(10, 80)
	o := New()

	for _, q := range []string{"zzz", ""} {
		if o.Update(doc, &cur, &vp, q, typed) {
			t.Errorf("Update(%q) found a match", q)
		}
	}
	if cur.X != 2 || cur.Y != 1 {
		t.Errorf("cursor moved to %v", cur)
	}
	if o.Holding() || o.LastMatch() != -1 {
		t.Error("no state should be held")
	}

	empty := document.New()
	if o.Update(empty, &cur, &vp, "a", typed) {
		t.Error("empty document should not match")
	}
}

func TestEnterKeepsPosition(t *testing.T) {
	doc := newDoc(nil, "one", "two target")
	var cur cursor.Cursor
	vp := cursor.NewViewport(10, 80)
	o := New()

	o.Update(doc, &cur, &vp, "target", typed)
	o.Update(doc, &cur, &vp, "target", enter)
	if cur.Y != 1 || cur.X != 4 {
		t.Errorf("cursor = %v, want 1:4", cur)
	}
	if o.LastMatch() != -1 || o.Holding() {
		t.Error("accept should reset the session")
	}
	for _, c := range doc.Row(1).Classes() {
		if c == highlight.ClassMatch {
			t.Fatal("match highlight left behind")
		}
	}
}

func TestResetRestores(t *testing.T) {
	doc := newDoc(nil, "needle")
	want := doc.Row(0).Classes()
	var cur cursor.Cursor
	vp := cursor.NewViewport(10, 80)
	o := New()

	o.Update(doc, &cur, &vp, "eed", typed)
	o.Reset(doc)
	if !slices.Equal(doc.Row(0).Classes(), want) {
		t.Error("Reset should restore highlight")
	}
	if o.Holding() || o.LastMatch() != -1 {
		t.Error("Reset should clear state")
	}
}
