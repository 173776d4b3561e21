package document

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/dshills/onree/internal/renderer/highlight"
)

func newCDoc(lines ...string) *Document {
	d := New()
	d.SetFilename("test.c")
	d.Load(lines)
	return d
}

func texts(d *Document) []string {
	out := make([]string, d.NumRows())
	for i := range out {
		out[i] = d.Row(i).Text()
	}
	return out
}

// assertConsistent checks the structural invariants and that every row's
// classes match a from-scratch classification of the whole document.
func assertConsistent(t *testing.T, d *Document) {
	t.Helper()
	if err := d.checkInvariants(); err != nil {
		t.Fatal(err)
	}

	lx := highlight.NewLexer(d.Grammar())
	inComment := false
	for i := 0; i < d.NumRows(); i++ {
		row := d.Row(i)
		want, open := lx.Line(row.render, inComment)
		if !slices.Equal(row.classes, want) {
			t.Fatalf("row %d %q: classes %v, want %v", i, row.Text(), row.classes, want)
		}
		if row.openComment != open {
			t.Fatalf("row %d %q: open comment %v, want %v", i, row.Text(), row.openComment, open)
		}
		inComment = open
	}
}

func TestNew(t *testing.T) {
	d := New()
	if d.NumRows() != 0 {
		t.Errorf("NumRows = %d, want 0", d.NumRows())
	}
	if d.IsDirty() {
		t.Error("new document should be clean")
	}
	if d.Grammar() != nil || d.Filename() != "" {
		t.Error("new document should have no filename or grammar")
	}
	if d.TabStop() != DefaultTabStop {
		t.Errorf("TabStop = %d, want %d", d.TabStop(), DefaultTabStop)
	}
	if d.Row(0) != nil || d.Row(-1) != nil {
		t.Error("Row out of range should be nil")
	}
	if New().ID() == d.ID() {
		t.Error("documents should have distinct ids")
	}
}

func TestInsertRowClamps(t *testing.T) {
	d := New()
	d.InsertRow(5, "b")
	d.InsertRow(-5, "a")
	d.InsertRow(d.NumRows(), "c")
	d.InsertRow(1, "ab")

	want := []string{"a", "ab", "b", "c"}
	if got := texts(d); !slices.Equal(got, want) {
		t.Errorf("rows = %q, want %q", got, want)
	}
	if !d.IsDirty() {
		t.Error("document should be dirty")
	}
	assertConsistent(t, d)
}

func TestDeleteRow(t *testing.T) {
	d := New()
	d.Load([]string{"a", "b", "c"})

	d.DeleteRow(-1)
	d.DeleteRow(3)
	if d.IsDirty() {
		t.Error("out-of-range delete should not mark dirty")
	}

	d.DeleteRow(1)
	if got, want := texts(d), []string{"a", "c"}; !slices.Equal(got, want) {
		t.Errorf("rows = %q, want %q", got, want)
	}
	if d.Row(1).Index() != 1 {
		t.Errorf("Index = %d, want 1", d.Row(1).Index())
	}
	assertConsistent(t, d)
}

func TestInsertDeleteCharRoundTrip(t *testing.T) {
	d := newCDoc("int x = 1; /* c", "still */ y", "\tz")

	for row := 0; row < d.NumRows(); row++ {
		for col := 0; col <= d.Row(row).Len(); col++ {
			for _, ch := range []rune{'a', '\t', '"', '/', '*', '9'} {
				beforeText := texts(d)
				beforeClasses := make([][]highlight.Class, d.NumRows())
				for i := range beforeClasses {
					beforeClasses[i] = d.Row(i).Classes()
				}

				d.InsertChar(row, col, ch)
				assertConsistent(t, d)
				d.DeleteChar(row, col)
				assertConsistent(t, d)

				if got := texts(d); !slices.Equal(got, beforeText) {
					t.Fatalf("insert/delete %q at %d,%d: rows %q, want %q", ch, row, col, got, beforeText)
				}
				for i := range beforeClasses {
					if !slices.Equal(d.Row(i).Classes(), beforeClasses[i]) {
						t.Fatalf("insert/delete %q at %d,%d: row %d classes changed", ch, row, col, i)
					}
				}
			}
		}
	}
}

func TestInsertCharClamps(t *testing.T) {
	d := New()
	d.Load([]string{"ab"})

	d.InsertChar(0, 99, 'c')
	d.InsertChar(0, -1, 'd')
	d.InsertChar(5, 0, 'x')
	if got := d.Row(0).Text(); got != "dabc" {
		t.Errorf("row = %q, want %q", got, "dabc")
	}
	if d.NumRows() != 1 {
		t.Errorf("NumRows = %d, want 1", d.NumRows())
	}
}

func TestDeleteCharOutOfRange(t *testing.T) {
	d := New()
	d.Load([]string{"ab"})

	for _, col := range []int{-1, 2, 10} {
		d.DeleteChar(0, col)
	}
	d.DeleteChar(3, 0)
	if d.Row(0).Text() != "ab" || d.IsDirty() {
		t.Errorf("row = %q dirty = %v, want unchanged", d.Row(0).Text(), d.IsDirty())
	}
}

func TestSplitMergeRoundTrip(t *testing.T) {
	lines := []string{"/* open", "int\tx = \"s\";", "end */ 42"}

	for row := range lines {
		for col := 0; col <= len([]rune(lines[row])); col++ {
			t.Run(fmt.Sprintf("%d_%d", row, col), func(t *testing.T) {
				d := newCDoc(lines...)
				want := texts(d)

				d.SplitRow(row, col)
				assertConsistent(t, d)
				if d.NumRows() != len(lines)+1 {
					t.Fatalf("NumRows = %d after split", d.NumRows())
				}
				if got := d.Row(row).Text() + d.Row(row+1).Text(); got != lines[row] {
					t.Fatalf("split halves = %q, want %q", got, lines[row])
				}

				if got := d.MergeWithPrevious(row + 1); got != col {
					t.Errorf("MergeWithPrevious = %d, want %d", got, col)
				}
				assertConsistent(t, d)
				if got := texts(d); !slices.Equal(got, want) {
					t.Errorf("rows = %q, want %q", got, want)
				}
			})
		}
	}
}

func TestSplitRowClamps(t *testing.T) {
	d := New()
	d.Load([]string{"abc"})

	d.SplitRow(0, 99)
	d.SplitRow(0, -4)
	d.SplitRow(7, 0)

	want := []string{"", "abc", ""}
	if got := texts(d); !slices.Equal(got, want) {
		t.Errorf("rows = %q, want %q", got, want)
	}
}

func TestMergeWithPreviousNoOp(t *testing.T) {
	d := New()
	d.Load([]string{"a", "b"})

	for _, row := range []int{0, -1, 2} {
		if got := d.MergeWithPrevious(row); got != -1 {
			t.Errorf("MergeWithPrevious(%d) = %d, want -1", row, got)
		}
	}
	if d.NumRows() != 2 || d.IsDirty() {
		t.Error("document should be unchanged")
	}
}

func TestPropagationStopsAtUnchangedRow(t *testing.T) {
	d := newCDoc("x abc", "def */", "ghi")

	d.rows[0].chars = []rune("/* abc")
	if got := d.updateRow(0); got != 2 {
		t.Errorf("rows touched = %d, want 2", got)
	}
	assertConsistent(t, d)

	if !d.Row(0).OpenComment() || d.Row(1).OpenComment() {
		t.Error("row 0 should be open and row 1 closed")
	}
	for i, c := range d.Row(1).Classes() {
		if c != highlight.ClassMLComment {
			t.Errorf("row 1 col %d = %v, want mlcomment", i, c)
		}
	}
	if c := d.Row(2).Classes()[0]; c != highlight.ClassNormal {
		t.Errorf("row 2 col 0 = %v, want normal", c)
	}
}

func TestPropagationAcrossManyRows(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "int v;"
	}
	d := newCDoc(lines...)

	d.InsertChar(0, 0, '*')
	d.InsertChar(0, 0, '/')
	for i := 0; i < d.NumRows(); i++ {
		if !d.Row(i).OpenComment() {
			t.Fatalf("row %d should be inside the comment", i)
		}
	}

	d.DeleteChar(0, 0)
	assertConsistent(t, d)
	if d.Row(d.NumRows() - 1).OpenComment() {
		t.Error("comment should be closed everywhere")
	}
}

func TestInsertRowInsideComment(t *testing.T) {
	d := newCDoc("/* a", "b */ int", "int")

	d.InsertRow(1, "x */")
	assertConsistent(t, d)
	if c := d.Row(2).Classes()[0]; c != highlight.ClassNormal {
		t.Errorf("row after closing row: col 0 = %v, want normal", c)
	}

	d.DeleteRow(1)
	assertConsistent(t, d)
}

func TestRandomEditsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("ab1 \t\"'/*\\.int")

	d := newCDoc("int main() {", "\t/* note", "\t*/ return 0;", "}")
	for step := 0; step < 2000; step++ {
		n := d.NumRows()
		row := rng.Intn(n + 1)
		col := rng.Intn(12) - 1
		switch rng.Intn(6) {
		case 0:
			d.InsertChar(row, col, alphabet[rng.Intn(len(alphabet))])
		case 1:
			d.DeleteChar(row, col)
		case 2:
			d.SplitRow(row, col)
		case 3:
			d.MergeWithPrevious(row)
		case 4:
			d.InsertRow(row, string(alphabet[rng.Intn(len(alphabet))]))
		case 5:
			if n > 1 {
				d.DeleteRow(row)
			}
		}
		if err := d.checkInvariants(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}
	assertConsistent(t, d)
}

func TestSetFilenameReclassifies(t *testing.T) {
	d := New()
	d.Load([]string{"int x; // c"})

	for _, c := range d.Row(0).Classes() {
		if c != highlight.ClassNormal {
			t.Fatal("rows without a grammar should be normal")
		}
	}

	d.SetFilename("main.c")
	if d.Grammar() == nil || d.Grammar().Filetype != "c" {
		t.Fatalf("Grammar = %v, want c", d.Grammar())
	}
	if c := d.Row(0).Classes()[0]; c != highlight.ClassKeyword2 {
		t.Errorf("col 0 = %v, want keyword2", c)
	}

	d.SetFilename("notes.txt")
	if d.Grammar() != nil {
		t.Error("unknown extension should clear the grammar")
	}
	assertConsistent(t, d)
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		lines []string
		want  string
	}{
		{nil, ""},
		{[]string{""}, ""},
		{[]string{"a", "b"}, "a\nb"},
		{[]string{"héllo", "", "\tx"}, "héllo\n\n\tx"},
	}

	for _, tt := range tests {
		d := New()
		d.Load(tt.lines)
		text, n := d.Serialize()
		if text != tt.want {
			t.Errorf("Serialize(%q) = %q, want %q", tt.lines, text, tt.want)
		}
		if n != len(tt.want) {
			t.Errorf("Serialize(%q) length = %d, want %d", tt.lines, n, len(tt.want))
		}
	}
}

func TestLoadClearsDirty(t *testing.T) {
	d := New()
	d.InsertRow(0, "x")
	d.Load([]string{"a", "b"})

	if d.IsDirty() {
		t.Error("Load should clear dirty")
	}
	if got := strings.Join(texts(d), ","); got != "x,a,b" {
		t.Errorf("rows = %q", got)
	}
}

func TestRuns(t *testing.T) {
	d := newCDoc("int x = 42; // hi")

	runs := d.Runs(0, 0, 100)
	var sb strings.Builder
	for i, r := range runs {
		sb.WriteString(r.Text)
		if i > 0 && runs[i-1].Class == r.Class {
			t.Errorf("runs %d and %d share class %v", i-1, i, r.Class)
		}
	}
	if sb.String() != "int x = 42; // hi" {
		t.Errorf("joined runs = %q", sb.String())
	}
	if runs[0].Text != "int" || runs[0].Class != highlight.ClassKeyword2 || runs[0].Col != 0 {
		t.Errorf("runs[0] = %+v", runs[0])
	}

	window := d.Runs(0, 2, 5)
	want := []Run{
		{Text: "t", Class: highlight.ClassKeyword2, Col: 2},
		{Text: " x =", Class: highlight.ClassNormal, Col: 3},
	}
	if !slices.Equal(window, want) {
		t.Errorf("Runs(0, 2, 5) = %+v, want %+v", window, want)
	}

	if d.Runs(0, 50, 10) != nil || d.Runs(3, 0, 10) != nil || d.Runs(0, 0, 0) != nil {
		t.Error("empty windows should return nil")
	}
}

func TestClassOverlayRestore(t *testing.T) {
	d := newCDoc("int abc;")
	snap := d.ClassesSnapshot(0)

	d.OverlayClasses(0, 4, 10, highlight.ClassMatch)
	classes := d.Row(0).Classes()
	for i := 4; i < len(classes); i++ {
		if classes[i] != highlight.ClassMatch {
			t.Errorf("col %d = %v, want match", i, classes[i])
		}
	}

	if !d.RestoreClasses(0, snap) {
		t.Fatal("RestoreClasses failed")
	}
	if !slices.Equal(d.Row(0).Classes(), snap) {
		t.Error("classes not restored")
	}

	if d.RestoreClasses(0, snap[:2]) {
		t.Error("length mismatch should be rejected")
	}
	if d.RestoreClasses(4, snap) || d.ClassesSnapshot(4) != nil {
		t.Error("out-of-range row should be rejected")
	}
}

type recordLogger struct{ lines []string }

func (l *recordLogger) Debug(msg string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(msg, args...))
}

func TestOptions(t *testing.T) {
	reg := highlight.NewRegistry()
	log := &recordLogger{}
	d := New(WithTabStop(4), WithRegistry(reg), WithLogger(log), WithTabStop(-1))

	if d.TabStop() != 4 {
		t.Errorf("TabStop = %d, want 4", d.TabStop())
	}
	d.Load([]string{"\tx"})
	if got := d.Row(0).RenderText(); got != "    x" {
		t.Errorf("render = %q", got)
	}
	if got := d.Row(0).CxToRx(1); got != 4 {
		t.Errorf("CxToRx(1) = %d, want 4", got)
	}

	d.SetFilename("main.c")
	if d.Grammar() != nil {
		t.Error("empty registry should select no grammar")
	}
	if len(log.lines) == 0 {
		t.Error("expected a debug trace from SetFilename")
	}
}
