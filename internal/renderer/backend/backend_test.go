package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/onree/internal/input/key"
	"github.com/dshills/onree/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewStyledCell('X', core.NewStyle(core.ColorRed))
	b.SetCell(10, 5, cell)

	got := b.GetCell(10, 5)
	if !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	empty := b.GetCell(-1, 0)
	if !empty.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFillAndLine(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.Init()

	b.Fill(core.ScreenRect{Top: 1, Left: 2, Bottom: 2, Right: 5}, core.NewStyledCell('.', core.DefaultStyle()))
	if got := b.Line(1); got != "  ..." {
		t.Errorf("Line(1) = %q", got)
	}
	if got := b.Line(0); got != "" {
		t.Errorf("Line(0) = %q", got)
	}

	// Filling past the edges is clipped.
	b.Fill(core.ScreenRect{Top: -1, Left: -1, Bottom: 10, Right: 20}, core.NewStyledCell('#', core.DefaultStyle()))
	if got := b.Line(2); got != "##########" {
		t.Errorf("Line(2) = %q", got)
	}

	b.Clear()
	if got := b.Line(2); got != "" {
		t.Errorf("after Clear Line(2) = %q", got)
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.ShowCursor(3, 4)
	if x, y, visible := b.CursorPosition(); x != 3 || y != 4 || !visible {
		t.Errorf("CursorPosition = %d,%d,%v", x, y, visible)
	}
	b.HideCursor()
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.PostEvent(Event{Type: EventKey, Key: key.NewRuneEvent('a')})
	b.Resize(100, 30)

	if ev := b.PollEvent(); ev.Type != EventKey || ev.Key != key.NewRuneEvent('a') {
		t.Errorf("first event = %+v", ev)
	}
	if ev := b.PollEvent(); ev.Type != EventResize || ev.Width != 100 || ev.Height != 30 {
		t.Errorf("second event = %+v", ev)
	}

	b.Shutdown()
	if ev := b.PollEvent(); ev.Type != EventNone {
		t.Errorf("after Shutdown = %+v", ev)
	}
	b.Shutdown()
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want key.Event
		ok   bool
	}{
		{"rune", tcell.KeyRune, 'x', key.NewRuneEvent('x'), true},
		{"tab", tcell.KeyTab, 0, key.NewRuneEvent('\t'), true},
		{"enter", tcell.KeyEnter, 0, key.NewSpecialEvent(key.KeyEnter), true},
		{"escape", tcell.KeyEscape, 0, key.NewSpecialEvent(key.KeyEscape), true},
		{"del is backspace", tcell.KeyBackspace2, 0, key.NewSpecialEvent(key.KeyBackspace), true},
		{"ctrl-h", tcell.KeyBackspace, 0, key.Ctrl('h'), true},
		{"ctrl-q", tcell.KeyCtrlQ, 0, key.Ctrl('q'), true},
		{"ctrl-a", tcell.KeyCtrlA, 0, key.Ctrl('a'), true},
		{"page down", tcell.KeyPgDn, 0, key.NewSpecialEvent(key.KeyPageDown), true},
		{"arrow", tcell.KeyLeft, 0, key.NewSpecialEvent(key.KeyLeft), true},
		{"function key", tcell.KeyF5, 0, key.Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertKey(tt.key, tt.r)
			if got != tt.want || ok != tt.ok {
				t.Errorf("convertKey(%v) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTcellKeyRoundTrip(t *testing.T) {
	events := []key.Event{
		key.NewRuneEvent('z'),
		key.NewRuneEvent('\t'),
		key.Ctrl('s'),
		key.NewSpecialEvent(key.KeyEnter),
		key.NewSpecialEvent(key.KeyBackspace),
		key.NewSpecialEvent(key.KeyHome),
		key.NewSpecialEvent(key.KeyDown),
	}

	for _, ev := range events {
		k, r, _ := toTcellKey(ev)
		got, ok := convertKey(k, r)
		if !ok || got != ev {
			t.Errorf("round trip of %v = %v, %v", ev, got, ok)
		}
	}
}

func TestConvertEvent(t *testing.T) {
	if ev := convertEvent(tcell.NewEventResize(120, 40)); ev.Type != EventResize || ev.Width != 120 || ev.Height != 40 {
		t.Errorf("resize = %+v", ev)
	}
	if ev := convertEvent(tcell.NewEventInterrupt("reload")); ev.Type != EventInterrupt || ev.Data != "reload" {
		t.Errorf("interrupt = %+v", ev)
	}
	if ev := convertEvent(nil); ev.Type != EventNone {
		t.Errorf("nil = %+v", ev)
	}
}

func TestConvertStyle(t *testing.T) {
	style := core.NewStyle(core.ColorFromRGB(10, 20, 30)).WithBackground(core.ColorBlue).Bold().Reverse()
	got := convertStyle(style)

	fg, bg, attrs := got.Decompose()
	if fg != tcell.NewRGBColor(10, 20, 30) {
		t.Errorf("fg = %v", fg)
	}
	if bg != tcell.PaletteColor(4) {
		t.Errorf("bg = %v", bg)
	}
	if attrs&tcell.AttrBold == 0 || attrs&tcell.AttrReverse == 0 {
		t.Errorf("attrs = %v", attrs)
	}

	if convertStyle(core.DefaultStyle()) != tcell.StyleDefault {
		t.Error("default style should map to tcell.StyleDefault")
	}
}
