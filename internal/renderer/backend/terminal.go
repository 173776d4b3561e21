package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/onree/internal/input/key"
	"github.com/dshills/onree/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Init()
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	// tcell lays out wide runes itself.
	if cell.Width == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(cell.Style)
	width, height := t.screen.Size()

	for y := max(rect.Top, 0); y < rect.Bottom && y < height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < width; x++ {
			t.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

// PostEvent queues interrupts and key events. tcell delivers them back
// through PollEvent.
func (t *Terminal) PostEvent(event Event) {
	var ev tcell.Event
	switch event.Type {
	case EventInterrupt:
		ev = tcell.NewEventInterrupt(event.Data)
	case EventKey:
		k, r, mod := toTcellKey(event.Key)
		ev = tcell.NewEventKey(k, r, mod)
	default:
		return
	}
	_ = t.screen.PostEvent(ev) // best-effort; event queue may be full
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(convertColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(convertColor(s.Background))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}

	return style
}

func convertColor(c core.Color) tcell.Color {
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := convertKey(e.Key(), e.Rune())
		if !ok {
			return Event{Type: EventNone}
		}
		return Event{Type: EventKey, Key: k}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey maps a tcell key to an input token. Tab becomes a '\t' rune;
// ^H arrives as Ctrl-h and DEL as Backspace.
func convertKey(k tcell.Key, r rune) (key.Event, bool) {
	switch k {
	case tcell.KeyRune:
		return key.NewRuneEvent(r), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter), true
	case tcell.KeyTab:
		return key.NewRuneEvent('\t'), true
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape), true
	case tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete), true
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome), true
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd), true
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp), true
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown), true
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight), true
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.Ctrl('a' + rune(k-tcell.KeyCtrlA)), true
	}
	return key.Event{}, false
}

// toTcellKey is the inverse of convertKey.
func toTcellKey(ev key.Event) (tcell.Key, rune, tcell.ModMask) {
	switch ev.Key {
	case key.KeyRune:
		if ev.Rune == '\t' {
			return tcell.KeyTab, 0, tcell.ModNone
		}
		return tcell.KeyRune, ev.Rune, tcell.ModNone
	case key.KeyCtrl:
		return tcell.KeyCtrlA + tcell.Key(ev.Rune-'a'), ev.Rune - 'a' + 1, tcell.ModCtrl
	case key.KeyEnter:
		return tcell.KeyEnter, 0, tcell.ModNone
	case key.KeyEscape:
		return tcell.KeyEscape, 0, tcell.ModNone
	case key.KeyBackspace:
		return tcell.KeyBackspace2, 0, tcell.ModNone
	case key.KeyDelete:
		return tcell.KeyDelete, 0, tcell.ModNone
	case key.KeyHome:
		return tcell.KeyHome, 0, tcell.ModNone
	case key.KeyEnd:
		return tcell.KeyEnd, 0, tcell.ModNone
	case key.KeyPageUp:
		return tcell.KeyPgUp, 0, tcell.ModNone
	case key.KeyPageDown:
		return tcell.KeyPgDn, 0, tcell.ModNone
	case key.KeyUp:
		return tcell.KeyUp, 0, tcell.ModNone
	case key.KeyDown:
		return tcell.KeyDown, 0, tcell.ModNone
	case key.KeyLeft:
		return tcell.KeyLeft, 0, tcell.ModNone
	case key.KeyRight:
		return tcell.KeyRight, 0, tcell.ModNone
	default:
		return tcell.KeyNUL, 0, tcell.ModNone
	}
}
