package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/onree/internal/engine/cursor"
	"github.com/dshills/onree/internal/engine/document"
	"github.com/dshills/onree/internal/engine/search"
	"github.com/dshills/onree/internal/input/key"
)

// Version is shown on the welcome line.
const Version = "0.0.1"

// Defaults for session options.
const (
	DefaultQuitTimes      = 3
	DefaultMessageTimeout = 5 * time.Second
)

var (
	// ErrQuit is returned by HandleKey when the session should end.
	ErrQuit = errors.New("quit requested")

	// ErrNoSaveFunc is reported when saving without a save function.
	ErrNoSaveFunc = errors.New("no save function configured")
)

// SaveFunc writes doc to its filename and returns the number of bytes
// written.
type SaveFunc func(doc *document.Document) (int, error)

// Logger receives session traces.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}

// Session is the editing state for one document.
type Session struct {
	Doc    *document.Document
	Cursor cursor.Cursor
	View   cursor.Viewport

	search *search.Overlay
	prompt *prompt

	message     string
	messageTime time.Time
	messageTTL  time.Duration

	quitTimes int
	quitLeft  int

	save   SaveFunc
	now    func() time.Time
	logger Logger
}

// Option configures a Session.
type Option func(*Session)

// WithQuitTimes sets how many extra Ctrl-Q presses quit a dirty document.
func WithQuitTimes(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.quitTimes = n
		}
	}
}

// WithMessageTimeout sets how long status messages stay visible.
func WithMessageTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.messageTTL = d
		}
	}
}

// WithSaveFunc sets the function used by Ctrl-S.
func WithSaveFunc(fn SaveFunc) Option {
	return func(s *Session) {
		s.save = fn
	}
}

// WithClock replaces time.Now for message expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a session editing doc in a text area of rows x cols cells.
func New(doc *document.Document, rows, cols int, opts ...Option) *Session {
	s := &Session{
		Doc:        doc,
		View:       cursor.NewViewport(rows, cols),
		search:     search.New(),
		messageTTL: DefaultMessageTimeout,
		quitTimes:  DefaultQuitTimes,
		now:        time.Now,
		logger:     nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.quitLeft = s.quitTimes
	return s
}

// SetStatus sets the message bar text.
func (s *Session) SetStatus(format string, args ...any) {
	s.message = fmt.Sprintf(format, args...)
	s.messageTime = s.now()
}

// Message returns the message bar text, or "" once it has expired.
func (s *Session) Message() string {
	if s.message == "" || s.now().Sub(s.messageTime) >= s.messageTTL {
		return ""
	}
	return s.message
}

// Document returns the edited document.
func (s *Session) Document() *document.Document { return s.Doc }

// Position returns the cursor.
func (s *Session) Position() cursor.Cursor { return s.Cursor }

// Viewport returns the visible window.
func (s *Session) Viewport() cursor.Viewport { return s.View }

// Prompting reports whether a prompt is collecting input.
func (s *Session) Prompting() bool { return s.prompt != nil }

// Search returns the search overlay.
func (s *Session) Search() *search.Overlay { return s.search }

// Resize changes the text area size.
func (s *Session) Resize(rows, cols int) {
	s.View.Resize(rows, cols)
}

// Scroll updates the render column of the cursor and keeps it on screen.
func (s *Session) Scroll() {
	s.View.Scroll(s.Doc, &s.Cursor)
}

// HandleKey applies one key event. It returns ErrQuit when the session
// should end.
func (s *Session) HandleKey(ev key.Event) error {
	if s.prompt != nil {
		s.handlePrompt(ev)
		return nil
	}

	switch {
	case ev.Key == key.KeyEnter:
		s.insertNewline()

	case ev.IsCtrl('q'):
		if s.Doc.IsDirty() && s.quitLeft > 0 {
			s.SetStatus("WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit", s.quitLeft)
			s.quitLeft--
			return nil
		}
		s.logger.Info("quit: document %s", s.Doc.ID())
		return ErrQuit

	case ev.IsCtrl('s'):
		s.Save()

	case ev.Key == key.KeyHome:
		s.Cursor.Home()

	case ev.Key == key.KeyEnd:
		s.Cursor.End(s.Doc)

	case ev.IsCtrl('f'):
		s.Find()

	case ev.Key == key.KeyBackspace, ev.IsCtrl('h'), ev.Key == key.KeyDelete:
		if ev.Key == key.KeyDelete {
			s.Cursor.Move(s.Doc, key.KeyRight)
		}
		s.deleteChar()

	case ev.Key == key.KeyPageUp, ev.Key == key.KeyPageDown:
		s.Cursor.Page(s.Doc, &s.View, ev.Key)

	case ev.Key.IsArrowKey():
		s.Cursor.Move(s.Doc, ev.Key)

	case ev.IsCtrl('l'), ev.Key == key.KeyEscape:

	default:
		if ev.IsInsertable() {
			s.insertChar(ev.Rune)
		}
	}

	s.quitLeft = s.quitTimes
	return nil
}

func (s *Session) insertChar(r rune) {
	if s.Cursor.Y == s.Doc.NumRows() {
		s.Doc.InsertRow(s.Doc.NumRows(), "")
	}
	s.Doc.InsertChar(s.Cursor.Y, s.Cursor.X, r)
	s.Cursor.X++
}

func (s *Session) insertNewline() {
	if s.Cursor.X == 0 {
		s.Doc.InsertRow(s.Cursor.Y, "")
	} else {
		s.Doc.SplitRow(s.Cursor.Y, s.Cursor.X)
	}
	s.Cursor.Y++
	s.Cursor.X = 0
}

func (s *Session) deleteChar() {
	if s.Cursor.Y == s.Doc.NumRows() {
		return
	}
	if s.Cursor.X == 0 && s.Cursor.Y == 0 {
		return
	}

	if s.Cursor.X > 0 {
		s.Doc.DeleteChar(s.Cursor.Y, s.Cursor.X-1)
		s.Cursor.X--
		return
	}
	s.Cursor.X = s.Doc.MergeWithPrevious(s.Cursor.Y)
	s.Cursor.Y--
}

// Save writes the document, prompting for a filename first when it has
// none.
func (s *Session) Save() {
	if s.Doc.Filename() != "" {
		s.write()
		return
	}

	s.startPrompt("Save as: %s (ESC to cancel)", nil, func(input string, ok bool) {
		if !ok {
			s.SetStatus("Save Aborted")
			return
		}
		s.Doc.SetFilename(input)
		s.write()
	})
}

func (s *Session) write() {
	save := s.save
	if save == nil {
		save = func(*document.Document) (int, error) { return 0, ErrNoSaveFunc }
	}

	n, err := save(s.Doc)
	if err != nil {
		s.logger.Info("save %s failed: %v", s.Doc.Filename(), err)
		s.SetStatus("Cannot save! I/O error: %s", err)
		return
	}
	s.logger.Debug("saved %s: %d bytes", s.Doc.Filename(), n)
	s.SetStatus("%d bytes written to disk", n)
}

// Find starts an incremental search. Cancelling it puts the cursor and
// viewport back where they were.
func (s *Session) Find() {
	savedCursor := s.Cursor
	savedView := s.View

	s.startPrompt("Search: %s (ESC / Arrows / Enter)",
		func(query string, ev key.Event) {
			s.search.Update(s.Doc, &s.Cursor, &s.View, query, ev)
		},
		func(_ string, ok bool) {
			if !ok {
				s.Cursor = savedCursor
				s.View = savedView
			}
		})
}
