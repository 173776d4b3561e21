package key

import (
	"fmt"
)

// Event is a single input token.
type Event struct {
	// Key identifies the token.
	Key Key

	// Rune is the character for KeyRune events and the lower-case letter
	// for KeyCtrl events.
	Rune rune
}

// NewRuneEvent creates an event for a character.
func NewRuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// NewSpecialEvent creates an event for a non-character key.
func NewSpecialEvent(k Key) Event {
	return Event{Key: k}
}

// Ctrl creates the event for Ctrl plus a letter.
func Ctrl(letter rune) Event {
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	return Event{Key: KeyCtrl, Rune: letter}
}

// IsRune returns true if this is a character event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsCtrl reports whether e is Ctrl plus letter.
func (e Event) IsCtrl(letter rune) bool {
	return e == Ctrl(letter)
}

// IsInsertable reports whether the event's rune can be inserted into text:
// a tab or any non-control character.
func (e Event) IsInsertable() bool {
	if !e.IsRune() {
		return false
	}
	return e.Rune == '\t' || (e.Rune >= ' ' && e.Rune != 0x7f)
}

// IsPrintableASCII reports whether the event is a printable ASCII
// character. Prompt input accepts only these.
func (e Event) IsPrintableASCII() bool {
	return e.IsRune() && e.Rune >= ' ' && e.Rune < 0x7f
}

// String returns the canonical specification of the event, suitable for
// Parse.
func (e Event) String() string {
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			return "Space"
		}
		return string(e.Rune)
	case KeyCtrl:
		return "C-" + string(e.Rune)
	default:
		return e.Key.String()
	}
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q}", e.Key.String(), e.Rune)
}
