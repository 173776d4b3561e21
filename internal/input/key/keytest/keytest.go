// Package keytest builds key events from readable specifications for
// tests that drive the editor.
//
// Supported formats:
//   - Simple keys: "a", "1", "Space", "Enter", "Esc", "PgDn"
//   - Control letters: "Ctrl+S", "C-s", "<C-s>"
//   - Bracketed names: "<CR>", "<Esc>"
//
// ParseSequence splits a space-separated list of specifications.
package keytest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/onree/internal/input/key"
)

var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an event. Names are
// case-insensitive; any single character is a rune event.
func Parse(spec string) (key.Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return key.Event{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		spec = spec[1 : len(spec)-1]
	}

	for _, prefix := range []string{"ctrl+", "c-"} {
		if len(spec) > len(prefix) && strings.HasPrefix(strings.ToLower(spec), prefix) {
			return parseCtrl(spec[len(prefix):])
		}
	}

	switch lower := strings.ToLower(spec); lower {
	case "space":
		return key.NewRuneEvent(' '), nil
	case "tab":
		return key.NewRuneEvent('\t'), nil
	default:
		if k := keyFromName(lower); k != key.KeyNone {
			return key.NewSpecialEvent(k), nil
		}
	}

	runes := []rune(spec)
	if len(runes) == 1 {
		return key.NewRuneEvent(runes[0]), nil
	}

	return key.Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

func parseCtrl(letter string) (key.Event, error) {
	runes := []rune(letter)
	if len(runes) != 1 {
		return key.Event{}, fmt.Errorf("%w: ctrl needs one letter, got %q", ErrInvalidSpec, letter)
	}
	r := runes[0]
	if !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') {
		return key.Event{}, fmt.Errorf("%w: ctrl needs a letter, got %q", ErrInvalidSpec, letter)
	}
	return key.Ctrl(r), nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs.
func MustParse(spec string) key.Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// ParseSequence parses space-separated key specifications.
func ParseSequence(spec string) ([]key.Event, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}
	events := make([]key.Event, 0, len(fields))
	for _, f := range fields {
		e, err := Parse(f)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// Typed returns one rune event per character of s. It is the inverse of
// typing s on a keyboard.
func Typed(s string) []key.Event {
	events := make([]key.Event, 0, len(s))
	for _, r := range s {
		events = append(events, key.NewRuneEvent(r))
	}
	return events
}

// keyFromName returns the key for a lower-case name, or KeyNone.
func keyFromName(name string) key.Key {
	switch name {
	case "enter", "cr", "return":
		return key.KeyEnter
	case "esc", "escape":
		return key.KeyEscape
	case "bs", "backspace":
		return key.KeyBackspace
	case "del", "delete":
		return key.KeyDelete
	case "home":
		return key.KeyHome
	case "end":
		return key.KeyEnd
	case "pgup", "pageup":
		return key.KeyPageUp
	case "pgdn", "pagedown":
		return key.KeyPageDown
	case "up":
		return key.KeyUp
	case "down":
		return key.KeyDown
	case "left":
		return key.KeyLeft
	case "right":
		return key.KeyRight
	}
	return key.KeyNone
}
