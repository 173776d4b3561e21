package editor

import (
	"github.com/dshills/onree/internal/input/key"
)

// prompt collects a line of input in the message bar.
type prompt struct {
	format string
	input  []rune

	// onKey runs after every key with the current input.
	onKey func(input string, ev key.Event)
	// onDone runs once; ok is false when the prompt was cancelled.
	onDone func(input string, ok bool)
}

func (s *Session) startPrompt(format string, onKey func(string, key.Event), onDone func(string, bool)) {
	s.prompt = &prompt{format: format, onKey: onKey, onDone: onDone}
	s.showPrompt()
}

func (s *Session) showPrompt() {
	s.SetStatus(s.prompt.format, string(s.prompt.input))
}

// PromptInput returns the text typed into the active prompt.
func (s *Session) PromptInput() string {
	if s.prompt == nil {
		return ""
	}
	return string(s.prompt.input)
}

func (s *Session) handlePrompt(ev key.Event) {
	p := s.prompt

	switch {
	case ev.Key == key.KeyBackspace, ev.Key == key.KeyDelete, ev.IsCtrl('h'):
		if n := len(p.input); n > 0 {
			p.input = p.input[:n-1]
		}

	case ev.Key == key.KeyEscape:
		s.finishPrompt(ev, false)
		return

	case ev.Key == key.KeyEnter:
		if len(p.input) > 0 {
			s.finishPrompt(ev, true)
			return
		}

	case ev.IsPrintableASCII():
		p.input = append(p.input, ev.Rune)
	}

	if p.onKey != nil {
		p.onKey(string(p.input), ev)
	}
	s.showPrompt()
}

func (s *Session) finishPrompt(ev key.Event, ok bool) {
	p := s.prompt
	s.prompt = nil
	s.SetStatus("")

	input := string(p.input)
	if p.onKey != nil {
		p.onKey(input, ev)
	}
	if !ok {
		input = ""
	}
	if p.onDone != nil {
		p.onDone(input, ok)
	}
}
