// Package renderer draws an editor view to a backend.
//
// A frame has three parts: the text rows, a reverse-video status bar and a
// message bar. Text rows come from the document's highlight runs, clipped
// to the viewport's column offset and styled through the active theme.
// Rows past the end of the document are drawn as "~", and an empty
// document shows a centered welcome line a third of the way down.
//
// Any View can be drawn; editor.Session is the one the application uses.
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	_ = b.Init()
//	r := renderer.New(b, highlight.DefaultTheme())
//	r.SetWelcome("ONREE Editor --- Version 0.0.1")
//	session.Scroll()
//	r.Render(session)
package renderer
