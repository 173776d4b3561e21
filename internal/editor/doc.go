// Package editor ties a document, its cursor and viewport, the incremental
// search overlay and the status line prompt into one editing session.
//
// A Session is driven by HandleKey, one key.Event at a time, from a single
// goroutine. Rendering reads the session after calling Scroll.
package editor
