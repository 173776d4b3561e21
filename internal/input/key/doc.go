// Package key defines the closed set of input tokens the editor reacts to.
//
// A token is an Event: either a printable rune, a control-letter
// combination, or one of a fixed set of navigation and editing keys.
// Terminal backends translate their native events into Events; the editor
// never sees raw escape sequences.
//
// The keytest subpackage turns readable specifications such as "C-s" into Events
// for tests.
package key
