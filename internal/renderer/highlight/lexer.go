package highlight

import (
	"strings"
	"unicode"
)

// separators is the fixed punctuation set that delimits keywords and numbers.
const separators = ",.()+-/*=~%<>[];"

// IsSeparator reports whether r delimits keywords and numbers.
func IsSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == 0 || strings.ContainsRune(separators, r)
}

// Lexer classifies rows for a single grammar. A nil *Lexer, or one built
// from a nil grammar, classifies everything as ClassNormal.
type Lexer struct {
	grammar  *Grammar
	keywords []keyword
	scs      []rune
	mcs      []rune
	mce      []rune
}

// NewLexer prepares a lexer for g.
func NewLexer(g *Grammar) *Lexer {
	if g == nil {
		return &Lexer{}
	}
	return &Lexer{
		grammar:  g,
		keywords: compileKeywords(g.Keywords),
		scs:      []rune(g.SingleLineComment),
		mcs:      []rune(g.BlockCommentStart),
		mce:      []rune(g.BlockCommentEnd),
	}
}

// Grammar returns the grammar the lexer was built from.
func (l *Lexer) Grammar() *Grammar {
	if l == nil {
		return nil
	}
	return l.grammar
}

// Line classifies one row of render content in a single left-to-right pass.
// inComment is the open-block-comment state carried from the previous row.
// It returns one class per rune and the open-block-comment state at the end
// of the row.
func (l *Lexer) Line(render []rune, inComment bool) ([]Class, bool) {
	n := len(render)
	classes := make([]Class, n)
	if l == nil || l.grammar == nil {
		return classes, false
	}

	flags := l.grammar.Flags
	blockComments := len(l.mcs) > 0 && len(l.mce) > 0

	prevSep := true
	var inString rune

	i := 0
	for i < n {
		c := render[i]
		prevClass := ClassNormal
		if i > 0 {
			prevClass = classes[i-1]
		}

		if len(l.scs) > 0 && inString == 0 && !inComment && hasPrefix(render[i:], l.scs) {
			fill(classes[i:], ClassComment)
			break
		}

		if blockComments && inString == 0 {
			if inComment {
				if hasPrefix(render[i:], l.mce) {
					fill(classes[i:i+len(l.mce)], ClassMLComment)
					i += len(l.mce)
					inComment = false
					prevSep = true
					continue
				}
				classes[i] = ClassMLComment
				i++
				continue
			}
			if hasPrefix(render[i:], l.mcs) {
				fill(classes[i:i+len(l.mcs)], ClassMLComment)
				i += len(l.mcs)
				inComment = true
				continue
			}
		}

		if flags.Has(HighlightStrings) {
			if inString != 0 {
				classes[i] = ClassString
				if c == '\\' && i+1 < n {
					classes[i+1] = ClassString
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				classes[i] = ClassString
				i++
				continue
			}
		}

		if flags.Has(HighlightNumbers) {
			if (isDigit(c) && (prevSep || prevClass == ClassNumber)) ||
				(c == '.' && prevClass == ClassNumber) {
				classes[i] = ClassNumber
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if kw, ok := l.keywordAt(render, i); ok {
				fill(classes[i:i+len(kw.text)], kw.class)
				i += len(kw.text)
				prevSep = false
				continue
			}
		}

		prevSep = IsSeparator(c)
		i++
	}

	return classes, inComment
}

// keywordAt returns the first keyword, in grammar order, that starts at i
// and is followed by a separator or the end of the row.
func (l *Lexer) keywordAt(render []rune, i int) (keyword, bool) {
	rest := render[i:]
	for _, kw := range l.keywords {
		if !hasPrefix(rest, kw.text) {
			continue
		}
		next := rune(0)
		if len(kw.text) < len(rest) {
			next = rest[len(kw.text)]
		}
		if IsSeparator(next) {
			return kw, true
		}
	}
	return keyword{}, false
}

func hasPrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}

func fill(classes []Class, c Class) {
	for i := range classes {
		classes[i] = c
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
