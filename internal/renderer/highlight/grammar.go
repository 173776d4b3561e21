package highlight

import (
	"path/filepath"
	"strings"
)

// Flags enable optional lexical rules of a grammar.
type Flags uint8

const (
	// HighlightNumbers enables the number rule.
	HighlightNumbers Flags = 1 << iota
	// HighlightStrings enables the string rule.
	HighlightStrings
)

// Has reports whether f contains flag.
func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// SecondaryMarker terminates keywords that belong to the secondary class.
const SecondaryMarker = '|'

// Grammar describes the lexical rules for one filetype.
// A Grammar is immutable once registered.
type Grammar struct {
	// Filetype is the name shown in the status bar.
	Filetype string

	// FileMatch holds filename patterns. A pattern starting with '.' must
	// equal the filename's extension; any other pattern matches as a
	// substring of the filename.
	FileMatch []string

	// Keywords are tried in order. A trailing SecondaryMarker selects
	// ClassKeyword2.
	Keywords []string

	SingleLineComment string
	BlockCommentStart string
	BlockCommentEnd   string

	Flags Flags
}

// Matches reports whether filename selects this grammar.
func (g *Grammar) Matches(filename string) bool {
	if filename == "" {
		return false
	}
	ext := filepath.Ext(filename)
	for _, pattern := range g.FileMatch {
		if pattern == "" {
			continue
		}
		if pattern[0] == '.' {
			if ext != "" && ext == pattern {
				return true
			}
			continue
		}
		if strings.Contains(filename, pattern) {
			return true
		}
	}
	return false
}

// keyword is a keyword with its marker already stripped.
type keyword struct {
	text  []rune
	class Class
}

func compileKeywords(words []string) []keyword {
	out := make([]keyword, 0, len(words))
	for _, w := range words {
		class := ClassKeyword1
		if strings.HasSuffix(w, string(SecondaryMarker)) {
			w = w[:len(w)-1]
			class = ClassKeyword2
		}
		if w == "" {
			continue
		}
		out = append(out, keyword{text: []rune(w), class: class})
	}
	return out
}

// CGrammar returns the built-in C/C++ grammar.
func CGrammar() *Grammar {
	return &Grammar{
		Filetype:  "c",
		FileMatch: []string{".c", ".h", ".cpp"},
		Keywords: []string{
			"switch", "if", "while", "for", "break", "continue", "return",
			"else", "struct", "union", "typedef", "static", "enum", "class",
			"case",
			"int|", "long|", "double|", "float|", "char|", "unsigned|",
			"signed|", "void|",
		},
		SingleLineComment: "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Flags:             HighlightNumbers | HighlightStrings,
	}
}

// GoGrammar returns the built-in Go grammar.
func GoGrammar() *Grammar {
	return &Grammar{
		Filetype:  "go",
		FileMatch: []string{".go"},
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if",
			"import", "interface", "map", "package", "range", "return",
			"select", "struct", "switch", "type", "var",
			"bool|", "byte|", "error|", "float32|", "float64|", "int|",
			"int8|", "int16|", "int32|", "int64|", "rune|", "string|",
			"uint|", "uint8|", "uint16|", "uint32|", "uint64|", "any|",
			"nil|", "true|", "false|",
		},
		SingleLineComment: "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Flags:             HighlightNumbers | HighlightStrings,
	}
}

// PythonGrammar returns the built-in Python grammar. Python has no block
// comment, so only the single-line rule applies.
func PythonGrammar() *Grammar {
	return &Grammar{
		Filetype:  "python",
		FileMatch: []string{".py", ".pyw", "SConstruct"},
		Keywords: []string{
			"and", "as", "assert", "break", "class", "continue", "def",
			"del", "elif", "else", "except", "finally", "for", "from",
			"global", "if", "import", "in", "is", "lambda", "nonlocal",
			"not", "or", "pass", "raise", "return", "try", "while", "with",
			"yield",
			"True|", "False|", "None|", "int|", "str|", "float|", "list|",
			"dict|", "set|", "tuple|",
		},
		SingleLineComment: "#",
		Flags:             HighlightNumbers | HighlightStrings,
	}
}
