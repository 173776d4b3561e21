// Package highlight provides the lexical classifier that assigns a
// highlight class to every render column of a row.
package highlight

// Class is the semantic highlight tag of one render column.
type Class uint8

// Highlight classes.
const (
	ClassNormal Class = iota
	ClassComment
	ClassMLComment
	ClassKeyword1
	ClassKeyword2
	ClassString
	ClassNumber
	ClassMatch

	classCount
)

var classNames = [...]string{
	ClassNormal:    "normal",
	ClassComment:   "comment",
	ClassMLComment: "mlcomment",
	ClassKeyword1:  "keyword1",
	ClassKeyword2:  "keyword2",
	ClassString:    "string",
	ClassNumber:    "number",
	ClassMatch:     "match",
}

// String returns the lower-case name of the class.
func (c Class) String() string {
	if c < classCount {
		return classNames[c]
	}
	return "unknown"
}

// IsComment reports whether c is a single- or multi-line comment class.
func (c Class) IsComment() bool {
	return c == ClassComment || c == ClassMLComment
}

// ClassFromString converts a class name back to a Class.
func ClassFromString(name string) (Class, bool) {
	for i, n := range classNames {
		if n == name {
			return Class(i), true
		}
	}
	return ClassNormal, false
}
