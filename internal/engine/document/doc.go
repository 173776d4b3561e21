// Package document holds the in-memory text of the file being edited as an
// ordered sequence of rows.
//
// Every row keeps three representations in step:
//
//   - chars: the logical characters, as stored on disk
//   - render: chars with tabs expanded to the document tab stop
//   - classes: one highlight class per render column
//
// plus a flag recording whether the row ends inside an unclosed block
// comment. Every mutation recomputes the derived fields of the rows it
// touches, then walks forward while the open-comment flag keeps changing so
// that comment state stays consistent across rows.
//
// Index-taking operations never fail: out-of-range rows are ignored and
// columns are clamped to the row.
//
// A Document is not safe for concurrent use.
package document
