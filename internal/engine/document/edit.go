package document

// InsertRow inserts a row holding content at position at, clamped to
// [0, NumRows()].
func (d *Document) InsertRow(at int, content string) {
	at = clamp(at, 0, len(d.rows))

	row := &Row{
		idx:     at,
		chars:   []rune(content),
		tabStop: d.tabStop,
		// Rows below were classified against this state.
		openComment: d.openCommentBefore(at),
	}

	d.rows = append(d.rows, nil)
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = row
	d.renumber(at + 1)

	d.updateRow(at)
	d.dirty++
}

// DeleteRow removes row at. Out-of-range rows are ignored.
func (d *Document) DeleteRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}

	copy(d.rows[at:], d.rows[at+1:])
	d.rows[len(d.rows)-1] = nil
	d.rows = d.rows[:len(d.rows)-1]
	d.renumber(at)

	// The row that moved up now follows a different row.
	if at < len(d.rows) {
		d.updateSyntax(at)
	}
	d.dirty++
}

// SplitRow moves the content of row from col onward into a new row
// inserted below it. col is clamped to [0, len].
func (d *Document) SplitRow(row, col int) {
	r := d.Row(row)
	if r == nil {
		return
	}
	col = clamp(col, 0, len(r.chars))

	d.InsertRow(row+1, string(r.chars[col:]))
	r.chars = r.chars[:col:col]
	d.updateRow(row)
	d.dirty++
}

// MergeWithPrevious appends row to the row above it and deletes it. It
// returns the column in the previous row where the merged content starts,
// or -1 if nothing was merged. Row 0 and out-of-range rows are ignored.
func (d *Document) MergeWithPrevious(row int) int {
	if row <= 0 || row >= len(d.rows) {
		return -1
	}
	prev := d.rows[row-1]
	col := len(prev.chars)

	d.AppendString(row-1, string(d.rows[row].chars))
	d.DeleteRow(row)
	return col
}

// AppendString appends s to the end of row.
func (d *Document) AppendString(row int, s string) {
	r := d.Row(row)
	if r == nil {
		return
	}
	r.chars = append(r.chars, []rune(s)...)
	d.updateRow(row)
	d.dirty++
}

// InsertChar inserts ch into row at col, clamped to [0, len].
func (d *Document) InsertChar(row, col int, ch rune) {
	r := d.Row(row)
	if r == nil {
		return
	}
	col = max(0, min(col, len(r.chars)))

	r.chars = append(r.chars, 0)
	copy(r.chars[col+1:], r.chars[col:])
	r.chars[col] = ch
	d.updateRow(row)
	d.dirty++
}

// DeleteChar removes the character at col of row. A col outside [0, len)
// is ignored.
func (d *Document) DeleteChar(row, col int) {
	r := d.Row(row)
	if r == nil || col < 0 || col >= len(r.chars) {
		return
	}

	r.chars = append(r.chars[:col], r.chars[col+1:]...)
	d.updateRow(row)
	d.dirty++
}

func (d *Document) renumber(from int) {
	for i := from; i < len(d.rows); i++ {
		d.rows[i].idx = i
	}
}

func (d *Document) openCommentBefore(at int) bool {
	return at > 0 && d.rows[at-1].openComment
}
