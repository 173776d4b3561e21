package document

// updateRow recomputes the render content of row at and reclassifies it.
// It returns the number of rows reclassified.
func (d *Document) updateRow(at int) int {
	r := d.rows[at]
	r.render = Render(r.chars, r.tabStop)
	return d.updateSyntax(at)
}

// updateSyntax reclassifies row at, then each following row for as long as
// the open-comment flag of the row before it changed. It returns the number
// of rows reclassified.
func (d *Document) updateSyntax(at int) int {
	touched := 0
	for at < len(d.rows) {
		r := d.rows[at]
		classes, open := d.lexer.Line(r.render, d.openCommentBefore(at))
		changed := open != r.openComment
		r.classes = classes
		r.openComment = open
		touched++

		if !changed {
			break
		}
		at++
	}

	if touched > 1 {
		d.logger.Debug("document %s: comment state propagated over %d rows", d.id, touched)
	}
	return touched
}
