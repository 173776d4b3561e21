package document

// DefaultTabStop is the tab stop used when none is configured.
const DefaultTabStop = 8

func normTabStop(tabStop int) int {
	if tabStop <= 0 {
		return DefaultTabStop
	}
	return tabStop
}

// Render expands tabs in chars. A tab emits one space, then spaces until the
// render column is a multiple of tabStop. Every other rune is copied as is.
func Render(chars []rune, tabStop int) []rune {
	tabStop = normTabStop(tabStop)

	tabs := 0
	for _, r := range chars {
		if r == '\t' {
			tabs++
		}
	}

	out := make([]rune, 0, len(chars)+tabs*(tabStop-1))
	for _, r := range chars {
		if r != '\t' {
			out = append(out, r)
			continue
		}
		out = append(out, ' ')
		for len(out)%tabStop != 0 {
			out = append(out, ' ')
		}
	}
	return out
}

// CxToRx converts a logical column to a render column. cx is clamped to
// [0, len(chars)].
func CxToRx(chars []rune, cx, tabStop int) int {
	tabStop = normTabStop(tabStop)
	cx = clamp(cx, 0, len(chars))

	rx := 0
	for _, r := range chars[:cx] {
		if r == '\t' {
			rx += (tabStop - 1) - (rx % tabStop)
		}
		rx++
	}
	return rx
}

// RxToCx converts a render column to the logical column whose expansion
// covers it. A render column inside a tab's expansion maps to the tab.
// Columns past the end map to len(chars).
func RxToCx(chars []rune, rx, tabStop int) int {
	tabStop = normTabStop(tabStop)

	cur := 0
	for cx, r := range chars {
		if r == '\t' {
			cur += (tabStop - 1) - (cur % tabStop)
		}
		cur++
		if cur > rx {
			return cx
		}
	}
	return len(chars)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
