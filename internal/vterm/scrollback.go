package vterm

// scrollback is a ring buffer of lines that scrolled off the top of the
// live screen, oldest first.
type scrollback struct {
	lines    [][]Cell
	maxLines int
	head     int
	size     int
}

func newScrollback(maxLines int) *scrollback {
	if maxLines < 0 {
		maxLines = 0
	}
	return &scrollback{lines: make([][]Cell, maxLines), maxLines: maxLines}
}

func (sb *scrollback) push(line []Cell) {
	if sb.maxLines == 0 {
		return
	}
	cp := make([]Cell, len(line))
	copy(cp, line)
	idx := (sb.head + sb.size) % sb.maxLines
	sb.lines[idx] = cp
	if sb.size == sb.maxLines {
		sb.head = (sb.head + 1) % sb.maxLines
		return
	}
	sb.size++
}

func (sb *scrollback) len() int { return sb.size }

// line returns the i-th oldest line.
func (sb *scrollback) line(i int) []Cell {
	if i < 0 || i >= sb.size {
		return nil
	}
	return sb.lines[(sb.head+i)%sb.maxLines]
}

func (sb *scrollback) clear() {
	for i := range sb.lines {
		sb.lines[i] = nil
	}
	sb.head, sb.size = 0, 0
}
