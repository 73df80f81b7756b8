package vterm

import (
	"io"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/vt"
)

// Emulator is the terminal screen model a pane drives.
type Emulator interface {
	Process(data []byte)
	Screen() Grid
	Size() (rows, cols int)
	CursorPosition() (row, col int)
	SetSize(rows, cols int)
	ScrollbackLen() int
	SetScrollbackOffset(n int)
}

// backend is the subset of the x/vt emulator VT depends on.
type backend interface {
	io.Reader
	io.Writer
	Close() error
	Resize(width, height int)
	CellAt(x, y int) *uv.Cell
	CursorPosition() uv.Position
	Width() int
	Height() int
	IsAltScreen() bool
}

// VT wraps an x/vt emulator and keeps its own scrollback history. It is not
// safe for concurrent use; callers serialize access.
type VT struct {
	term   backend
	sb     *scrollback
	offset int

	// shadow parses the same bytes as the emulator; see capture.go.
	shadow  *ansi.Parser
	chunk   []byte
	written int
	pos     int
	margins margins
	prev    rune
	riOpen  bool
}

var _ Emulator = (*VT)(nil)

// New creates an emulator sized rows x cols with room for scrollbackLines of
// history.
func New(rows, cols, scrollbackLines int) *VT {
	return newVT(vt.NewEmulator(cols, rows), scrollbackLines)
}

func newVT(term backend, scrollbackLines int) *VT {
	v := &VT{term: term, sb: newScrollback(scrollbackLines)}
	v.shadow = v.newShadowParser()
	return v
}

// Process feeds program output to the emulator. Lines about to scroll off
// the top of the main screen are copied into scrollback first.
func (v *VT) Process(data []byte) {
	if v.sb.maxLines == 0 {
		_, _ = v.term.Write(data)
		return
	}
	v.chunk, v.written = data, 0
	for i, b := range data {
		v.pos = i
		v.shadow.Advance(b)
	}
	v.flushTo(len(data))
	v.chunk = nil
}

// pushHistory appends row to scrollback. A scrolled-back view stays
// anchored on the same content.
func (v *VT) pushHistory(row []Cell) {
	v.sb.push(row)
	if v.offset > 0 {
		v.offset = min(v.offset+1, v.sb.len())
	}
}

func (v *VT) liveRow(y int) []Cell {
	w := v.term.Width()
	row := make([]Cell, w)
	for x := 0; x < w; x++ {
		row[x] = cellFromUV(v.term.CellAt(x, y))
	}
	return row
}

// Screen returns the visible grid, shifted up into scrollback by the
// current offset.
func (v *VT) Screen() Grid {
	rows, cols := v.Size()
	g := newGrid(rows, cols)
	sbLen := v.sb.len()
	off := min(v.offset, sbLen)
	for y := 0; y < rows; y++ {
		idx := sbLen - off + y
		if idx < sbLen {
			copy(g.Cells[y], v.sb.line(idx))
			continue
		}
		copy(g.Cells[y], v.liveRow(idx-sbLen))
	}
	return g
}

func (v *VT) Size() (rows, cols int) {
	return v.term.Height(), v.term.Width()
}

func (v *VT) CursorPosition() (row, col int) {
	pos := v.term.CursorPosition()
	return pos.Y, pos.X
}

// SetSize resizes the emulator. Unchanged sizes are a no-op.
func (v *VT) SetSize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	if r, c := v.Size(); r == rows && c == cols {
		return
	}
	v.term.Resize(cols, rows)
	v.margins = margins{}
}

func (v *VT) ScrollbackLen() int { return v.sb.len() }

// SetScrollbackOffset sets how many lines above the live screen the view
// starts, clamped to [0, ScrollbackLen].
func (v *VT) SetScrollbackOffset(n int) {
	v.offset = max(0, min(n, v.sb.len()))
}

func (v *VT) ScrollbackOffset() int { return v.offset }

func (v *VT) ClearScrollback() {
	v.sb.clear()
	v.offset = 0
}

// AltScreen reports whether a full-screen program owns the display.
func (v *VT) AltScreen() bool { return v.term.IsAltScreen() }

// HistoryLines returns up to maxLines of plain text, scrollback followed by
// the live screen, with trailing blank lines removed.
func (v *VT) HistoryLines(maxLines int) []string {
	rows, _ := v.Size()
	out := make([]string, 0, v.sb.len()+rows)
	for i := 0; i < v.sb.len(); i++ {
		out = append(out, lineText(v.sb.line(i)))
	}
	for y := 0; y < rows; y++ {
		out = append(out, lineText(v.liveRow(y)))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if maxLines > 0 && len(out) > maxLines {
		out = out[len(out)-maxLines:]
	}
	return out
}

// Read returns emulator replies (device status, attributes) destined for the
// program's input. It blocks until a reply is available or Close is called.
func (v *VT) Read(p []byte) (int, error) {
	return v.term.Read(p)
}

func (v *VT) Close() error {
	return v.term.Close()
}
