package vterm

import (
	"io"

	uv "github.com/charmbracelet/ultraviolet"
)

// fakeTerm understands printable ASCII, CR and LF. It is enough to drive
// scrollback capture without a real parser.
type fakeTerm struct {
	w, h  int
	x, y  int
	cells [][]rune
	alt   bool
}

func newFakeTerm(cols, rows int) *fakeTerm {
	f := &fakeTerm{}
	f.Resize(cols, rows)
	return f
}

func (f *fakeTerm) Write(p []byte) (int, error) {
	for _, b := range p {
		switch b {
		case '\r':
			f.x = 0
		case '\n':
			if f.y == f.h-1 {
				copy(f.cells, f.cells[1:])
				f.cells[f.h-1] = blankRunes(f.w)
			} else {
				f.y++
			}
		default:
			if f.x < f.w {
				f.cells[f.y][f.x] = rune(b)
				f.x++
			}
		}
	}
	return len(p), nil
}

func (f *fakeTerm) Read([]byte) (int, error) { return 0, io.EOF }
func (f *fakeTerm) Close() error             { return nil }

func (f *fakeTerm) Resize(width, height int) {
	f.w, f.h = width, height
	f.cells = make([][]rune, height)
	for y := range f.cells {
		f.cells[y] = blankRunes(width)
	}
	f.x, f.y = 0, 0
}

func (f *fakeTerm) CellAt(x, y int) *uv.Cell {
	if y < 0 || y >= f.h || x < 0 || x >= f.w {
		return nil
	}
	return &uv.Cell{Content: string(f.cells[y][x]), Width: 1}
}

func (f *fakeTerm) CursorPosition() uv.Position { return uv.Pos(f.x, f.y) }
func (f *fakeTerm) Width() int                  { return f.w }
func (f *fakeTerm) Height() int                 { return f.h }
func (f *fakeTerm) IsAltScreen() bool           { return f.alt }

func blankRunes(n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = ' '
	}
	return out
}
