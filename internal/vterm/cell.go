// Package vterm adapts a VT emulator into the screen model panes render:
// a grid of styled cells plus a scrollback history and a view offset.
package vterm

import (
	"image/color"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
)

// Cell is one screen position. Content is empty for the trailing columns of
// a wide grapheme.
type Cell struct {
	Content   string
	Fg        color.Color
	Bg        color.Color
	Bold      bool
	Italic    bool
	Underline bool
	Reverse   bool
	Width     int
}

var blankCell = Cell{Content: " ", Width: 1}

func cellFromUV(c *uv.Cell) Cell {
	if c == nil {
		return blankCell
	}
	return Cell{
		Content:   c.Content,
		Fg:        c.Style.Fg,
		Bg:        c.Style.Bg,
		Bold:      c.Style.Attrs&uv.AttrBold != 0,
		Italic:    c.Style.Attrs&uv.AttrItalic != 0,
		Underline: c.Style.Underline != uv.UnderlineStyleNone,
		Reverse:   c.Style.Attrs&uv.AttrReverse != 0,
		Width:     c.Width,
	}
}

// SameStyle reports whether two cells can share one SGR run.
func (c Cell) SameStyle(o Cell) bool {
	return c.Bold == o.Bold &&
		c.Italic == o.Italic &&
		c.Underline == o.Underline &&
		c.Reverse == o.Reverse &&
		colorEqual(c.Fg, o.Fg) &&
		colorEqual(c.Bg, o.Bg)
}

func colorEqual(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// Grid is a row-major snapshot of visible cells.
type Grid struct {
	Rows  int
	Cols  int
	Cells [][]Cell
}

func newGrid(rows, cols int) Grid {
	g := Grid{Rows: rows, Cols: cols, Cells: make([][]Cell, rows)}
	for y := range g.Cells {
		g.Cells[y] = blankLine(cols)
	}
	return g
}

func blankLine(cols int) []Cell {
	line := make([]Cell, cols)
	for x := range line {
		line[x] = blankCell
	}
	return line
}

// Text returns the grid as plain text, one line per row with trailing
// spaces trimmed.
func (g Grid) Text() string {
	lines := g.Lines()
	return strings.Join(lines, "\n")
}

// Lines returns each row as plain text with trailing spaces trimmed.
func (g Grid) Lines() []string {
	out := make([]string, len(g.Cells))
	for y, row := range g.Cells {
		out[y] = lineText(row)
	}
	return out
}

func lineText(row []Cell) string {
	var b strings.Builder
	for _, c := range row {
		if c.Content == "" && c.Width == 0 {
			continue
		}
		b.WriteString(c.Content)
	}
	return strings.TrimRight(b.String(), " ")
}
