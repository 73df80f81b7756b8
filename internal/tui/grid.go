package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/regenrek/taskpit/internal/vterm"
)

type gridOptions struct {
	Profile colorprofile.Profile
	// Cursor is drawn in reverse video when ShowCursor is set.
	ShowCursor bool
	CursorRow  int
	CursorCol  int
}

// renderGrid turns the emulator grid into width x height ANSI lines. Rows
// and columns beyond the grid are blank; cells beyond width are cut.
func renderGrid(g vterm.Grid, width, height int, opts gridOptions) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	profile := normalizeProfile(opts.Profile)
	out := make([]string, height)
	for y := 0; y < height; y++ {
		var row []vterm.Cell
		if y < len(g.Cells) {
			row = g.Cells[y]
		}
		cursorCol := -1
		if opts.ShowCursor && y == opts.CursorRow {
			cursorCol = opts.CursorCol
		}
		out[y] = renderRow(row, width, cursorCol, profile)
	}
	return out
}

func normalizeProfile(profile colorprofile.Profile) colorprofile.Profile {
	switch profile {
	case colorprofile.TrueColor, colorprofile.ANSI256, colorprofile.ANSI, colorprofile.Ascii, colorprofile.NoTTY:
		return profile
	default:
		return colorprofile.TrueColor
	}
}

func renderRow(row []vterm.Cell, width, cursorCol int, profile colorprofile.Profile) string {
	var b strings.Builder
	b.Grow(width)
	var pen uv.Style
	col := 0
	for x := 0; x < len(row) && col < width; x++ {
		cell := row[x]
		w := cellWidth(cell)
		if w == 0 {
			continue
		}
		if col+w > width {
			break
		}
		style := styleOf(cell, profile)
		if col == cursorCol {
			style.Attrs |= uv.AttrReverse
		}
		applyStyle(&b, &pen, style)
		if cell.Content == "" {
			b.WriteByte(' ')
		} else {
			b.WriteString(cell.Content)
		}
		col += w
	}
	if col <= cursorCol && cursorCol < width {
		applyStyle(&b, &pen, uv.Style{})
		b.WriteString(strings.Repeat(" ", cursorCol-col))
		applyStyle(&b, &pen, uv.Style{Attrs: uv.AttrReverse})
		b.WriteByte(' ')
		col = cursorCol + 1
	}
	if !pen.IsZero() {
		b.WriteString(ansi.ResetStyle)
	}
	if col < width {
		b.WriteString(strings.Repeat(" ", width-col))
	}
	return b.String()
}

// cellWidth trusts the emulator's width and measures the content only when
// the emulator left it unset.
func cellWidth(c vterm.Cell) int {
	if c.Width > 0 {
		return c.Width
	}
	if c.Content == "" {
		return 0
	}
	return max(runewidth.StringWidth(c.Content), 1)
}

func styleOf(c vterm.Cell, profile colorprofile.Profile) uv.Style {
	var s uv.Style
	s.Fg = convertColor(profile, c.Fg)
	s.Bg = convertColor(profile, c.Bg)
	if c.Bold {
		s.Attrs |= uv.AttrBold
	}
	if c.Italic {
		s.Attrs |= uv.AttrItalic
	}
	if c.Reverse {
		s.Attrs |= uv.AttrReverse
	}
	if c.Underline {
		s.Underline = uv.UnderlineStyleSingle
	}
	return s
}

func convertColor(profile colorprofile.Profile, c color.Color) color.Color {
	if c == nil {
		return nil
	}
	return profile.Convert(c)
}

func applyStyle(b *strings.Builder, pen *uv.Style, next uv.Style) {
	if next.IsZero() {
		if !pen.IsZero() {
			b.WriteString(ansi.ResetStyle)
			*pen = uv.Style{}
		}
		return
	}
	if next.Equal(pen) {
		return
	}
	b.WriteString(next.Diff(pen))
	*pen = next
}

// fitLine pads or cuts an ANSI string to exactly width columns.
func fitLine(text string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(text)
	if w > width {
		text = ansi.Truncate(text, width, "")
		w = ansi.StringWidth(text)
	}
	if w < width {
		text += strings.Repeat(" ", width-w)
	}
	return text
}
