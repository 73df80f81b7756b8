package sessionstore

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TrimLinesByBytes keeps the newest lines that fit within maxBytes.
func TrimLinesByBytes(lines []string, maxBytes int64) []string {
	if maxBytes <= 0 || len(lines) == 0 {
		return lines
	}
	total := int64(0)
	start := len(lines)
	for i := len(lines) - 1; i >= 0; i-- {
		n := int64(len(lines[i]))
		if total+n > maxBytes {
			break
		}
		total += n
		start = i
	}
	return lines[start:]
}

// RenderPlainLines fits the tail of lines into a cols x rows viewport,
// padding with blank lines on top and spaces on the right.
func RenderPlainLines(cols, rows int, lines []string) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	out := make([]string, rows)
	offset := rows - len(lines)
	for i := range out {
		text := ""
		if i >= offset {
			text = lines[i-offset]
		}
		out[i] = fitWidth(text, cols)
	}
	return out
}

func fitWidth(text string, width int) string {
	w := runewidth.StringWidth(text)
	switch {
	case w == width:
		return text
	case w < width:
		return text + strings.Repeat(" ", width-w)
	default:
		return runewidth.Truncate(text, width, "")
	}
}
