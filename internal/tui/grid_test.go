package tui

import (
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"

	"github.com/regenrek/taskpit/internal/vterm"
)

func gridOf(rows ...[]vterm.Cell) vterm.Grid {
	g := vterm.Grid{Rows: len(rows), Cells: rows}
	for _, r := range rows {
		g.Cols = max(g.Cols, len(r))
	}
	return g
}

func TestRenderGridPlainRow(t *testing.T) {
	g := gridOf([]vterm.Cell{{Content: "A", Width: 1}, {Content: "B", Width: 1}})
	out := renderGrid(g, 3, 2, gridOptions{Profile: colorprofile.TrueColor})
	if len(out) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(out))
	}
	if out[0] != "AB " {
		t.Fatalf("expected padded plain row, got %q", out[0])
	}
	if out[1] != "   " {
		t.Fatalf("expected blank row past grid, got %q", out[1])
	}
}

func TestRenderGridCursorReverse(t *testing.T) {
	g := gridOf([]vterm.Cell{{Content: "A", Width: 1}, {Content: "B", Width: 1}})
	out := renderGrid(g, 2, 1, gridOptions{Profile: colorprofile.TrueColor, ShowCursor: true})
	if !strings.Contains(out[0], "\x1b[") || !strings.Contains(out[0], ansi.ResetStyle) {
		t.Fatalf("expected cursor styling, got %q", out[0])
	}
	if got := ansi.Strip(out[0]); got != "AB" {
		t.Fatalf("expected content preserved, got %q", got)
	}
}

func TestRenderGridCursorPastRowEnd(t *testing.T) {
	g := gridOf([]vterm.Cell{{Content: "A", Width: 1}})
	out := renderGrid(g, 4, 1, gridOptions{ShowCursor: true, CursorCol: 2})
	if got := ansi.Strip(out[0]); got != "A   " {
		t.Fatalf("expected 4 columns, got %q", got)
	}
	if !strings.Contains(out[0], "\x1b[") {
		t.Fatalf("expected cursor cell to be styled, got %q", out[0])
	}
}

func TestRenderGridWideCells(t *testing.T) {
	g := gridOf([]vterm.Cell{
		{Content: "世", Width: 2},
		{Content: "", Width: 0},
		{Content: "x", Width: 1},
	})
	out := renderGrid(g, 3, 1, gridOptions{})
	if out[0] != "世x" {
		t.Fatalf("expected wide cell then x, got %q", out[0])
	}
	out = renderGrid(g, 1, 1, gridOptions{})
	if out[0] != " " {
		t.Fatalf("expected wide cell cut at width 1, got %q", out[0])
	}
}

func TestRenderGridColorsFollowProfile(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	g := gridOf([]vterm.Cell{{Content: "R", Width: 1, Fg: red}})
	colored := renderGrid(g, 1, 1, gridOptions{Profile: colorprofile.TrueColor})
	if !strings.Contains(colored[0], "\x1b[") {
		t.Fatalf("expected color sequence, got %q", colored[0])
	}
	plain := renderGrid(g, 1, 1, gridOptions{Profile: colorprofile.Ascii})
	if plain[0] != "R" {
		t.Fatalf("expected no color under ascii, got %q", plain[0])
	}
}

func TestRenderGridEmptySize(t *testing.T) {
	if out := renderGrid(vterm.Grid{}, 0, 3, gridOptions{}); out != nil {
		t.Fatalf("expected nil for zero width, got %v", out)
	}
}

func TestFitLine(t *testing.T) {
	if got := fitLine("abc", 5); got != "abc  " {
		t.Fatalf("pad: got %q", got)
	}
	if got := ansi.Strip(fitLine("\x1b[1mabcdef\x1b[0m", 3)); got != "abc" {
		t.Fatalf("cut: got %q", got)
	}
	if got := fitLine("abc", 0); got != "" {
		t.Fatalf("zero: got %q", got)
	}
}
