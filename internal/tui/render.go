package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/regenrek/taskpit/internal/input"
	"github.com/regenrek/taskpit/internal/mux"
	"github.com/regenrek/taskpit/internal/sessionstore"
	"github.com/regenrek/taskpit/internal/tui/theme"
)

var paneBorder = lipgloss.RoundedBorder()

// renderLayout composes every pane view into a width x height block.
func renderLayout(views []mux.PaneView, width, height int, mode input.Mode, profile colorprofile.Profile) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(views) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.PaneMessage.Render("No panes. Press c to open a shell."))
	}
	buf := cellbuf.NewBuffer(width, height)
	cellbuf.SetContent(buf, blankBlock(width, height))
	for _, v := range views {
		r := v.Rect
		if r.W <= 0 || r.H <= 0 {
			continue
		}
		lines := renderPane(v, mode, profile)
		cellbuf.SetContentRect(buf, strings.Join(lines, "\n"), cellbuf.Rect(r.X, r.Y, r.W, r.H))
	}
	return renderBuffer(buf, width, height)
}

func renderBuffer(buf *cellbuf.Buffer, width, height int) string {
	lines := make([]string, height)
	for y := 0; y < height; y++ {
		_, line := cellbuf.RenderLine(buf, y)
		lines[y] = fitLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func blankBlock(width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// renderPane draws a framed pane as exactly Rect.H lines of Rect.W columns.
func renderPane(v mux.PaneView, mode input.Mode, profile colorprofile.Profile) []string {
	w, h := v.Rect.W, v.Rect.H
	if w <= 0 || h <= 0 {
		return nil
	}
	if w < 2 || h < 2 {
		return strings.Split(blankBlock(w, h), "\n")
	}
	border := borderStyle(v, mode)
	iw, ih := w-2, h-2

	out := make([]string, 0, h)
	out = append(out, topBorder(v, iw, border))
	for _, line := range paneContent(v, iw, ih, profile) {
		out = append(out, border.Render(paneBorder.Left)+fitLine(line, iw)+border.Render(paneBorder.Right))
	}
	out = append(out, border.Render(paneBorder.BottomLeft+strings.Repeat(paneBorder.Bottom, iw)+paneBorder.BottomRight))
	return out
}

func borderStyle(v mux.PaneView, mode input.Mode) lipgloss.Style {
	switch {
	case !v.Selected:
		return theme.PaneBorder
	case mode == input.ModeScroll:
		return theme.PaneBorderScroll
	case mode == input.ModeFocused:
		return theme.PaneBorderFocused
	default:
		return theme.PaneBorderSelected
	}
}

// topBorder embeds the title, state badge and scroll position in the top
// edge, dropping pieces that do not fit.
func topBorder(v mux.PaneView, iw int, border lipgloss.Style) string {
	titleStyle := theme.PaneTitle
	if v.Selected {
		titleStyle = theme.PaneTitleSelected
	}
	left := ""
	if v.Unread {
		left += theme.UnreadMarker.Render("●") + " "
	}
	left += titleStyle.Render(v.Title)
	if badge := stateBadge(v.State); badge != "" {
		left += " " + badge
	}
	right := ""
	switch {
	case v.ScrollOffset > 0:
		right = theme.ScrollIndicator.Render(fmt.Sprintf("[%d/%d]", v.ScrollOffset, v.ScrollbackLen))
	case v.ScrollbackLen > 0:
		right = theme.ScrollIndicatorIdle.Render(fmt.Sprintf("[0/%d]", v.ScrollbackLen))
	}

	// One fill column on each side of the label when it fits.
	avail := iw - 2
	if avail <= 0 {
		return border.Render(paneBorder.TopLeft + strings.Repeat(paneBorder.Top, iw) + paneBorder.TopRight)
	}
	rw := lipgloss.Width(right)
	if rw+2 > avail {
		right, rw = "", 0
	}
	lw := lipgloss.Width(left)
	maxLeft := avail - rw
	if rw > 0 {
		maxLeft -= 2
	}
	if lw > maxLeft {
		left = ansi.Truncate(left, max(maxLeft, 0), "…")
		lw = lipgloss.Width(left)
	}
	fill := iw - 2 - lw - rw
	if rw > 0 {
		fill--
	}
	var b strings.Builder
	b.WriteString(border.Render(paneBorder.TopLeft + paneBorder.Top))
	b.WriteString(left)
	b.WriteString(border.Render(strings.Repeat(paneBorder.Top, max(fill, 0))))
	if rw > 0 {
		b.WriteString(right)
		b.WriteString(border.Render(paneBorder.Top))
	}
	b.WriteString(border.Render(paneBorder.Top + paneBorder.TopRight))
	return b.String()
}

func stateBadge(state mux.PaneState) string {
	switch state {
	case mux.StateRunning:
		return theme.StatusBadgeRunning.Render("running")
	case mux.StateNeedsPermissions:
		return theme.StatusBadgePermissions.Render("needs input")
	case mux.StateDone:
		return theme.StatusBadgeDone.Render("done")
	default:
		return ""
	}
}

// paneContent renders the live grid, or the saved text and a hint for panes
// without a session.
func paneContent(v mux.PaneView, iw, ih int, profile colorprofile.Profile) []string {
	if iw <= 0 || ih <= 0 {
		return make([]string, max(ih, 0))
	}
	if v.HasSession {
		return renderGrid(v.Grid, iw, ih, gridOptions{
			Profile:    profile,
			ShowCursor: v.Focused && v.CursorVisible && v.ScrollOffset == 0,
			CursorRow:  v.CursorRow,
			CursorCol:  v.CursorCol,
		})
	}
	lines := append([]string(nil), v.Snapshot...)
	hintStyle := theme.PaneMessage
	if v.Message != "" {
		hintStyle = theme.PaneError
		lines = append(lines, "", "failed to start: "+v.Message)
	} else {
		lines = append(lines, "", "no shell running, press r to start one")
	}
	plain := sessionstore.RenderPlainLines(iw, ih, lines)
	plain[len(plain)-1] = hintStyle.Render(plain[len(plain)-1])
	return plain
}
