package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/regenrek/taskpit/internal/mux"
	"github.com/regenrek/taskpit/internal/tui/theme"
)

const (
	activityWideThreshold = 100
	activityWidthSmall    = 70
	activityWidthWide     = 90
	activityHeightPercent = 80
	// border plus horizontal and vertical padding of theme.Dialog
	dialogChromeW  = 6
	dialogChromeH  = 4
	activityHeader = 4
)

// renderActivity draws the activity summary dialog for a body of
// width x height, or "" when it does not fit.
func renderActivity(sum mux.ActivitySummary, offset, width, height int) string {
	w := activityWidthSmall
	if width >= activityWideThreshold {
		w = activityWidthWide
	}
	w = min(w, width-2)
	h := min(height*activityHeightPercent/100, height-2)
	iw, ih := w-dialogChromeW, h-dialogChromeH
	if iw < 10 || ih <= activityHeader {
		return ""
	}

	lines := []string{
		theme.DialogTitle.Render("Activity: " + sum.Title),
		theme.DialogLabel.Render("Since: ") + theme.DialogValue.Render(sinceText(sum)),
		theme.DialogLabel.Render("Activity: ") + theme.DialogValue.Render(sum.Line()),
		"",
	}
	rows := ih - activityHeader
	if len(sum.Events) == 0 {
		lines = append(lines, theme.PaneMessage.Render("Nothing new since the pane was last viewed."))
	}
	offset = min(max(offset, 0), max(len(sum.Events)-1, 0))
	for _, ev := range sum.Events[offset:min(offset+rows, len(sum.Events))] {
		lines = append(lines, eventLine(ev))
	}
	for len(lines) < ih {
		lines = append(lines, "")
	}
	for i, line := range lines {
		lines[i] = fitLine(line, iw)
	}
	return theme.Dialog.Render(strings.Join(lines, "\n"))
}

func sinceText(sum mux.ActivitySummary) string {
	if sum.Since.IsZero() {
		return "never viewed"
	}
	return fmt.Sprintf("%s (%s ago)", sum.Since.Format(time.TimeOnly), elapsedText(sum.Elapsed))
}

func elapsedText(d time.Duration) string {
	d = max(d, 0).Truncate(time.Second)
	minutes, seconds := int(d/time.Minute), int(d%time.Minute/time.Second)
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

func eventLine(ev mux.ActivityEvent) string {
	detail := theme.DialogValue
	if ev.Kind == mux.ActivitySpawnFailed {
		detail = theme.PaneError
	}
	return theme.DialogLabel.Render(fmt.Sprintf("%s  %-13s ", ev.At.Format(time.TimeOnly), ev.Kind)) +
		detail.Render(ev.Detail)
}

// overlayCentered paints overlay over the middle of base.
func overlayCentered(base, overlay string, width, height int) string {
	ow, oh := lipgloss.Width(overlay), lipgloss.Height(overlay)
	if overlay == "" || ow > width || oh > height {
		return base
	}
	buf := cellbuf.NewBuffer(width, height)
	cellbuf.SetContent(buf, base)
	cellbuf.SetContentRect(buf, overlay, cellbuf.Rect((width-ow)/2, (height-oh)/2, ow, oh))
	return renderBuffer(buf, width, height)
}
