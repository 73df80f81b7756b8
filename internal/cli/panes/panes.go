// Package panes implements the commands that inspect the saved pane tree.
package panes

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/regenrek/taskpit/internal/cli/output"
	"github.com/regenrek/taskpit/internal/cli/root"
	"github.com/regenrek/taskpit/internal/mux"
	"github.com/regenrek/taskpit/internal/sessionstore"
	"github.com/regenrek/taskpit/internal/userpath"
)

// Register registers the panes handlers.
func Register(reg *root.Registry) {
	reg.Register("panes.list", runList)
	reg.Register("panes.clear", runClear)
}

func runList(ctx root.CommandContext) error {
	start := time.Now()
	store, err := sessionstore.DefaultStore()
	if err != nil {
		return err
	}
	doc, ok, err := store.Load(ctx.Context)
	if err != nil {
		return err
	}
	list := output.PaneList{Path: store.Path(), Panes: []output.PaneSummary{}}
	if ok {
		list.SavedAt = doc.SavedAt
		list.Panes = summarize(doc.State)
	}
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("panes.list", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, list)
	}
	if len(list.Panes) == 0 {
		_, err := fmt.Fprintln(ctx.Out, "no saved panes")
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, renderTable(list.Panes))
	return err
}

// summarize lists panes in tree order.
func summarize(meta mux.Metadata) []output.PaneSummary {
	out := make([]output.PaneSummary, 0, len(meta.Panes))
	for _, pm := range meta.Panes {
		title := pm.Name
		if title == "" {
			title = pm.Command
		}
		if title == "" {
			title = "shell"
		}
		out = append(out, output.PaneSummary{
			ID:         pm.ID,
			Title:      title,
			State:      pm.State,
			Selected:   pm.ID == meta.Selected,
			TaskID:     pm.TaskID,
			Provider:   pm.Provider,
			WorkingDir: pm.WorkingDir,
			Rows:       pm.Rows,
			Cols:       pm.Cols,
			CreatedAt:  pm.CreatedAt,
		})
	}
	return out
}

func renderTable(panes []output.PaneSummary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "TITLE", "STATE", "TASK", "DIR", "SIZE")
	for _, p := range panes {
		mark := ""
		if p.Selected {
			mark = "*"
		}
		id := p.ID
		if len(id) > 8 {
			id = id[:8]
		}
		t.Row(mark, id, p.Title, p.State, p.TaskID, userpath.ShortenUser(p.WorkingDir), fmt.Sprintf("%dx%d", p.Cols, p.Rows))
	}
	return t.String()
}

func runClear(ctx root.CommandContext) error {
	store, err := sessionstore.DefaultStore()
	if err != nil {
		return err
	}
	if err := store.Delete(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.Out, "cleared %s\n", store.Path())
	return err
}
