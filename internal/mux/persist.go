package mux

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/regenrek/taskpit/internal/agent"
	"github.com/regenrek/taskpit/internal/input"
	"github.com/regenrek/taskpit/internal/layout"
)

// PaneMeta is the persisted form of a pane. Sessions are never saved.
type PaneMeta struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	WorkingDir   string    `json:"workingDir,omitempty"`
	Command      string    `json:"command,omitempty"`
	Rows         int       `json:"rows"`
	Cols         int       `json:"cols"`
	State        string    `json:"state"`
	TaskID       string    `json:"taskId,omitempty"`
	Provider     string    `json:"provider,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	LastViewedAt time.Time `json:"lastViewedAt,omitempty"`
	Snapshot     []string  `json:"snapshot,omitempty"`
}

// Metadata is everything needed to rebuild the pane tree after a restart.
type Metadata struct {
	Layout   layout.TreeSnapshot `json:"layout"`
	Selected string              `json:"selected,omitempty"`
	Panes    []PaneMeta          `json:"panes"`
}

// Metadata captures pane metadata, tree shape and up to snapshotLines of
// text per pane.
func (s *State) Metadata(snapshotLines int) Metadata {
	meta := Metadata{
		Layout:   layout.SnapshotEngine(s.engine),
		Selected: s.selected,
	}
	for _, id := range s.PaneIDs() {
		p := s.panes[id]
		if p == nil {
			continue
		}
		pm := PaneMeta{
			ID:           p.ID,
			Name:         p.Name,
			WorkingDir:   p.WorkingDir,
			Command:      p.Command,
			Rows:         p.Rows,
			Cols:         p.Cols,
			State:        p.State.String(),
			TaskID:       p.TaskID,
			Provider:     string(p.Provider),
			CreatedAt:    p.CreatedAt,
			LastViewedAt: p.LastViewedAt,
			Snapshot:     p.Snapshot,
		}
		if p.session != nil && snapshotLines > 0 {
			pm.Snapshot = p.session.SnapshotLines(snapshotLines)
		}
		meta.Panes = append(meta.Panes, pm)
	}
	return meta
}

// Restore replaces an empty multiplexer's panes with meta. Restored panes
// have no session and show their snapshot until respawned; with respawn set
// a fresh shell is started in each pane's directory.
func (s *State) Restore(meta Metadata, respawn bool) error {
	if s.engine.Root != nil {
		return errors.New("mux: restore into a non-empty multiplexer")
	}
	engine, err := layout.EngineFromSnapshot(meta.Layout)
	if err != nil {
		return fmt.Errorf("mux: restore layout: %w", err)
	}
	engine.Constraints = s.opts.Constraints

	byID := make(map[string]PaneMeta, len(meta.Panes))
	for _, pm := range meta.Panes {
		byID[pm.ID] = pm
	}
	panes := make(map[string]*Pane)
	for _, id := range layout.PaneIDs(engine.Root) {
		pm, ok := byID[id]
		if !ok {
			slog.Warn("mux: restored layout references unknown pane", slog.String("pane_id", id))
		}
		state, err := ParsePaneState(pm.State)
		if err != nil {
			state = StateIdle
		}
		// A process that was running is gone now.
		if state == StateRunning || state == StateNeedsPermissions {
			state = StateDone
		}
		p := &Pane{
			ID:           id,
			Name:         pm.Name,
			WorkingDir:   pm.WorkingDir,
			Command:      pm.Command,
			Rows:         pm.Rows,
			Cols:         pm.Cols,
			State:        state,
			TaskID:       pm.TaskID,
			Provider:     agent.Normalize(pm.Provider),
			CreatedAt:    pm.CreatedAt,
			LastViewedAt: pm.LastViewedAt,
			Snapshot:     pm.Snapshot,
		}
		p.record(s.now(), ActivityCreated, "restored")
		panes[id] = p
	}

	s.engine = engine
	s.panes = panes
	s.mode = input.ModeNormal
	s.selected = layout.FirstPaneID(engine.Root)
	if meta.Selected != "" && layout.Contains(engine.Root, meta.Selected) {
		s.selected = meta.Selected
	}
	if respawn {
		for _, id := range s.PaneIDs() {
			s.RespawnPane(id)
		}
	}
	if s.hasArea {
		s.Layout(s.lastArea)
	}
	return nil
}
