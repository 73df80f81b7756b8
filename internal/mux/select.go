package mux

import (
	"log/slog"
	"slices"

	"github.com/regenrek/taskpit/internal/input"
	"github.com/regenrek/taskpit/internal/layout"
)

// resizeStep is the ratio change applied per resize key press.
const resizeStep = 0.05

// SelectPaneByID selects and focuses the pane. Unknown ids leave the state
// unchanged.
func (s *State) SelectPaneByID(id string) bool {
	if s.panes[id] == nil || !layout.Contains(s.engine.Root, id) {
		return false
	}
	s.selectPane(id)
	s.mode = input.ModeFocused
	return true
}

func (s *State) selectPane(id string) {
	if s.selected == id {
		return
	}
	s.selected = id
	if s.engine.Zoomed != "" {
		s.engine.Zoomed = id
	}
	if s.mode == input.ModeScroll {
		s.mode = input.ModeFocused
	}
	s.MarkViewed(id)
}

// NextPane selects the following pane in tree order, wrapping around.
func (s *State) NextPane() { s.step(1) }

// PreviousPane selects the preceding pane in tree order, wrapping around.
func (s *State) PreviousPane() { s.step(-1) }

func (s *State) step(delta int) {
	ids := s.PaneIDs()
	if len(ids) == 0 {
		return
	}
	i := max(slices.Index(ids, s.selected), 0)
	n := len(ids)
	s.selectPane(ids[((i+delta)%n+n)%n])
}

// NavigateDirection selects the nearest pane in dir, judged by pane centres
// in the unzoomed layout.
func (s *State) NavigateDirection(dir layout.NavDirection) bool {
	if s.selected == "" {
		return false
	}
	areas := layout.ComputeAreas(s.container(), s.engine.Root)
	id, ok := layout.Neighbor(areas, s.selected, dir)
	if !ok {
		return false
	}
	s.selectPane(id)
	return true
}

// ClosePane closes the selected pane.
func (s *State) ClosePane() bool { return s.ClosePaneByID(s.selected) }

// ClosePaneByID removes the pane's leaf, collapsing its parent split, and
// ends its session. If it was selected, the pane before it in tree order
// (or the new first pane) is selected.
func (s *State) ClosePaneByID(id string) bool {
	p := s.panes[id]
	if p == nil {
		return false
	}
	before := s.PaneIDs()
	idx := slices.Index(before, id)
	if _, err := s.engine.Apply(layout.CloseOp{PaneID: id}); err != nil {
		slog.Debug("mux: close pane", slog.String("pane_id", id), slog.Any("err", err))
		return false
	}
	if p.session != nil {
		if err := p.session.Close(); err != nil {
			slog.Debug("mux: close session", slog.String("pane_id", id), slog.Any("err", err))
		}
		p.session = nil
	}
	delete(s.panes, id)

	if s.selected == id {
		after := s.PaneIDs()
		s.selected = ""
		if len(after) > 0 {
			s.selectPane(after[min(max(idx-1, 0), len(after)-1)])
		}
	}
	if s.selected == "" {
		s.mode = input.ModeNormal
	}
	if s.hasArea {
		s.Layout(s.lastArea)
	}
	return true
}

// ResizeSelected moves the selected pane's edge toward dir.
func (s *State) ResizeSelected(dir layout.NavDirection) bool {
	if s.selected == "" {
		return false
	}
	edge := map[layout.NavDirection]layout.ResizeEdge{
		layout.NavLeft:  layout.ResizeEdgeLeft,
		layout.NavRight: layout.ResizeEdgeRight,
		layout.NavUp:    layout.ResizeEdgeUp,
		layout.NavDown:  layout.ResizeEdgeDown,
	}[dir]
	res, err := s.engine.Apply(layout.ResizeOp{PaneID: s.selected, Edge: edge, Delta: resizeStep})
	if err != nil || !res.Changed {
		return false
	}
	if s.hasArea {
		s.Layout(s.lastArea)
	}
	return true
}

// SwapWithNext exchanges the selected pane with the next one in tree order.
// The selection follows the moved pane.
func (s *State) SwapWithNext() bool {
	ids := s.PaneIDs()
	i := slices.Index(ids, s.selected)
	if i < 0 || len(ids) < 2 {
		return false
	}
	other := ids[(i+1)%len(ids)]
	if _, err := s.engine.Apply(layout.SwapOp{PaneA: s.selected, PaneB: other}); err != nil {
		return false
	}
	if s.hasArea {
		s.Layout(s.lastArea)
	}
	return true
}

// ToggleZoom gives the selected pane the whole area, or restores the split
// layout.
func (s *State) ToggleZoom() bool {
	if s.selected == "" {
		return false
	}
	if _, err := s.engine.Apply(layout.ZoomOp{PaneID: s.selected, Toggle: true}); err != nil {
		return false
	}
	if s.hasArea {
		s.Layout(s.lastArea)
	}
	return true
}
