package mux

import (
	"log/slog"

	"github.com/regenrek/taskpit/internal/input"
	"github.com/regenrek/taskpit/internal/layout"
	"github.com/regenrek/taskpit/internal/limits"
	"github.com/regenrek/taskpit/internal/vterm"
)

// Layout recomputes pane rects for area and resizes every pane whose inner
// size changed. Panes whose inner size is below the pane minimum get 0x0 and
// keep their session at its previous size.
func (s *State) Layout(area layout.Rect) []layout.PaneArea {
	s.lastArea, s.hasArea = area, true
	s.areas = s.engine.Areas(area)
	for _, a := range s.areas {
		p := s.panes[a.PaneID]
		if p == nil {
			continue
		}
		inner := a.Rect.Inner()
		if !limits.Usable(inner.W, inner.H) {
			inner.W, inner.H = 0, 0
		}
		if p.Rows == inner.H && p.Cols == inner.W {
			continue
		}
		p.Rows, p.Cols = inner.H, inner.W
		if p.session == nil || inner.H == 0 || inner.W == 0 {
			continue
		}
		if err := p.session.Resize(inner.H, inner.W); err != nil {
			slog.Debug("mux: resize pane", slog.String("pane_id", a.PaneID), slog.Any("err", err))
		}
	}
	return s.areas
}

// Areas returns the rects from the last Layout call.
func (s *State) Areas() []layout.PaneArea { return s.areas }

// PaneView is what a renderer needs to paint one pane.
type PaneView struct {
	PaneID   string
	Title    string
	Rect     layout.Rect
	Selected bool
	Focused  bool
	State    PaneState
	Unread   bool

	Grid          vterm.Grid
	CursorRow     int
	CursorCol     int
	CursorVisible bool

	ScrollOffset  int
	ScrollbackLen int

	// HasSession is false for failed or restored panes; they show Message
	// or Snapshot instead of Grid.
	HasSession bool
	Message    string
	Snapshot   []string
}

// Views returns one view per visible pane from the last Layout call.
func (s *State) Views() []PaneView {
	out := make([]PaneView, 0, len(s.areas))
	for _, a := range s.areas {
		p := s.panes[a.PaneID]
		if p == nil {
			continue
		}
		v := PaneView{
			PaneID:       p.ID,
			Title:        p.Title(),
			Rect:         a.Rect,
			Selected:     p.ID == s.selected,
			State:        p.State,
			Unread:       p.Unread() && p.ID != s.selected,
			ScrollOffset: p.ScrollOffset,
			HasSession:   p.session != nil,
			Message:      p.SpawnError,
			Snapshot:     p.Snapshot,
		}
		v.Focused = v.Selected && (s.mode == input.ModeFocused || s.mode == input.ModeScroll)
		if p.session != nil {
			v.Grid = p.session.Screen()
			v.CursorRow, v.CursorCol, v.CursorVisible = p.session.Cursor()
			v.ScrollbackLen = p.session.ScrollbackLen()
		}
		out = append(out, v)
	}
	return out
}
