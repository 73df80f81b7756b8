package mux

import (
	"testing"

	"github.com/regenrek/taskpit/internal/input"
	"github.com/regenrek/taskpit/internal/layout"
)

func TestApplyModeMachine(t *testing.T) {
	s, rec := newTestState(t)

	s.Apply(input.Action{Kind: input.ActionEnterFocus})
	if s.Mode() != input.ModeNormal {
		t.Fatalf("focus without panes should stay in normal mode")
	}

	s.Apply(input.Action{Kind: input.ActionCreate})
	id := s.Selected()
	f := rec.sessions[id]
	f.sbLen = 10

	steps := []struct {
		name   string
		action input.Action
		mode   input.Mode
		offset int
	}{
		{"focus", input.Action{Kind: input.ActionEnterFocus}, input.ModeFocused, 0},
		{"scroll", input.Action{Kind: input.ActionEnterScroll}, input.ModeScroll, 0},
		{"up", input.Action{Kind: input.ActionScrollLines, Lines: 5}, input.ModeScroll, 5},
		{"top", input.Action{Kind: input.ActionScrollTop}, input.ModeScroll, 10},
		{"down past bottom", input.Action{Kind: input.ActionScrollLines, Lines: -20}, input.ModeFocused, 0},
		{"scroll again", input.Action{Kind: input.ActionEnterScroll}, input.ModeScroll, 0},
		{"up again", input.Action{Kind: input.ActionScrollLines, Lines: 3}, input.ModeScroll, 3},
		{"exit scroll", input.Action{Kind: input.ActionExitScroll}, input.ModeFocused, 0},
		{"scroll for bottom", input.Action{Kind: input.ActionEnterScroll}, input.ModeScroll, 0},
		{"up for bottom", input.Action{Kind: input.ActionScrollLines, Lines: 2}, input.ModeScroll, 2},
		{"bottom", input.Action{Kind: input.ActionScrollBottom}, input.ModeFocused, 0},
		{"exit focus", input.Action{Kind: input.ActionExitFocus}, input.ModeNormal, 0},
	}
	for _, step := range steps {
		if s.Apply(step.action) {
			t.Fatalf("%s: unexpected quit", step.name)
		}
		if s.Mode() != step.mode {
			t.Fatalf("%s: mode = %s, want %s", step.name, s.Mode(), step.mode)
		}
		if f.offset != step.offset {
			t.Fatalf("%s: offset = %d, want %d", step.name, f.offset, step.offset)
		}
	}

	if !s.Apply(input.Action{Kind: input.ActionQuit}) {
		t.Fatalf("quit should report true")
	}
}

func TestApplyForwardWritesToSelected(t *testing.T) {
	s, rec := newTestState(t)
	s.Apply(input.Action{Kind: input.ActionForward, Bytes: []byte("x")})

	a := s.CreatePane(24, 80)
	b := s.CreatePane(24, 80)
	s.Apply(input.Action{Kind: input.ActionForward, Bytes: []byte("\x1b[A")})
	if rec.sessions[b].written.String() != "\x1b[A" || rec.sessions[a].written.Len() != 0 {
		t.Fatalf("forward went to the wrong pane")
	}
}

func TestApplyPaneManagement(t *testing.T) {
	s, _ := newTestState(t)
	s.Layout(layout.Rect{W: 120, H: 40})
	for i := 0; i < 3; i++ {
		s.Apply(input.Action{Kind: input.ActionCreate})
	}
	ids := s.PaneIDs()
	if len(ids) != 3 {
		t.Fatalf("ids = %v", ids)
	}

	s.Apply(input.Action{Kind: input.ActionNext})
	s.Apply(input.Action{Kind: input.ActionPrev})
	sel := s.Selected()

	s.Apply(input.Action{Kind: input.ActionToggleZoom})
	if s.Zoomed() != sel || len(s.Views()) != 1 || s.Views()[0].Rect != (layout.Rect{W: 120, H: 40}) {
		t.Fatalf("zoom: zoomed=%q views=%d", s.Zoomed(), len(s.Views()))
	}
	s.Apply(input.Action{Kind: input.ActionNext})
	if s.Zoomed() != s.Selected() {
		t.Fatalf("zoom should follow the selection")
	}
	s.Apply(input.Action{Kind: input.ActionToggleZoom})
	if s.Zoomed() != "" || len(s.Views()) != 3 {
		t.Fatalf("unzoom: zoomed=%q views=%d", s.Zoomed(), len(s.Views()))
	}

	before := s.PaneIDs()
	s.Apply(input.Action{Kind: input.ActionSwap})
	after := s.PaneIDs()
	if before[0] == after[0] && before[1] == after[1] && before[2] == after[2] {
		t.Fatalf("swap did not reorder panes: %v", after)
	}

	s.Apply(input.Action{Kind: input.ActionClose})
	if s.PaneCount() != 2 {
		t.Fatalf("close: count = %d", s.PaneCount())
	}
}

func TestResizeSelectedMovesSplit(t *testing.T) {
	s, _ := newTestState(t)
	s.Layout(layout.Rect{W: 100, H: 40})
	left := s.CreatePane(24, 80)
	s.CreatePane(24, 80)
	s.selectPane(left)

	if !s.ResizeSelected(layout.NavRight) {
		t.Fatalf("ResizeSelected failed")
	}
	r, _ := layout.AreaOf(s.Areas(), left)
	if r.W != 55 {
		t.Fatalf("left width = %d, want 55", r.W)
	}
	if s.FindPane(left).Cols != 53 {
		t.Fatalf("left pane cols = %d, want 53", s.FindPane(left).Cols)
	}
}

func TestViewsReflectSelectionAndFailure(t *testing.T) {
	s, rec := newTestState(t)
	s.Layout(layout.Rect{W: 100, H: 40})
	ok := s.CreatePane(24, 80)
	rec.fail = true
	bad := s.CreatePane(24, 80)
	s.SelectPaneByID(ok)

	views := s.Views()
	if len(views) != 2 {
		t.Fatalf("views = %d", len(views))
	}
	for _, v := range views {
		switch v.PaneID {
		case ok:
			if !v.Selected || !v.Focused || !v.HasSession || v.Grid.Rows != 38 {
				t.Fatalf("selected view = %+v", v)
			}
		case bad:
			if v.Selected || v.HasSession || v.Message == "" {
				t.Fatalf("failed view = %+v", v)
			}
		}
	}
}
