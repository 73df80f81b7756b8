package mux

import "github.com/regenrek/taskpit/internal/input"

// Apply performs a routed action and runs the mode machine. It returns true
// when the action asks to quit.
func (s *State) Apply(a input.Action) bool {
	switch a.Kind {
	case input.ActionQuit:
		return true
	case input.ActionForward:
		if s.selected != "" {
			s.SendRawInputToInstance(s.selected, a.Bytes)
		}
	case input.ActionEnterFocus:
		if s.selected != "" {
			s.mode = input.ModeFocused
			s.MarkViewed(s.selected)
		}
	case input.ActionExitFocus:
		s.mode = input.ModeNormal
	case input.ActionEnterScroll:
		if s.selected != "" {
			s.mode = input.ModeScroll
		}
	case input.ActionExitScroll, input.ActionScrollBottom:
		s.ScrollToBottom()
		s.mode = input.ModeFocused
	case input.ActionScrollTop:
		s.ScrollToTop()
	case input.ActionScrollLines:
		if a.Lines > 0 {
			s.ScrollUp(a.Lines)
		} else if s.ScrollDown(-a.Lines) == 0 {
			s.mode = input.ModeFocused
		}
	case input.ActionNext:
		s.NextPane()
	case input.ActionPrev:
		s.PreviousPane()
	case input.ActionNavigate:
		s.NavigateDirection(a.Dir)
	case input.ActionResize:
		s.ResizeSelected(a.Dir)
	case input.ActionSwap:
		s.SwapWithNext()
	case input.ActionCreate:
		s.CreatePane(s.opts.DefaultRows, s.opts.DefaultCols)
	case input.ActionClose:
		s.ClosePane()
	case input.ActionRespawn:
		s.RespawnPane(s.selected)
	case input.ActionToggleZoom:
		s.ToggleZoom()
	case input.ActionEnterActivity:
		if s.selected != "" {
			s.mode = input.ModeActivity
			s.activityOffset = 0
		}
	case input.ActionExitActivity:
		s.MarkViewed(s.selected)
		s.activityOffset = 0
		s.mode = input.ModeNormal
	case input.ActionActivityLines:
		s.scrollActivity(a.Lines)
	case input.ActionActivityTop:
		s.activityOffset = 0
	}
	return false
}
