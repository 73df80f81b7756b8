package terminal

import "github.com/regenrek/taskpit/internal/vterm"

// Screen snapshots the visible grid at the current scrollback offset.
func (s *Session) Screen() vterm.Grid {
	if s == nil {
		return vterm.Grid{}
	}
	s.termMu.Lock()
	defer s.termMu.Unlock()
	if s.term == nil {
		return vterm.Grid{}
	}
	return s.term.Screen()
}

// Cursor returns the live cursor (row, col) and whether it should be shown:
// it is hidden while the view is scrolled back.
func (s *Session) Cursor() (row, col int, visible bool) {
	if s == nil {
		return 0, 0, false
	}
	s.termMu.Lock()
	defer s.termMu.Unlock()
	if s.term == nil {
		return 0, 0, false
	}
	row, col = s.term.CursorPosition()
	return row, col, s.term.ScrollbackOffset() == 0
}

// ScrollbackLen is the number of history lines above the live screen.
func (s *Session) ScrollbackLen() int {
	if s == nil {
		return 0
	}
	s.termMu.Lock()
	defer s.termMu.Unlock()
	if s.term == nil {
		return 0
	}
	return s.term.ScrollbackLen()
}

// SetScrollbackOffset moves the view n lines into history. The emulator
// clamps n to [0, ScrollbackLen].
func (s *Session) SetScrollbackOffset(n int) {
	if s == nil {
		return
	}
	s.termMu.Lock()
	defer s.termMu.Unlock()
	if s.term != nil {
		s.term.SetScrollbackOffset(n)
	}
}

func (s *Session) ScrollbackOffset() int {
	if s == nil {
		return 0
	}
	s.termMu.Lock()
	defer s.termMu.Unlock()
	if s.term == nil {
		return 0
	}
	return s.term.ScrollbackOffset()
}

// AltScreen reports whether a full-screen program is running.
func (s *Session) AltScreen() bool {
	if s == nil {
		return false
	}
	s.termMu.Lock()
	defer s.termMu.Unlock()
	return s.term != nil && s.term.AltScreen()
}

// SnapshotLines returns up to maxLines of plain text history for
// persistence.
func (s *Session) SnapshotLines(maxLines int) []string {
	if s == nil {
		return nil
	}
	s.termMu.Lock()
	defer s.termMu.Unlock()
	if s.term == nil {
		return nil
	}
	return s.term.HistoryLines(maxLines)
}
