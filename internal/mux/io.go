package mux

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/regenrek/taskpit/internal/logging"
)

// snapshotLines bounds the text kept from a finished pane.
const snapshotLines = 500

// PollPtyOutput drains every live session into its emulator and moves panes
// whose process ended to Done. It reports whether anything changed.
func (s *State) PollPtyOutput() bool {
	changed := false
	for _, id := range s.PaneIDs() {
		p := s.panes[id]
		if p == nil || p.session == nil {
			continue
		}
		if p.session.PollOutput() > 0 {
			changed = true
		}
		if p.session.CheckExit() {
			p.State = StateDone
			p.ExitCode = p.session.ExitCode()
			p.Snapshot = p.session.SnapshotLines(snapshotLines)
			p.record(s.now(), ActivityExited, "exit "+strconv.Itoa(p.ExitCode))
			slog.Info("mux: pane process exited", slog.String("pane_id", id), slog.Int("exit_code", p.ExitCode))
			changed = true
		}
	}
	return changed
}

// SendInputToInstance types text into the pane and presses enter. It
// reports whether the pane had a session and both writes succeeded.
func (s *State) SendInputToInstance(id, text string) bool {
	p := s.panes[id]
	if p == nil || p.session == nil {
		return false
	}
	if err := p.session.WriteInput([]byte(text)); err != nil {
		s.logWriteError(id, err)
		return false
	}
	// Some TUIs treat text and CR in one read as a paste.
	if s.opts.EnterDelay > 0 {
		s.sleep(s.opts.EnterDelay)
	}
	if err := p.session.WriteInput([]byte{'\r'}); err != nil {
		s.logWriteError(id, err)
		return false
	}
	p.record(s.now(), ActivityInput, logging.SanitizeCommand(truncate(text, 80)))
	return true
}

// SendRawInputToInstance writes b unchanged and jumps the pane back to the
// live tail.
func (s *State) SendRawInputToInstance(id string, b []byte) bool {
	p := s.panes[id]
	if p == nil {
		return false
	}
	s.setScroll(p, 0)
	if p.session == nil {
		return false
	}
	if err := p.session.WriteInput(b); err != nil {
		s.logWriteError(id, err)
		return false
	}
	return true
}

func (s *State) logWriteError(id string, err error) {
	logging.LogEvery(context.Background(), "mux.write."+id, 2*time.Second, slog.LevelDebug,
		"mux: pane write failed", slog.String("pane_id", id), slog.Any("err", err))
}

// ScrollUp moves the selected pane n lines back into history and returns
// the new offset.
func (s *State) ScrollUp(n int) int { return s.scrollBy(n) }

// ScrollDown moves the selected pane n lines toward the live tail.
func (s *State) ScrollDown(n int) int { return s.scrollBy(-n) }

func (s *State) ScrollToTop() int {
	p := s.panes[s.selected]
	if p == nil {
		return 0
	}
	return s.setScroll(p, scrollbackLen(p))
}

func (s *State) ScrollToBottom() int {
	p := s.panes[s.selected]
	if p == nil {
		return 0
	}
	return s.setScroll(p, 0)
}

func (s *State) scrollBy(delta int) int {
	p := s.panes[s.selected]
	if p == nil {
		return 0
	}
	return s.setScroll(p, p.ScrollOffset+delta)
}

// setScroll clamps offset to [0, scrollback length].
func (s *State) setScroll(p *Pane, offset int) int {
	offset = min(max(offset, 0), scrollbackLen(p))
	p.ScrollOffset = offset
	if p.session != nil {
		p.session.SetScrollbackOffset(offset)
	}
	return offset
}

func scrollbackLen(p *Pane) int {
	if p.session == nil {
		return 0
	}
	return p.session.ScrollbackLen()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
