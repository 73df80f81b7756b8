package terminal

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/regenrek/taskpit/internal/limits"
	"github.com/regenrek/taskpit/internal/logging"
)

// Resize changes the emulator and pty size. Unchanged sizes are a no-op.
// OS-level failures are logged and ignored; the next layout pass retries.
func (s *Session) Resize(rows, cols int) error {
	if s == nil {
		return errors.New("terminal: nil session")
	}
	if s.closed.Load() {
		return &PaneClosedError{Reason: PaneClosedSessionClosed}
	}
	cols, rows = limits.Clamp(cols, rows)

	s.termMu.Lock()
	if rows == s.rows && cols == s.cols {
		s.termMu.Unlock()
		return nil
	}
	s.rows, s.cols = rows, cols
	if s.term != nil {
		s.term.SetSize(rows, cols)
	}
	s.termMu.Unlock()

	if s.exited.Load() {
		return nil
	}
	pty := s.currentPTY()
	if pty == nil {
		return nil
	}
	if err := pty.Resize(cols, rows); err != nil {
		logging.LogEvery(
			context.Background(),
			"terminal.pty.resize",
			2*time.Second,
			slog.LevelDebug,
			"terminal: pty resize failed",
			slog.String("pane_id", s.id),
			slog.Any("err", err),
		)
	}
	s.syncSlaveSize(pty, rows, cols)
	signalWINCHForPTY(s.PID(), pty)
	return nil
}
