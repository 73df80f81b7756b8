//go:build unix

package terminal

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/regenrek/taskpit/internal/logging"
)

// slaveEnd is implemented by unix ptys that expose the child's side.
type slaveEnd interface {
	Slave() *os.File
}

// setWinsize is swapped in tests.
var setWinsize = func(f *os.File, rows, cols int) error {
	// rows and cols are clamped by limits.Clamp before they get here.
	ws := &unix.Winsize{Row: uint16(rows), Col: uint16(cols)} //nolint:gosec
	return unix.IoctlSetWinsize(int(f.Fd()), unix.TIOCSWINSZ, ws)
}

// syncSlaveSize writes the new size to the slave end as well, so a child
// that reads its tty size before SIGWINCH arrives already sees it.
func (s *Session) syncSlaveSize(pty ptyDevice, rows, cols int) {
	end, ok := pty.(slaveEnd)
	if !ok || rows <= 0 || cols <= 0 {
		return
	}
	f := end.Slave()
	if f == nil {
		return
	}
	if err := setWinsize(f, rows, cols); err != nil {
		logging.LogEvery(
			context.Background(),
			"terminal.pty.resize.slave",
			2*time.Second,
			slog.LevelDebug,
			"terminal: slave winsize failed",
			slog.String("pane_id", s.id),
			slog.Int("rows", rows),
			slog.Int("cols", cols),
			slog.Any("err", err),
		)
	}
}
