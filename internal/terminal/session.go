// Package terminal runs one shell per pane on a pseudo-terminal and feeds its
// output into a VT emulator.
package terminal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	xpty "github.com/charmbracelet/x/xpty"

	"github.com/regenrek/taskpit/internal/identity"
	"github.com/regenrek/taskpit/internal/limits"
	"github.com/regenrek/taskpit/internal/logging"
	"github.com/regenrek/taskpit/internal/runenv"
	"github.com/regenrek/taskpit/internal/vterm"
)

var (
	paneIDEnv   = runenv.PaneIDEnv
	termProgram = strings.ToUpper(identity.AppSlug)
)

// ptyDevice is the subset of xpty.Pty a Session drives.
type ptyDevice interface {
	io.ReadWriteCloser
	Resize(width, height int) error
	Start(cmd *exec.Cmd) error
}

// emulator is the screen model plus the reply stream the program expects
// back on its input.
type emulator interface {
	vterm.Emulator
	io.Reader
	Close() error
	ScrollbackOffset() int
	HistoryLines(maxLines int) []string
	AltScreen() bool
}

var (
	newPTY = func(cols, rows int) (ptyDevice, error) {
		return xpty.NewPty(cols, rows)
	}
	newEmulator = func(rows, cols, scrollback int) emulator {
		return vterm.New(rows, cols, scrollback)
	}
)

// Options describes how to start a pane process.
type Options struct {
	ID string

	// Command runs directly. Empty starts the user's shell.
	Command string
	Args    []string
	Dir     string
	Env     []string

	Rows int
	Cols int

	// ScrollbackLines follows limits.ScrollbackLines: 0 selects the default.
	ScrollbackLines int
}

// noCopy makes go vet flag accidental copies of a Session.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Session owns a pty, the process attached to it, one reader goroutine and
// the emulator the output is applied to. Sessions are used by pointer only.
type Session struct {
	_ noCopy

	id      string
	command string

	procMu sync.Mutex
	cmd    *exec.Cmd

	ptyMu   sync.Mutex
	pty     ptyDevice
	writeMu sync.Mutex

	termMu sync.Mutex // guards term, rows and cols
	term   emulator
	rows   int
	cols   int

	queue chunkQueue

	cancel context.CancelFunc
	wg     sync.WaitGroup

	closed       atomic.Bool
	exited       atomic.Bool
	exitReported atomic.Bool
	broken       atomic.Bool
	inputClosed  atomic.Bool
	exitCode     atomic.Int64
}

// Spawn starts opts.Command (or the user's shell) on a new pty. Failures are
// returned as *SpawnError.
func Spawn(opts Options) (*Session, error) {
	cols, rows := limits.Clamp(orDefault(opts.Cols, limits.DefaultCols), orDefault(opts.Rows, limits.DefaultRows))

	name := strings.TrimSpace(opts.Command)
	args := opts.Args
	if name == "" {
		name = detectShell()
		args = nil
	}
	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err != nil || !info.IsDir() {
			if err == nil {
				err = fmt.Errorf("%s is not a directory", opts.Dir)
			}
			return nil, &SpawnError{Stage: SpawnStageOptions, Command: name, Err: err}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	// #nosec G204 - panes run user-chosen commands.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Env = buildEnv(os.Environ(), opts.Env, opts.ID)
	setupPTYCommand(cmd)

	pty, err := newPTY(cols, rows)
	if err != nil {
		cancel()
		return nil, &SpawnError{Stage: SpawnStagePTY, Command: name, Err: err}
	}
	if err := pty.Start(cmd); err != nil {
		cancel()
		_ = pty.Close()
		return nil, &SpawnError{Stage: SpawnStageStart, Command: name, Err: err}
	}

	s := &Session{
		id:      opts.ID,
		command: name,
		cmd:     cmd,
		pty:     pty,
		term:    newEmulator(rows, cols, limits.ScrollbackLines(opts.ScrollbackLines)),
		rows:    rows,
		cols:    cols,
		cancel:  cancel,
	}
	s.start(ctx)
	slog.Debug("terminal: session started",
		slog.String("pane_id", opts.ID),
		slog.String("command", logging.SanitizeCommand(strings.Join(append([]string{name}, args...), " "))),
		slog.Int("pid", s.PID()),
		slog.Int("rows", rows),
		slog.Int("cols", cols),
	)
	return s, nil
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func (s *Session) ID() string { return s.id }

// Command returns the program the session started.
func (s *Session) Command() string { return s.command }

func (s *Session) PID() int {
	if s == nil {
		return 0
	}
	s.procMu.Lock()
	defer s.procMu.Unlock()
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Size returns the current (rows, cols).
func (s *Session) Size() (int, int) {
	s.termMu.Lock()
	defer s.termMu.Unlock()
	return s.rows, s.cols
}

// Exited reports whether the process has ended. Unlike CheckExit it can be
// asked repeatedly.
func (s *Session) Exited() bool { return s != nil && s.exited.Load() }

func (s *Session) ExitCode() int { return int(s.exitCode.Load()) }

// Dead reports whether the session will never accept input again.
func (s *Session) Dead() bool {
	return s == nil || s.closed.Load() || s.exited.Load() || s.broken.Load() || s.inputClosed.Load()
}

// Close stops the process and releases the pty and emulator. Closing the pty
// unblocks the reader goroutine. Safe to call more than once.
func (s *Session) Close() error {
	if s == nil || s.closed.Swap(true) {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.ptyMu.Lock()
	pty := s.pty
	s.pty = nil
	s.ptyMu.Unlock()
	var err error
	if pty != nil {
		err = pty.Close()
	}

	s.termMu.Lock()
	term := s.term
	s.termMu.Unlock()
	if term != nil {
		_ = term.Close()
	}

	s.wg.Wait()
	s.queue.drain()
	slog.Debug("terminal: session closed", slog.String("pane_id", s.id))
	return err
}

func (s *Session) currentPTY() ptyDevice {
	s.ptyMu.Lock()
	defer s.ptyMu.Unlock()
	return s.pty
}
