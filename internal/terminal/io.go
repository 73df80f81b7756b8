package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"
	"time"

	xpty "github.com/charmbracelet/x/xpty"

	"github.com/regenrek/taskpit/internal/limits"
	"github.com/regenrek/taskpit/internal/logging"
)

func (s *Session) start(ctx context.Context) {
	s.wg.Add(3)
	go s.readLoop()
	go s.replyLoop()
	go s.waitLoop(ctx)
}

// readLoop is the only reader of the pty. It blocks in Read and exits when
// the pty is closed.
func (s *Session) readLoop() {
	defer s.wg.Done()
	pty := s.currentPTY()
	if pty == nil {
		return
	}
	buf := make([]byte, limits.PTYReadBufferBytes)
	for {
		n, err := pty.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.queue.push(chunk)
		}
		if err != nil {
			return
		}
	}
}

// replyLoop forwards emulator replies (cursor reports, device attributes)
// back to the program. The emulator blocks on writes until they are read.
func (s *Session) replyLoop() {
	defer s.wg.Done()
	s.termMu.Lock()
	term := s.term
	s.termMu.Unlock()
	if term == nil {
		return
	}
	buf := make([]byte, 256)
	for {
		n, err := term.Read(buf)
		if n > 0 {
			if pty := s.currentPTY(); pty != nil {
				s.writeMu.Lock()
				_, _ = pty.Write(buf[:n])
				s.writeMu.Unlock()
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *Session) waitLoop(ctx context.Context) {
	defer s.wg.Done()
	s.procMu.Lock()
	cmd := s.cmd
	s.procMu.Unlock()
	if cmd == nil {
		return
	}
	err := xpty.WaitProcess(ctx, cmd)
	code := 0
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}
	s.exitCode.Store(int64(code))
	s.exited.Store(true)
	slog.Debug("terminal: process exited",
		slog.String("pane_id", s.id),
		slog.Int("exit_code", code),
		slog.Any("err", err),
	)
}

// WriteInput writes bytes to the program's input. Writing to a finished or
// closed session returns a *PaneClosedError.
func (s *Session) WriteInput(input []byte) error {
	if s == nil {
		return errors.New("terminal: nil session")
	}
	if len(input) == 0 {
		return nil
	}
	switch {
	case s.closed.Load():
		return &PaneClosedError{Reason: PaneClosedSessionClosed}
	case s.broken.Load():
		return &PaneClosedError{Reason: PaneClosedBroken}
	case s.exited.Load():
		return &PaneClosedError{Reason: PaneClosedProcessExited}
	case s.inputClosed.Load():
		return &PaneClosedError{Reason: PaneClosedPTYClosed}
	}
	pty := s.currentPTY()
	if pty == nil {
		return &PaneClosedError{Reason: PaneClosedPTYClosed}
	}

	s.writeMu.Lock()
	n, err := pty.Write(input)
	s.writeMu.Unlock()
	if err != nil {
		if isPTYClosedWriteError(err) {
			s.inputClosed.Store(true)
			return &PaneClosedError{Reason: PaneClosedPTYClosed, Cause: err}
		}
		return fmt.Errorf("terminal: pty write: %w", err)
	}
	if n != len(input) {
		return fmt.Errorf("terminal: partial write: wrote %d of %d", n, len(input))
	}
	if logging.IncludePayloads() {
		slog.Debug("terminal: input", slog.String("pane_id", s.id), logging.PayloadAttr("input", input))
	}
	return nil
}

func isPTYClosedWriteError(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, syscall.EIO),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, syscall.EBADF),
		errors.Is(err, os.ErrClosed),
		errors.Is(err, io.ErrClosedPipe):
		return true
	default:
		return false
	}
}

// PollOutput applies every chunk queued since the last call to the emulator,
// in arrival order, without blocking on the pty. It returns the number of
// bytes applied.
func (s *Session) PollOutput() int {
	if s == nil || s.broken.Load() {
		return 0
	}
	chunks := s.queue.drain()
	if len(chunks) == 0 {
		return 0
	}
	applied, err := s.apply(chunks)
	if err != nil {
		s.markBroken(err)
	}
	return applied
}

// apply feeds the emulator under termMu. A panic inside the emulator is
// turned into an error so one bad stream only takes down its own pane.
func (s *Session) apply(chunks [][]byte) (applied int, err error) {
	s.termMu.Lock()
	defer s.termMu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("terminal: emulator panic: %v", r)
		}
	}()
	if s.term == nil {
		return 0, nil
	}
	for _, chunk := range chunks {
		s.term.Process(chunk)
		applied += len(chunk)
	}
	return applied, nil
}

func (s *Session) markBroken(err error) {
	if s.broken.Swap(true) {
		return
	}
	logging.LogEvery(
		context.Background(),
		"terminal.emulator.panic."+s.id,
		5*time.Second,
		slog.LevelError,
		"terminal: emulator failed; closing pane session",
		slog.String("pane_id", s.id),
		slog.Any("err", err),
	)
	// The reader and reply goroutines must not outlive a broken emulator.
	go func() { _ = s.Close() }()
}

// PendingBytes reports how much output is queued but not yet applied.
func (s *Session) PendingBytes() int {
	if s == nil {
		return 0
	}
	return s.queue.pending()
}

// CheckExit reports true exactly once, on the first call after the process
// ended (or the emulator failed). The process handle is released then.
func (s *Session) CheckExit() bool {
	if s == nil {
		return false
	}
	if !s.exited.Load() && !s.broken.Load() {
		return false
	}
	if s.exitReported.Swap(true) {
		return false
	}
	s.procMu.Lock()
	s.cmd = nil
	s.procMu.Unlock()
	return true
}
