package mux

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/regenrek/taskpit/internal/terminal"
	"github.com/regenrek/taskpit/internal/vterm"
)

type fakeSession struct {
	opts     terminal.Options
	written  strings.Builder
	writeErr error
	resizes  [][2]int
	pending  int
	exited   bool
	reported bool
	exitCode int
	sbLen    int
	offset   int
	lines    []string
	closed   bool
}

func (f *fakeSession) WriteInput(b []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written.Write(b)
	return nil
}

func (f *fakeSession) Resize(rows, cols int) error {
	f.resizes = append(f.resizes, [2]int{rows, cols})
	return nil
}

func (f *fakeSession) PollOutput() int {
	n := f.pending
	f.pending = 0
	return n
}

func (f *fakeSession) CheckExit() bool {
	if !f.exited || f.reported {
		return false
	}
	f.reported = true
	return true
}

func (f *fakeSession) ExitCode() int              { return f.exitCode }
func (f *fakeSession) ScrollbackLen() int         { return f.sbLen }
func (f *fakeSession) SetScrollbackOffset(n int)  { f.offset = n }
func (f *fakeSession) Screen() vterm.Grid         { return vterm.Grid{Rows: f.opts.Rows, Cols: f.opts.Cols} }
func (f *fakeSession) Cursor() (int, int, bool)   { return 0, 0, f.offset == 0 }
func (f *fakeSession) SnapshotLines(int) []string { return f.lines }
func (f *fakeSession) PID() int                   { return 42 }

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

type spawnRecorder struct {
	sessions map[string]*fakeSession
	order    []string
	fail     bool
}

func (r *spawnRecorder) last() *fakeSession {
	if len(r.order) == 0 {
		return nil
	}
	return r.sessions[r.order[len(r.order)-1]]
}

// newTestState returns a State whose panes get fake sessions and
// sequential ids (p1, p2, ...), with no enter delay.
func newTestState(t *testing.T) (*State, *spawnRecorder) {
	t.Helper()
	rec := &spawnRecorder{sessions: map[string]*fakeSession{}}
	orig := spawnSession
	spawnSession = func(opts terminal.Options) (session, error) {
		if rec.fail {
			return nil, &terminal.SpawnError{Stage: terminal.SpawnStagePTY, Err: errors.New("out of ptys")}
		}
		f := &fakeSession{opts: opts}
		rec.sessions[opts.ID] = f
		rec.order = append(rec.order, opts.ID)
		return f, nil
	}
	t.Cleanup(func() { spawnSession = orig })

	opts := DefaultOptions()
	opts.EnterDelay = 0
	s := New(opts)
	next := 0
	s.newID = func() string {
		next++
		return fmt.Sprintf("p%d", next)
	}
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	s.sleep = func(time.Duration) {}
	return s, rec
}
