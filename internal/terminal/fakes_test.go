package terminal

import (
	"bytes"
	"io"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/regenrek/taskpit/internal/vterm"
)

type fakePTY struct {
	out *io.PipeReader
	in  *io.PipeWriter // test side: program output

	mu      sync.Mutex
	written bytes.Buffer
	resizes int
	size    [2]int
	closed  bool
}

func newFakePTY(cols, rows int) *fakePTY {
	r, w := io.Pipe()
	return &fakePTY{out: r, in: w, size: [2]int{cols, rows}}
}

func (f *fakePTY) Read(p []byte) (int, error) { return f.out.Read(p) }

func (f *fakePTY) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, io.ErrClosedPipe
	}
	return f.written.Write(p)
}

func (f *fakePTY) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	_ = f.in.Close()
	return f.out.Close()
}

func (f *fakePTY) Resize(width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resizes++
	f.size = [2]int{width, height}
	return nil
}

// Start runs the command detached from any tty.
func (f *fakePTY) Start(cmd *exec.Cmd) error {
	cmd.SysProcAttr = nil
	return cmd.Start()
}

func (f *fakePTY) writtenString() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written.String()
}

func (f *fakePTY) resizeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resizes
}

type fakeEmulator struct {
	rows, cols int
	data       bytes.Buffer
	panicOn    string
	offset     int
	sbLen      int
	done       chan struct{}
	once       sync.Once
}

func newFakeEmulator(rows, cols int) *fakeEmulator {
	return &fakeEmulator{rows: rows, cols: cols, done: make(chan struct{})}
}

func (e *fakeEmulator) Process(p []byte) {
	if e.panicOn != "" && bytes.Contains(p, []byte(e.panicOn)) {
		panic("bad sequence")
	}
	e.data.Write(p)
}

func (e *fakeEmulator) Screen() vterm.Grid         { return vterm.Grid{Rows: e.rows, Cols: e.cols} }
func (e *fakeEmulator) Size() (int, int)           { return e.rows, e.cols }
func (e *fakeEmulator) CursorPosition() (int, int) { return 0, 0 }
func (e *fakeEmulator) SetSize(rows, cols int)     { e.rows, e.cols = rows, cols }
func (e *fakeEmulator) ScrollbackLen() int         { return e.sbLen }
func (e *fakeEmulator) ScrollbackOffset() int      { return e.offset }
func (e *fakeEmulator) HistoryLines(int) []string  { return []string{e.data.String()} }
func (e *fakeEmulator) AltScreen() bool            { return false }
func (e *fakeEmulator) SetScrollbackOffset(n int)  { e.offset = max(0, min(n, e.sbLen)) }

func (e *fakeEmulator) Read(p []byte) (int, error) {
	<-e.done
	return 0, io.EOF
}

func (e *fakeEmulator) Close() error {
	e.once.Do(func() { close(e.done) })
	return nil
}

// withFakes swaps the pty and emulator constructors for the test.
func withFakes(t *testing.T) (func() *fakePTY, func() *fakeEmulator) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	var (
		mu   sync.Mutex
		pty  *fakePTY
		emul *fakeEmulator
	)
	origPTY, origEmu := newPTY, newEmulator
	newPTY = func(cols, rows int) (ptyDevice, error) {
		mu.Lock()
		defer mu.Unlock()
		pty = newFakePTY(cols, rows)
		return pty, nil
	}
	newEmulator = func(rows, cols, _ int) emulator {
		mu.Lock()
		defer mu.Unlock()
		emul = newFakeEmulator(rows, cols)
		return emul
	}
	t.Cleanup(func() { newPTY, newEmulator = origPTY, origEmu })
	return func() *fakePTY {
			mu.Lock()
			defer mu.Unlock()
			return pty
		}, func() *fakeEmulator {
			mu.Lock()
			defer mu.Unlock()
			return emul
		}
}

func spawnSleeper(t *testing.T) *Session {
	t.Helper()
	s, err := Spawn(Options{ID: "p1", Command: "sh", Args: []string{"-c", "sleep 30"}, Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func waitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
