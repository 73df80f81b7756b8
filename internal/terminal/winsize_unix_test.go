//go:build unix

package terminal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type slavePTY struct {
	*fakePTY
	slave *os.File
}

func (p *slavePTY) Slave() *os.File { return p.slave }

func TestSyncSlaveSize(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "slave"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	var got [][2]int
	orig := setWinsize
	setWinsize = func(file *os.File, rows, cols int) error {
		if file != f {
			t.Fatalf("winsize set on %v, want slave file", file.Name())
		}
		got = append(got, [2]int{rows, cols})
		return errors.New("not a tty")
	}
	t.Cleanup(func() { setWinsize = orig })

	s := &Session{id: "p1"}
	s.syncSlaveSize(&slavePTY{fakePTY: newFakePTY(80, 24), slave: f}, 30, 100)
	s.syncSlaveSize(&slavePTY{fakePTY: newFakePTY(80, 24), slave: f}, 0, 100)
	s.syncSlaveSize(&slavePTY{fakePTY: newFakePTY(80, 24)}, 30, 100)
	s.syncSlaveSize(newFakePTY(80, 24), 30, 100)

	if len(got) != 1 || got[0] != [2]int{30, 100} {
		t.Fatalf("winsize calls = %v, want one 30x100", got)
	}
}
