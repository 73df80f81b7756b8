package entry

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/regenrek/taskpit/internal/cli/root"
	"github.com/regenrek/taskpit/internal/layout"
	"github.com/regenrek/taskpit/internal/mux"
	"github.com/regenrek/taskpit/internal/runenv"
	"github.com/regenrek/taskpit/internal/sessionstore"
	"github.com/regenrek/taskpit/internal/tui"
)

type harness struct {
	out      bytes.Buffer
	stateDir string
	ranUI    int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{stateDir: t.TempDir()}
	t.Setenv("HOME", t.TempDir())
	t.Setenv(runenv.ConfigDirEnv, t.TempDir())
	t.Setenv(runenv.StateDirEnv, h.stateDir)
	t.Setenv(runenv.RuntimeDirEnv, t.TempDir())
	t.Setenv(runenv.FreshConfigEnv, "")
	t.Setenv(runenv.NoRestoreEnv, "")

	prevExiter := cli.OsExiter
	cli.OsExiter = func(int) {}
	t.Cleanup(func() { cli.OsExiter = prevExiter })
	return h
}

func (h *harness) run(args ...string) int {
	h.out.Reset()
	deps := root.Dependencies{
		Version: "test",
		Stdout:  &h.out,
		Stderr:  &h.out,
		Stdin:   strings.NewReader(""),
		RunUI: func(ctx context.Context, model tea.Model) error {
			if _, ok := model.(*tui.Model); ok {
				h.ranUI++
			}
			return nil
		},
	}
	return RunWith(append([]string{"taskpit"}, args...), deps)
}

func (h *harness) saveOnePane(t *testing.T) {
	t.Helper()
	store, err := sessionstore.NewStore(filepath.Join(h.stateDir, "panes.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	meta := mux.Metadata{
		Layout:   layout.TreeSnapshot{Root: &layout.NodeSnapshot{PaneID: "pane-a"}},
		Selected: "pane-a",
		Panes: []mux.PaneMeta{{
			ID:       "pane-a",
			Name:     "fix login",
			State:    "running",
			TaskID:   "T-1",
			Rows:     10,
			Cols:     40,
			Snapshot: []string{"$ make test"},
		}},
	}
	if err := store.Save(context.Background(), meta); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	if code := h.run("--version"); code != 0 {
		t.Fatalf("--version exit=%d", code)
	}
	if !strings.Contains(h.out.String(), "taskpit test") {
		t.Fatalf("--version output %q", h.out.String())
	}
	if code := h.run("version"); code != 0 || h.out.String() != "taskpit test\n" {
		t.Fatalf("version exit=%d output=%q", code, h.out.String())
	}
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t)
	if code := h.run("config", "path"); code != 0 || !strings.HasSuffix(strings.TrimSpace(h.out.String()), "config.yml") {
		t.Fatalf("config path exit=%d output=%q", code, h.out.String())
	}
	if code := h.run("config", "init"); code != 0 || !strings.Contains(h.out.String(), "wrote") {
		t.Fatalf("config init exit=%d output=%q", code, h.out.String())
	}
	if code := h.run("config", "init"); code == 0 {
		t.Fatalf("expected second init to fail")
	}
	if code := h.run("config", "init", "--force"); code != 0 {
		t.Fatalf("config init --force exit=%d output=%q", code, h.out.String())
	}
	if code := h.run("config", "show", "--json"); code != 0 || !strings.Contains(h.out.String(), `"default_rows"`) {
		t.Fatalf("config show exit=%d output=%q", code, h.out.String())
	}
}

func TestPanesCommands(t *testing.T) {
	h := newHarness(t)
	if code := h.run("panes", "list"); code != 0 || !strings.Contains(h.out.String(), "no saved panes") {
		t.Fatalf("empty list exit=%d output=%q", code, h.out.String())
	}
	h.saveOnePane(t)
	if code := h.run("panes", "ls"); code != 0 || !strings.Contains(h.out.String(), "fix login") {
		t.Fatalf("list exit=%d output=%q", code, h.out.String())
	}
	if code := h.run("panes", "list", "--json"); code != 0 || !strings.Contains(h.out.String(), `"task_id":"T-1"`) {
		t.Fatalf("list --json exit=%d output=%q", code, h.out.String())
	}
	if code := h.run("panes", "clear"); code != 0 {
		t.Fatalf("clear exit=%d output=%q", code, h.out.String())
	}
	if code := h.run("panes", "list"); code != 0 || !strings.Contains(h.out.String(), "no saved panes") {
		t.Fatalf("list after clear exit=%d output=%q", code, h.out.String())
	}
}

func TestRunRestoresAndSaves(t *testing.T) {
	h := newHarness(t)
	h.saveOnePane(t)
	if code := h.run(); code != 0 {
		t.Fatalf("run exit=%d output=%q", code, h.out.String())
	}
	if h.ranUI != 1 {
		t.Fatalf("expected the UI to run once, got %d", h.ranUI)
	}
	store, _ := sessionstore.NewStore(filepath.Join(h.stateDir, "panes.json"))
	doc, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("Load ok=%v err=%v", ok, err)
	}
	if len(doc.State.Panes) != 1 || doc.State.Panes[0].ID != "pane-a" {
		t.Fatalf("expected restored pane to be saved again, got %+v", doc.State.Panes)
	}
	if doc.State.Panes[0].State != mux.StateDone.String() {
		t.Fatalf("expected running pane to come back done, got %q", doc.State.Panes[0].State)
	}
}

func TestRunRejectsUnknownProvider(t *testing.T) {
	h := newHarness(t)
	if code := h.run("--task", "fix login", "--provider", "nope"); code == 0 {
		t.Fatalf("expected failure for unknown provider")
	}
	if h.ranUI != 0 {
		t.Fatalf("UI must not start on bad flags")
	}
}
