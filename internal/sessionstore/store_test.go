package sessionstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/regenrek/taskpit/internal/layout"
	"github.com/regenrek/taskpit/internal/mux"
)

func sampleMeta() mux.Metadata {
	root, _ := layout.NewSplit(layout.Horizontal, 0.5, layout.NewLeaf("p-1"), layout.NewLeaf("p-2"))
	return mux.Metadata{
		Layout:   layout.SnapshotEngine(layout.NewEngine(root)),
		Selected: "p-2",
		Panes: []mux.PaneMeta{
			{ID: "p-1", Name: "shell", Rows: 24, Cols: 80, State: "idle", Snapshot: []string{"hello", "world"}},
			{ID: "p-2", TaskID: "t-1", Provider: "codex", Rows: 24, Cols: 80, State: "running"},
		},
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "panes.json")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	saved := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	store.now = func() time.Time { return saved }

	if err := store.Save(context.Background(), sampleMeta()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	doc, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if doc.SchemaVersion != CurrentSchemaVersion || !doc.SavedAt.Equal(saved) {
		t.Fatalf("header = %d %v", doc.SchemaVersion, doc.SavedAt)
	}
	if doc.State.Selected != "p-2" || len(doc.State.Panes) != 2 {
		t.Fatalf("state mismatch: %#v", doc.State)
	}
	if got := doc.State.Panes[0].Snapshot; len(got) != 2 || got[0] != "hello" {
		t.Fatalf("snapshot mismatch: %#v", got)
	}
	engine, err := layout.EngineFromSnapshot(doc.State.Layout)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if ids := layout.PaneIDs(engine.Root); len(ids) != 2 || ids[0] != "p-1" {
		t.Fatalf("layout ids = %v", ids)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "panes.json"))
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	if _, ok, err := store.Load(context.Background()); ok || err != nil {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
}

func TestStoreQuarantinesCorruptFile(t *testing.T) {
	cases := map[string]string{
		"garbage": "{not json",
		"schema":  `{"schemaVersion": 99, "state": {"panes": []}}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "panes.json")
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			store, _ := NewStore(path)
			if _, ok, err := store.Load(context.Background()); ok || err != nil {
				t.Fatalf("Load() = %v, %v", ok, err)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Fatalf("corrupt file should be moved aside, stat err = %v", err)
			}
			entries, err := os.ReadDir(filepath.Join(dir, quarantineDirName))
			if err != nil || len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "panes.json-") {
				t.Fatalf("quarantine dir = %v, %v", entries, err)
			}
		})
	}
}

func TestStoreSaveTrimsSnapshots(t *testing.T) {
	store, _ := NewStore(filepath.Join(t.TempDir(), "panes.json"))
	meta := sampleMeta()
	big := make([]string, 0, 2000)
	for i := 0; i < 2000; i++ {
		big = append(big, strings.Repeat("x", 99))
	}
	meta.Panes[0].Snapshot = big
	if err := store.Save(context.Background(), meta); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	doc, _, _ := store.Load(context.Background())
	total := 0
	for _, line := range doc.State.Panes[0].Snapshot {
		total += len(line)
	}
	if total > MaxSnapshotBytes || total == 0 {
		t.Fatalf("persisted snapshot bytes = %d", total)
	}
}

func TestStoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panes.json")
	store, _ := NewStore(path)
	if err := store.Save(context.Background(), sampleMeta()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, got %v", err)
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("second Delete() error: %v", err)
	}
}

func TestSaveHonoursContext(t *testing.T) {
	store, _ := NewStore(filepath.Join(t.TempDir(), "panes.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.Save(ctx, sampleMeta()); err == nil {
		t.Fatalf("Save with cancelled context should fail")
	}
}

func TestNewStoreRequiresPath(t *testing.T) {
	if _, err := NewStore("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
