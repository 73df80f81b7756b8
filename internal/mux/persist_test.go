package mux

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/regenrek/taskpit/internal/agent"
	"github.com/regenrek/taskpit/internal/layout"
)

func TestMetadataRestoreRoundTrip(t *testing.T) {
	src, rec := newTestState(t)
	a := src.CreatePane(24, 80)
	b := src.CreatePaneForTask(TaskSpec{ID: "t-7", Title: "Refactor", Provider: agent.ProviderCodex}, 24, 80)
	src.CreatePane(24, 80)
	rec.sessions[a].lines = []string{"$ go test ./...", "ok"}
	src.SelectPaneByID(b)

	meta := src.Metadata(100)
	raw, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Metadata
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	dst, dstRec := newTestState(t)
	if err := dst.Restore(decoded, false); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !slices.Equal(dst.PaneIDs(), src.PaneIDs()) {
		t.Fatalf("PaneIDs = %v, want %v", dst.PaneIDs(), src.PaneIDs())
	}
	if dst.Selected() != b {
		t.Fatalf("selected = %q, want %q", dst.Selected(), b)
	}
	if len(dstRec.order) != 0 {
		t.Fatalf("restore without respawn started %d sessions", len(dstRec.order))
	}

	pa := dst.FindPane(a)
	if pa.HasSession() || !slices.Equal(pa.Snapshot, []string{"$ go test ./...", "ok"}) {
		t.Fatalf("restored pane a = %+v", pa)
	}
	pb := dst.FindPane(b)
	if pb.State != StateDone || pb.TaskID != "t-7" || pb.Provider != agent.ProviderCodex || pb.Name != "Refactor" {
		t.Fatalf("restored task pane = %+v", pb)
	}

	if err := dst.Restore(decoded, false); err == nil {
		t.Fatalf("restore into a populated state should fail")
	}
}

func TestRestoreRespawnsShells(t *testing.T) {
	src, _ := newTestState(t)
	src.CreatePane(24, 80)
	src.CreatePane(24, 80)
	meta := src.Metadata(0)

	dst, rec := newTestState(t)
	dst.Layout(layout.Rect{W: 100, H: 40})
	if err := dst.Restore(meta, true); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	for _, id := range dst.PaneIDs() {
		if !dst.FindPane(id).HasSession() {
			t.Fatalf("pane %s not respawned", id)
		}
		if rec.sessions[id] == nil {
			t.Fatalf("no session recorded for %s", id)
		}
		if p := dst.FindPane(id); p.Cols != 48 || p.Rows != 38 {
			t.Fatalf("pane %s not laid out: %dx%d", id, p.Rows, p.Cols)
		}
	}
}

func TestRestoreFillsUnknownLeaves(t *testing.T) {
	s, _ := newTestState(t)
	meta := Metadata{
		Layout: layout.SnapshotEngine(layout.NewEngine(layout.NewLeaf("ghost"))),
	}
	if err := s.Restore(meta, false); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if p := s.FindPane("ghost"); p == nil || p.State != StateIdle || s.Selected() != "ghost" {
		t.Fatalf("placeholder pane = %+v selected=%q", p, s.Selected())
	}
}
