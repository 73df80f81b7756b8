package layout

import (
	"errors"
	"fmt"
)

// TreeSnapshot captures a pane tree in a JSON-safe format.
type TreeSnapshot struct {
	Root   *NodeSnapshot `json:"root,omitempty"`
	Zoomed string        `json:"zoomed,omitempty"`
}

type NodeSnapshot struct {
	PaneID    string        `json:"paneId,omitempty"`
	Direction string        `json:"direction,omitempty"`
	Ratio     float64       `json:"ratio,omitempty"`
	First     *NodeSnapshot `json:"first,omitempty"`
	Second    *NodeSnapshot `json:"second,omitempty"`
}

func SnapshotEngine(e *Engine) TreeSnapshot {
	if e == nil {
		return TreeSnapshot{}
	}
	return TreeSnapshot{Root: snapshotNode(e.Root), Zoomed: e.Zoomed}
}

func snapshotNode(n *Node) *NodeSnapshot {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return &NodeSnapshot{PaneID: n.PaneID}
	}
	return &NodeSnapshot{
		Direction: n.Direction.String(),
		Ratio:     n.Ratio,
		First:     snapshotNode(n.First),
		Second:    snapshotNode(n.Second),
	}
}

// EngineFromSnapshot rebuilds an engine. Duplicate pane ids and invalid
// ratios are rejected so a corrupt file cannot break tree invariants.
func EngineFromSnapshot(snap TreeSnapshot) (*Engine, error) {
	seen := map[string]bool{}
	root, err := buildNode(snap.Root, seen)
	if err != nil {
		return nil, err
	}
	e := NewEngine(root)
	if snap.Zoomed != "" && seen[snap.Zoomed] {
		e.Zoomed = snap.Zoomed
	}
	return e, nil
}

func buildNode(s *NodeSnapshot, seen map[string]bool) (*Node, error) {
	if s == nil {
		return nil, nil
	}
	if s.First == nil && s.Second == nil {
		if s.PaneID == "" {
			return nil, errors.New("layout: snapshot leaf without pane id")
		}
		if seen[s.PaneID] {
			return nil, fmt.Errorf("layout: snapshot repeats pane %q", s.PaneID)
		}
		seen[s.PaneID] = true
		return NewLeaf(s.PaneID), nil
	}
	dir, err := ParseDirection(s.Direction)
	if err != nil {
		return nil, err
	}
	first, err := buildNode(s.First, seen)
	if err != nil {
		return nil, err
	}
	second, err := buildNode(s.Second, seen)
	if err != nil {
		return nil, err
	}
	return NewSplit(dir, s.Ratio, first, second)
}
