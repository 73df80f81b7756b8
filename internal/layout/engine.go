package layout

import (
	"errors"
	"fmt"
	"strings"
)

type OpKind string

const (
	OpSplit  OpKind = "split"
	OpClose  OpKind = "close"
	OpResize OpKind = "resize"
	OpSwap   OpKind = "swap"
	OpZoom   OpKind = "zoom"
)

type Op interface {
	Kind() OpKind
}

// SplitOp adds NewPaneID next to PaneID. With no PaneID an empty tree
// becomes a single leaf and a non-empty tree is split at the root, with the
// old root first. Ratio 0 selects the default.
type SplitOp struct {
	PaneID    string
	NewPaneID string
	Direction Direction
	Ratio     float64
}

func (SplitOp) Kind() OpKind { return OpSplit }

type CloseOp struct {
	PaneID string
}

func (CloseOp) Kind() OpKind { return OpClose }

type ResizeEdge int

const (
	ResizeEdgeLeft ResizeEdge = iota
	ResizeEdgeRight
	ResizeEdgeUp
	ResizeEdgeDown
)

func (e ResizeEdge) direction() Direction {
	if e == ResizeEdgeUp || e == ResizeEdgeDown {
		return Vertical
	}
	return Horizontal
}

// ResizeOp moves the PaneID edge by Delta (a ratio fraction). Positive
// deltas grow the pane toward the edge.
type ResizeOp struct {
	PaneID string
	Edge   ResizeEdge
	Delta  float64
}

func (ResizeOp) Kind() OpKind { return OpResize }

type SwapOp struct {
	PaneA string
	PaneB string
}

func (SwapOp) Kind() OpKind { return OpSwap }

type ZoomOp struct {
	PaneID string
	Toggle bool
}

func (ZoomOp) Kind() OpKind { return OpZoom }

type ApplyResult struct {
	Changed  bool
	Affected []string
}

// Engine applies structural operations to a pane tree.
type Engine struct {
	Root        *Node
	Zoomed      string
	Constraints Constraints
}

func NewEngine(root *Node) *Engine {
	return &Engine{Root: root, Constraints: DefaultConstraints()}
}

func (e *Engine) Apply(op Op) (ApplyResult, error) {
	if e == nil {
		return ApplyResult{}, errors.New("layout: engine is nil")
	}
	switch v := op.(type) {
	case SplitOp:
		return e.applySplit(v)
	case CloseOp:
		return e.applyClose(v)
	case ResizeOp:
		return e.applyResize(v)
	case SwapOp:
		return e.applySwap(v)
	case ZoomOp:
		return e.applyZoom(v)
	default:
		return ApplyResult{}, fmt.Errorf("layout: unknown op %T", op)
	}
}

// Areas computes pane rects, giving the whole container to a zoomed pane.
func (e *Engine) Areas(container Rect) []PaneArea {
	if e == nil {
		return nil
	}
	if e.Zoomed != "" && Contains(e.Root, e.Zoomed) {
		return []PaneArea{{PaneID: e.Zoomed, Rect: container}}
	}
	return ComputeAreas(container, e.Root)
}

func (e *Engine) applySplit(op SplitOp) (ApplyResult, error) {
	paneID := strings.TrimSpace(op.PaneID)
	newID := strings.TrimSpace(op.NewPaneID)
	if newID == "" {
		return ApplyResult{}, errors.New("layout: split requires new pane id")
	}
	if Contains(e.Root, newID) {
		return ApplyResult{}, fmt.Errorf("layout: pane %q already exists", newID)
	}
	if e.Root == nil {
		if paneID != "" {
			return ApplyResult{}, fmt.Errorf("%w: %q", ErrPaneNotFound, paneID)
		}
		e.Root = NewLeaf(newID)
		return ApplyResult{Changed: true, Affected: []string{newID}}, nil
	}
	ratio := op.Ratio
	if ratio == 0 {
		ratio = DefaultSplitRatio()
	}
	if paneID == "" {
		root, err := NewSplit(op.Direction, ratio, e.Root, NewLeaf(newID))
		if err != nil {
			return ApplyResult{}, fmt.Errorf("layout: split root: %w", err)
		}
		e.Root = root
		e.Zoomed = ""
		return ApplyResult{Changed: true, Affected: PaneIDs(root)}, nil
	}
	root, err := SplitAt(e.Root, paneID, newID, op.Direction, ratio)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("layout: split %q: %w", paneID, err)
	}
	e.Root = root
	e.Zoomed = ""
	return ApplyResult{Changed: true, Affected: []string{paneID, newID}}, nil
}

func (e *Engine) applyClose(op CloseOp) (ApplyResult, error) {
	paneID := strings.TrimSpace(op.PaneID)
	root, err := Remove(e.Root, paneID)
	if err != nil {
		return ApplyResult{}, fmt.Errorf("layout: close %q: %w", paneID, err)
	}
	e.Root = root
	if e.Zoomed == paneID {
		e.Zoomed = ""
	}
	return ApplyResult{Changed: true, Affected: PaneIDs(root)}, nil
}

func (e *Engine) applyResize(op ResizeOp) (ApplyResult, error) {
	path := pathTo(e.Root, op.PaneID)
	if path == nil {
		return ApplyResult{}, fmt.Errorf("%w: %q", ErrPaneNotFound, op.PaneID)
	}
	dir := op.Edge.direction()
	growsFirst := op.Edge == ResizeEdgeRight || op.Edge == ResizeEdgeDown
	// Nearest ancestor whose shared edge is the one being moved.
	for i := len(path) - 2; i >= 0; i-- {
		split, child := path[i], path[i+1]
		if split.Direction != dir {
			continue
		}
		inFirst := split.First == child
		if inFirst != growsFirst {
			continue
		}
		ratio := split.Ratio
		if inFirst {
			ratio += op.Delta
		} else {
			ratio -= op.Delta
		}
		ratio = clampRatio(ratio)
		if ratio == split.Ratio {
			return ApplyResult{}, nil
		}
		split.Ratio = ratio
		return ApplyResult{Changed: true, Affected: PaneIDs(split)}, nil
	}
	return ApplyResult{}, fmt.Errorf("layout: pane %q has no %s neighbor to resize against", op.PaneID, dir)
}

func clampRatio(r float64) float64 {
	if r < minResizeRatio {
		return minResizeRatio
	}
	if r > maxResizeRatio {
		return maxResizeRatio
	}
	return r
}

func (e *Engine) applySwap(op SwapOp) (ApplyResult, error) {
	if op.PaneA == op.PaneB {
		return ApplyResult{}, nil
	}
	a := findLeaf(e.Root, op.PaneA)
	b := findLeaf(e.Root, op.PaneB)
	if a == nil || b == nil {
		return ApplyResult{}, fmt.Errorf("%w: swap %q/%q", ErrPaneNotFound, op.PaneA, op.PaneB)
	}
	a.PaneID, b.PaneID = b.PaneID, a.PaneID
	return ApplyResult{Changed: true, Affected: []string{op.PaneA, op.PaneB}}, nil
}

func (e *Engine) applyZoom(op ZoomOp) (ApplyResult, error) {
	if !Contains(e.Root, op.PaneID) {
		return ApplyResult{}, fmt.Errorf("%w: %q", ErrPaneNotFound, op.PaneID)
	}
	switch {
	case op.Toggle && e.Zoomed == op.PaneID:
		e.Zoomed = ""
	case e.Zoomed == op.PaneID:
		return ApplyResult{}, nil
	default:
		e.Zoomed = op.PaneID
	}
	return ApplyResult{Changed: true, Affected: PaneIDs(e.Root)}, nil
}
