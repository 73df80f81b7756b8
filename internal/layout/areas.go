package layout

// PaneArea pairs a pane with the rectangle it occupies.
type PaneArea struct {
	PaneID string
	Rect   Rect
}

// ComputeAreas walks the tree and assigns every leaf a sub-rectangle of
// container. Splits truncate toward the first child; the second child gets
// the remainder so both always sum to the parent.
func ComputeAreas(container Rect, root *Node) []PaneArea {
	if root == nil {
		return nil
	}
	out := make([]PaneArea, 0, 4)
	computeAreas(container, root, &out)
	return out
}

func computeAreas(r Rect, n *Node, out *[]PaneArea) {
	if n.IsLeaf() {
		*out = append(*out, PaneArea{PaneID: n.PaneID, Rect: r})
		return
	}
	first, second := splitRect(r, n.Direction, n.Ratio)
	computeAreas(first, n.First, out)
	computeAreas(second, n.Second, out)
}

func splitRect(r Rect, dir Direction, ratio float64) (Rect, Rect) {
	if dir == Horizontal {
		w := int(float64(r.W) * ratio)
		return Rect{X: r.X, Y: r.Y, W: w, H: r.H},
			Rect{X: r.X + w, Y: r.Y, W: r.W - w, H: r.H}
	}
	h := int(float64(r.H) * ratio)
	return Rect{X: r.X, Y: r.Y, W: r.W, H: h},
		Rect{X: r.X, Y: r.Y + h, W: r.W, H: r.H - h}
}

// ChooseSplitDirection picks the axis to split rect along using
// DefaultConstraints.
func ChooseSplitDirection(rect Rect) (Direction, bool) {
	return DefaultConstraints().ChooseSplitDirection(rect)
}

// ChooseSplitDirection returns false when neither dimension can be halved
// while both halves stay at or above the minimums. When both can, wide
// rects split side by side.
func (c Constraints) ChooseSplitDirection(rect Rect) (Direction, bool) {
	canWidth := rect.W/2 >= c.MinWidth
	canHeight := rect.H/2 >= c.MinHeight
	switch {
	case !canWidth && !canHeight:
		return 0, false
	case canWidth && !canHeight:
		return Horizontal, true
	case canHeight && !canWidth:
		return Vertical, true
	}
	if rect.H > 0 && float64(rect.W)/float64(rect.H) >= c.AspectRatio {
		return Horizontal, true
	}
	return Vertical, true
}

// AreaOf looks up the rect assigned to paneID.
func AreaOf(areas []PaneArea, paneID string) (Rect, bool) {
	for _, a := range areas {
		if a.PaneID == paneID {
			return a.Rect, true
		}
	}
	return Rect{}, false
}

// Largest returns the pane with the biggest area. Ties go to the earliest.
func Largest(areas []PaneArea) (PaneArea, bool) {
	best := -1
	for i, a := range areas {
		if best < 0 || a.Rect.Area() > areas[best].Rect.Area() {
			best = i
		}
	}
	if best < 0 {
		return PaneArea{}, false
	}
	return areas[best], true
}
