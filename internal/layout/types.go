package layout

import "fmt"

// Direction is the axis a split partitions. Horizontal places the children
// side by side (splits width), Vertical stacks them (splits height).
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection accepts the names produced by String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("layout: unknown direction %q", s)
	}
}

type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

func (r Rect) center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inner returns r shrunk by a one-cell border on every side.
func (r Rect) Inner() Rect {
	in := Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
	if in.W < 0 {
		in.W = 0
	}
	if in.H < 0 {
		in.H = 0
	}
	return in
}

// Constraints bound how small a split may make its children.
type Constraints struct {
	MinWidth    int
	MinHeight   int
	AspectRatio float64
}

func DefaultConstraints() Constraints {
	return Constraints{MinWidth: 20, MinHeight: 6, AspectRatio: 2.0}
}

const defaultSplitRatio = 0.5

// DefaultSplitRatio is the even split used for new panes.
func DefaultSplitRatio() float64 { return defaultSplitRatio }

const (
	minResizeRatio = 0.1
	maxResizeRatio = 0.9
)
