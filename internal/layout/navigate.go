package layout

// NavDirection is a direction for moving selection between panes.
type NavDirection int

const (
	NavLeft NavDirection = iota
	NavRight
	NavUp
	NavDown
)

func (d NavDirection) String() string {
	switch d {
	case NavLeft:
		return "left"
	case NavRight:
		return "right"
	case NavUp:
		return "up"
	case NavDown:
		return "down"
	default:
		return "unknown"
	}
}

// Neighbor finds the pane nearest to from whose centre lies strictly in
// direction dir. Distance is Manhattan between centres; ties keep the
// earlier pane.
func Neighbor(areas []PaneArea, from string, dir NavDirection) (string, bool) {
	cur, ok := AreaOf(areas, from)
	if !ok {
		return "", false
	}
	cx, cy := cur.center()
	bestID := ""
	bestDist := -1
	for _, a := range areas {
		if a.PaneID == from {
			continue
		}
		x, y := a.Rect.center()
		if !inDirection(dir, cx, cy, x, y) {
			continue
		}
		dist := abs(x-cx) + abs(y-cy)
		if bestDist < 0 || dist < bestDist {
			bestID, bestDist = a.PaneID, dist
		}
	}
	return bestID, bestDist >= 0
}

func inDirection(dir NavDirection, cx, cy, x, y int) bool {
	switch dir {
	case NavLeft:
		return x < cx
	case NavRight:
		return x > cx
	case NavUp:
		return y < cy
	case NavDown:
		return y > cy
	default:
		return false
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
