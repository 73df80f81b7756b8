package layout

import "testing"

func mustSplit(t *testing.T, dir Direction, ratio float64, first, second *Node) *Node {
	t.Helper()
	n, err := NewSplit(dir, ratio, first, second)
	if err != nil {
		t.Fatalf("NewSplit: %v", err)
	}
	return n
}

func TestComputeAreasSingleLeaf(t *testing.T) {
	container := Rect{X: 3, Y: 4, W: 50, H: 20}
	areas := ComputeAreas(container, NewLeaf("a"))
	if len(areas) != 1 || areas[0].PaneID != "a" || areas[0].Rect != container {
		t.Fatalf("unexpected areas %+v", areas)
	}
	if got := ComputeAreas(container, nil); got != nil {
		t.Fatalf("expected nil areas for empty tree, got %+v", got)
	}
}

func TestComputeAreasHorizontalSumsToWidth(t *testing.T) {
	for _, w := range []int{1, 2, 7, 33, 101, 250} {
		for _, ratio := range []float64{0.1, 0.33, 0.5, 0.67, 0.9} {
			root := mustSplit(t, Horizontal, ratio, NewLeaf("a"), NewLeaf("b"))
			container := Rect{X: 0, Y: 2, W: w, H: 17}
			areas := ComputeAreas(container, root)
			if len(areas) != 2 {
				t.Fatalf("expected 2 areas, got %d", len(areas))
			}
			a, b := areas[0].Rect, areas[1].Rect
			if a.W+b.W != w {
				t.Fatalf("w=%d ratio=%v: widths %d+%d != %d", w, ratio, a.W, b.W, w)
			}
			if a.H != 17 || b.H != 17 || a.Y != 2 || b.Y != 2 {
				t.Fatalf("heights must match parent: %+v %+v", a, b)
			}
			if b.X != a.X+a.W {
				t.Fatalf("second child must start after first: %+v %+v", a, b)
			}
			if want := int(float64(w) * ratio); a.W != want {
				t.Fatalf("first width = %d, want truncated %d", a.W, want)
			}
		}
	}
}

func TestComputeAreasVerticalSumsToHeight(t *testing.T) {
	root := mustSplit(t, Vertical, 0.5, NewLeaf("top"), NewLeaf("bottom"))
	areas := ComputeAreas(Rect{W: 80, H: 25}, root)
	if areas[0].Rect.H != 12 || areas[1].Rect.H != 13 {
		t.Fatalf("unexpected heights %+v", areas)
	}
	if areas[1].Rect.Y != 12 || areas[0].Rect.W != 80 {
		t.Fatalf("unexpected geometry %+v", areas)
	}
}

func TestComputeAreasNested(t *testing.T) {
	right := mustSplit(t, Vertical, 0.5, NewLeaf("b"), NewLeaf("c"))
	root := mustSplit(t, Horizontal, 0.5, NewLeaf("a"), right)
	areas := ComputeAreas(Rect{W: 100, H: 40}, root)
	want := []PaneArea{
		{PaneID: "a", Rect: Rect{X: 0, Y: 0, W: 50, H: 40}},
		{PaneID: "b", Rect: Rect{X: 50, Y: 0, W: 50, H: 20}},
		{PaneID: "c", Rect: Rect{X: 50, Y: 20, W: 50, H: 20}},
	}
	if len(areas) != len(want) {
		t.Fatalf("got %d areas, want %d", len(areas), len(want))
	}
	for i := range want {
		if areas[i] != want[i] {
			t.Fatalf("area %d = %+v, want %+v", i, areas[i], want[i])
		}
	}
}

func TestChooseSplitDirection(t *testing.T) {
	c := DefaultConstraints()
	cases := []struct {
		name string
		rect Rect
		want Direction
		ok   bool
	}{
		{"too small both", Rect{W: 2*c.MinWidth - 1, H: 2*c.MinHeight - 1}, 0, false},
		{"width only", Rect{W: 2 * c.MinWidth, H: 2*c.MinHeight - 1}, Horizontal, true},
		{"height only", Rect{W: 2*c.MinWidth - 1, H: 2 * c.MinHeight}, Vertical, true},
		{"wide", Rect{W: 100, H: 40}, Horizontal, true},
		{"tall", Rect{W: 60, H: 40}, Vertical, true},
		{"exact aspect", Rect{W: 80, H: 40}, Horizontal, true},
	}
	for _, tc := range cases {
		got, ok := ChooseSplitDirection(tc.rect)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("%s: ChooseSplitDirection(%+v) = %v,%v want %v,%v", tc.name, tc.rect, got, ok, tc.want, tc.ok)
		}
	}
}

func TestChooseSplitDirectionRefusesBelowMinimums(t *testing.T) {
	c := DefaultConstraints()
	for w := 0; w < 2*c.MinWidth; w++ {
		for h := 0; h < 2*c.MinHeight; h++ {
			if _, ok := ChooseSplitDirection(Rect{W: w, H: h}); ok {
				t.Fatalf("expected refusal for %dx%d", w, h)
			}
		}
	}
}

func TestDefaultSplitRatio(t *testing.T) {
	if DefaultSplitRatio() != 0.5 {
		t.Fatalf("DefaultSplitRatio = %v", DefaultSplitRatio())
	}
}

func TestLargestPrefersEarliestOnTie(t *testing.T) {
	areas := []PaneArea{
		{PaneID: "a", Rect: Rect{W: 10, H: 10}},
		{PaneID: "b", Rect: Rect{W: 20, H: 10}},
		{PaneID: "c", Rect: Rect{W: 10, H: 20}},
	}
	got, ok := Largest(areas)
	if !ok || got.PaneID != "b" {
		t.Fatalf("Largest = %+v", got)
	}
	if _, ok := Largest(nil); ok {
		t.Fatalf("expected no largest for empty input")
	}
}

func TestRectInner(t *testing.T) {
	if got := (Rect{X: 1, Y: 1, W: 10, H: 5}).Inner(); got != (Rect{X: 2, Y: 2, W: 8, H: 3}) {
		t.Fatalf("Inner = %+v", got)
	}
	if got := (Rect{W: 1, H: 1}).Inner(); got.W != 0 || got.H != 0 {
		t.Fatalf("expected clamped inner, got %+v", got)
	}
}

func TestNeighbor(t *testing.T) {
	right := mustSplit(t, Vertical, 0.5, NewLeaf("b"), NewLeaf("c"))
	root := mustSplit(t, Horizontal, 0.5, NewLeaf("a"), right)
	areas := ComputeAreas(Rect{W: 100, H: 40}, root)

	cases := []struct {
		from string
		dir  NavDirection
		want string
		ok   bool
	}{
		{"a", NavRight, "b", true},
		{"b", NavDown, "c", true},
		{"c", NavUp, "b", true},
		{"c", NavLeft, "a", true},
		{"a", NavLeft, "", false},
		{"missing", NavRight, "", false},
	}
	for _, tc := range cases {
		got, ok := Neighbor(areas, tc.from, tc.dir)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Neighbor(%s,%s) = %q,%v want %q,%v", tc.from, tc.dir, got, ok, tc.want, tc.ok)
		}
	}
}
