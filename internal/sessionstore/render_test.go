package sessionstore

import "testing"

func TestTrimLinesByBytes(t *testing.T) {
	lines := []string{"one", "two", "three"}
	out := TrimLinesByBytes(lines, 6)
	if len(out) != 1 || out[0] != "three" {
		t.Fatalf("TrimLinesByBytes() = %#v", out)
	}
	if out := TrimLinesByBytes(lines, 0); len(out) != 3 {
		t.Fatalf("zero budget should keep everything, got %#v", out)
	}
	if out := TrimLinesByBytes([]string{"toolong"}, 3); len(out) != 0 {
		t.Fatalf("oversized last line should be dropped, got %#v", out)
	}
}

func TestRenderPlainLines(t *testing.T) {
	out := RenderPlainLines(4, 3, []string{"a", "bb", "cccccc", "日本"})
	want := []string{"bb  ", "cccc", "日本"}
	if len(out) != len(want) {
		t.Fatalf("RenderPlainLines() = %#v", out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, out[i], want[i])
		}
	}

	padded := RenderPlainLines(2, 3, []string{"x"})
	if padded[0] != "  " || padded[1] != "  " || padded[2] != "x " {
		t.Fatalf("padding = %#v", padded)
	}
	if RenderPlainLines(0, 3, []string{"x"}) != nil {
		t.Fatalf("zero width should render nothing")
	}
}
