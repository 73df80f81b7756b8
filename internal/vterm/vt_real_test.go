package vterm

import (
	"reflect"
	"testing"
)

func TestNewUsesRealEmulator(t *testing.T) {
	v := New(4, 20, 50)
	t.Cleanup(func() { _ = v.Close() })

	v.Process([]byte("hello\r\nworld"))
	lines := v.Screen().Lines()
	if lines[0] != "hello" || lines[1] != "world" {
		t.Fatalf("screen = %q", lines)
	}
	if rows, cols := v.Size(); rows != 4 || cols != 20 {
		t.Fatalf("Size = %dx%d", rows, cols)
	}
	if row, col := v.CursorPosition(); row != 1 || col != 5 {
		t.Fatalf("cursor = %d,%d", row, col)
	}
}

func historyText(v *VT) []string {
	out := make([]string, v.ScrollbackLen())
	for i := range out {
		out[i] = lineText(v.sb.line(i))
	}
	return out
}

func TestRealEmulatorCapturesAutowrap(t *testing.T) {
	v := New(3, 5, 100)
	t.Cleanup(func() { _ = v.Close() })

	v.Process([]byte("abcdefghijklmnop"))
	if got := historyText(v); !reflect.DeepEqual(got, []string{"abcde"}) {
		t.Fatalf("history = %q", got)
	}
	if got := v.Screen().Lines(); !reflect.DeepEqual(got, []string{"fghij", "klmno", "p"}) {
		t.Fatalf("screen = %q", got)
	}
}

func TestRealEmulatorAutowrapAcrossChunks(t *testing.T) {
	v := New(2, 4, 100)
	t.Cleanup(func() { _ = v.Close() })

	v.Process([]byte("aaaabb"))
	v.Process([]byte("bbcccc"))
	v.Process([]byte("dddd"))
	if got := historyText(v); !reflect.DeepEqual(got, []string{"aaaa", "bbbb"}) {
		t.Fatalf("history = %q", got)
	}
	if got := v.Screen().Lines(); !reflect.DeepEqual(got, []string{"cccc", "dddd"}) {
		t.Fatalf("screen = %q", got)
	}
}

func TestRealEmulatorLastColumnWithoutWrapKeepsHistory(t *testing.T) {
	v := New(2, 4, 100)
	t.Cleanup(func() { _ = v.Close() })

	// Landing on the last cell arms a wrap but does not scroll.
	v.Process([]byte("top\x1b[2;4Hx\r"))
	if v.ScrollbackLen() != 0 {
		t.Fatalf("history = %q", historyText(v))
	}
}

func TestRealEmulatorCapturesScrollUp(t *testing.T) {
	v := New(3, 10, 100)
	t.Cleanup(func() { _ = v.Close() })

	v.Process([]byte("one\r\ntwo\r\nthree\x1b[2S"))
	if got := historyText(v); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("history = %q", got)
	}
	if got := v.Screen().Lines(); !reflect.DeepEqual(got, []string{"three", "", ""}) {
		t.Fatalf("screen = %q", got)
	}
}

func TestRealEmulatorCapturesIndex(t *testing.T) {
	v := New(2, 10, 100)
	t.Cleanup(func() { _ = v.Close() })

	v.Process([]byte("one\r\ntwo\x1bD"))
	if got := historyText(v); !reflect.DeepEqual(got, []string{"one"}) {
		t.Fatalf("history = %q", got)
	}
}

func TestRealEmulatorScrollRegionBelowTopKeepsHistory(t *testing.T) {
	v := New(4, 10, 100)
	t.Cleanup(func() { _ = v.Close() })

	v.Process([]byte("keep\x1b[2;3r"))
	v.Process([]byte("\x1b[2;1Hx\n\n\n\n"))
	// Line feeds below the region move nothing either.
	v.Process([]byte("\x1b[4;1H\n\n"))
	if v.ScrollbackLen() != 0 {
		t.Fatalf("history = %q", historyText(v))
	}
	if got := v.Screen().Lines()[0]; got != "keep" {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestRealEmulatorScrollRegionAtTopCaptures(t *testing.T) {
	v := New(4, 10, 100)
	t.Cleanup(func() { _ = v.Close() })

	v.Process([]byte("a\r\nb\r\nc\r\nd"))
	v.Process([]byte("\x1b[1;2r\x1b[2;1H\nz"))
	if got := historyText(v); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("history = %q", got)
	}
	if got := v.Screen().Lines(); !reflect.DeepEqual(got, []string{"b", "z", "c", "d"}) {
		t.Fatalf("screen = %q", got)
	}

	// A resize restores the full-screen region.
	v.SetSize(3, 10)
	v.Process([]byte("\x1b[3;1H\n"))
	if v.ScrollbackLen() != 2 {
		t.Fatalf("history after resize = %q", historyText(v))
	}
}
