package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestParseKeyCanonicalForm(t *testing.T) {
	cases := map[string]string{
		"ctrl+D":          "ctrl+d",
		"control+a":       "ctrl+a",
		"shift+ctrl+left": "ctrl+shift+left",
		"Escape":          "esc",
		"G":               "G",
		" ":               "space",
		"space":           "space",
		"alt++":           "alt++",
		"+":               "+",
		"PageUp":          "pgup",
	}
	for raw, want := range cases {
		ev, err := ParseKey(raw)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", raw, err)
		}
		if got := ev.String(); got != want {
			t.Fatalf("ParseKey(%q).String() = %q, want %q", raw, got, want)
		}
	}
}

func TestParseKeyRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"", "hyper+a", "ctrl+", "notakey"} {
		if _, err := ParseKey(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestFromTea(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, "a"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, "alt+x"},
		{tea.KeyMsg{Type: tea.KeySpace}, "space"},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, "shift+tab"},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, "ctrl+s"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "esc"},
		{tea.KeyMsg{Type: tea.KeyEsc, Alt: true}, "alt+esc"},
		{tea.KeyMsg{Type: tea.KeyEnter}, "enter"},
		{tea.KeyMsg{Type: tea.KeyCtrlUp}, "ctrl+up"},
		{tea.KeyMsg{Type: tea.KeyPgDown}, "pgdown"},
		{tea.KeyMsg{Type: tea.KeyF5}, "f5"},
	}
	for _, tc := range cases {
		if got := FromTea(tc.msg).String(); got != tc.want {
			t.Fatalf("FromTea(%v) = %q, want %q", tc.msg, got, tc.want)
		}
	}
}
