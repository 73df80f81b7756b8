// Package input turns keyboard events into multiplexer actions or the bytes
// a terminal program expects.
package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// Key identifies a key independent of modifiers. Printable input uses
// KeyRunes with the text in KeyEvent.Text.
type Key int

const (
	KeyNone Key = iota
	KeyRunes
	KeySpace
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyDelete
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeySpace:     "space",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyEsc:       "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

var keysByName = func() map[string]Key {
	out := make(map[string]Key, len(keyNames)+3)
	for k, name := range keyNames {
		out[name] = k
	}
	out["escape"] = KeyEsc
	out["pageup"] = KeyPgUp
	out["pagedown"] = KeyPgDown
	return out
}()

// Mod is a set of modifier keys.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
)

func (m Mod) Has(mod Mod) bool { return m&mod != 0 }

// KeyEvent is one key press.
type KeyEvent struct {
	Code Key
	Text string
	Mod  Mod
}

// Runes returns a printable key event.
func Runes(text string) KeyEvent { return KeyEvent{Code: KeyRunes, Text: text} }

// String renders the event in bubbletea keystroke notation ("ctrl+a",
// "shift+tab", "G") so key bindings can be matched against it.
func (e KeyEvent) String() string {
	var b strings.Builder
	if e.Mod.Has(ModCtrl) {
		b.WriteString("ctrl+")
	}
	if e.Mod.Has(ModAlt) {
		b.WriteString("alt+")
	}
	if e.Mod.Has(ModShift) {
		b.WriteString("shift+")
	}
	if e.Code == KeyRunes {
		b.WriteString(e.Text)
		return b.String()
	}
	if name, ok := keyNames[e.Code]; ok {
		b.WriteString(name)
		return b.String()
	}
	return ""
}

// ParseKey parses a keystroke like "ctrl+shift+left", "G" or "esc".
func ParseKey(raw string) (KeyEvent, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		if raw == " " {
			return KeyEvent{Code: KeySpace}, nil
		}
		return KeyEvent{}, fmt.Errorf("invalid key %q (empty)", raw)
	}

	var base string
	var modParts []string
	switch {
	case value == "+":
		base = "+"
	case strings.HasSuffix(value, "++"):
		base = "+"
		modParts = strings.Split(strings.TrimSuffix(value, "++"), "+")
	default:
		parts := strings.Split(value, "+")
		base = parts[len(parts)-1]
		modParts = parts[:len(parts)-1]
	}
	if base == "" {
		return KeyEvent{}, fmt.Errorf("invalid key %q (missing base key)", raw)
	}

	var ev KeyEvent
	for _, part := range modParts {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "ctrl", "control":
			ev.Mod |= ModCtrl
		case "alt", "option", "meta":
			ev.Mod |= ModAlt
		case "shift":
			ev.Mod |= ModShift
		default:
			return KeyEvent{}, invalidKeyError(raw)
		}
	}

	if code, ok := keysByName[strings.ToLower(base)]; ok {
		ev.Code = code
		return ev, nil
	}
	if utf8.RuneCountInString(base) != 1 {
		return KeyEvent{}, invalidKeyError(raw)
	}
	ev.Code = KeyRunes
	ev.Text = base
	if ev.Mod.Has(ModCtrl) {
		ev.Text = strings.ToLower(base)
	}
	return ev, nil
}

func invalidKeyError(raw string) error {
	return fmt.Errorf(
		"invalid key %q (use a single character like \"k\", combos like \"ctrl+d\", or named keys like \"tab\", \"enter\", \"esc\", \"up\")",
		raw,
	)
}

// FromTea converts a bubbletea key message.
func FromTea(msg tea.KeyMsg) KeyEvent {
	var mod Mod
	if msg.Alt {
		mod |= ModAlt
	}
	switch msg.Type {
	case tea.KeyRunes:
		return KeyEvent{Code: KeyRunes, Text: string(msg.Runes), Mod: mod}
	case tea.KeySpace:
		return KeyEvent{Code: KeySpace, Mod: mod}
	case tea.KeyShiftTab:
		return KeyEvent{Code: KeyTab, Mod: mod | ModShift}
	}
	ev, err := ParseKey(strings.TrimPrefix(msg.String(), "alt+"))
	if err != nil {
		return KeyEvent{}
	}
	ev.Mod |= mod
	return ev
}
