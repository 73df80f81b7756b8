package input

import "testing"

func TestEncode(t *testing.T) {
	cases := []struct {
		name string
		ev   KeyEvent
		want string
	}{
		{"printable", Runes("a"), "a"},
		{"utf8", Runes("é"), "é"},
		{"ctrl-a", KeyEvent{Code: KeyRunes, Text: "a", Mod: ModCtrl}, "\x01"},
		{"ctrl-z", KeyEvent{Code: KeyRunes, Text: "z", Mod: ModCtrl}, "\x1a"},
		{"ctrl-bracket", KeyEvent{Code: KeyRunes, Text: "]", Mod: ModCtrl}, "\x1d"},
		{"alt-x", KeyEvent{Code: KeyRunes, Text: "x", Mod: ModAlt}, "\x1bx"},
		{"enter", KeyEvent{Code: KeyEnter}, "\r"},
		{"tab", KeyEvent{Code: KeyTab}, "\t"},
		{"backtab", KeyEvent{Code: KeyTab, Mod: ModShift}, "\x1b[Z"},
		{"backspace", KeyEvent{Code: KeyBackspace}, "\x7f"},
		{"esc", KeyEvent{Code: KeyEsc}, "\x1b"},
		{"space", KeyEvent{Code: KeySpace}, " "},
		{"ctrl-space", KeyEvent{Code: KeySpace, Mod: ModCtrl}, "\x00"},
		{"up", KeyEvent{Code: KeyUp}, "\x1b[A"},
		{"left", KeyEvent{Code: KeyLeft}, "\x1b[D"},
		{"ctrl-up", KeyEvent{Code: KeyUp, Mod: ModCtrl}, "\x1b[1;5A"},
		{"alt-up", KeyEvent{Code: KeyUp, Mod: ModAlt}, "\x1b[1;3A"},
		{"home", KeyEvent{Code: KeyHome}, "\x1b[H"},
		{"end", KeyEvent{Code: KeyEnd}, "\x1b[F"},
		{"pgup", KeyEvent{Code: KeyPgUp}, "\x1b[5~"},
		{"pgdown", KeyEvent{Code: KeyPgDown}, "\x1b[6~"},
		{"ctrl-pgdown", KeyEvent{Code: KeyPgDown, Mod: ModCtrl}, "\x1b[6;5~"},
		{"delete", KeyEvent{Code: KeyDelete}, "\x1b[3~"},
		{"insert", KeyEvent{Code: KeyInsert}, "\x1b[2~"},
		{"f1", KeyEvent{Code: KeyF1}, "\x1bOP"},
		{"f12", KeyEvent{Code: KeyF12}, "\x1b[24~"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(Encode(tc.ev)); got != tc.want {
				t.Fatalf("Encode = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEncodeUnmappedIsDropped(t *testing.T) {
	for _, ev := range []KeyEvent{
		{},
		{Code: KeyRunes},
		{Code: KeyRunes, Text: "é", Mod: ModCtrl},
	} {
		if got := Encode(ev); got != nil {
			t.Fatalf("Encode(%+v) = %q, want nil", ev, got)
		}
	}
}
