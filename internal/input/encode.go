package input

import "strconv"

var keySequences = map[Key][]byte{
	KeyEnter:     {'\r'},
	KeyTab:       {'\t'},
	KeyEsc:       {0x1b},
	KeyBackspace: {0x7f},
	KeySpace:     {' '},
}

// cursorKeys end in a final byte and take modifiers as "\x1b[1;<m><final>".
var cursorKeys = map[Key]byte{
	KeyUp:    'A',
	KeyDown:  'B',
	KeyRight: 'C',
	KeyLeft:  'D',
	KeyHome:  'H',
	KeyEnd:   'F',
}

// tildeKeys are "\x1b[<n>~" and take modifiers as "\x1b[<n>;<m>~".
var tildeKeys = map[Key]int{
	KeyInsert: 2,
	KeyDelete: 3,
	KeyPgUp:   5,
	KeyPgDown: 6,
	KeyF5:     15,
	KeyF6:     17,
	KeyF7:     18,
	KeyF8:     19,
	KeyF9:     20,
	KeyF10:    21,
	KeyF11:    23,
	KeyF12:    24,
}

var ss3Keys = map[Key]byte{
	KeyF1: 'P',
	KeyF2: 'Q',
	KeyF3: 'R',
	KeyF4: 'S',
}

// Encode returns the bytes a terminal program receives for ev, or nil when
// the key has no encoding.
func Encode(ev KeyEvent) []byte {
	switch ev.Code {
	case KeyRunes:
		return encodeRunes(ev)
	case KeySpace:
		if ev.Mod.Has(ModCtrl) {
			return withAlt(ev, []byte{0x00})
		}
	case KeyTab:
		if ev.Mod.Has(ModShift) {
			return []byte("\x1b[Z")
		}
	}

	if final, ok := cursorKeys[ev.Code]; ok {
		if m := xtermModifier(ev.Mod); m > 1 {
			return []byte("\x1b[1;" + strconv.Itoa(m) + string(final))
		}
		return []byte{0x1b, '[', final}
	}
	if n, ok := tildeKeys[ev.Code]; ok {
		seq := "\x1b[" + strconv.Itoa(n)
		if m := xtermModifier(ev.Mod); m > 1 {
			seq += ";" + strconv.Itoa(m)
		}
		return []byte(seq + "~")
	}
	if final, ok := ss3Keys[ev.Code]; ok {
		if m := xtermModifier(ev.Mod); m > 1 {
			return []byte("\x1b[1;" + strconv.Itoa(m) + string(final))
		}
		return []byte{0x1b, 'O', final}
	}
	if seq, ok := keySequences[ev.Code]; ok {
		return withAlt(ev, seq)
	}
	return nil
}

func encodeRunes(ev KeyEvent) []byte {
	if ev.Text == "" {
		return nil
	}
	if ev.Mod.Has(ModCtrl) {
		b, ok := ctrlByte(ev.Text)
		if !ok {
			return nil
		}
		return withAlt(ev, []byte{b})
	}
	return withAlt(ev, []byte(ev.Text))
}

// ctrlByte maps ctrl+<key> to its C0 control code: ctrl+a is 0x01.
func ctrlByte(text string) (byte, bool) {
	if len(text) != 1 {
		return 0, false
	}
	ch := text[0]
	switch {
	case ch >= 'a' && ch <= 'z':
		return ch - 'a' + 1, true
	case ch >= 'A' && ch <= 'Z':
		return ch - 'A' + 1, true
	}
	switch ch {
	case '@', ' ', '2':
		return 0x00, true
	case '[', '3':
		return 0x1b, true
	case '\\', '4':
		return 0x1c, true
	case ']', '5':
		return 0x1d, true
	case '^', '6':
		return 0x1e, true
	case '_', '7', '/':
		return 0x1f, true
	case '?', '8':
		return 0x7f, true
	}
	return 0, false
}

func withAlt(ev KeyEvent, seq []byte) []byte {
	if !ev.Mod.Has(ModAlt) {
		return seq
	}
	out := make([]byte, 0, len(seq)+1)
	out = append(out, 0x1b)
	return append(out, seq...)
}

// xtermModifier is the xterm modifier parameter: 1 + shift(1) + alt(2) +
// ctrl(4).
func xtermModifier(mod Mod) int {
	m := 1
	if mod.Has(ModShift) {
		m++
	}
	if mod.Has(ModAlt) {
		m += 2
	}
	if mod.Has(ModCtrl) {
		m += 4
	}
	return m
}
