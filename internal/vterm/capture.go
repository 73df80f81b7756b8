package vterm

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// The emulator drops lines that scroll off its top edge. VT runs a second
// parser over the same bytes and holds the emulator back right before every
// sequence that can scroll the main screen, so row 0 can be copied out while
// it is still there. Bytes between those points reach the emulator in one
// write.

const zeroWidthJoiner = 0x200D

// margins mirrors the main screen's DECSTBM region. A zero bottom means the
// screen height.
type margins struct {
	top, bottom int
}

func (v *VT) newShadowParser() *ansi.Parser {
	p := ansi.NewParser()
	// String payloads (OSC, DCS) are never inspected.
	p.SetDataSize(256)
	p.SetHandler(ansi.Handler{
		Print:     v.shadowPrint,
		Execute:   v.shadowExecute,
		HandleCsi: v.shadowCsi,
		HandleEsc: v.shadowEsc,
	})
	return p
}

// flushTo writes the current chunk up to, not including, end.
func (v *VT) flushTo(end int) {
	if end <= v.written {
		return
	}
	_, _ = v.term.Write(v.chunk[v.written:end])
	v.written = end
}

func (v *VT) shadowExecute(b byte) {
	v.prev, v.riOpen = 0, false
	switch b {
	case ansi.LF, ansi.VT, ansi.FF, ansi.IND:
		v.flushTo(v.pos)
		v.captureIndex()
	}
}

func (v *VT) shadowEsc(cmd ansi.Cmd) {
	v.prev, v.riOpen = 0, false
	if cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
		return
	}
	switch cmd.Final() {
	case 'D': // IND
		v.flushTo(v.pos)
		v.captureIndex()
	case 'c': // RIS
		v.margins = margins{}
	}
}

func (v *VT) shadowCsi(cmd ansi.Cmd, params ansi.Params) {
	v.prev, v.riOpen = 0, false
	if cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
		return
	}
	switch cmd.Final() {
	case 'S': // SU
		v.flushTo(v.pos)
		n, _, _ := params.Param(0, 1)
		v.captureRows(n)
	case 'r': // DECSTBM
		v.flushTo(v.pos)
		v.setMargins(params)
	}
}

// shadowPrint checks the one print that can scroll: a cluster written while
// the cursor waits at the right edge of the bottom margin.
func (v *VT) shadowPrint(r rune) {
	if !v.startsCluster(r) {
		return
	}
	v.flushTo(v.pos)
	if !v.capturesTop() {
		return
	}
	before := v.term.CursorPosition()
	if before.Y != v.scrollBottom()-1 || before.X < v.term.Width()-1 {
		return
	}
	top := v.liveRow(0)
	v.flushTo(v.pos + 1)
	// Without a pending wrap the cursor stays on the last column.
	if after := v.term.CursorPosition(); after.Y == before.Y && after.X < before.X {
		v.pushHistory(top)
	}
}

// startsCluster reports whether r begins a new grapheme cluster. Writes are
// only split at cluster starts so the emulator never sees half a cluster.
func (v *VT) startsCluster(r rune) bool {
	prev := v.prev
	v.prev = r
	switch {
	case r < utf8.RuneSelf:
		v.riOpen = false
		return true
	case prev == zeroWidthJoiner:
		return false
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators pair up
		open := v.riOpen
		v.riOpen = !open
		return !open
	}
	v.riOpen = false
	return runewidth.RuneWidth(r) > 0
}

// capturesTop reports whether a scroll right now moves row 0 into history.
// Scrolling on the alternate screen or inside a region that does not start
// at the top never does.
func (v *VT) capturesTop() bool {
	return v.margins.top == 0 && !v.term.IsAltScreen()
}

func (v *VT) scrollBottom() int {
	if v.margins.bottom > 0 {
		return v.margins.bottom
	}
	return v.term.Height()
}

// captureIndex runs before a line feed or IND, which scroll only from the
// bottom margin.
func (v *VT) captureIndex() {
	if !v.capturesTop() {
		return
	}
	if v.term.CursorPosition().Y != v.scrollBottom()-1 {
		return
	}
	v.pushHistory(v.liveRow(0))
}

// captureRows runs before SU, which scrolls the region by n regardless of
// the cursor.
func (v *VT) captureRows(n int) {
	if !v.capturesTop() {
		return
	}
	n = min(n, v.scrollBottom(), v.term.Height())
	for y := 0; y < n; y++ {
		v.pushHistory(v.liveRow(y))
	}
}

// setMargins applies DECSTBM the way the emulator does, including its
// handling of out-of-range values.
func (v *VT) setMargins(params ansi.Params) {
	if v.term.IsAltScreen() {
		return
	}
	h := v.term.Height()
	top, _, _ := params.Param(0, 1)
	top = max(top, 1)
	bottom, _, _ := params.Param(1, h)
	if bottom < 1 {
		bottom = h
	}
	if top >= bottom {
		return
	}
	v.margins = margins{top: top - 1, bottom: bottom}
}
