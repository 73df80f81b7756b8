package logging

import "strings"

type Mode uint8

const (
	ModeCLI Mode = iota + 1
	// ModeTUI owns the terminal, so logs must never reach stderr.
	ModeTUI
)

// ModeFromArgs picks the mode for a process invocation. The bare binary and
// the run command start the multiplexer UI.
func ModeFromArgs(args []string) Mode {
	if len(args) < 2 {
		return ModeTUI
	}
	for _, arg := range args[1:] {
		arg = strings.ToLower(strings.TrimSpace(arg))
		if arg == "" || strings.HasPrefix(arg, "-") {
			continue
		}
		if arg == "run" {
			return ModeTUI
		}
		return ModeCLI
	}
	return ModeTUI
}

func (m Mode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	default:
		return "cli"
	}
}
