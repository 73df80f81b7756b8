package limits

const (
	// ScrollbackLinesDefault is the per-pane history kept above the live screen.
	ScrollbackLinesDefault = 10000
	// ScrollbackLinesMax bounds config overrides.
	ScrollbackLinesMax = 200000

	// PTYReadBufferBytes sizes the reader goroutine buffer.
	PTYReadBufferBytes = 4096

	// PayloadInspectLimit bounds how many bytes are hashed when redacting logs.
	PayloadInspectLimit = 4096

	// ActivityEventsMax bounds the per-pane activity ring.
	ActivityEventsMax = 100
)

// ScrollbackLines resolves a configured line budget. 0 selects the default,
// negative disables scrollback.
func ScrollbackLines(configured int) int {
	switch {
	case configured == 0:
		return ScrollbackLinesDefault
	case configured < 0:
		return 0
	case configured > ScrollbackLinesMax:
		return ScrollbackLinesMax
	default:
		return configured
	}
}
