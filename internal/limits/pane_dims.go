package limits

import "fmt"

const (
	PaneMaxCols = 500
	PaneMaxRows = 200

	// PaneMinCols and PaneMinRows are the smallest inner sizes a pane is
	// resized at. The multiplexer records anything smaller as 0x0.
	PaneMinCols = 2
	PaneMinRows = 1

	DefaultRows = 24
	DefaultCols = 80
)

type DimensionError struct {
	Cols, Rows       int
	MaxCols, MaxRows int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimensions %dx%d exceed max %dx%d", e.Cols, e.Rows, e.MaxCols, e.MaxRows)
}

func Normalize(cols, rows int) (int, int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func Clamp(cols, rows int) (int, int) {
	cols, rows = Normalize(cols, rows)
	if cols > PaneMaxCols {
		cols = PaneMaxCols
	}
	if rows > PaneMaxRows {
		rows = PaneMaxRows
	}
	return cols, rows
}

// Usable reports whether an inner pane size is large enough to host a PTY.
func Usable(cols, rows int) bool {
	return cols >= PaneMinCols && rows >= PaneMinRows
}

func ValidateMax(cols, rows int) error {
	cols, rows = Normalize(cols, rows)
	if cols > PaneMaxCols || rows > PaneMaxRows {
		return &DimensionError{Cols: cols, Rows: rows, MaxCols: PaneMaxCols, MaxRows: PaneMaxRows}
	}
	return nil
}
