package terminal

import (
	"errors"
	"fmt"
)

// ErrPaneClosed indicates the session can no longer accept input.
var ErrPaneClosed = errors.New("pane closed")

// PaneClosedReason describes why a session stopped accepting input.
type PaneClosedReason int32

const (
	PaneClosedUnknown PaneClosedReason = iota
	PaneClosedProcessExited
	PaneClosedPTYClosed
	PaneClosedSessionClosed
	PaneClosedBroken
)

// PaneClosedError reports a pane-closed condition without exposing low-level I/O details.
type PaneClosedError struct {
	Reason PaneClosedReason
	Cause  error
}

func (e *PaneClosedError) Error() string {
	switch e.Reason {
	case PaneClosedProcessExited:
		return "pane closed (process exited)"
	case PaneClosedPTYClosed:
		return "pane closed (pty disconnected)"
	case PaneClosedBroken:
		return "pane closed (emulator failed)"
	default:
		return "pane closed"
	}
}

func (e *PaneClosedError) Unwrap() error { return e.Cause }

func (e *PaneClosedError) Is(target error) bool { return target == ErrPaneClosed }

// SpawnStage names the step of Spawn that failed.
type SpawnStage string

const (
	SpawnStageOptions SpawnStage = "options"
	SpawnStagePTY     SpawnStage = "pty"
	SpawnStageStart   SpawnStage = "start"
)

// SpawnError reports that a pty or its process could not be started. The
// pane survives without a session.
type SpawnError struct {
	Stage   SpawnStage
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("terminal: spawn %s (%s): %v", e.Command, e.Stage, e.Err)
	}
	return fmt.Sprintf("terminal: spawn (%s): %v", e.Stage, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }
