package mux

import (
	"fmt"
	"strings"
	"time"

	"github.com/regenrek/taskpit/internal/agent"
	"github.com/regenrek/taskpit/internal/limits"
)

// PaneState is the agent lifecycle shown for a pane. Hooks may set it from
// outside; the multiplexer itself only moves panes to Running and Done.
type PaneState int

const (
	StateIdle PaneState = iota
	StateRunning
	StateNeedsPermissions
	StateDone
)

func (s PaneState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateNeedsPermissions:
		return "needs_permissions"
	case StateDone:
		return "done"
	default:
		return "idle"
	}
}

// ParsePaneState accepts the String form of a state.
func ParsePaneState(value string) (PaneState, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "idle":
		return StateIdle, nil
	case "running":
		return StateRunning, nil
	case "needs_permissions", "needs-permissions", "permissions":
		return StateNeedsPermissions, nil
	case "done":
		return StateDone, nil
	default:
		return StateIdle, fmt.Errorf("unknown pane state %q", value)
	}
}

// ActivityKind classifies a pane activity event.
type ActivityKind string

const (
	ActivityCreated     ActivityKind = "created"
	ActivitySpawnFailed ActivityKind = "spawn_failed"
	ActivityAgent       ActivityKind = "agent_started"
	ActivityState       ActivityKind = "state"
	ActivityInput       ActivityKind = "input"
	ActivityExited      ActivityKind = "exited"
)

// ActivityEvent is one entry in a pane's activity log.
type ActivityEvent struct {
	At     time.Time
	Kind   ActivityKind
	Detail string
}

// activityRing keeps the most recent limits.ActivityEventsMax events.
type activityRing struct {
	events []ActivityEvent
	head   int
}

func (r *activityRing) add(ev ActivityEvent) {
	if len(r.events) < limits.ActivityEventsMax {
		r.events = append(r.events, ev)
		return
	}
	r.events[r.head] = ev
	r.head = (r.head + 1) % len(r.events)
}

// list returns events oldest first.
func (r *activityRing) list() []ActivityEvent {
	out := make([]ActivityEvent, 0, len(r.events))
	out = append(out, r.events[r.head:]...)
	return append(out, r.events[:r.head]...)
}

// Pane is one terminal view in the layout tree.
type Pane struct {
	ID         string
	Name       string
	WorkingDir string
	Command    string

	// Rows and Cols are the inner size of the rect the last layout pass gave
	// the pane.
	Rows int
	Cols int

	State        PaneState
	ScrollOffset int

	// Snapshot is the text shown when there is no session, e.g. after a
	// restore.
	Snapshot   []string
	SpawnError string
	ExitCode   int

	TaskID   string
	Provider agent.Provider

	CreatedAt    time.Time
	LastViewedAt time.Time

	session  session
	activity activityRing
}

// HasSession reports whether a live pty session backs the pane.
func (p *Pane) HasSession() bool { return p != nil && p.session != nil }

// Failed reports whether the pane never got a session.
func (p *Pane) Failed() bool { return p != nil && p.session == nil && p.SpawnError != "" }

// Activity returns the recorded events, oldest first.
func (p *Pane) Activity() []ActivityEvent {
	if p == nil {
		return nil
	}
	return p.activity.list()
}

// Unread reports whether anything happened since the pane was last viewed.
func (p *Pane) Unread() bool {
	if p == nil || len(p.activity.events) == 0 {
		return false
	}
	events := p.activity.list()
	return events[len(events)-1].At.After(p.LastViewedAt)
}

// Title is the label shown in the pane border.
func (p *Pane) Title() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	if p.Provider != "" {
		return p.Provider.DisplayName()
	}
	if p.Command != "" {
		return p.Command
	}
	if len(p.ID) > 8 {
		return p.ID[:8]
	}
	return p.ID
}

func (p *Pane) record(at time.Time, kind ActivityKind, detail string) {
	p.activity.add(ActivityEvent{At: at, Kind: kind, Detail: detail})
}
