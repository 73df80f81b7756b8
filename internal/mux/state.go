// Package mux owns the pane tree, the selected pane and the interaction
// mode, and drives every pane's pty session from the UI loop.
package mux

import (
	"log/slog"
	"time"

	"github.com/regenrek/taskpit/internal/input"
	"github.com/regenrek/taskpit/internal/layout"
	"github.com/regenrek/taskpit/internal/limits"
	"github.com/regenrek/taskpit/internal/terminal"
	"github.com/regenrek/taskpit/internal/vterm"
)

// session is the part of *terminal.Session the multiplexer uses.
type session interface {
	WriteInput([]byte) error
	Resize(rows, cols int) error
	PollOutput() int
	CheckExit() bool
	ExitCode() int
	ScrollbackLen() int
	SetScrollbackOffset(n int)
	Screen() vterm.Grid
	Cursor() (row, col int, visible bool)
	SnapshotLines(maxLines int) []string
	PID() int
	Close() error
}

var spawnSession = func(opts terminal.Options) (session, error) {
	s, err := terminal.Spawn(opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// LaunchMode selects how a task pane starts its agent.
type LaunchMode string

const (
	// LaunchType starts the user's shell and types the agent command into it.
	LaunchType LaunchMode = "type"
	// LaunchExec runs the agent command directly and execs the shell after it.
	LaunchExec LaunchMode = "exec"
)

// Options configures a State.
type Options struct {
	// Shell overrides $SHELL for new panes.
	Shell string
	Env   []string

	DefaultRows int
	DefaultCols int

	Constraints     layout.Constraints
	ScrollbackLines int

	// EnterDelay separates typed text from its carriage return in
	// SendInputToInstance.
	EnterDelay time.Duration

	AgentCommand string
	AgentLaunch  LaunchMode
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		DefaultRows: limits.DefaultRows,
		DefaultCols: limits.DefaultCols,
		Constraints: layout.DefaultConstraints(),
		EnterDelay:  50 * time.Millisecond,
		AgentLaunch: LaunchType,
	}
}

// State is the multiplexer. It is driven from a single UI goroutine and is
// not safe for concurrent use.
type State struct {
	opts Options

	engine   *layout.Engine
	panes    map[string]*Pane
	selected string
	mode     input.Mode

	// activityOffset is the first visible event in the activity summary.
	activityOffset int

	lastArea layout.Rect
	hasArea  bool
	areas    []layout.PaneArea

	now   func() time.Time
	sleep func(time.Duration)
	newID func() string
}

// New returns an empty multiplexer in Normal mode.
func New(opts Options) *State {
	if opts.DefaultRows <= 0 {
		opts.DefaultRows = limits.DefaultRows
	}
	if opts.DefaultCols <= 0 {
		opts.DefaultCols = limits.DefaultCols
	}
	if opts.Constraints == (layout.Constraints{}) {
		opts.Constraints = layout.DefaultConstraints()
	}
	if opts.AgentLaunch == "" {
		opts.AgentLaunch = LaunchType
	}
	engine := layout.NewEngine(nil)
	engine.Constraints = opts.Constraints
	return &State{
		opts:   opts,
		engine: engine,
		panes:  make(map[string]*Pane),
		now:    time.Now,
		sleep:  time.Sleep,
		newID:  newPaneID,
	}
}

// Mode returns the interaction mode.
func (s *State) Mode() input.Mode { return s.mode }

// Selected returns the selected pane id, or "" when there are no panes.
func (s *State) Selected() string { return s.selected }

// SelectedPane returns the selected pane or nil.
func (s *State) SelectedPane() *Pane { return s.panes[s.selected] }

// PaneIDs returns pane ids in stable tree order.
func (s *State) PaneIDs() []string { return layout.PaneIDs(s.engine.Root) }

func (s *State) PaneCount() int { return layout.Count(s.engine.Root) }

// FindPane returns the pane with id, or nil.
func (s *State) FindPane(id string) *Pane { return s.panes[id] }

// Zoomed returns the zoomed pane id, or "".
func (s *State) Zoomed() string { return s.engine.Zoomed }

// SetEnterDelay changes the pause used by SendInputToInstance.
func (s *State) SetEnterDelay(d time.Duration) {
	if d >= 0 {
		s.opts.EnterDelay = d
	}
}

// SetPaneState sets the lifecycle state of a pane, e.g. from an agent hook.
func (s *State) SetPaneState(id string, state PaneState) bool {
	p := s.panes[id]
	if p == nil {
		return false
	}
	if p.State != state {
		p.State = state
		p.record(s.now(), ActivityState, state.String())
	}
	return true
}

// MarkViewed records that the user looked at the pane.
func (s *State) MarkViewed(id string) bool {
	p := s.panes[id]
	if p == nil {
		return false
	}
	p.LastViewedAt = s.now()
	return true
}

// Close ends every session. The tree is kept so the layout can still be
// persisted.
func (s *State) Close() {
	for _, id := range s.PaneIDs() {
		p := s.panes[id]
		if p == nil || p.session == nil {
			continue
		}
		if err := p.session.Close(); err != nil {
			slog.Debug("mux: close session", slog.String("pane_id", id), slog.Any("err", err))
		}
		p.session = nil
	}
}
