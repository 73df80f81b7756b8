package mux

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/regenrek/taskpit/internal/agent"
	"github.com/regenrek/taskpit/internal/layout"
	"github.com/regenrek/taskpit/internal/logging"
	"github.com/regenrek/taskpit/internal/terminal"
)

func newPaneID() string { return uuid.NewString() }

// TaskSpec describes the task a pane is created for.
type TaskSpec struct {
	ID          string
	Title       string
	Description string
	WorkingDir  string
	Provider    agent.Provider
}

// CreatePane adds a shell pane, selects it and returns its id. rows and
// cols are used only when no layout area is known yet. A pane whose shell
// fails to start is still created, without a session. It returns "" when
// the layout has no pane large enough to split.
func (s *State) CreatePane(rows, cols int) string {
	p := s.insertPane(rows, cols, "", func(p *Pane) terminal.Options {
		return s.spawnOptions(p)
	})
	if p == nil {
		return ""
	}
	return p.ID
}

// CreatePaneForTask adds a pane that starts the task's coding agent, then
// marks it Running. Like CreatePane it returns "" when there is no room.
func (s *State) CreatePaneForTask(task TaskSpec, rows, cols int) string {
	provider := task.Provider
	if provider == "" {
		provider = agent.DefaultProvider
	}
	prompt := agent.BuildTaskPrompt(task.Title, task.Description)
	cmd, cmdErr := agent.BuildCommand(provider, s.opts.AgentCommand, prompt)

	p := s.insertPane(rows, cols, task.WorkingDir, func(p *Pane) terminal.Options {
		p.TaskID = task.ID
		p.Provider = provider
		p.Name = task.Title
		opts := s.spawnOptions(p)
		if cmdErr == nil && s.launchMode(cmd) == LaunchExec {
			opts.Command, opts.Args = cmd.ShellWrapped()
			p.Command = cmd.Program
		}
		return opts
	})
	if p == nil {
		return ""
	}

	switch {
	case cmdErr != nil:
		slog.Warn("mux: agent command", slog.String("pane_id", p.ID), slog.Any("err", cmdErr))
		p.record(s.now(), ActivitySpawnFailed, cmdErr.Error())
	case p.session == nil:
	case s.launchMode(cmd) == LaunchExec:
		s.markAgentStarted(p, cmd)
	default:
		if s.SendInputToInstance(p.ID, cmd.String()) {
			s.markAgentStarted(p, cmd)
		}
	}
	return p.ID
}

// launchMode is the configured launch mode, except that a command line
// spanning several lines is never typed: the shell would treat each line
// as a continuation prompt.
func (s *State) launchMode(cmd agent.Command) LaunchMode {
	if s.opts.AgentLaunch == LaunchType && strings.ContainsAny(cmd.String(), "\r\n") {
		return LaunchExec
	}
	return s.opts.AgentLaunch
}

func (s *State) markAgentStarted(p *Pane, cmd agent.Command) {
	p.State = StateRunning
	p.record(s.now(), ActivityAgent, logging.SanitizeCommand(cmd.String()))
	slog.Info("mux: agent started",
		slog.String("pane_id", p.ID),
		slog.String("task_id", p.TaskID),
		slog.String("provider", string(p.Provider)),
	)
}

func (s *State) spawnOptions(p *Pane) terminal.Options {
	return terminal.Options{
		ID:              p.ID,
		Command:         s.opts.Shell,
		Dir:             p.WorkingDir,
		Env:             s.opts.Env,
		Rows:            p.Rows,
		Cols:            p.Cols,
		ScrollbackLines: s.opts.ScrollbackLines,
	}
}

// insertPane plans where the pane goes, spawns its session at the size it
// will get, then commits the tree change and selects it. It returns nil,
// without spawning, when the split is refused.
func (s *State) insertPane(rows, cols int, dir string, options func(*Pane) terminal.Options) *Pane {
	id := s.newID()
	op, ok := s.planSplit(id)
	if !ok {
		slog.Info("mux: no room for a new pane", slog.Int("panes", s.PaneCount()))
		return nil
	}
	plan := &layout.Engine{Root: s.engine.Root.Clone(), Constraints: s.engine.Constraints}
	if _, err := plan.Apply(op); err != nil {
		slog.Warn("mux: planned split failed", slog.Any("err", err))
		return nil
	}

	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	p := &Pane{
		ID:         id,
		WorkingDir: dir,
		CreatedAt:  s.now(),
	}
	p.Rows, p.Cols = s.newPaneSize(plan, id, rows, cols)
	p.record(p.CreatedAt, ActivityCreated, "")

	sess, err := spawnSession(options(p))
	if err != nil {
		p.SpawnError = err.Error()
		p.record(s.now(), ActivitySpawnFailed, p.SpawnError)
		slog.Warn("mux: pane spawn failed", slog.String("pane_id", id), slog.Any("err", err))
	} else {
		p.session = sess
	}

	if _, err := s.engine.Apply(op); err != nil {
		// Unreachable while plan and engine agree.
		slog.Error("mux: insert pane", slog.String("pane_id", id), slog.Any("err", err))
		if p.session != nil {
			_ = p.session.Close()
		}
		return nil
	}
	s.panes[id] = p
	s.selected = id
	if s.hasArea {
		s.Layout(s.lastArea)
	}
	return p
}

// planSplit picks the largest pane and the axis its shape suggests. Once a
// layout area is known, a largest pane too small to halve refuses the
// split. Before that the stand-in area only steers the axis.
func (s *State) planSplit(newID string) (layout.SplitOp, bool) {
	op := layout.SplitOp{NewPaneID: newID, Ratio: layout.DefaultSplitRatio()}
	if s.engine.Root == nil {
		return op, true
	}
	target, ok := layout.Largest(layout.ComputeAreas(s.container(), s.engine.Root))
	if !ok {
		return op, false
	}
	op.PaneID = target.PaneID
	dir, ok := s.opts.Constraints.ChooseSplitDirection(target.Rect)
	if !ok {
		if s.hasArea {
			return op, false
		}
		dir = s.wideAxis(target.Rect)
	}
	op.Direction = dir
	return op, true
}

func (s *State) wideAxis(r layout.Rect) layout.Direction {
	if r.H == 0 || float64(r.W) >= float64(r.H)*s.opts.Constraints.AspectRatio {
		return layout.Horizontal
	}
	return layout.Vertical
}

// container is the last render area, or a stand-in sized for the default
// pane dimensions plus borders.
func (s *State) container() layout.Rect {
	if s.hasArea {
		return s.lastArea
	}
	return layout.Rect{W: s.opts.DefaultCols + 2, H: s.opts.DefaultRows + 2}
}

func (s *State) newPaneSize(plan *layout.Engine, id string, rows, cols int) (int, int) {
	if rows <= 0 {
		rows = s.opts.DefaultRows
	}
	if cols <= 0 {
		cols = s.opts.DefaultCols
	}
	if !s.hasArea {
		return rows, cols
	}
	rect, ok := layout.AreaOf(plan.Areas(s.lastArea), id)
	if !ok {
		return rows, cols
	}
	inner := rect.Inner()
	return max(inner.H, 1), max(inner.W, 1)
}

// RespawnPane starts a fresh shell for a pane that has no session or whose
// process has finished.
func (s *State) RespawnPane(id string) bool {
	p := s.panes[id]
	if p == nil {
		return false
	}
	if p.session != nil {
		if p.State != StateDone {
			return false
		}
		_ = p.session.Close()
		p.session = nil
	}
	sess, err := spawnSession(s.spawnOptions(p))
	if err != nil {
		p.SpawnError = err.Error()
		p.record(s.now(), ActivitySpawnFailed, p.SpawnError)
		slog.Warn("mux: pane respawn failed", slog.String("pane_id", id), slog.Any("err", err))
		return false
	}
	p.session = sess
	p.SpawnError = ""
	p.Snapshot = nil
	p.ScrollOffset = 0
	p.State = StateIdle
	p.record(s.now(), ActivityCreated, fmt.Sprintf("respawned %dx%d", p.Cols, p.Rows))
	return true
}
