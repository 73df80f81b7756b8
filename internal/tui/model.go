// Package tui hosts the multiplexer in a bubbletea program: it feeds window
// sizes and keys to mux.State, polls pane output on a tick and paints the
// pane views.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/regenrek/taskpit/internal/appconfig"
	"github.com/regenrek/taskpit/internal/input"
	"github.com/regenrek/taskpit/internal/layout"
	"github.com/regenrek/taskpit/internal/mux"
	"github.com/regenrek/taskpit/internal/profiling"
	"github.com/regenrek/taskpit/internal/sessionstore"
	"github.com/regenrek/taskpit/internal/tui/theme"
)

const (
	// DefaultTick is how often pane output is drained (~60 fps).
	DefaultTick = 16 * time.Millisecond
	// DefaultSaveEvery spaces background saves of the pane tree.
	DefaultSaveEvery = 30 * time.Second
)

// Options configures a Model.
type Options struct {
	State  *mux.State
	Keymap *input.Keymap
	// Config enables live keymap reload when set.
	Config *appconfig.Loader
	// Store enables periodic saves when set.
	Store     *sessionstore.Store
	Profile   colorprofile.Profile
	Tick      time.Duration
	SaveEvery time.Duration
}

type tickMsg time.Time

type configChangedMsg struct{}

type savedMsg struct{ err error }

// Model is the bubbletea model.
type Model struct {
	state   *mux.State
	router  *input.Router
	help    help.Model
	loader  *appconfig.Loader
	store   *sessionstore.Store
	profile colorprofile.Profile

	tick      time.Duration
	saveEvery time.Duration
	lastSave  time.Time

	width  int
	height int

	status    string
	statusErr bool
	quitting  bool

	reload chan struct{}
	done   <-chan struct{}
	cancel context.CancelFunc
}

// New builds the model. It starts watching the config file when
// opts.Config is set; call Close when the program ends.
func New(opts Options) (*Model, error) {
	if opts.State == nil {
		return nil, errors.New("tui: state is required")
	}
	if opts.Keymap == nil {
		opts.Keymap = input.DefaultKeymap()
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	m := &Model{
		state:     opts.State,
		router:    input.NewRouter(opts.Keymap),
		help:      help.New(),
		loader:    opts.Config,
		store:     opts.Store,
		profile:   opts.Profile,
		tick:      opts.Tick,
		saveEvery: opts.SaveEvery,
		lastSave:  time.Now(),
	}
	if m.loader != nil && m.loader.Path() != "" {
		ctx, cancel := context.WithCancel(context.Background())
		reload := make(chan struct{}, 1)
		notify := func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		}
		if err := appconfig.Watch(ctx, m.loader.Path(), appconfig.DefaultDebounce, notify); err != nil {
			cancel()
			slog.Debug("tui: config watch disabled", slog.Any("err", err))
		} else {
			m.reload, m.done, m.cancel = reload, ctx.Done(), cancel
		}
	}
	return m, nil
}

// Close stops the config watcher.
func (m *Model) Close() {
	if m != nil && m.cancel != nil {
		m.cancel()
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.waitReload())
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) waitReload() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	ch, done := m.reload, m.done
	return func() tea.Msg {
		select {
		case <-ch:
			return configChangedMsg{}
		case <-done:
			return nil
		}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.state.Layout(m.area())
		return m, nil
	case tickMsg:
		m.state.PollPtyOutput()
		cmds := []tea.Cmd{m.tickCmd()}
		if cmd := m.maybeSave(time.Time(msg)); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case configChangedMsg:
		m.reloadConfig()
		return m, m.waitReload()
	case savedMsg:
		if msg.err != nil {
			m.setStatus("save failed: "+msg.err.Error(), true)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) area() layout.Rect {
	return layout.Rect{W: max(m.width, 0), H: max(m.height-1, 0)}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Paste {
		// Pasted text never triggers bindings.
		if m.state.Mode() == input.ModeFocused && m.state.Selected() != "" {
			m.state.SendRawInputToInstance(m.state.Selected(), []byte(string(msg.Runes)))
		}
		return m, nil
	}
	act := m.router.Route(m.state.Mode(), input.FromTea(msg))
	if act.Kind == input.ActionNone {
		return m, nil
	}
	if act.Kind == input.ActionForward {
		profiling.Trigger("input")
	} else {
		m.status = ""
	}
	before := m.state.PaneCount()
	if m.state.Apply(act) {
		m.quitting = true
		return m, tea.Quit
	}
	if act.Kind == input.ActionCreate && m.state.PaneCount() == before {
		m.setStatus("no room for another pane", true)
	}
	return m, nil
}

func (m *Model) reloadConfig() {
	cfg, err := m.loader.Load()
	if err != nil {
		m.setStatus("config: "+err.Error(), true)
		return
	}
	km, err := cfg.KeyBindings()
	if err != nil {
		m.setStatus("config: "+err.Error(), true)
		return
	}
	m.router.SetKeymap(km)
	m.state.SetEnterDelay(cfg.EnterDelay())
	m.setStatus("config reloaded", false)
	slog.Info("tui: config reloaded", slog.String("path", m.loader.Path()))
}

func (m *Model) maybeSave(now time.Time) tea.Cmd {
	if m.store == nil || m.saveEvery <= 0 || now.Sub(m.lastSave) < m.saveEvery {
		return nil
	}
	m.lastSave = now
	meta := m.state.Metadata(sessionstore.DefaultSnapshotLines)
	store := m.store
	return func() tea.Msg {
		return savedMsg{err: store.Save(context.Background(), meta)}
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status, m.statusErr = text, isErr
}

func (m *Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}
	body := renderLayout(m.state.Views(), m.width, m.height-1, m.state.Mode(), m.profile)
	if m.state.Mode() == input.ModeActivity {
		if sum, ok := m.state.ActivitySummary(m.state.Selected()); ok {
			dialog := renderActivity(sum, m.state.ActivityOffset(), m.width, m.height-1)
			body = overlayCentered(body, dialog, m.width, m.height-1)
		}
	}
	return body + "\n" + m.statusBar()
}

func (m *Model) statusBar() string {
	mode := m.state.Mode()
	left := modeBadge(mode)

	info := " no panes"
	if p := m.state.SelectedPane(); p != nil {
		ids := m.state.PaneIDs()
		info = fmt.Sprintf(" %d/%d %s", slices.Index(ids, p.ID)+1, len(ids), p.Title())
		if m.state.Zoomed() != "" {
			info += " (zoom)"
		}
	}
	left += theme.StatusBar.Render(info)
	if m.status != "" {
		if m.statusErr {
			left += "  " + theme.FormatError(m.status)
		} else {
			left += "  " + theme.FormatSuccess(m.status)
		}
	}

	m.help.Width = max(m.width-lipgloss.Width(left)-1, 0)
	helpView := m.help.ShortHelpView(m.router.Keymap().ShortHelp(mode))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(helpView)
	if gap < 1 {
		return fitLine(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + helpView
}

func modeBadge(mode input.Mode) string {
	switch mode {
	case input.ModeFocused:
		return theme.ModeFocused.Render(mode.String())
	case input.ModeScroll:
		return theme.ModeScroll.Render(mode.String())
	case input.ModeActivity:
		return theme.ModeActivity.Render(mode.String())
	default:
		return theme.ModeNormal.Render(mode.String())
	}
}
