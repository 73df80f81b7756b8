package input

import "github.com/regenrek/taskpit/internal/layout"

// Mode is the multiplexer interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFocused
	ModeScroll
	// ModeActivity shows what the selected pane did since it was last viewed.
	ModeActivity
)

func (m Mode) String() string {
	switch m {
	case ModeFocused:
		return "FOCUSED"
	case ModeScroll:
		return "SCROLL"
	case ModeActivity:
		return "ACTIVITY"
	default:
		return "NORMAL"
	}
}

// ActionKind says what a routed key asks the multiplexer to do.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionForward
	ActionEnterFocus
	ActionExitFocus
	ActionEnterScroll
	ActionExitScroll
	ActionNext
	ActionPrev
	ActionNavigate
	ActionResize
	ActionSwap
	ActionCreate
	ActionClose
	ActionRespawn
	ActionScrollLines
	ActionScrollTop
	ActionScrollBottom
	ActionToggleZoom
	ActionEnterActivity
	ActionExitActivity
	ActionActivityLines
	ActionActivityTop
	ActionQuit
)

// Action is the result of routing one key. Bytes is set for ActionForward,
// Lines for ActionScrollLines (positive scrolls back into history) and
// ActionActivityLines (positive moves down the list), Dir for ActionNavigate
// and ActionResize.
type Action struct {
	Kind  ActionKind
	Bytes []byte
	Lines int
	Dir   layout.NavDirection
}

// DefaultHalfPage is how far ctrl+d and ctrl+u scroll.
const DefaultHalfPage = 12

// Router maps keys to actions per mode.
type Router struct {
	keys     *Keymap
	halfPage int
}

func NewRouter(keys *Keymap) *Router {
	if keys == nil {
		keys = DefaultKeymap()
	}
	return &Router{keys: keys, halfPage: DefaultHalfPage}
}

// Keymap returns the bindings in use.
func (r *Router) Keymap() *Keymap { return r.keys }

// SetKeymap swaps bindings, e.g. after a config reload.
func (r *Router) SetKeymap(keys *Keymap) {
	if keys != nil {
		r.keys = keys
	}
}

func (r *Router) Route(mode Mode, ev KeyEvent) Action {
	switch mode {
	case ModeFocused:
		return r.routeFocused(ev)
	case ModeScroll:
		return r.routeScroll(ev)
	case ModeActivity:
		return r.routeActivity(ev)
	default:
		return r.routeNormal(ev)
	}
}

func (r *Router) routeNormal(ev KeyEvent) Action {
	k := r.keys
	switch {
	case Matches(ev, k.Quit):
		return Action{Kind: ActionQuit}
	case Matches(ev, k.Focus):
		return Action{Kind: ActionEnterFocus}
	case Matches(ev, k.Create):
		return Action{Kind: ActionCreate}
	case Matches(ev, k.Close):
		return Action{Kind: ActionClose}
	case Matches(ev, k.Next):
		return Action{Kind: ActionNext}
	case Matches(ev, k.Prev):
		return Action{Kind: ActionPrev}
	case Matches(ev, k.NavLeft):
		return Action{Kind: ActionNavigate, Dir: layout.NavLeft}
	case Matches(ev, k.NavRight):
		return Action{Kind: ActionNavigate, Dir: layout.NavRight}
	case Matches(ev, k.NavUp):
		return Action{Kind: ActionNavigate, Dir: layout.NavUp}
	case Matches(ev, k.NavDown):
		return Action{Kind: ActionNavigate, Dir: layout.NavDown}
	case Matches(ev, k.GrowLeft):
		return Action{Kind: ActionResize, Dir: layout.NavLeft}
	case Matches(ev, k.GrowRight):
		return Action{Kind: ActionResize, Dir: layout.NavRight}
	case Matches(ev, k.GrowUp):
		return Action{Kind: ActionResize, Dir: layout.NavUp}
	case Matches(ev, k.GrowDown):
		return Action{Kind: ActionResize, Dir: layout.NavDown}
	case Matches(ev, k.Respawn):
		return Action{Kind: ActionRespawn}
	case Matches(ev, k.Swap):
		return Action{Kind: ActionSwap}
	case Matches(ev, k.Zoom):
		return Action{Kind: ActionToggleZoom}
	case Matches(ev, k.Activity):
		return Action{Kind: ActionEnterActivity}
	}
	return Action{}
}

func (r *Router) routeFocused(ev KeyEvent) Action {
	k := r.keys
	switch {
	case Matches(ev, k.SendEscape):
		return Action{Kind: ActionForward, Bytes: []byte{0x1b}}
	case Matches(ev, k.ExitFocus):
		return Action{Kind: ActionExitFocus}
	case Matches(ev, k.Scroll):
		return Action{Kind: ActionEnterScroll}
	}
	if b := Encode(ev); len(b) > 0 {
		return Action{Kind: ActionForward, Bytes: b}
	}
	return Action{}
}

func (r *Router) routeScroll(ev KeyEvent) Action {
	k := r.keys
	switch {
	case Matches(ev, k.ScrollExit):
		return Action{Kind: ActionExitScroll}
	case Matches(ev, k.LineDown):
		return Action{Kind: ActionScrollLines, Lines: -1}
	case Matches(ev, k.LineUp):
		return Action{Kind: ActionScrollLines, Lines: 1}
	case Matches(ev, k.HalfPageDown):
		return Action{Kind: ActionScrollLines, Lines: -r.halfPage}
	case Matches(ev, k.HalfPageUp):
		return Action{Kind: ActionScrollLines, Lines: r.halfPage}
	case Matches(ev, k.Top):
		return Action{Kind: ActionScrollTop}
	case Matches(ev, k.Bottom):
		return Action{Kind: ActionScrollBottom}
	}
	return Action{}
}

// routeActivity reuses the scroll movement keys for the summary list.
func (r *Router) routeActivity(ev KeyEvent) Action {
	k := r.keys
	switch {
	case Matches(ev, k.ActivityExit):
		return Action{Kind: ActionExitActivity}
	case Matches(ev, k.LineDown):
		return Action{Kind: ActionActivityLines, Lines: 1}
	case Matches(ev, k.LineUp):
		return Action{Kind: ActionActivityLines, Lines: -1}
	case Matches(ev, k.HalfPageDown):
		return Action{Kind: ActionActivityLines, Lines: r.halfPage}
	case Matches(ev, k.HalfPageUp):
		return Action{Kind: ActionActivityLines, Lines: -r.halfPage}
	case Matches(ev, k.Top):
		return Action{Kind: ActionActivityTop}
	}
	return Action{}
}
