package input

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Keymap holds the bindings for every mode. Keys are stored in canonical
// KeyEvent.String form.
type Keymap struct {
	Quit       key.Binding
	Focus      key.Binding
	Create     key.Binding
	Close      key.Binding
	Next       key.Binding
	Prev       key.Binding
	NavLeft    key.Binding
	NavRight   key.Binding
	NavUp      key.Binding
	NavDown    key.Binding
	GrowLeft   key.Binding
	GrowRight  key.Binding
	GrowUp     key.Binding
	GrowDown   key.Binding
	Respawn    key.Binding
	Swap       key.Binding
	Zoom       key.Binding
	Activity   key.Binding
	ExitFocus  key.Binding
	Scroll     key.Binding
	SendEscape key.Binding

	ScrollExit   key.Binding
	LineDown     key.Binding
	LineUp       key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	Top          key.Binding
	Bottom       key.Binding

	ActivityExit key.Binding
}

type keymapAction struct {
	name     string
	mode     Mode
	desc     string
	defaults []string
	assign   func(*Keymap, key.Binding)
}

var keymapActions = []keymapAction{
	{"quit", ModeNormal, "quit", []string{"q", "ctrl+c"}, func(m *Keymap, b key.Binding) { m.Quit = b }},
	{"focus", ModeNormal, "focus", []string{"enter"}, func(m *Keymap, b key.Binding) { m.Focus = b }},
	{"create", ModeNormal, "new pane", []string{"c"}, func(m *Keymap, b key.Binding) { m.Create = b }},
	{"close", ModeNormal, "close pane", []string{"x"}, func(m *Keymap, b key.Binding) { m.Close = b }},
	{"next", ModeNormal, "next", []string{"tab"}, func(m *Keymap, b key.Binding) { m.Next = b }},
	{"prev", ModeNormal, "prev", []string{"shift+tab"}, func(m *Keymap, b key.Binding) { m.Prev = b }},
	{"nav_left", ModeNormal, "left", []string{"h", "left"}, func(m *Keymap, b key.Binding) { m.NavLeft = b }},
	{"nav_right", ModeNormal, "right", []string{"l", "right"}, func(m *Keymap, b key.Binding) { m.NavRight = b }},
	{"nav_up", ModeNormal, "up", []string{"k", "up"}, func(m *Keymap, b key.Binding) { m.NavUp = b }},
	{"nav_down", ModeNormal, "down", []string{"j", "down"}, func(m *Keymap, b key.Binding) { m.NavDown = b }},
	{"grow_left", ModeNormal, "resize", []string{"H"}, func(m *Keymap, b key.Binding) { m.GrowLeft = b }},
	{"grow_right", ModeNormal, "resize", []string{"L"}, func(m *Keymap, b key.Binding) { m.GrowRight = b }},
	{"grow_up", ModeNormal, "resize", []string{"K"}, func(m *Keymap, b key.Binding) { m.GrowUp = b }},
	{"grow_down", ModeNormal, "resize", []string{"J"}, func(m *Keymap, b key.Binding) { m.GrowDown = b }},
	{"respawn", ModeNormal, "respawn", []string{"r"}, func(m *Keymap, b key.Binding) { m.Respawn = b }},
	{"swap", ModeNormal, "swap", []string{"s"}, func(m *Keymap, b key.Binding) { m.Swap = b }},
	{"zoom", ModeNormal, "zoom", []string{"z"}, func(m *Keymap, b key.Binding) { m.Zoom = b }},
	{"activity", ModeNormal, "activity", []string{"A"}, func(m *Keymap, b key.Binding) { m.Activity = b }},
	{"exit_focus", ModeFocused, "unfocus", []string{"esc"}, func(m *Keymap, b key.Binding) { m.ExitFocus = b }},
	{"scroll", ModeFocused, "scroll", []string{"ctrl+s"}, func(m *Keymap, b key.Binding) { m.Scroll = b }},
	{"send_escape", ModeFocused, "send esc", []string{"shift+esc", "alt+esc"}, func(m *Keymap, b key.Binding) { m.SendEscape = b }},
	{"scroll_exit", ModeScroll, "back", []string{"esc", "q"}, func(m *Keymap, b key.Binding) { m.ScrollExit = b }},
	{"line_down", ModeScroll, "down", []string{"j", "down"}, func(m *Keymap, b key.Binding) { m.LineDown = b }},
	{"line_up", ModeScroll, "up", []string{"k", "up"}, func(m *Keymap, b key.Binding) { m.LineUp = b }},
	{"half_page_down", ModeScroll, "½ page down", []string{"ctrl+d"}, func(m *Keymap, b key.Binding) { m.HalfPageDown = b }},
	{"half_page_up", ModeScroll, "½ page up", []string{"ctrl+u"}, func(m *Keymap, b key.Binding) { m.HalfPageUp = b }},
	{"top", ModeScroll, "top", []string{"g"}, func(m *Keymap, b key.Binding) { m.Top = b }},
	{"bottom", ModeScroll, "bottom", []string{"G"}, func(m *Keymap, b key.Binding) { m.Bottom = b }},
	{"activity_exit", ModeActivity, "back", []string{"esc", "q"}, func(m *Keymap, b key.Binding) { m.ActivityExit = b }},
}

// ActionNames lists the configurable keymap entries.
func ActionNames() []string {
	out := make([]string, 0, len(keymapActions))
	for _, a := range keymapActions {
		out = append(out, a.name)
	}
	return out
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() *Keymap {
	km, err := BuildKeymap(nil)
	if err != nil {
		panic(err)
	}
	return km
}

// BuildKeymap applies overrides (action name -> keys) to the defaults. Keys
// must be unique within a mode.
func BuildKeymap(overrides map[string][]string) (*Keymap, error) {
	known := make(map[string]struct{}, len(keymapActions))
	for _, a := range keymapActions {
		known[a.name] = struct{}{}
	}
	var unknown []string
	for name := range overrides {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("keymap: unknown action(s) %s", strings.Join(unknown, ", "))
	}

	km := &Keymap{}
	used := map[Mode]map[string]string{}
	for _, action := range keymapActions {
		keys, err := resolveKeyList(action.name, overrides[action.name], action.defaults)
		if err != nil {
			return nil, err
		}
		if used[action.mode] == nil {
			used[action.mode] = map[string]string{}
		}
		for _, k := range keys {
			if prev, ok := used[action.mode][k]; ok {
				return nil, fmt.Errorf("keymap.%s: key %q already bound to keymap.%s", action.name, k, prev)
			}
			used[action.mode][k] = action.name
		}
		action.assign(km, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), action.desc),
		))
	}
	return km, nil
}

func resolveKeyList(field string, override, defaults []string) ([]string, error) {
	keys := override
	if len(keys) == 0 {
		keys = defaults
	}
	out := make([]string, 0, len(keys))
	for _, raw := range keys {
		ev, err := ParseKey(raw)
		if err != nil {
			return nil, fmt.Errorf("keymap.%s: %w", field, err)
		}
		k := ev.String()
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("keymap.%s: no keys configured", field)
	}
	return out, nil
}

// Matches reports whether ev triggers binding.
func Matches(ev KeyEvent, binding key.Binding) bool {
	needle := ev.String()
	if needle == "" || !binding.Enabled() {
		return false
	}
	return slices.Contains(binding.Keys(), needle)
}

// ShortHelp returns the bindings worth showing for mode.
func (k *Keymap) ShortHelp(mode Mode) []key.Binding {
	switch mode {
	case ModeFocused:
		return []key.Binding{k.ExitFocus, k.Scroll, k.SendEscape}
	case ModeScroll:
		return []key.Binding{k.LineUp, k.LineDown, k.HalfPageUp, k.HalfPageDown, k.Top, k.Bottom, k.ScrollExit}
	case ModeActivity:
		return []key.Binding{k.LineUp, k.LineDown, k.HalfPageUp, k.HalfPageDown, k.ActivityExit}
	default:
		return []key.Binding{k.Create, k.Focus, k.Next, k.Close, k.Zoom, k.Quit}
	}
}
