package root

import "github.com/regenrek/taskpit/internal/cli/manifest"

// Handler executes a command.
type Handler func(ctx CommandContext) error

// Registry maps command IDs to handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler for a command ID.
func (r *Registry) Register(id string, handler Handler) {
	if r == nil || id == "" || handler == nil {
		return
	}
	r.handlers[id] = handler
}

// HandlerFor returns the handler for a command ID.
func (r *Registry) HandlerFor(id string) (Handler, bool) {
	if r == nil {
		return nil, false
	}
	h, ok := r.handlers[id]
	return h, ok
}

// EnsureHandlers verifies that every leaf command has a handler and reports
// all that do not.
func (r *Registry) EnsureHandlers(m *manifest.Manifest) error {
	if r == nil || m == nil {
		return nil
	}
	var missing []string
	for _, cmd := range m.AllCommands() {
		if len(cmd.Subcommands) > 0 {
			continue
		}
		if _, ok := r.handlers[cmd.ID]; !ok {
			missing = append(missing, cmd.ID)
		}
	}
	if len(missing) > 0 {
		return &HandlerError{Commands: missing}
	}
	return nil
}
