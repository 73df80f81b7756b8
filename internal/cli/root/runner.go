package root

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/taskpit/internal/cli/manifest"
)

// Runner executes the CLI.
type Runner struct {
	manifest *manifest.Manifest
	app      *cli.Command
}

// NewRunner builds the CLI runner.
func NewRunner(m *manifest.Manifest, deps Dependencies, reg *Registry) (*Runner, error) {
	app, err := BuildApp(m, deps, reg)
	if err != nil {
		return nil, err
	}
	return &Runner{manifest: m, app: app}, nil
}

// Run executes the CLI with the given arguments.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if r == nil || r.app == nil {
		return fmt.Errorf("runner is not initialized")
	}
	if len(args) > 0 {
		if name := strings.TrimSpace(filepath.Base(args[0])); name != "" && name != "." {
			r.app.Name = name
		}
	}
	return r.app.Run(ctx, withDefaultCommand(r.manifest, args))
}

// withDefaultCommand inserts the default command when args name no
// top-level command. Only leading global flags are skipped, so
// "taskpit --fresh-config" starts the default command too.
func withDefaultCommand(m *manifest.Manifest, args []string) []string {
	if m == nil || len(args) == 0 {
		return args
	}
	def := m.FindByID(m.App.DefaultCommand)
	if def == nil {
		return args
	}
	i := 1
	for ; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			break
		}
		switch strings.TrimLeft(arg, "-") {
		case "help", "h", "version", "v":
			return args
		}
		if !isGlobalFlag(m, arg) {
			break
		}
	}
	if i < len(args) && (m.IsTopLevel(args[i]) || args[i] == "help") {
		return args
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, args[:i]...)
	out = append(out, def.Name)
	return append(out, args[i:]...)
}

func isGlobalFlag(m *manifest.Manifest, arg string) bool {
	name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
	for _, fl := range m.GlobalFlags {
		if fl.Name == name {
			return true
		}
		for _, alias := range fl.Aliases {
			if alias == name {
				return true
			}
		}
	}
	return false
}
