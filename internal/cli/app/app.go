// Package app assembles the CLI from the command catalog and handlers.
package app

import (
	"github.com/regenrek/taskpit/internal/cli/configcmd"
	"github.com/regenrek/taskpit/internal/cli/manifest"
	"github.com/regenrek/taskpit/internal/cli/panes"
	"github.com/regenrek/taskpit/internal/cli/root"
	"github.com/regenrek/taskpit/internal/cli/run"
	"github.com/regenrek/taskpit/internal/cli/version"
)

// NewRunner builds the CLI runner from the embedded catalog.
func NewRunner(deps root.Dependencies) (*root.Runner, error) {
	m, err := manifest.LoadDefault()
	if err != nil {
		return nil, err
	}
	reg := root.NewRegistry()
	registerAll(reg)
	return root.NewRunner(m, deps, reg)
}

func registerAll(reg *root.Registry) {
	run.Register(reg)
	version.Register(reg)
	configcmd.Register(reg)
	panes.Register(reg)
}
