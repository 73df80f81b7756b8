package version

import (
	"fmt"

	"github.com/regenrek/taskpit/internal/cli/root"
	"github.com/regenrek/taskpit/internal/identity"
)

// Register registers the version handler.
func Register(reg *root.Registry) {
	reg.Register("version", runVersion)
}

func runVersion(ctx root.CommandContext) error {
	_, err := fmt.Fprintf(ctx.Out, "%s %s\n", identity.CLIName, ctx.Deps.Version)
	return err
}
