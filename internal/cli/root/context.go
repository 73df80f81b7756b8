package root

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/taskpit/internal/cli/manifest"
)

// CommandContext wraps a command invocation.
type CommandContext struct {
	Context context.Context
	Args    []string
	Command manifest.Command
	Cmd     *cli.Command
	Deps    Dependencies
	JSON    bool
	Out     io.Writer
	ErrOut  io.Writer
	Stdin   io.Reader
}
