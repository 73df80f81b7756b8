package root

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/taskpit/internal/cli/manifest"
	"github.com/regenrek/taskpit/internal/cli/output"
)

// BuildApp constructs the CLI from the command catalog and registry.
func BuildApp(m *manifest.Manifest, deps Dependencies, reg *Registry) (*cli.Command, error) {
	if m == nil {
		return nil, fmt.Errorf("command catalog is nil")
	}
	if reg == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	if err := reg.EnsureHandlers(m); err != nil {
		return nil, err
	}
	app := &cli.Command{
		Name:                  m.App.Name,
		Usage:                 m.App.Summary,
		Writer:                deps.Stdout,
		ErrWriter:             deps.Stderr,
		HideVersion:           true,
		EnableShellCompletion: true,
	}
	var runEnvCleanup func()
	app.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cmd.Bool("version") {
			out := deps.Stdout
			if out == nil {
				out = io.Discard
			}
			_, _ = fmt.Fprintf(out, "%s %s\n", m.App.Name, deps.Version)
			return ctx, cli.Exit("", 0)
		}
		cleanup, err := applyRunEnvFromFlags(cmd)
		if err != nil {
			return ctx, err
		}
		runEnvCleanup = cleanup
		return ctx, nil
	}
	app.After = func(ctx context.Context, cmd *cli.Command) error {
		if runEnvCleanup != nil {
			runEnvCleanup()
			runEnvCleanup = nil
		}
		return nil
	}
	globalFlags, err := buildFlags(m.GlobalFlags)
	if err != nil {
		return nil, err
	}
	app.Flags = globalFlags
	for _, spec := range m.Commands {
		cmd, err := buildCommand(spec, deps, reg)
		if err != nil {
			return nil, err
		}
		app.Commands = append(app.Commands, cmd)
	}
	return app, nil
}

func buildCommand(def manifest.Command, deps Dependencies, reg *Registry) (*cli.Command, error) {
	cmd := &cli.Command{
		Name:        def.Name,
		Aliases:     def.Aliases,
		Usage:       def.Summary,
		Description: strings.TrimSpace(def.Description),
		Hidden:      def.Hidden,
		ArgsUsage:   argsUsage(def.Args),
		Arguments:   buildArguments(def.Args),
	}
	flags, err := buildFlags(def.Flags)
	if err != nil {
		return nil, fmt.Errorf("flags for %s: %w", def.ID, err)
	}
	cmd.Flags = flags
	for _, child := range def.Subcommands {
		sub, err := buildCommand(child, deps, reg)
		if err != nil {
			return nil, err
		}
		cmd.Commands = append(cmd.Commands, sub)
	}
	if handler, ok := reg.HandlerFor(def.ID); ok {
		cmd.Action = func(ctx context.Context, cliCmd *cli.Command) error {
			return runHandler(ctx, cliCmd, def, deps, handler)
		}
	}
	return cmd, nil
}

func runHandler(ctx context.Context, cliCmd *cli.Command, def manifest.Command, deps Dependencies, handler Handler) error {
	commandCtx := CommandContext{
		Context: ctx,
		Args:    cliCmd.Args().Slice(),
		Command: def,
		Cmd:     cliCmd,
		Deps:    deps,
		JSON:    def.JSON && cliCmd.Bool("json"),
		Out:     deps.Stdout,
		ErrOut:  deps.Stderr,
		Stdin:   deps.Stdin,
	}
	if err := validateArgs(def, cliCmd); err != nil {
		return err
	}
	start := time.Now()
	if err := handler(commandCtx); err != nil {
		if !commandCtx.JSON {
			return err
		}
		meta := output.WithDuration(output.NewMeta(def.ID, deps.Version), start)
		_ = output.WriteError(commandCtx.Out, meta, "command_failed", err.Error())
		return cli.Exit("", 1)
	}
	return nil
}
