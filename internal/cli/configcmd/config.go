// Package configcmd implements the config subcommands.
package configcmd

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/regenrek/taskpit/internal/appconfig"
	"github.com/regenrek/taskpit/internal/cli/output"
	"github.com/regenrek/taskpit/internal/cli/root"
)

// Register registers the config handlers.
func Register(reg *root.Registry) {
	reg.Register("config.init", runInit)
	reg.Register("config.path", runPath)
	reg.Register("config.show", runShow)
}

func runInit(ctx root.CommandContext) error {
	path, err := appconfig.DefaultPath()
	if err != nil {
		return err
	}
	wrote, err := appconfig.EnsureDefault(path, ctx.Cmd.Bool("force"))
	if err != nil {
		return err
	}
	if !wrote {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	_, err = fmt.Fprintf(ctx.Out, "wrote %s\n", path)
	return err
}

func runPath(ctx root.CommandContext) error {
	path, err := appconfig.DefaultPath()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Out, path)
	return err
}

func runShow(ctx root.CommandContext) error {
	start := time.Now()
	path, err := appconfig.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := appconfig.NewLoader(path).Load()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if !ctx.JSON {
		_, err = ctx.Out.Write(data)
		return err
	}
	// Round-trip through yaml so JSON keys match the file's keys.
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	meta := output.WithDuration(output.NewMeta("config.show", ctx.Deps.Version), start)
	return output.WriteSuccess(ctx.Out, meta, map[string]any{"path": path, "config": doc})
}
