package root

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/taskpit/internal/cli/manifest"
)

func buildArguments(args []manifest.Arg) []cli.Argument {
	if len(args) == 0 {
		return nil
	}
	out := make([]cli.Argument, 0, len(args))
	for _, arg := range args {
		out = append(out, &cli.StringArg{Name: strings.TrimSpace(arg.Name)})
	}
	return out
}

func argsUsage(args []manifest.Arg) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		name := strings.ToUpper(arg.Name)
		if !arg.Required {
			name = "[" + name + "]"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}

func validateArgs(cmd manifest.Command, cliCmd *cli.Command) error {
	for _, arg := range cmd.Args {
		if !arg.Required {
			continue
		}
		if strings.TrimSpace(cliCmd.StringArg(arg.Name)) == "" {
			return fmt.Errorf("missing argument %q", arg.Name)
		}
	}
	return nil
}
