package root

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/taskpit/internal/cli/manifest"
)

func buildFlags(flags []manifest.Flag) ([]cli.Flag, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	out := make([]cli.Flag, 0, len(flags))
	for _, flag := range flags {
		built, err := buildFlag(flag)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}

func buildFlag(flag manifest.Flag) (cli.Flag, error) {
	name := strings.TrimSpace(flag.Name)
	if name == "" {
		return nil, fmt.Errorf("flag name is required")
	}
	var sources cli.ValueSourceChain
	if env := strings.TrimSpace(flag.Env); env != "" {
		sources = cli.EnvVars(env)
	}
	switch flag.Type {
	case "bool":
		v, _ := flag.Default.(bool)
		return &cli.BoolFlag{
			Name:    name,
			Aliases: flag.Aliases,
			Usage:   flag.Description,
			Hidden:  flag.Hidden,
			Sources: sources,
			Value:   v,
		}, nil
	case "string", "path", "enum":
		v, _ := flag.Default.(string)
		fl := &cli.StringFlag{
			Name:    name,
			Aliases: flag.Aliases,
			Usage:   flag.Description,
			Hidden:  flag.Hidden,
			Sources: sources,
			Value:   v,
		}
		if len(flag.Enum) > 0 {
			fl.Validator = enumValidator(flag.Enum)
		}
		return fl, nil
	case "int":
		v, _ := flag.Default.(int)
		return &cli.IntFlag{
			Name:    name,
			Aliases: flag.Aliases,
			Usage:   flag.Description,
			Hidden:  flag.Hidden,
			Sources: sources,
			Value:   v,
		}, nil
	case "duration":
		return &cli.DurationFlag{
			Name:    name,
			Aliases: flag.Aliases,
			Usage:   flag.Description,
			Hidden:  flag.Hidden,
			Sources: sources,
			Value:   durationDefault(flag.Default),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported flag type %q for %s", flag.Type, name)
	}
}

func enumValidator(values []string) func(string) error {
	return func(val string) error {
		for _, allowed := range values {
			if val == allowed {
				return nil
			}
		}
		return fmt.Errorf("invalid value %q (allowed: %s)", val, strings.Join(values, ", "))
	}
}

func durationDefault(value any) time.Duration {
	raw, ok := value.(string)
	if !ok {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}
