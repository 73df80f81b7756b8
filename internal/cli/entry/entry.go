// Package entry is the process entry point shared by the binaries.
package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/taskpit/internal/appconfig"
	"github.com/regenrek/taskpit/internal/cli/app"
	"github.com/regenrek/taskpit/internal/cli/root"
	"github.com/regenrek/taskpit/internal/identity"
	"github.com/regenrek/taskpit/internal/logging"
)

// Run starts the CLI and returns the process exit code.
func Run(args []string, version string) int {
	return RunWith(args, root.DefaultDependencies(version))
}

// RunWith is Run with explicit dependencies.
func RunWith(args []string, deps root.Dependencies) int {
	appName := identity.CLIName
	mode := logging.ModeFromArgs(args)
	logCfg := logging.Config{}
	// A broken config file is reported by the command that needs it, and
	// --fresh-config has not been applied yet at this point.
	if path, err := appconfig.DefaultPath(); err == nil {
		if cfg, err := appconfig.NewLoader(path).Load(); err == nil {
			logCfg = cfg.Logging
		}
	}
	closeLogger, err := logging.Init(logCfg, logging.InitOptions{
		App:     identity.AppSlug,
		Version: deps.Version,
		Mode:    mode,
	})
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	deps.AppName = appName
	runner, err := app.NewRunner(deps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	if err := runner.Run(context.Background(), args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}
