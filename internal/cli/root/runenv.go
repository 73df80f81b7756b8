package root

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/taskpit/internal/identity"
	"github.com/regenrek/taskpit/internal/runenv"
)

type runEnvOptions struct {
	freshConfig  bool
	temporaryRun bool
}

type envSnapshot struct {
	key   string
	value string
	ok    bool
}

func applyRunEnvFromFlags(cmd *cli.Command) (func(), error) {
	if cmd == nil {
		return func() {}, nil
	}
	return applyRunEnv(runEnvOptions{
		freshConfig:  cmd.Bool("fresh-config"),
		temporaryRun: cmd.Bool("temporary-run"),
	})
}

// applyRunEnv exports the directory overrides for this invocation and
// returns a func that restores the previous environment.
func applyRunEnv(opts runEnvOptions) (func(), error) {
	if !opts.freshConfig && !opts.temporaryRun {
		return func() {}, nil
	}
	original := captureEnv(runenv.RuntimeDirEnv, runenv.ConfigDirEnv, runenv.StateDirEnv, runenv.FreshConfigEnv)
	cleanup := func() { restoreEnv(original) }

	set := map[string]string{runenv.FreshConfigEnv: "1"}
	root := ""
	if opts.temporaryRun {
		dir, err := os.MkdirTemp("", identity.AppSlug+"-run-")
		if err != nil {
			return nil, fmt.Errorf("create temporary run dir: %w", err)
		}
		root = dir
		set[runenv.RuntimeDirEnv] = filepath.Join(root, "runtime")
		set[runenv.ConfigDirEnv] = filepath.Join(root, "config")
		set[runenv.StateDirEnv] = filepath.Join(root, "state")
	}
	for key, value := range set {
		if err := os.Setenv(key, value); err != nil {
			cleanup()
			if root != "" {
				_ = os.RemoveAll(root)
			}
			return nil, fmt.Errorf("set %s: %w", key, err)
		}
	}
	return func() {
		if root != "" {
			_ = os.RemoveAll(root)
		}
		cleanup()
	}, nil
}

func captureEnv(keys ...string) []envSnapshot {
	snaps := make([]envSnapshot, 0, len(keys))
	for _, key := range keys {
		value, ok := os.LookupEnv(key)
		snaps = append(snaps, envSnapshot{key: key, value: value, ok: ok})
	}
	return snaps
}

func restoreEnv(snaps []envSnapshot) {
	for _, snap := range snaps {
		if snap.ok {
			_ = os.Setenv(snap.key, snap.value)
		} else {
			_ = os.Unsetenv(snap.key)
		}
	}
}
