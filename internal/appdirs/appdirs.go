package appdirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/regenrek/taskpit/internal/identity"
	"github.com/regenrek/taskpit/internal/runenv"
)

// ConfigDirPath returns the config directory without creating it.
func ConfigDirPath() (string, error) {
	if override := runenv.ConfigDir(); override != "" {
		return override, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, identity.AppSlug), nil
}

// ConfigFilePath returns the global config file location.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.GlobalConfigFile), nil
}

// StateDirPath returns the persisted pane state directory without creating it.
func StateDirPath() (string, error) {
	if override := runenv.StateDir(); override != "" {
		return override, nil
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, identity.AppSlug), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", identity.AppSlug), nil
}

// StateFilePath returns where pane metadata is persisted.
func StateFilePath() (string, error) {
	dir, err := StateDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.StateFile), nil
}

// RuntimeDirPath returns the runtime directory (logs) without creating it.
func RuntimeDirPath() (string, error) {
	if override := runenv.RuntimeDir(); override != "" {
		return override, nil
	}
	dir, err := ConfigDirPath()
	if err != nil {
		return "", err
	}
	return dir, nil
}
