//go:build !windows

package appdirs

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"syscall"

	"github.com/regenrek/taskpit/internal/runenv"
)

var privateDirWarnOnce sync.Once

// RuntimeDir returns the runtime directory, creating it with 0700.
func RuntimeDir() (string, error) {
	dir, err := RuntimeDirPath()
	if err != nil {
		return "", err
	}
	return ensurePrivateDir(dir, runenv.RuntimeDir() != "")
}

// StateDir returns the state directory, creating it with 0700.
func StateDir() (string, error) {
	dir, err := StateDirPath()
	if err != nil {
		return "", err
	}
	return ensurePrivateDir(dir, runenv.StateDir() != "")
}

func ensurePrivateDir(dir string, isOverride bool) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("app dir is empty")
	}
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat app dir: %w", err)
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("create app dir: %w", err)
		}
		return dir, nil
	}
	if !info.IsDir() {
		return "", fmt.Errorf("app dir %q is not a directory", dir)
	}
	mode := info.Mode().Perm()
	if mode&0o077 == 0 {
		return dir, nil
	}
	if isOverride {
		privateDirWarnOnce.Do(func() {
			slog.Warn("app dir is group/world accessible; consider chmod 0700", "path", dir, "mode", mode.String())
		})
		return dir, nil
	}
	if ownedByCurrentUser(info) {
		if err := os.Chmod(dir, 0o700); err != nil {
			return "", fmt.Errorf("chmod app dir: %w", err)
		}
		return dir, nil
	}
	privateDirWarnOnce.Do(func() {
		slog.Warn("app dir is not owned by current user; permissions unchanged", "path", dir, "mode", mode.String())
	})
	return dir, nil
}

func ownedByCurrentUser(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	return stat.Uid == uint32(os.Getuid())
}
