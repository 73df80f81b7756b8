//go:build !windows

package logging

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

var logDirPermsWarnOnce sync.Once

func ensureLogDir(dir string, isOverride bool) error {
	if dir == "" || dir == "." {
		return nil
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("logging: create log dir: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("logging: stat log dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("logging: log dir %q is not a directory", dir)
	}
	mode := info.Mode().Perm()
	if mode&0o077 == 0 {
		return nil
	}
	if !isOverride {
		if err := os.Chmod(dir, 0o700); err == nil {
			return nil
		}
	}
	logDirPermsWarnOnce.Do(func() {
		slog.Warn("log dir is group/world accessible; consider chmod 0700", "path", dir, "mode", mode.String())
	})
	return nil
}
