package runenv

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/regenrek/taskpit/internal/identity"
)

var (
	RuntimeDirEnv    = identity.EnvName("RUNTIME_DIR")
	StateDirEnv      = identity.EnvName("STATE_DIR")
	ConfigDirEnv     = identity.EnvName("CONFIG_DIR")
	FreshConfigEnv   = identity.EnvName("FRESH_CONFIG")
	EnterDelayEnv    = identity.EnvName("ENTER_DELAY")
	PaneIDEnv        = identity.EnvName("PANE_ID")
	NoRestoreEnv     = identity.EnvName("NO_RESTORE")
	defaultEnterWait = 50 * time.Millisecond
)

func enabledEnv(name string) bool {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return false
	}
	switch strings.ToLower(value) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

func FreshConfigEnabled() bool {
	return enabledEnv(FreshConfigEnv)
}

// RestoreDisabled reports whether persisted panes should be ignored at startup.
func RestoreDisabled() bool {
	return enabledEnv(NoRestoreEnv)
}

func ConfigDir() string {
	return strings.TrimSpace(os.Getenv(ConfigDirEnv))
}

func RuntimeDir() string {
	return strings.TrimSpace(os.Getenv(RuntimeDirEnv))
}

func StateDir() string {
	return strings.TrimSpace(os.Getenv(StateDirEnv))
}

// EnterDelay is the pause between typed text and the trailing carriage return
// when a command is sent to a pane. Accepts a Go duration or milliseconds.
func EnterDelay() (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(EnterDelayEnv))
	if raw == "" {
		return defaultEnterWait, false
	}
	if d, err := time.ParseDuration(raw); err == nil {
		if d < 0 {
			return defaultEnterWait, false
		}
		return d, true
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return defaultEnterWait, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
