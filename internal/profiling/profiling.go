// Package profiling captures CPU, off-CPU and heap profiles of a running
// multiplexer. Profiles are only collected in builds tagged "profiler";
// other builds get a no-op Start.
package profiling

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/regenrek/taskpit/internal/identity"
)

var (
	CPUProfileEnv     = identity.EnvName("CPU_PROFILE")
	FgprofEnv         = identity.EnvName("FGPROF")
	MemProfileEnv     = identity.EnvName("MEM_PROFILE")
	ProfileSecsEnv    = identity.EnvName("PROFILE_SECS")
	StartOnInputEnv   = identity.EnvName("PROFILE_START_ON_INPUT")
	GopsEnv           = identity.EnvName("GOPS")
	GopsAddrEnv       = identity.EnvName("GOPS_ADDR")
	defaultProfileDur = 30 * time.Second
)

// Settings is the profiler configuration read from the environment.
type Settings struct {
	CPUPath      string
	FgprofPath   string
	MemPath      string
	Duration     time.Duration
	StartOnInput bool
	Gops         bool
	GopsAddr     string
}

// Enabled reports whether any profile or the gops agent is requested.
func (s Settings) Enabled() bool {
	return s.CPUPath != "" || s.FgprofPath != "" || s.MemPath != "" || s.Gops
}

// SettingsFromEnv reads the TASKPIT_* profiling variables.
func SettingsFromEnv() Settings {
	return Settings{
		CPUPath:      strings.TrimSpace(os.Getenv(CPUProfileEnv)),
		FgprofPath:   strings.TrimSpace(os.Getenv(FgprofEnv)),
		MemPath:      strings.TrimSpace(os.Getenv(MemProfileEnv)),
		Duration:     parseDuration(os.Getenv(ProfileSecsEnv), defaultProfileDur),
		StartOnInput: envBool(StartOnInputEnv),
		Gops:         envBool(GopsEnv),
		GopsAddr:     strings.TrimSpace(os.Getenv(GopsAddrEnv)),
	}
}

// parseDuration accepts a Go duration or whole seconds.
func parseDuration(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
