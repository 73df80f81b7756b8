package terminal

import (
	"os"
	"runtime"
	"strings"
)

// detectShell returns the user's shell, falling back to common locations.
func detectShell() string {
	if shell := strings.TrimSpace(os.Getenv("SHELL")); shell != "" {
		return shell
	}
	if runtime.GOOS == "windows" {
		return "cmd.exe"
	}
	for _, s := range shellCandidates {
		if _, err := os.Stat(s); err == nil {
			return s
		}
	}
	return "/bin/sh"
}

var shellCandidates = []string{"/bin/zsh", "/bin/bash", "/usr/bin/fish", "/bin/sh"}

// buildEnv layers caller overrides and terminal defaults over base.
func buildEnv(base, overrides []string, paneID string) []string {
	env := mergeEnv(base, overrides)
	if !hasEnv(env, "TERM") {
		env = append(env, "TERM=xterm-256color")
	}
	if !hasEnv(env, "COLORTERM") {
		env = append(env, "COLORTERM=truecolor")
	}
	defaults := []string{"TERM_PROGRAM=" + termProgram}
	if paneID != "" {
		defaults = append(defaults, paneIDEnv+"="+paneID)
	}
	return mergeEnv(env, defaults)
}

// mergeEnv applies overrides by key (KEY=VALUE).
func mergeEnv(base []string, overrides []string) []string {
	out := append([]string{}, base...)
	index := map[string]int{}
	for i, kv := range out {
		if k := envKey(kv); k != "" {
			index[k] = i
		}
	}
	for _, kv := range overrides {
		k := envKey(kv)
		if k == "" {
			continue
		}
		if i, ok := index[k]; ok {
			out[i] = kv
			continue
		}
		index[k] = len(out)
		out = append(out, kv)
	}
	return out
}

func hasEnv(env []string, key string) bool {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	for _, kv := range env {
		if envKey(kv) == key {
			return true
		}
	}
	return false
}

func envKey(kv string) string {
	i := strings.IndexByte(kv, '=')
	if i <= 0 {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(kv[:i]))
}
