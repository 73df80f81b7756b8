package identity

import "strings"

const (
	BrandName = "Taskpit"
	// AppSlug names on-disk state directories.
	AppSlug = "taskpit"
	CLIName = "taskpit"

	// EnvPrefix prefixes every environment variable the app reads or exports.
	EnvPrefix = "TASKPIT_"

	GlobalConfigFile = "config.yml"
	StateFile        = "panes.json"
	LogFile          = "taskpit.log"
)

// EnvName returns the prefixed name for an environment variable.
func EnvName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	return EnvPrefix + name
}
