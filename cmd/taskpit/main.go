package main

import (
	"os"
	"runtime/debug"

	"github.com/regenrek/taskpit/internal/cli/entry"
)

// version is set at release time with -ldflags "-X main.version=v1.2.3".
var version string

func main() {
	os.Exit(entry.Run(os.Args, resolveVersion(version, debug.ReadBuildInfo)))
}

// resolveVersion prefers the linker-set version, then the module version
// recorded by go install.
func resolveVersion(linked string, buildInfo func() (*debug.BuildInfo, bool)) string {
	if linked != "" {
		return linked
	}
	if info, ok := buildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
