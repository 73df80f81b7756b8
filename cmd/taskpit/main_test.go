package main

import (
	"runtime/debug"
	"testing"
)

func TestResolveVersion(t *testing.T) {
	installed := func(v string) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: v}}, true
		}
	}
	missing := func() (*debug.BuildInfo, bool) { return nil, false }

	cases := []struct {
		name   string
		linked string
		info   func() (*debug.BuildInfo, bool)
		want   string
	}{
		{"linker wins", "v1.0.0", installed("v0.9.0"), "v1.0.0"},
		{"go install", "", installed("v0.9.0"), "v0.9.0"},
		{"local build", "", installed("(devel)"), "dev"},
		{"no build info", "", missing, "dev"},
	}
	for _, tc := range cases {
		if got := resolveVersion(tc.linked, tc.info); got != tc.want {
			t.Fatalf("%s: resolveVersion = %q, want %q", tc.name, got, tc.want)
		}
	}
}
