//go:build !profiler

package profiling

import "context"

// Start is a no-op without the profiler build tag.
func Start(ctx context.Context, s Settings) func() { return func() {} }
