package profiling

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	triggerOnce sync.Once
	triggered   atomic.Bool
	triggerCh   = make(chan struct{})
)

// Trigger releases profiles waiting for the first pane input.
func Trigger(reason string) {
	if !triggered.CompareAndSwap(false, true) {
		return
	}
	triggerOnce.Do(func() {
		close(triggerCh)
		if strings.TrimSpace(reason) == "" {
			reason = "trigger"
		}
		slog.Debug("profiling: trigger", slog.String("reason", reason))
	})
}

// Wait blocks until Trigger is called, the timeout elapses or ctx is done.
// A zero timeout waits without limit.
func Wait(ctx context.Context, timeout time.Duration) bool {
	if triggered.Load() {
		return true
	}
	var timeoutC <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutC = timer.C
	}
	select {
	case <-triggerCh:
		return true
	case <-timeoutC:
		return false
	case <-ctx.Done():
		return false
	}
}
