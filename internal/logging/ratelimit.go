package logging

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// everyLimiter remembers the last emission time per key.
type everyLimiter struct {
	mu      sync.Mutex
	last    map[string]time.Time
	maxKeys int
}

var defaultLimiter = &everyLimiter{last: map[string]time.Time{}, maxKeys: 1024}

func (l *everyLimiter) allow(key string, interval time.Duration, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.last[key]; ok && now.Sub(prev) < interval {
		return false
	}
	l.last[key] = now
	if len(l.last) > l.maxKeys {
		l.prune()
	}
	return true
}

// prune drops the oldest keys until the map fits maxKeys.
func (l *everyLimiter) prune() {
	keys := make([]string, 0, len(l.last))
	for k := range l.last {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return l.last[keys[i]].Before(l.last[keys[j]]) })
	for _, k := range keys[:len(keys)-l.maxKeys] {
		delete(l.last, k)
	}
}

// LogEvery emits a log entry at most once per interval for a key.
func LogEvery(ctx context.Context, key string, interval time.Duration, level slog.Level, msg string, attrs ...slog.Attr) {
	if !slog.Default().Enabled(ctx, level) {
		return
	}
	if key != "" && interval > 0 && !defaultLimiter.allow(key, interval, time.Now()) {
		return
	}
	slog.LogAttrs(ctx, level, msg, attrs...)
}
