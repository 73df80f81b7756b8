//go:build profiler

package profiling

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/felixge/fgprof"
	"github.com/google/gops/agent"
)

type profiler struct {
	settings Settings

	mu       sync.Mutex
	cpuFile  *os.File
	fgFile   *os.File
	fgStop   func() error
	stopOnce sync.Once
}

// Start begins the profiles requested in s and returns a func that stops
// them and writes the heap profile. The CPU profile runs first and the
// fgprof profile follows it, each for s.Duration.
func Start(ctx context.Context, s Settings) func() {
	if !s.Enabled() {
		return func() {}
	}
	p := &profiler{settings: s}
	if s.Gops {
		opts := agent.Options{ShutdownCleanup: true, Addr: s.GopsAddr}
		if err := agent.Listen(opts); err != nil {
			slog.Warn("profiling: gops agent", slog.Any("err", err))
		}
	}
	go p.schedule(ctx)
	return p.stop
}

func (p *profiler) schedule(ctx context.Context) {
	if p.settings.StartOnInput && !Wait(ctx, 0) {
		return
	}
	if p.settings.CPUPath != "" {
		if err := p.startCPU(); err != nil {
			slog.Warn("profiling: cpu profile", slog.Any("err", err))
		} else if !sleep(ctx, p.settings.Duration) {
			return
		}
		p.stopCPU()
	}
	if p.settings.FgprofPath != "" {
		if err := p.startFgprof(); err != nil {
			slog.Warn("profiling: fgprof", slog.Any("err", err))
			return
		}
		if !sleep(ctx, p.settings.Duration) {
			return
		}
		p.stopFgprof()
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func createProfile(path string) (*os.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(abs, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
}

func (p *profiler) startCPU() error {
	file, err := createProfile(p.settings.CPUPath)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(file); err != nil {
		_ = file.Close()
		return err
	}
	p.mu.Lock()
	p.cpuFile = file
	p.mu.Unlock()
	slog.Info("profiling: cpu profile started", slog.String("path", file.Name()))
	return nil
}

func (p *profiler) stopCPU() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cpuFile == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = p.cpuFile.Close()
	p.cpuFile = nil
}

func (p *profiler) startFgprof() error {
	file, err := createProfile(p.settings.FgprofPath)
	if err != nil {
		return err
	}
	stop := fgprof.Start(file, fgprof.FormatPprof)
	p.mu.Lock()
	p.fgFile, p.fgStop = file, stop
	p.mu.Unlock()
	slog.Info("profiling: fgprof started", slog.String("path", file.Name()))
	return nil
}

func (p *profiler) stopFgprof() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fgFile == nil {
		return
	}
	if err := p.fgStop(); err != nil {
		slog.Warn("profiling: fgprof stop", slog.Any("err", err))
	}
	_ = p.fgFile.Close()
	p.fgFile, p.fgStop = nil, nil
}

func (p *profiler) stop() {
	p.stopOnce.Do(func() {
		p.stopCPU()
		p.stopFgprof()
		if p.settings.MemPath != "" {
			if err := writeHeap(p.settings.MemPath); err != nil {
				slog.Warn("profiling: heap profile", slog.Any("err", err))
			}
		}
		if p.settings.Gops {
			agent.Close()
		}
	})
}

func writeHeap(path string) error {
	file, err := createProfile(path)
	if err != nil {
		return err
	}
	defer file.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(file)
}
