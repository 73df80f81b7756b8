package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/regenrek/taskpit/internal/appdirs"
	"github.com/regenrek/taskpit/internal/identity"
)

type InitOptions struct {
	App     string
	Version string
	Mode    Mode
}

// Init installs the default slog logger and returns a func that flushes and
// closes the sink.
func Init(cfg Config, opts InitOptions) (func() error, error) {
	if opts.App == "" {
		opts.App = identity.AppSlug
	}
	if opts.Mode == 0 {
		opts.Mode = ModeCLI
	}

	cfg = DefaultConfig(opts.Mode).Merge(cfg).WithEnv()
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	if opts.Mode == ModeTUI && sinkOf(cfg) == SinkStderr {
		// The UI owns the terminal.
		cfg.Sink = ptr(string(SinkFile))
	}

	writer, closeFn, err := openSink(cfg)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource != nil && *cfg.AddSource,
	}
	var handler slog.Handler
	if cfg.Format != nil && Format(*cfg.Format) == FormatJSON {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}
	logger := slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("mode", opts.Mode.String()),
	)
	slog.SetDefault(logger)
	setIncludePayloads(cfg.IncludePayloads != nil && *cfg.IncludePayloads)
	return closeFn, nil
}

func sinkOf(cfg Config) Sink {
	if cfg.Sink == nil {
		return SinkStderr
	}
	return Sink(*cfg.Sink)
}

func parseLevel(value *string) slog.Leveler {
	if value == nil {
		return slog.LevelInfo
	}
	switch *value {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openSink(cfg Config) (io.Writer, func() error, error) {
	nop := func() error { return nil }
	switch sink := sinkOf(cfg); sink {
	case SinkNone:
		return io.Discard, nop, nil
	case SinkStderr:
		return os.Stderr, nop, nil
	case SinkFile:
		path, isOverride, err := logFilePath(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := ensureLogDir(filepath.Dir(path), isOverride); err != nil {
			return nil, nil, err
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    derefInt(cfg.MaxSizeMB, 10),
			MaxBackups: derefInt(cfg.MaxBackups, 3),
			MaxAge:     derefInt(cfg.MaxAgeDays, 14),
			Compress:   cfg.Compress == nil || *cfg.Compress,
		}
		return rot, rot.Close, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", sink)
	}
}

func logFilePath(cfg Config) (string, bool, error) {
	if cfg.File != nil && strings.TrimSpace(*cfg.File) != "" {
		return *cfg.File, true, nil
	}
	dir, err := appdirs.RuntimeDirPath()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, identity.LogFile), false, nil
}

func derefInt(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
