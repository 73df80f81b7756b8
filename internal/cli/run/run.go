// Package run implements the command that opens the multiplexer.
package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/google/uuid"

	"github.com/regenrek/taskpit/internal/agent"
	"github.com/regenrek/taskpit/internal/appconfig"
	"github.com/regenrek/taskpit/internal/cli/root"
	"github.com/regenrek/taskpit/internal/mux"
	"github.com/regenrek/taskpit/internal/profiling"
	"github.com/regenrek/taskpit/internal/sessionstore"
	"github.com/regenrek/taskpit/internal/tui"
	"github.com/regenrek/taskpit/internal/userpath"
)

// Register registers the run handler.
func Register(reg *root.Registry) {
	reg.Register("run", runMux)
}

func runMux(ctx root.CommandContext) error {
	if ctx.Deps.RunUI == nil {
		return fmt.Errorf("no terminal program runner configured")
	}
	path, err := appconfig.DefaultPath()
	if err != nil {
		return err
	}
	loader := appconfig.NewLoader(path)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	keys, err := cfg.KeyBindings()
	if err != nil {
		return err
	}
	task, err := taskFromFlags(ctx, cfg)
	if err != nil {
		return err
	}
	store, err := sessionstore.DefaultStore()
	if err != nil {
		return err
	}

	stopProfiles := profiling.Start(ctx.Context, profiling.SettingsFromEnv())
	defer stopProfiles()

	state := mux.New(cfg.MuxOptions())
	defer state.Close()

	if cfg.RestoreEnabled() && !ctx.Cmd.Bool("no-restore") {
		restore(ctx.Context, state, store, cfg.Restore.Respawn || ctx.Cmd.Bool("respawn"))
	}
	if task != nil {
		state.CreatePaneForTask(*task, cfg.DefaultRows, cfg.DefaultCols)
	}
	if state.PaneCount() == 0 {
		state.CreatePane(cfg.DefaultRows, cfg.DefaultCols)
	}

	model, err := tui.New(tui.Options{
		State:     state,
		Keymap:    keys,
		Config:    loader,
		Store:     store,
		Profile:   colorprofile.Detect(ctx.Out, os.Environ()),
		SaveEvery: tui.DefaultSaveEvery,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	runErr := ctx.Deps.RunUI(ctx.Context, model)
	if err := store.Save(context.Background(), state.Metadata(sessionstore.DefaultSnapshotLines)); err != nil {
		slog.Warn("run: save panes", slog.Any("err", err))
	}
	return runErr
}

func restore(ctx context.Context, state *mux.State, store *sessionstore.Store, respawn bool) {
	doc, ok, err := store.Load(ctx)
	if err != nil {
		slog.Warn("run: load saved panes", slog.Any("err", err))
		return
	}
	if !ok {
		return
	}
	if err := state.Restore(doc.State, respawn); err != nil {
		slog.Warn("run: restore panes", slog.Any("err", err))
		return
	}
	slog.Info("run: restored panes",
		slog.Int("count", state.PaneCount()),
		slog.Time("saved_at", doc.SavedAt),
	)
}

func taskFromFlags(ctx root.CommandContext, cfg appconfig.Config) (*mux.TaskSpec, error) {
	title := strings.TrimSpace(ctx.Cmd.String("task"))
	if title == "" {
		return nil, nil
	}
	provider := cfg.Provider()
	if raw := strings.TrimSpace(ctx.Cmd.String("provider")); raw != "" {
		p, err := agent.ParseProvider(raw)
		if err != nil {
			return nil, err
		}
		provider = p
	}
	dir := strings.TrimSpace(ctx.Cmd.String("dir"))
	if dir != "" {
		abs, err := filepath.Abs(userpath.ExpandUser(dir))
		if err != nil {
			return nil, fmt.Errorf("resolve --dir: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("--dir %s is not a directory", dir)
		}
		dir = abs
	}
	id := strings.TrimSpace(ctx.Cmd.String("task-id"))
	if id == "" {
		id = uuid.NewString()
	}
	return &mux.TaskSpec{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(ctx.Cmd.String("description")),
		WorkingDir:  dir,
		Provider:    provider,
	}, nil
}
