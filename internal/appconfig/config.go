// Package appconfig loads config.yml, the user's multiplexer settings.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/regenrek/taskpit/internal/agent"
	"github.com/regenrek/taskpit/internal/input"
	"github.com/regenrek/taskpit/internal/layout"
	"github.com/regenrek/taskpit/internal/limits"
	"github.com/regenrek/taskpit/internal/logging"
	"github.com/regenrek/taskpit/internal/mux"
	"github.com/regenrek/taskpit/internal/runenv"
	"github.com/regenrek/taskpit/internal/userpath"
)

const defaultEnterDelayMS = 50

// Config represents config.yml.
type Config struct {
	Shell           string `yaml:"shell,omitempty"`
	DefaultRows     int    `yaml:"default_rows,omitempty"`
	DefaultCols     int    `yaml:"default_cols,omitempty"`
	ScrollbackLines int    `yaml:"scrollback_lines,omitempty"`

	Layout  LayoutConfig        `yaml:"layout,omitempty"`
	Agent   AgentConfig         `yaml:"agent,omitempty"`
	Restore RestoreConfig       `yaml:"restore,omitempty"`
	Keymap  map[string][]string `yaml:"keymap,omitempty"`
	Logging logging.Config      `yaml:"logging,omitempty"`
}

// LayoutConfig bounds automatic splits.
type LayoutConfig struct {
	MinWidth    int     `yaml:"min_width,omitempty"`
	MinHeight   int     `yaml:"min_height,omitempty"`
	AspectRatio float64 `yaml:"aspect_ratio,omitempty"`
}

// AgentConfig configures how task panes start their coding agent.
type AgentConfig struct {
	Provider string `yaml:"provider,omitempty"`
	// Command replaces the provider's program and flags. The prompt is
	// still appended.
	Command      string `yaml:"command,omitempty"`
	Launch       string `yaml:"launch,omitempty"`
	EnterDelayMS *int   `yaml:"enter_delay_ms,omitempty"`
}

// RestoreConfig controls pane persistence across restarts.
type RestoreConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	Respawn bool  `yaml:"respawn,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	c := layout.DefaultConstraints()
	delay := defaultEnterDelayMS
	enabled := true
	return Config{
		DefaultRows:     limits.DefaultRows,
		DefaultCols:     limits.DefaultCols,
		ScrollbackLines: limits.ScrollbackLinesDefault,
		Layout: LayoutConfig{
			MinWidth:    c.MinWidth,
			MinHeight:   c.MinHeight,
			AspectRatio: c.AspectRatio,
		},
		Agent: AgentConfig{
			Provider:     string(agent.DefaultProvider),
			Launch:       string(mux.LaunchType),
			EnterDelayMS: &delay,
		},
		Restore: RestoreConfig{Enabled: &enabled},
	}
}

func applyDefaults(cfg *Config) {
	def := Defaults()
	cfg.Shell = strings.TrimSpace(cfg.Shell)
	if cfg.DefaultRows <= 0 {
		cfg.DefaultRows = def.DefaultRows
	}
	if cfg.DefaultCols <= 0 {
		cfg.DefaultCols = def.DefaultCols
	}
	cfg.ScrollbackLines = limits.ScrollbackLines(cfg.ScrollbackLines)
	if cfg.Layout.MinWidth <= 0 {
		cfg.Layout.MinWidth = def.Layout.MinWidth
	}
	if cfg.Layout.MinHeight <= 0 {
		cfg.Layout.MinHeight = def.Layout.MinHeight
	}
	if cfg.Layout.AspectRatio <= 0 {
		cfg.Layout.AspectRatio = def.Layout.AspectRatio
	}
	cfg.Agent.Provider = strings.TrimSpace(cfg.Agent.Provider)
	if cfg.Agent.Provider == "" {
		cfg.Agent.Provider = def.Agent.Provider
	}
	cfg.Agent.Command = strings.TrimSpace(cfg.Agent.Command)
	cfg.Agent.Launch = strings.ToLower(strings.TrimSpace(cfg.Agent.Launch))
	if cfg.Agent.Launch == "" {
		cfg.Agent.Launch = def.Agent.Launch
	}
	if cfg.Agent.EnterDelayMS == nil {
		cfg.Agent.EnterDelayMS = def.Agent.EnterDelayMS
	}
	if cfg.Restore.Enabled == nil {
		cfg.Restore.Enabled = def.Restore.Enabled
	}
}

// Validate reports the first invalid setting, naming its yaml path.
func (c Config) Validate() error {
	if err := limits.ValidateMax(c.DefaultCols, c.DefaultRows); err != nil {
		return fmt.Errorf("default_rows/default_cols: %w", err)
	}
	if _, err := agent.ParseProvider(c.Agent.Provider); err != nil {
		return fmt.Errorf("agent.provider: %w", err)
	}
	switch mux.LaunchMode(c.Agent.Launch) {
	case mux.LaunchType, mux.LaunchExec:
	default:
		return fmt.Errorf("agent.launch: invalid %q (want %q or %q)", c.Agent.Launch, mux.LaunchType, mux.LaunchExec)
	}
	if c.Agent.EnterDelayMS != nil && *c.Agent.EnterDelayMS < 0 {
		return errors.New("agent.enter_delay_ms: must not be negative")
	}
	if c.Layout.AspectRatio < 0.5 || c.Layout.AspectRatio > 10 {
		return fmt.Errorf("layout.aspect_ratio: %.2f out of range [0.5, 10]", c.Layout.AspectRatio)
	}
	if _, err := input.BuildKeymap(c.Keymap); err != nil {
		return err
	}
	if _, err := c.Logging.Normalize(); err != nil {
		return err
	}
	return nil
}

// RestoreEnabled reports whether persisted panes are loaded at startup.
func (c Config) RestoreEnabled() bool {
	if runenv.RestoreDisabled() {
		return false
	}
	return c.Restore.Enabled == nil || *c.Restore.Enabled
}

// EnterDelay resolves the typed-command delay, preferring the environment.
func (c Config) EnterDelay() time.Duration {
	if d, ok := runenv.EnterDelay(); ok {
		return d
	}
	if c.Agent.EnterDelayMS == nil {
		return defaultEnterDelayMS * time.Millisecond
	}
	return time.Duration(*c.Agent.EnterDelayMS) * time.Millisecond
}

// KeyBindings builds the keymap with the configured overrides applied.
func (c Config) KeyBindings() (*input.Keymap, error) {
	return input.BuildKeymap(c.Keymap)
}

// MuxOptions converts the config into multiplexer options.
func (c Config) MuxOptions() mux.Options {
	opts := mux.DefaultOptions()
	opts.Shell = userpath.ExpandUser(c.Shell)
	if c.Shell == "" {
		opts.Shell = os.Getenv("SHELL")
	}
	opts.DefaultRows = c.DefaultRows
	opts.DefaultCols = c.DefaultCols
	opts.ScrollbackLines = c.ScrollbackLines
	opts.Constraints = layout.Constraints{
		MinWidth:    c.Layout.MinWidth,
		MinHeight:   c.Layout.MinHeight,
		AspectRatio: c.Layout.AspectRatio,
	}
	opts.EnterDelay = c.EnterDelay()
	opts.AgentCommand = c.Agent.Command
	opts.AgentLaunch = mux.LaunchMode(c.Agent.Launch)
	return opts
}

// Provider returns the configured default agent provider.
func (c Config) Provider() agent.Provider {
	p, err := agent.ParseProvider(c.Agent.Provider)
	if err != nil {
		return agent.DefaultProvider
	}
	return p
}
