package logging

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/regenrek/taskpit/internal/identity"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

var (
	EnvLogLevel           = identity.EnvName("LOG_LEVEL")
	EnvLogFormat          = identity.EnvName("LOG_FORMAT")
	EnvLogSink            = identity.EnvName("LOG_SINK")
	EnvLogFile            = identity.EnvName("LOG_FILE")
	EnvLogIncludePayloads = identity.EnvName("LOG_INCLUDE_PAYLOADS")
	EnvLogMaxSizeMB       = identity.EnvName("LOG_MAX_SIZE_MB")
)

// Config is the logging section of config.yml. Nil fields fall back to the
// mode defaults.
type Config struct {
	Level           *string `yaml:"level,omitempty"`
	Format          *string `yaml:"format,omitempty"`
	Sink            *string `yaml:"sink,omitempty"`
	File            *string `yaml:"file,omitempty"`
	AddSource       *bool   `yaml:"add_source,omitempty"`
	IncludePayloads *bool   `yaml:"include_payloads,omitempty"`

	MaxSizeMB  *int  `yaml:"max_size_mb,omitempty"`
	MaxBackups *int  `yaml:"max_backups,omitempty"`
	MaxAgeDays *int  `yaml:"max_age_days,omitempty"`
	Compress   *bool `yaml:"compress,omitempty"`
}

func ptr[T any](v T) *T { return &v }

func DefaultConfig(mode Mode) Config {
	cfg := Config{
		Level:           ptr("error"),
		Format:          ptr(string(FormatText)),
		Sink:            ptr(string(SinkStderr)),
		AddSource:       ptr(false),
		IncludePayloads: ptr(false),
		MaxSizeMB:       ptr(10),
		MaxBackups:      ptr(3),
		MaxAgeDays:      ptr(14),
		Compress:        ptr(true),
	}
	if mode == ModeTUI {
		cfg.Level = ptr("info")
		cfg.Sink = ptr(string(SinkFile))
		cfg.Format = ptr(string(FormatJSON))
	}
	return cfg
}

// Merge overlays the non-nil fields of override onto c.
func (c Config) Merge(override Config) Config {
	pick := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	pickBool := func(dst **bool, src *bool) {
		if src != nil {
			*dst = src
		}
	}
	pickInt := func(dst **int, src *int) {
		if src != nil {
			*dst = src
		}
	}
	pick(&c.Level, override.Level)
	pick(&c.Format, override.Format)
	pick(&c.Sink, override.Sink)
	pick(&c.File, override.File)
	pickBool(&c.AddSource, override.AddSource)
	pickBool(&c.IncludePayloads, override.IncludePayloads)
	pickInt(&c.MaxSizeMB, override.MaxSizeMB)
	pickInt(&c.MaxBackups, override.MaxBackups)
	pickInt(&c.MaxAgeDays, override.MaxAgeDays)
	pickBool(&c.Compress, override.Compress)
	return c
}

func (c Config) WithEnv() Config {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Level = &v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		c.Format = &v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSink)); v != "" {
		c.Sink = &v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		c.File = &v
	}
	if raw := strings.TrimSpace(os.Getenv(EnvLogIncludePayloads)); raw != "" {
		c.IncludePayloads = ptr(!isDisabledString(raw))
	}
	if raw := strings.TrimSpace(os.Getenv(EnvLogMaxSizeMB)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			c.MaxSizeMB = &n
		}
	}
	return c
}

func (c Config) Normalize() (Config, error) {
	lower := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.ToLower(strings.TrimSpace(*s))
		if v == "" {
			return nil
		}
		return &v
	}
	nonNegative := func(n *int) *int {
		if n != nil && *n < 0 {
			return ptr(0)
		}
		return n
	}
	c.Level = lower(c.Level)
	c.Format = lower(c.Format)
	c.Sink = lower(c.Sink)
	if c.File != nil {
		if v := strings.TrimSpace(*c.File); v != "" {
			c.File = &v
		} else {
			c.File = nil
		}
	}
	c.MaxSizeMB = nonNegative(c.MaxSizeMB)
	c.MaxBackups = nonNegative(c.MaxBackups)
	c.MaxAgeDays = nonNegative(c.MaxAgeDays)
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Level != nil {
		switch *c.Level {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("logging.level: invalid %q", *c.Level)
		}
	}
	if c.Format != nil {
		switch Format(*c.Format) {
		case FormatText, FormatJSON:
		default:
			return fmt.Errorf("logging.format: invalid %q", *c.Format)
		}
	}
	if c.Sink != nil {
		switch Sink(*c.Sink) {
		case SinkStderr, SinkFile, SinkNone:
		default:
			return fmt.Errorf("logging.sink: invalid %q", *c.Sink)
		}
	}
	return nil
}

func isDisabledString(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no", "off":
		return true
	default:
		return false
	}
}
