package appconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/regenrek/taskpit/internal/appdirs"
	"github.com/regenrek/taskpit/internal/runenv"
)

// DefaultPath returns the global config path.
func DefaultPath() (string, error) {
	return appdirs.ConfigFilePath()
}

// Parse decodes config.yml content, applies defaults and validates it.
// Unknown keys are errors so typos do not go unnoticed.
func Parse(data []byte) (Config, error) {
	cfg := Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Defaults(), fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Defaults(), fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Loader caches config values and reloads when the file changes.
type Loader struct {
	path     string
	lastRead fileState
	cached   Config
}

type fileState struct {
	modTime time.Time
	size    int64
}

// NewLoader creates a config loader for the provided path.
func NewLoader(path string) *Loader {
	return &Loader{
		path:   strings.TrimSpace(path),
		cached: Defaults(),
	}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Load returns the cached config, reloading if the file changed. A missing
// file yields the defaults.
func (l *Loader) Load() (Config, error) {
	if l == nil {
		return Defaults(), errors.New("nil loader")
	}
	if l.path == "" {
		return Defaults(), errors.New("empty config path")
	}
	if runenv.FreshConfigEnabled() {
		return Defaults(), nil
	}
	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.cached = Defaults()
			l.lastRead = fileState{}
			return l.cached, nil
		}
		return Defaults(), err
	}
	state := fileState{modTime: info.ModTime(), size: info.Size()}
	if state == l.lastRead {
		return l.cached, nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return Defaults(), err
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", l.path, err)
	}
	l.cached = cfg
	l.lastRead = state
	return cfg, nil
}
