// Package manifest loads the embedded command catalog that the CLI is
// built from.
package manifest

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed commands.yaml commands.schema.json
var embeddedFS embed.FS

const schemaName = "commands.schema.json"

// Manifest is the command catalog.
type Manifest struct {
	Version     int       `yaml:"version"`
	App         AppInfo   `yaml:"app"`
	GlobalFlags []Flag    `yaml:"global_flags"`
	Commands    []Command `yaml:"commands"`
}

// AppInfo configures the top-level app.
type AppInfo struct {
	Name           string `yaml:"name"`
	Summary        string `yaml:"summary"`
	DefaultCommand string `yaml:"default_command"`
}

// Flag describes a CLI flag.
type Flag struct {
	Name        string   `yaml:"name"`
	Aliases     []string `yaml:"aliases"`
	Type        string   `yaml:"type"`
	Default     any      `yaml:"default"`
	Enum        []string `yaml:"enum"`
	Description string   `yaml:"description"`
	Env         string   `yaml:"env"`
	Hidden      bool     `yaml:"hidden"`
}

// Arg describes a positional argument.
type Arg struct {
	Name        string `yaml:"name"`
	Required    bool   `yaml:"required"`
	Description string `yaml:"description"`
}

// Command describes a command and its subcommands.
type Command struct {
	Name        string    `yaml:"name"`
	ID          string    `yaml:"id"`
	Summary     string    `yaml:"summary"`
	Description string    `yaml:"description"`
	Aliases     []string  `yaml:"aliases"`
	Flags       []Flag    `yaml:"flags"`
	Args        []Arg     `yaml:"args"`
	JSON        bool      `yaml:"json"`
	Hidden      bool      `yaml:"hidden"`
	Subcommands []Command `yaml:"subcommands"`
}

// LoadDefault loads and validates the embedded catalog.
func LoadDefault() (*Manifest, error) {
	data, err := embeddedFS.ReadFile("commands.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded commands: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog from YAML and validates it against the embedded
// schema.
func Parse(data []byte) (*Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("command catalog is empty")
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse commands yaml: %w", err)
	}
	if err := m.checkIDs(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks YAML against the embedded JSON schema.
func Validate(data []byte) error {
	schemaBytes, err := embeddedFS.ReadFile(schemaName)
	if err != nil {
		return fmt.Errorf("read embedded schema: %w", err)
	}
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return fmt.Errorf("parse schema json: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaName, schemaDoc); err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	schema, err := compiler.Compile(schemaName)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	payload, err := yamlToJSON(data)
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("parse commands json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("command catalog: %w", err)
	}
	return nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	normalized, err := normalizeYAML(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// normalizeYAML turns yaml.v3 maps into string-keyed maps json can encode.
func normalizeYAML(value any) (any, error) {
	switch typed := value.(type) {
	case map[string]any:
		for key, val := range typed {
			n, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			typed[key] = n
		}
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			strKey, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("invalid yaml map key: %T", key)
			}
			n, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[strKey] = n
		}
		return out, nil
	case []any:
		for i, val := range typed {
			n, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			typed[i] = n
		}
		return typed, nil
	default:
		return value, nil
	}
}

func (m *Manifest) checkIDs() error {
	seen := make(map[string]bool)
	for _, cmd := range m.AllCommands() {
		if seen[cmd.ID] {
			return fmt.Errorf("duplicate command id %q", cmd.ID)
		}
		seen[cmd.ID] = true
	}
	if def := strings.TrimSpace(m.App.DefaultCommand); def != "" && !seen[def] {
		return fmt.Errorf("default command %q not found", def)
	}
	return nil
}

// AllCommands returns commands depth first, parents before children.
func (m *Manifest) AllCommands() []Command {
	if m == nil {
		return nil
	}
	var out []Command
	var walk func(Command)
	walk = func(c Command) {
		out = append(out, c)
		for _, sub := range c.Subcommands {
			walk(sub)
		}
	}
	for _, c := range m.Commands {
		walk(c)
	}
	return out
}

// FindByID returns the command with id, or nil.
func (m *Manifest) FindByID(id string) *Command {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	for _, cmd := range m.AllCommands() {
		if cmd.ID == id {
			found := cmd
			return &found
		}
	}
	return nil
}

// IsTopLevel reports whether name is a top-level command or alias.
func (m *Manifest) IsTopLevel(name string) bool {
	if m == nil {
		return false
	}
	name = strings.TrimSpace(name)
	for _, cmd := range m.Commands {
		if strings.EqualFold(cmd.Name, name) {
			return true
		}
		for _, alias := range cmd.Aliases {
			if strings.EqualFold(alias, name) {
				return true
			}
		}
	}
	return false
}
