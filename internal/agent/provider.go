// Package agent builds the command lines that start coding agents in a
// pane.
package agent

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Provider identifies a supported coding agent CLI.
type Provider string

const (
	ProviderClaude   Provider = "claude"
	ProviderCodex    Provider = "codex"
	ProviderAider    Provider = "aider"
	ProviderGemini   Provider = "gemini"
	ProviderAmp      Provider = "amp"
	ProviderOpenCode Provider = "opencode"
)

// DefaultProvider is used when a task does not name one.
const DefaultProvider = ProviderClaude

type promptStyle struct {
	flag string // empty passes the prompt as a positional argument
}

type providerSpec struct {
	provider Provider
	display  string
	program  string
	prompt   promptStyle
	aliases  []string
}

var providerSpecs = []providerSpec{
	{provider: ProviderClaude, display: "Claude Code", program: "claude", aliases: []string{"claude-code", "claudecode"}},
	{provider: ProviderCodex, display: "Codex", program: "codex"},
	{provider: ProviderAider, display: "Aider", program: "aider"},
	{provider: ProviderGemini, display: "Gemini", program: "gemini"},
	{provider: ProviderAmp, display: "Amp", program: "amp"},
	{provider: ProviderOpenCode, display: "OpenCode", program: "opencode", prompt: promptStyle{flag: "--prompt"}, aliases: []string{"open-code"}},
}

func specFor(p Provider) (providerSpec, bool) {
	for _, s := range providerSpecs {
		if s.provider == p {
			return s, true
		}
	}
	return providerSpec{}, false
}

// Providers lists every supported provider in cycle order.
func Providers() []Provider {
	out := make([]Provider, 0, len(providerSpecs))
	for _, s := range providerSpecs {
		out = append(out, s.provider)
	}
	return out
}

// DisplayName returns the human name, or the raw value for unknown
// providers.
func (p Provider) DisplayName() string {
	if s, ok := specFor(p); ok {
		return s.display
	}
	return string(p)
}

// Next returns the provider after p, wrapping around.
func (p Provider) Next() Provider {
	for i, s := range providerSpecs {
		if s.provider == p {
			return providerSpecs[(i+1)%len(providerSpecs)].provider
		}
	}
	return DefaultProvider
}

// Normalize returns the canonical provider for a name like "claude",
// "codex@latest" or "aider.exe", or "" when unknown.
func Normalize(value string) Provider {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	value = strings.TrimSuffix(value, ".exe")
	if at := strings.Index(value, "@"); at > 0 {
		value = value[:at]
	}
	for _, s := range providerSpecs {
		if value == string(s.provider) || value == s.program {
			return s.provider
		}
		for _, alias := range s.aliases {
			if value == alias {
				return s.provider
			}
		}
	}
	return ""
}

// ParseProvider is Normalize with an error for unknown names. Empty input
// selects DefaultProvider.
func ParseProvider(value string) (Provider, error) {
	if strings.TrimSpace(value) == "" {
		return DefaultProvider, nil
	}
	if p := Normalize(value); p != "" {
		return p, nil
	}
	names := make([]string, 0, len(providerSpecs))
	for _, s := range providerSpecs {
		names = append(names, string(s.provider))
	}
	return "", fmt.Errorf("unknown agent provider %q (expected one of %s)", value, strings.Join(names, ", "))
}

// DetectFromCommand infers the provider from a launch command such as
// "npx codex@latest --full-auto".
func DetectFromCommand(command string) Provider {
	args, err := shellquote.Split(strings.TrimSpace(command))
	if err != nil || len(args) == 0 {
		return ""
	}
	exe := executableArg(args)
	if exe == "" {
		return ""
	}
	return Normalize(baseNameAnySeparator(exe))
}

func executableArg(args []string) string {
	first := strings.ToLower(strings.TrimSpace(args[0]))
	if !isWrapperCommand(first) {
		return args[0]
	}
	for _, arg := range args[1:] {
		arg = strings.TrimSpace(arg)
		switch {
		case arg == "", strings.HasPrefix(arg, "-"):
			continue
		case first == "env" && strings.Contains(arg, "="):
			continue
		}
		return arg
	}
	return ""
}

func isWrapperCommand(cmd string) bool {
	switch cmd {
	case "env", "npx", "pnpm", "yarn", "npm", "bunx", "bun", "sudo":
		return true
	default:
		return false
	}
}

func baseNameAnySeparator(path string) string {
	path = strings.TrimRight(strings.TrimSpace(path), "/\\")
	if idx := strings.LastIndexAny(path, "/\\"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
