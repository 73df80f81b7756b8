package appconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/regenrek/taskpit/internal/atomicfile"
	"github.com/regenrek/taskpit/internal/identity"
	"github.com/regenrek/taskpit/internal/input"
)

const templateHeader = `# %s configuration.
# Keys left out fall back to the defaults shown here.

# shell: /bin/zsh        # defaults to $SHELL
default_rows: 24
default_cols: 80
scrollback_lines: 10000

layout:
  min_width: 20
  min_height: 6
  aspect_ratio: 2.0

agent:
  provider: claude       # claude, codex, aider, gemini, amp, opencode
  # command: "claude --model sonnet"
  launch: type           # type: type into the shell; exec: run before the shell
  enter_delay_ms: 50

restore:
  enabled: true
  respawn: false

# logging:
#   level: info
#   sink: file

# Key overrides, one list of keys per action:
`

// Template returns a commented config.yml with every keymap action listed.
func Template() string {
	var b strings.Builder
	fmt.Fprintf(&b, templateHeader, identity.BrandName)
	b.WriteString("# keymap:\n")
	for _, name := range input.ActionNames() {
		fmt.Fprintf(&b, "#   %s: []\n", name)
	}
	return b.String()
}

// EnsureDefault writes Template to path unless a file already exists. It
// reports whether a file was written.
func EnsureDefault(path string, overwrite bool) (bool, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return false, errors.New("empty config path")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		} else if !os.IsNotExist(err) {
			return false, err
		}
	}
	if err := atomicfile.Save(path, []byte(Template()), 0o600); err != nil {
		return false, err
	}
	return true, nil
}
