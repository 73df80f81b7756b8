package agent

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Command is a program plus arguments ready to run or to type into a shell.
type Command struct {
	Provider Provider
	Program  string
	Args     []string
}

// String renders the command as a single shell-quoted line.
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Program}, c.Args...)...)
}

// ShellWrapped runs the command through sh and replaces it with the user's
// shell afterwards, so the pane stays usable once the agent quits.
func (c Command) ShellWrapped() (string, []string) {
	return "sh", []string{"-c", c.String() + "; exec $SHELL"}
}

// BuildTaskPrompt composes the agent prompt for a task.
func BuildTaskPrompt(title, description string) string {
	if description == "" {
		return title
	}
	return fmt.Sprintf("Work on this task:\n\nTitle: %s\n\nDescription: %s", title, description)
}

// BuildCommand builds the launch command for p. A non-empty override
// replaces the provider's program (it may carry its own arguments, e.g.
// "npx codex@latest"). An empty prompt adds no prompt argument.
func BuildCommand(p Provider, override, prompt string) (Command, error) {
	spec, ok := specFor(p)
	if !ok {
		return Command{}, fmt.Errorf("unknown agent provider %q", p)
	}
	cmd := Command{Provider: p, Program: spec.program}
	if override = strings.TrimSpace(override); override != "" {
		words, err := shellquote.Split(override)
		if err != nil {
			return Command{}, fmt.Errorf("agent command %q: %w", override, err)
		}
		if len(words) == 0 {
			return Command{}, fmt.Errorf("agent command %q is empty", override)
		}
		cmd.Program = words[0]
		cmd.Args = append(cmd.Args, words[1:]...)
	}
	if prompt != "" {
		if spec.prompt.flag != "" {
			cmd.Args = append(cmd.Args, spec.prompt.flag)
		}
		cmd.Args = append(cmd.Args, prompt)
	}
	return cmd, nil
}
