package root

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/regenrek/taskpit/internal/identity"
)

// Dependencies provides external services for CLI handlers.
type Dependencies struct {
	Version string
	AppName string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// RunUI drives the interactive program until it quits.
	RunUI func(ctx context.Context, model tea.Model) error
}

// DefaultDependencies returns dependencies wired to the real terminal.
func DefaultDependencies(version string) Dependencies {
	return Dependencies{
		Version: version,
		AppName: identity.CLIName,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		RunUI:   RunProgram,
	}
}

// RunProgram runs model full screen on the process terminal.
func RunProgram(ctx context.Context, model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
