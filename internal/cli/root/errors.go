package root

import (
	"errors"
	"strings"
)

// ErrNoHandler matches a HandlerError with errors.Is.
var ErrNoHandler = errors.New("no handler registered")

// HandlerError lists manifest commands that have nothing to run.
type HandlerError struct {
	Commands []string
}

func (e *HandlerError) Error() string {
	return "cli: " + ErrNoHandler.Error() + " for " + strings.Join(e.Commands, ", ")
}

func (e *HandlerError) Unwrap() error { return ErrNoHandler }
