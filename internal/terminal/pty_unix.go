//go:build unix

package terminal

import (
	"os/exec"
	"syscall"
)

// setupPTYCommand makes the child a session leader with the pty slave
// (its stdin, fd 0) as controlling terminal. Job control in shells like
// fish depends on it.
func setupPTYCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}
}
