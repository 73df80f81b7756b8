//go:build windows

package terminal

import "os/exec"

// setupPTYCommand is a no-op on Windows; ConPTY attaches the console.
func setupPTYCommand(_ *exec.Cmd) {}

func (s *Session) syncSlaveSize(ptyDevice, int, int) {}

func signalWINCHForPTY(int, any) {}
