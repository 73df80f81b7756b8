//go:build unix

package terminal

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

var killProcessGroup = syscall.Kill

var ioctlGetPGRP = func(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.TIOCGPGRP)
}

// foregroundPGRP reads the foreground process group of the controlling tty,
// which is the pty slave.
func foregroundPGRP(pty any) (int, bool) {
	slave, ok := pty.(interface{ Slave() *os.File })
	if !ok {
		return 0, false
	}
	f := slave.Slave()
	if f == nil {
		return 0, false
	}
	pgrp, err := ioctlGetPGRP(int(f.Fd()))
	if err != nil || pgrp <= 0 {
		return 0, false
	}
	return pgrp, true
}

// signalWINCHForPTY notifies the foreground job of a size change. It falls
// back to the shell's own group, which Setsid made equal to its pid.
func signalWINCHForPTY(pid int, pty any) {
	if pid <= 0 {
		return
	}
	target := pid
	if pgrp, ok := foregroundPGRP(pty); ok {
		target = pgrp
	}
	_ = killProcessGroup(-target, syscall.SIGWINCH)
}
