//go:build !windows

package app

import (
	"os"
	"syscall"
)

const canSuspend = true

// stopProcess signals peek alone. Signalling the process group would also
// stop a wrapping shell function and break `fg`.
func stopProcess() error {
	return syscall.Kill(os.Getpid(), syscall.SIGTSTP)
}
