//go:build windows

package app

// No job control on Windows; Ctrl-Z is ignored.
const canSuspend = false

func stopProcess() error { return nil }
