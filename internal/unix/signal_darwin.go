//go:build darwin

// Package unix provides platform-specific process helpers.
package unix

import sysunix "golang.org/x/sys/unix"

// Terminate sends SIGTERM to pid
func Terminate(pid int) error {
	return sysunix.Kill(pid, sysunix.SIGTERM)
}
