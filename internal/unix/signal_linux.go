//go:build linux

// Package unix provides platform-specific process helpers.
package unix

import sysunix "golang.org/x/sys/unix"

// ProcDir is where the kernel exposes per-process command lines
const ProcDir = "/proc"

// Terminate sends SIGTERM to pid
func Terminate(pid int) error {
	return sysunix.Kill(pid, sysunix.SIGTERM)
}
