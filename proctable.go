package fusekafka

import (
	"strings"

	"github.com/axondata/go-fusekafka/internal/unix"
)

// ProcessTable finds and signals running processes by command line
type ProcessTable interface {
	// Match returns the pids of processes whose command line contains signature
	Match(signature string) ([]int, error)
	// Terminate sends SIGTERM to pid
	Terminate(pid int) error
}

// SystemProcessTable is the ProcessTable of the running host
type SystemProcessTable struct{}

// Terminate sends SIGTERM to pid
func (SystemProcessTable) Terminate(pid int) error {
	return unix.Terminate(pid)
}

// cmdlineContains reports whether NUL-separated argv contains signature
// once its arguments are joined by spaces
func cmdlineContains(raw []byte, signature string) bool {
	args := strings.Split(strings.TrimRight(string(raw), "\x00"), "\x00")
	return strings.Contains(strings.Join(args, " "), signature)
}
