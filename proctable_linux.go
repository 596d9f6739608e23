//go:build linux

package fusekafka

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/axondata/go-fusekafka/internal/unix"
)

// Match scans procfs for command lines containing signature.
// Processes that exit during the scan are ignored.
func (SystemProcessTable) Match(signature string) ([]int, error) {
	entries, err := os.ReadDir(unix.ProcDir)
	if err != nil {
		return nil, &OpError{Op: ActionStop, Path: unix.ProcDir, Err: err}
	}

	var pids []int
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || !entry.IsDir() {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(unix.ProcDir, entry.Name(), "cmdline"))
		// Vanished processes, kernel threads and unreadable entries are skipped
		if err != nil || len(raw) == 0 {
			continue
		}
		if cmdlineContains(raw, signature) {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}
