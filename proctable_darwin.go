//go:build darwin

package fusekafka

import (
	"bytes"
	"errors"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Match asks pgrep for full command lines containing signature.
// pgrep exits 1 when nothing matches, which is not an error here.
func (SystemProcessTable) Match(signature string) ([]int, error) {
	out, err := exec.Command("pgrep", "-f", "--", regexp.QuoteMeta(signature)).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, &OpError{Op: ActionStop, Path: "pgrep", Err: err}
	}

	var pids []int
	for _, field := range strings.Fields(string(bytes.TrimSpace(out))) {
		if pid, err := strconv.Atoi(field); err == nil {
			pids = append(pids, pid)
		}
	}
	return pids, nil
}
