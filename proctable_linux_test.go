//go:build linux

package fusekafka

import (
	"os"
	"os/exec"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemProcessTableMatch(t *testing.T) {
	marker := "fusekafka-test-" + uuid.NewString()
	cmd := exec.Command("/bin/sh", "-c", "sleep 30; true", marker)
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	})

	table := SystemProcessTable{}
	pids, err := table.Match(marker)
	require.NoError(t, err)
	assert.Contains(t, pids, cmd.Process.Pid)
	assert.NotContains(t, pids, os.Getpid())

	require.NoError(t, table.Terminate(cmd.Process.Pid))
	_ = cmd.Wait()

	pids, err = table.Match(marker)
	require.NoError(t, err)
	assert.False(t, slices.Contains(pids, cmd.Process.Pid))
}

func TestSystemProcessTableNoMatch(t *testing.T) {
	pids, err := SystemProcessTable{}.Match("fusekafka-absent-" + uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, pids)
}
