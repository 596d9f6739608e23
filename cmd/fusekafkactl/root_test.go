package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/renameio/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fusekafka "github.com/axondata/go-fusekafka"
)

type stubHandle struct {
	pid  int
	done chan struct{}
}

func (h *stubHandle) Pid() int { return h.pid }

func (h *stubHandle) Wait() error {
	<-h.done
	return nil
}

func (h *stubHandle) Terminate() error {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
	return nil
}

type stubSpawner struct {
	argvs [][]string
}

func (s *stubSpawner) Spawn(argv, _ []string) (fusekafka.Handle, error) {
	s.argvs = append(s.argvs, argv)
	return &stubHandle{pid: 2000 + len(s.argvs), done: make(chan struct{})}, nil
}

type stubTable struct {
	pids   []int
	killed []int
}

func (t *stubTable) Match(string) ([]int, error) { return t.pids, nil }

func (t *stubTable) Terminate(pid int) error {
	t.killed = append(t.killed, pid)
	return nil
}

type harness struct {
	settings string
	spawner  *stubSpawner
	table    *stubTable
}

func newHarness(t *testing.T, lines ...string) *harness {
	t.Helper()
	dir := t.TempDir()
	conf := filepath.Join(dir, "conf")
	require.NoError(t, os.MkdirAll(conf, 0o755))
	require.NoError(t, renameio.WriteFile(filepath.Join(conf, "fuse_kafka.properties"), []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	settings := filepath.Join(dir, "fusekafkactl.yaml")
	data := fmt.Sprintf("search_paths:\n  - %s/*\nsleep_marker: %s/backup\n", conf, dir)
	require.NoError(t, renameio.WriteFile(settings, []byte(data), 0o644))

	return &harness{settings: settings, spawner: &stubSpawner{}, table: &stubTable{}}
}

func (h *harness) run(args ...string) (string, string, error) {
	cmd := newRootCommand(
		fusekafka.WithSpawner(h.spawner),
		fusekafka.WithProcessTable(h.table),
		fusekafka.WithEnviron([]string{"PATH=/usr/bin"}),
	)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--settings", h.settings, "--log-format", "json"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestStartCommand(t *testing.T) {
	h := newHarness(t, `fuse_kafka_directories=["/var/log", "/srv/log"]`)

	out, logs, err := h.run("start")
	require.NoError(t, err)
	assert.Contains(t, out, "DIRECTORY")
	assert.Contains(t, out, "/var/log")
	assert.Contains(t, out, "/srv/log")
	assert.Contains(t, out, "started")
	require.Len(t, h.spawner.argvs, 2)
	assert.Equal(t, fusekafka.WorkerPrefix(fusekafka.DefaultBinary), h.spawner.argvs[0][:len(fusekafka.WorkerOptions)+1])

	line, _, _ := strings.Cut(logs, "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "start", entry["action"])
	assert.NotEmpty(t, entry["run_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestStopCommand(t *testing.T) {
	h := newHarness(t, `fuse_kafka_directories=["/var/log"]`)
	h.table.pids = []int{31, 32}

	out, _, err := h.run("stop")
	require.NoError(t, err)
	assert.Equal(t, "Stopped 2 workers\n", out)
	assert.Equal(t, []int{31, 32}, h.table.killed)
	assert.Empty(t, h.spawner.argvs)
}

func TestRestartCommand(t *testing.T) {
	h := newHarness(t, `fuse_kafka_directories=["/var/log"]`)
	h.table.pids = []int{31}

	out, _, err := h.run("restart")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Stopped 1 workers\n"), out)
	assert.Contains(t, out, "/var/log")
	assert.Len(t, h.spawner.argvs, 1)
}

func TestStatusCommand(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("status")
	require.NoError(t, err)
	assert.Equal(t, "undefined\n", out)
}

func TestStartCommandNothingToStart(t *testing.T) {
	h := newHarness(t, `fuse_kafka_directories=[]`)

	out, _, err := h.run("start")
	require.NoError(t, err)
	assert.Equal(t, "No directories to start\n", out)
}

func TestUnknownAction(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("reload")
	assert.ErrorIs(t, err, fusekafka.ErrUnknownAction)
	assert.Empty(t, out)
}

func TestActionRequired(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run()
	assert.Error(t, err)
}

func TestBadLogLevel(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("--log-level", "loud", "status")
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("--version")
	require.NoError(t, err)
	assert.Equal(t, "fusekafkactl version "+fusekafka.Version+"\n", out)
}
