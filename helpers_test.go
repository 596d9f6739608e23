package fusekafka

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/renameio/v2"
)

// writeProperties writes lines as a property file under dir and returns its path
func writeProperties(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	data := strings.Join(lines, "\n") + "\n"
	if err := renameio.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// recorder keeps an ordered log of fake process events
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeHandle struct {
	pid  int
	rec  *recorder
	done chan struct{}
	once sync.Once
}

func (h *fakeHandle) Pid() int { return h.pid }

func (h *fakeHandle) Wait() error {
	<-h.done
	return nil
}

func (h *fakeHandle) Terminate() error {
	h.rec.add("term %d", h.pid)
	h.once.Do(func() { close(h.done) })
	return nil
}

// fakeSpawner records every launch; directories listed in fail are refused
type fakeSpawner struct {
	rec     *recorder
	fail    map[string]error
	nextPID int

	mu    sync.Mutex
	argvs [][]string
	envs  [][]string
}

func newFakeSpawner(rec *recorder) *fakeSpawner {
	return &fakeSpawner{rec: rec, fail: map[string]error{}, nextPID: 1000}
}

func (s *fakeSpawner) Spawn(argv, env []string) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := argAfter(argv, "--"+DirectoriesKey)
	if err, ok := s.fail[dir]; ok {
		s.rec.add("spawn-failed %s", dir)
		return nil, err
	}

	s.argvs = append(s.argvs, argv)
	s.envs = append(s.envs, env)
	s.rec.add("spawn %s", dir)

	h := &fakeHandle{pid: s.nextPID, rec: s.rec, done: make(chan struct{})}
	s.nextPID++
	return h, nil
}

func (s *fakeSpawner) calls() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.argvs...)
}

func argAfter(argv []string, flag string) string {
	for i, arg := range argv {
		if arg == flag && i+1 < len(argv) {
			return argv[i+1]
		}
	}
	return ""
}

// fakeTable returns fixed pids for any signature
type fakeTable struct {
	rec      *recorder
	pids     []int
	matchErr error
	termErr  map[int]error

	mu         sync.Mutex
	signatures []string
}

func (f *fakeTable) Match(signature string) ([]int, error) {
	f.mu.Lock()
	f.signatures = append(f.signatures, signature)
	f.mu.Unlock()
	f.rec.add("match")
	return f.pids, f.matchErr
}

func (f *fakeTable) Terminate(pid int) error {
	if err, ok := f.termErr[pid]; ok {
		return err
	}
	f.rec.add("kill %d", pid)
	return nil
}
