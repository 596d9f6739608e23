package fusekafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"

	"vawter.tech/stopper"
)

// closeGrace is how long Close lets reapers observe worker exit before cancelling
const closeGrace = 100 * time.Millisecond

// Supervisor runs one worker per managed directory and controls the fleet as a whole.
// Spawns are sequential; spawned workers are tracked by directory and reaped in the background.
type Supervisor struct {
	// Loader builds the normalized Configuration on every start
	Loader *Loader
	// Spawner launches workers
	Spawner Spawner
	// Table finds workers by signature for stop
	Table ProcessTable
	// Environ is the base environment workers derive theirs from
	Environ []string
	// LibraryDir is appended to LD_LIBRARY_PATH
	LibraryDir string
	// Binary is the worker executable name, argv[0] of every worker
	Binary string
	// Logger receives lifecycle events
	Logger *slog.Logger

	mu      sync.Mutex
	handles map[string]*trackedHandle
	reapers *stopper.Context
}

// Option configures a Supervisor
type Option func(*Supervisor)

// WithSearchPaths sets the property file glob patterns, in merge order
func WithSearchPaths(patterns ...string) Option {
	return func(s *Supervisor) {
		s.Loader.SearchPaths = append([]string(nil), patterns...)
	}
}

// WithProbe sets the sleep-mode probe
func WithProbe(p Probe) Option {
	return func(s *Supervisor) {
		s.Loader.Probe = p
	}
}

// WithSleepMarker probes sleep mode through the existence of path
func WithSleepMarker(path string) Option {
	return WithProbe(MarkerProbe(path))
}

// WithEnviron sets the base worker environment
func WithEnviron(env []string) Option {
	return func(s *Supervisor) {
		s.Environ = append([]string(nil), env...)
	}
}

// WithSpawner sets how workers are launched
func WithSpawner(sp Spawner) Option {
	return func(s *Supervisor) {
		s.Spawner = sp
	}
}

// WithProcessTable sets how running workers are found and signalled
func WithProcessTable(t ProcessTable) Option {
	return func(s *Supervisor) {
		s.Table = t
	}
}

// WithLibraryDir sets the directory appended to LD_LIBRARY_PATH
func WithLibraryDir(dir string) Option {
	return func(s *Supervisor) {
		s.LibraryDir = dir
	}
}

// WithBinary sets the worker executable name
func WithBinary(name string) Option {
	return func(s *Supervisor) {
		s.Binary = name
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Supervisor) {
		s.Logger = l
		s.Loader.Logger = l
	}
}

// NewSupervisor creates a Supervisor with default settings
func NewSupervisor(opts ...Option) *Supervisor {
	s := &Supervisor{
		Loader:     NewLoader(),
		Spawner:    ExecSpawner{},
		Table:      SystemProcessTable{},
		Environ:    os.Environ(),
		LibraryDir: DefaultLibraryDir,
		Binary:     DefaultBinary,
		Logger:     slog.New(slog.DiscardHandler),
		handles:    make(map[string]*trackedHandle),
		reapers:    stopper.WithContext(context.Background()),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}

	return s
}

// SpawnResult is the launch outcome for one managed directory
type SpawnResult struct {
	Directory string
	// Args is the complete worker argv
	Args []string
	// PID is set when the launch succeeded
	PID int
	Err error
}

// StatusState describes what is known about the fleet
type StatusState int

const (
	// StateUndefined means no health information is available
	StateUndefined StatusState = iota
)

// String returns the string representation of a StatusState
func (s StatusState) String() string {
	return "undefined"
}

// Status is the fleet status report
type Status struct {
	State StatusState
}

// Result collects the outcome of a dispatched action
type Result struct {
	Action  Action
	Spawned []SpawnResult
	Stopped int
	Status  Status
}

// Do dispatches an action by name. Unknown names return ErrUnknownAction.
func (s *Supervisor) Do(ctx context.Context, name string) (Result, error) {
	action, err := ParseAction(name)
	if err != nil {
		return Result{Action: ActionUnknown}, err
	}

	result := Result{Action: action}
	switch action {
	case ActionStart:
		result.Spawned, err = s.Start(ctx)
	case ActionStop:
		result.Stopped, err = s.Stop(ctx)
	case ActionRestart:
		result.Stopped, result.Spawned, err = s.Restart(ctx)
	case ActionStatus:
		result.Status, err = s.Status(ctx)
	}
	return result, err
}

// Start loads the configuration and launches one worker per directory.
// Launches are fire-and-forget; a failed launch is recorded in its SpawnResult
// and the remaining directories are still attempted.
func (s *Supervisor) Start(ctx context.Context) ([]SpawnResult, error) {
	cfg, err := s.Loader.Load()
	if err != nil {
		return nil, err
	}

	dirs, ok := cfg.Get(DirectoriesKey)
	if !ok {
		return nil, &OpError{Op: ActionStart, Key: DirectoriesKey, Err: ErrNoDirectories}
	}

	env := WorkerEnviron(s.Environ, s.LibraryDir)
	results := make([]SpawnResult, 0, len(dirs))
	merr := &MultiError{}

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			merr.Add(err)
			break
		}

		argv := append(WorkerPrefix(s.Binary), cfg.ForDirectory(dir).Args()...)
		result := SpawnResult{Directory: dir, Args: argv}

		handle, err := s.Spawner.Spawn(argv, env)
		if err != nil {
			result.Err = &OpError{Op: ActionStart, Path: dir, Err: fmt.Errorf("%w: %w", ErrSpawn, err)}
			merr.Add(result.Err)
			s.Logger.Error("worker spawn failed", "directory", dir, "error", err)
		} else {
			result.PID = handle.Pid()
			s.track(dir, handle)
			s.Logger.Info("worker started", "directory", dir, "pid", result.PID)
			s.Logger.Debug("worker arguments", "directory", dir, "args", argv)
		}
		results = append(results, result)
	}

	return results, merr.Err()
}

// Stop terminates tracked workers, then every process whose command line
// carries the worker signature, including workers started by other
// supervisor invocations. It returns how many processes were signalled.
// Finding no workers is not an error.
func (s *Supervisor) Stop(_ context.Context) (int, error) {
	merr := &MultiError{}
	signalled := map[int]struct{}{os.Getpid(): {}}
	count := 0

	for _, th := range s.running() {
		pid := th.Pid()
		signalled[pid] = struct{}{}
		if err := th.Terminate(); err != nil {
			if !errors.Is(err, os.ErrProcessDone) {
				merr.Add(&OpError{Op: ActionStop, Path: th.dir, Err: err})
			}
			continue
		}
		count++
		s.Logger.Info("worker signalled", "directory", th.dir, "pid", pid)
	}

	signature := Signature(s.Binary)
	pids, err := s.Table.Match(signature)
	if err != nil {
		merr.Add(err)
	}
	for _, pid := range pids {
		if _, ok := signalled[pid]; ok {
			continue
		}
		signalled[pid] = struct{}{}
		if err := s.Table.Terminate(pid); err != nil {
			if !errors.Is(err, syscall.ESRCH) {
				merr.Add(&OpError{Op: ActionStop, Path: strconv.Itoa(pid), Err: err})
			}
			continue
		}
		count++
		s.Logger.Info("worker signalled by signature", "pid", pid)
	}

	if count == 0 {
		s.Logger.Info("no running workers found", "signature", signature)
	}
	return count, merr.Err()
}

// Restart stops the fleet and then starts it. Stop has returned before the
// first spawn; there is no wait for workers to exit in between.
func (s *Supervisor) Restart(ctx context.Context) (int, []SpawnResult, error) {
	merr := &MultiError{}

	stopped, err := s.Stop(ctx)
	if err != nil {
		s.Logger.Warn("stop before restart incomplete", "error", err)
		merr.Add(err)
	}

	results, err := s.Start(ctx)
	merr.Add(err)

	return stopped, results, merr.Err()
}

// Status reports fleet status. No health introspection exists, so the state is always undefined.
func (s *Supervisor) Status(_ context.Context) (Status, error) {
	return Status{State: StateUndefined}, nil
}

// Workers returns the pids of tracked workers that have not exited, keyed by directory
func (s *Supervisor) Workers() map[string]int {
	workers := make(map[string]int)
	for _, th := range s.running() {
		workers[th.dir] = th.Pid()
	}
	return workers
}

// Close terminates tracked workers that are still running and waits for them to be reaped
func (s *Supervisor) Close() error {
	for _, th := range s.running() {
		_ = th.Terminate()
	}
	s.reapers.Stop(closeGrace)
	return s.reapers.Wait()
}

type trackedHandle struct {
	Handle
	dir  string
	done chan struct{}
}

func (th *trackedHandle) exited() bool {
	select {
	case <-th.done:
		return true
	default:
		return false
	}
}

func (s *Supervisor) track(dir string, h Handle) {
	th := &trackedHandle{Handle: h, dir: dir, done: make(chan struct{})}

	accepted := s.reapers.Go(func(_ *stopper.Context) error {
		defer close(th.done)
		err := th.Wait()
		s.Logger.Info("worker exited", "directory", dir, "pid", th.Pid(), "error", err)
		return nil
	})
	if !accepted {
		// Closed supervisor: the worker runs on untracked, as a CLI-started one does
		s.Logger.Warn("worker not tracked after close", "directory", dir, "pid", th.Pid())
		return
	}

	s.mu.Lock()
	s.handles[dir] = th
	s.mu.Unlock()
}

func (s *Supervisor) running() []*trackedHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	var handles []*trackedHandle
	for _, th := range s.handles {
		if !th.exited() {
			handles = append(handles, th)
		}
	}
	return handles
}
