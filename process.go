package fusekafka

import (
	"io"
	"os"
	"os/exec"
	"syscall"
)

// Handle is a launched worker process
type Handle interface {
	// Pid returns the OS process id
	Pid() int
	// Wait blocks until the process exits and releases its resources
	Wait() error
	// Terminate asks the process to exit
	Terminate() error
}

// Spawner launches worker processes without waiting for them
type Spawner interface {
	Spawn(argv, env []string) (Handle, error)
}

// ExecSpawner starts workers with os/exec. Output goes to Stdout and Stderr,
// which default to the supervisor's own streams.
type ExecSpawner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Spawn resolves argv[0] against the PATH in env and starts the process.
// argv[0] is kept verbatim so the command line matches Signature.
func (s ExecSpawner) Spawn(argv, env []string) (Handle, error) {
	if len(argv) == 0 {
		return nil, &OpError{Op: ActionStart, Err: ErrSpawn}
	}

	path, err := LookPath(argv[0], env)
	if err != nil {
		return nil, err
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   append([]string(nil), argv...),
		Env:    env,
		Stdout: s.Stdout,
		Stderr: s.Stderr,
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execHandle{cmd: cmd}, nil
}

type execHandle struct {
	cmd *exec.Cmd
}

func (h *execHandle) Pid() int {
	return h.cmd.Process.Pid
}

func (h *execHandle) Wait() error {
	return h.cmd.Wait()
}

func (h *execHandle) Terminate() error {
	return h.cmd.Process.Signal(syscall.SIGTERM)
}
