package fusekafka

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	pathVar    = "PATH"
	libPathVar = "LD_LIBRARY_PATH"
)

// WorkerEnviron derives a worker environment from base: the current directory
// is prepended to PATH and libraryDir is appended to LD_LIBRARY_PATH.
// Every other variable is passed through in order.
func WorkerEnviron(base []string, libraryDir string) []string {
	env := make([]string, 0, len(base)+2)
	var sawPath, sawLibPath bool

	for _, kv := range base {
		name, value, _ := strings.Cut(kv, "=")
		switch name {
		case pathVar:
			if sawPath {
				continue
			}
			sawPath = true
			env = append(env, pathVar+"="+joinList(".", value))
		case libPathVar:
			if sawLibPath {
				continue
			}
			sawLibPath = true
			env = append(env, libPathVar+"="+joinList(value, libraryDir))
		default:
			env = append(env, kv)
		}
	}

	if !sawPath {
		env = append(env, pathVar+"=.")
	}
	if !sawLibPath {
		env = append(env, libPathVar+"="+libraryDir)
	}
	return env
}

func joinList(head, tail string) string {
	switch {
	case head == "":
		return tail
	case tail == "":
		return head
	default:
		return head + string(os.PathListSeparator) + tail
	}
}

// lookupEnv returns the last value of name in env
func lookupEnv(env []string, name string) string {
	var value string
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok && k == name {
			value = v
		}
	}
	return value
}

// errNotFound is returned when the worker binary is absent from the child PATH
var errNotFound = errors.New("executable not found in worker PATH")

// LookPath resolves file against the PATH of env rather than the supervisor's own.
// An empty PATH element and "." both mean the current directory.
func LookPath(file string, env []string) (string, error) {
	if strings.Contains(file, string(os.PathSeparator)) {
		if err := checkExecutable(file); err != nil {
			return "", err
		}
		return file, nil
	}

	for _, dir := range filepath.SplitList(lookupEnv(env, pathVar)) {
		var candidate string
		if dir == "" || dir == "." {
			candidate = "." + string(os.PathSeparator) + file
		} else {
			candidate = filepath.Join(dir, file)
		}
		if checkExecutable(candidate) == nil {
			return candidate, nil
		}
	}
	return "", &fs.PathError{Op: "lookpath", Path: file, Err: errNotFound}
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return &fs.PathError{Op: "lookpath", Path: path, Err: fs.ErrPermission}
	}
	return nil
}
