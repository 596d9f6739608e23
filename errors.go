package fusekafka

import (
	"errors"
	"fmt"
)

// Common errors returned by fusekafka operations
var (
	// ErrDecode indicates a recognized key carried a value that is not a JSON object or array
	ErrDecode = errors.New("fusekafka: value decode")

	// ErrNoDirectories indicates the configuration has no directories entry
	ErrNoDirectories = errors.New("fusekafka: no directories configured")

	// ErrUnknownAction indicates an action name outside start, stop, restart and status
	ErrUnknownAction = errors.New("fusekafka: unknown action")

	// ErrSpawn indicates a worker process could not be launched
	ErrSpawn = errors.New("fusekafka: spawn failed")
)

// OpError represents an error from a supervisor operation
type OpError struct {
	// Op is the action that failed
	Op Action
	// Path is the file, directory or action name involved
	Path string
	// Key is the raw configuration key involved, if any
	Key string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("fusekafka %s %q key %q: %v", e.Op.String(), e.Path, e.Key, e.Err)
	}
	return fmt.Sprintf("fusekafka %s %q: %v", e.Op.String(), e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// MultiError aggregates multiple errors from fleet operations
type MultiError struct {
	// Errors contains all accumulated errors
	Errors []error
}

// Error returns a summary of the accumulated errors
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Add appends an error to the collection if it's not nil
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Unwrap exposes the accumulated errors to errors.Is and errors.As
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Err returns nil if no errors occurred, otherwise returns the MultiError itself
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}
