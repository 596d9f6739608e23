package fusekafka

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// Entry is one raw key=value line of a property file
type Entry struct {
	Key   string
	Value string
}

// ParseLine splits a property line once on the first '='.
// It reports false for lines without a separator.
func ParseLine(line string) (Entry, bool) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return Entry{}, false
	}
	return Entry{Key: key, Value: value}, true
}

// ReadProperties returns the entries of the property file at path, in file order.
// Lines without '=' are skipped and line length is unbounded. Keys and values are not trimmed.
func ReadProperties(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &OpError{Op: ActionLoad, Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	var entries []Entry
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, &OpError{Op: ActionLoad, Path: path, Err: err}
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if entry, ok := ParseLine(line); ok {
			entries = append(entries, entry)
		}
		if err != nil {
			break
		}
	}

	return entries, nil
}
