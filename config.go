package fusekafka

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Configuration maps canonical parameter names to ordered value tokens.
// Key insertion order is preserved and determines worker argument order.
type Configuration struct {
	entries *orderedmap.OrderedMap[string, []string]
}

// NewConfiguration returns an empty Configuration
func NewConfiguration() *Configuration {
	return &Configuration{entries: orderedmap.New[string, []string]()}
}

// Get returns the tokens stored under key
func (c *Configuration) Get(key string) ([]string, bool) {
	tokens, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return append([]string(nil), tokens...), true
}

// Set replaces the tokens stored under key. An existing key keeps its position.
func (c *Configuration) Set(key string, tokens []string) {
	c.entries.Set(key, append([]string{}, tokens...))
}

// Delete removes key and reports whether it was present
func (c *Configuration) Delete(key string) bool {
	_, ok := c.entries.Delete(key)
	return ok
}

// Keys returns the canonical names in insertion order
func (c *Configuration) Keys() []string {
	keys := make([]string, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of canonical names
func (c *Configuration) Len() int {
	return c.entries.Len()
}

// Clone returns a deep copy of the Configuration
func (c *Configuration) Clone() *Configuration {
	clone := NewConfiguration()
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		clone.entries.Set(pair.Key, append([]string{}, pair.Value...))
	}
	return clone
}

// ForDirectory returns a copy whose directories entry holds only dir
func (c *Configuration) ForDirectory(dir string) *Configuration {
	clone := c.Clone()
	clone.Set(DirectoriesKey, []string{dir})
	return clone
}

// String renders the worker arguments as a single line, for logs
func (c *Configuration) String() string {
	return strings.Join(c.Args(), " ")
}

func (c *Configuration) appendTokens(key string, tokens ...string) {
	existing, _ := c.entries.Get(key)
	c.entries.Set(key, append(existing, tokens...))
}

// Merge feeds entries through the normalizer into cfg, in order
func Merge(cfg *Configuration, entries []Entry) error {
	for _, entry := range entries {
		if err := cfg.Apply(entry); err != nil {
			return &OpError{Op: ActionLoad, Key: entry.Key, Err: err}
		}
	}
	return nil
}

// Loader discovers property files and builds the normalized Configuration
type Loader struct {
	// SearchPaths are glob patterns expanded in order
	SearchPaths []string
	// Probe reports whether sleep mode is active
	Probe Probe
	// Logger receives discovery details at debug level
	Logger *slog.Logger
}

// NewLoader creates a Loader with the default search paths and sentinel probe
func NewLoader() *Loader {
	return &Loader{
		SearchPaths: append([]string(nil), DefaultSearchPaths...),
		Probe:       MarkerProbe(DefaultSleepMarker),
		Logger:      slog.New(slog.DiscardHandler),
	}
}

// Files expands the search paths into the ordered list of property files.
// Matches of one pattern are sorted; patterns matching nothing are skipped.
func (l *Loader) Files() ([]string, error) {
	var files []string
	for _, pattern := range l.SearchPaths {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, &OpError{Op: ActionLoad, Path: pattern, Err: fmt.Errorf("expanding search path: %w", err)}
		}
		sort.Strings(matches)
		l.logger().Debug("search path expanded", "pattern", pattern, "matches", len(matches))
		files = append(files, matches...)
	}
	return files, nil
}

// Load merges every discovered property file, then applies the sleep-mode filter.
// The returned Configuration never contains the sleep key.
func (l *Loader) Load() (*Configuration, error) {
	files, err := l.Files()
	if err != nil {
		return nil, err
	}

	cfg := NewConfiguration()
	for _, path := range files {
		entries, err := ReadProperties(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if err := cfg.Apply(entry); err != nil {
				return nil, &OpError{Op: ActionLoad, Path: path, Key: entry.Key, Err: err}
			}
		}
		l.logger().Debug("configuration file merged", "path", path, "lines", len(entries))
	}

	sleeping := l.Probe != nil && l.Probe.Sleeping()
	if sleeping {
		l.logger().Info("sleep mode active, excluding configured prefixes")
	}
	if err := cfg.FilterSleeping(sleeping); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}
