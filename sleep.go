package fusekafka

import (
	"os"
	"path/filepath"
	"strings"
)

// Probe reports whether the fleet is in sleep mode
type Probe interface {
	Sleeping() bool
}

// ProbeFunc adapts a function to the Probe interface
type ProbeFunc func() bool

// Sleeping calls f
func (f ProbeFunc) Sleeping() bool {
	return f()
}

// MarkerProbe reports sleep mode while the file at path exists. Its content is never read.
type MarkerProbe string

// Sleeping reports whether the marker exists
func (p MarkerProbe) Sleeping() bool {
	_, err := os.Stat(string(p))
	return err == nil
}

// FilterSleeping removes excluded directories when sleeping and always drops the sleep key.
// Sleeping without a directories entry is ErrNoDirectories.
func (c *Configuration) FilterSleeping(sleeping bool) error {
	defer c.Delete(SleepKey)

	if !sleeping {
		return nil
	}

	dirs, ok := c.Get(DirectoriesKey)
	if !ok {
		return &OpError{Op: ActionLoad, Key: DirectoriesKey, Err: ErrNoDirectories}
	}
	prefixes, _ := c.Get(SleepKey)

	c.Set(DirectoriesKey, ExcludeDirectories(dirs, prefixes))
	return nil
}

// ExcludeDirectories returns the directories whose resolved path starts with none of prefixes
func ExcludeDirectories(dirs, prefixes []string) []string {
	kept := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if !hasAnyPrefix(resolvePath(dir), prefixes) {
			kept = append(kept, dir)
		}
	}
	return kept
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// resolvePath returns the absolute path of dir with symlinks resolved.
// Paths that cannot be resolved fall back to their cleaned absolute form.
func resolvePath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
