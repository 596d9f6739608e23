package fusekafka

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings configures the supervisor itself, as opposed to the worker
// configuration assembled from property files. Zero fields keep defaults.
type Settings struct {
	// SearchPaths are the property file glob patterns, in merge order
	SearchPaths []string `yaml:"search_paths"`
	// SleepMarker is the sentinel path toggling sleep mode
	SleepMarker string `yaml:"sleep_marker"`
	// LibraryDir is appended to the workers' LD_LIBRARY_PATH
	LibraryDir string `yaml:"library_dir"`
	// Binary is the worker executable name
	Binary string `yaml:"binary"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
	// LogFormat is one of auto, console, json
	LogFormat string `yaml:"log_format"`
}

// DefaultSettings returns the built-in settings
func DefaultSettings() Settings {
	return Settings{
		SearchPaths: append([]string(nil), DefaultSearchPaths...),
		SleepMarker: DefaultSleepMarker,
		LibraryDir:  DefaultLibraryDir,
		Binary:      DefaultBinary,
		LogLevel:    "info",
		LogFormat:   "auto",
	}
}

// LoadSettings reads a YAML settings file over the defaults.
// An empty path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	var override Settings
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Settings{}, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	settings.merge(override)
	return settings, nil
}

func (s *Settings) merge(o Settings) {
	if len(o.SearchPaths) > 0 {
		s.SearchPaths = o.SearchPaths
	}
	if o.SleepMarker != "" {
		s.SleepMarker = o.SleepMarker
	}
	if o.LibraryDir != "" {
		s.LibraryDir = o.LibraryDir
	}
	if o.Binary != "" {
		s.Binary = o.Binary
	}
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		s.LogFormat = o.LogFormat
	}
}

// Options converts the settings into Supervisor options
func (s Settings) Options() []Option {
	return []Option{
		WithSearchPaths(s.SearchPaths...),
		WithSleepMarker(s.SleepMarker),
		WithLibraryDir(s.LibraryDir),
		WithBinary(s.Binary),
	}
}
