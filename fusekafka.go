package fusekafka

import "strings"

// Configuration discovery and sleep-mode constants
const (
	// DefaultSleepMarker is the sentinel whose existence puts the fleet in sleep mode
	DefaultSleepMarker = "/var/run/fuse_kafka_backup"

	// DirectoriesKey is the canonical key listing managed directories
	DirectoriesKey = "directories"

	// SleepKey is the canonical key holding the path prefixes excluded in sleep mode.
	// It is consumed at load time and never forwarded to workers.
	SleepKey = "sleep"
)

// Raw key namespaces recognized in property files
const (
	// LoggingPrefix marks monitoring/logging settings
	LoggingPrefix = "monitoring_logging_"

	// WorkerKeyPrefix marks worker settings
	WorkerKeyPrefix = "fuse_kafka_"

	// SubstitutionsKey is the single recognized compound key outside both namespaces
	SubstitutionsKey = "monitoring_top_substitutions"
)

// Worker execution defaults
const (
	// DefaultBinary is the worker executable name, resolved against the child PATH
	DefaultBinary = "fuse_kafka"

	// DefaultLibraryDir is appended to LD_LIBRARY_PATH for every worker
	DefaultLibraryDir = "/usr/lib"
)

// DefaultSearchPaths lists the glob patterns searched for property files, in merge order.
var DefaultSearchPaths = []string{"./conf/*", "/etc/fuse_kafka/*", "/etc/*.txt"}

// WorkerOptions are the fixed worker flags that follow the binary name.
// Start builds argv from them and Stop matches running processes against
// Signature, so both read this one value.
var WorkerOptions = []string{
	"_",
	"-oallow_other",
	"-ononempty",
	"-s",
	"-omodules=subdir,subdir=.",
	"-f",
	"--",
}

// WorkerPrefix returns binary followed by WorkerOptions
func WorkerPrefix(binary string) []string {
	return append([]string{binary}, WorkerOptions...)
}

// Signature returns the command-line fragment identifying workers started as binary
func Signature(binary string) string {
	return strings.Join(WorkerPrefix(binary), " ")
}

// Action represents a supervisor action
type Action int

const (
	// ActionUnknown represents an unrecognized action
	ActionUnknown Action = iota
	// ActionStart launches one worker per eligible directory
	ActionStart
	// ActionStop terminates every worker matching the signature
	ActionStop
	// ActionRestart stops then starts the fleet
	ActionRestart
	// ActionStatus reports fleet status
	ActionStatus
	// ActionLoad is used in errors raised while loading configuration
	ActionLoad
)

// Action string constants
const (
	actionUnknownStr = "unknown"
	actionStartStr   = "start"
	actionStopStr    = "stop"
	actionRestartStr = "restart"
	actionStatusStr  = "status"
	actionLoadStr    = "load"
)

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionStart:
		return actionStartStr
	case ActionStop:
		return actionStopStr
	case ActionRestart:
		return actionRestartStr
	case ActionStatus:
		return actionStatusStr
	case ActionLoad:
		return actionLoadStr
	default:
		return actionUnknownStr
	}
}

// ParseAction maps an action name to an Action. Only the four
// user-facing actions are accepted.
func ParseAction(name string) (Action, error) {
	switch name {
	case actionStartStr:
		return ActionStart, nil
	case actionStopStr:
		return ActionStop, nil
	case actionRestartStr:
		return ActionRestart, nil
	case actionStatusStr:
		return ActionStatus, nil
	default:
		return ActionUnknown, &OpError{Op: ActionUnknown, Path: name, Err: ErrUnknownAction}
	}
}

// Actions returns the user-facing action names in dispatch order
func Actions() []string {
	return []string{actionStartStr, actionStopStr, actionRestartStr, actionStatusStr}
}
