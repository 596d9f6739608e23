package fusekafka

// Version is the current version of the go-fusekafka supervisor
const Version = "1.0.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version
	Version string
	// Worker is the worker binary family supervised
	Worker string
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version: Version,
		Worker:  DefaultBinary,
	}
}
