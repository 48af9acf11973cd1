package version

import "fmt"

// Version is the release version embedded in the binary.
// It can be overridden at build time via:
// go build -ldflags "-X github.com/oukeidos/tecta/internal/version.Version=0.2.0"
var Version = "0.1.0"

// Commit can be overridden at build time with -X .../version.Commit=<sha>.
var Commit = "unknown"

// BuildDate is an RFC3339 timestamp set at build time.
var BuildDate = "unknown"

// Info returns a multi-line version string for CLI output.
func Info() string {
	return fmt.Sprintf("tecta %s\ncommit: %s\nbuild: %s", Version, Commit, BuildDate)
}
