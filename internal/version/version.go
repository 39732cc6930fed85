// Package version holds build metadata set with -ldflags.
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// String formats the build metadata on one line.
func String() string {
	return fmt.Sprintf("axcore %s (commit %s, built %s)", Version, Commit, BuildDate)
}
