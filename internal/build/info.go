// Package build carries version information stamped at link time.
package build

import "fmt"

var (
	// Version is the release tag, or "dev" for unreleased builds.
	Version = "dev"
	// Commit is the short VCS revision.
	Commit = "unknown"
	// Date is the build timestamp.
	Date = "unknown"
)

// String renders the full version line.
func String() string {
	return fmt.Sprintf("quell %s (%s, built %s)", Version, Commit, Date)
}
