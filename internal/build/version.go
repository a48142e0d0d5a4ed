// Package build provides version and build information for tagnotes.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import "fmt"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// SourceURL is the project homepage printed by 'tagnotes version'.
const SourceURL = "https://github.com/ariel-frischer/tagnotes"

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// Summary returns the one-line version string, e.g.
// "tagnotes v1.2.0 (commit abc1234, built 2024-05-01)".
func Summary() string {
	return fmt.Sprintf("tagnotes %s (commit %s, built %s)", Version, Commit, BuildDate)
}
