// Package version carries build metadata for the compose-remote binary.
package version

import "fmt"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version (e.g., v1.0.0)
	Version = "dev"

	// BuildTime is the time the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// UserAgent is sent with every request to the framework and the master.
func UserAgent() string {
	return "compose-remote/" + Version
}

// String renders the multi-line banner printed by --version.
func String() string {
	return fmt.Sprintf("compose-remote %s\nBuild Time: %s\nGit Commit: %s\n", Version, BuildTime, GitCommit)
}
