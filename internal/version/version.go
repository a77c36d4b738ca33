package version

import "fmt"

var (
	// Tag is the git describe output of the build. It can be overridden via ldflags.
	Tag = "v0.13"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the local tag.
func Short() string {
	return Tag
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Tag, Commit, BuildTime)
}
