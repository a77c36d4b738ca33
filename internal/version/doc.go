// Package version exposes build metadata for maple.
//
// Tag holds the `git describe --tags` output of the build (e.g. "v0.13-4-g58738c0")
// and is what the self-updater compares against the latest remote release.
// Tag, Commit and BuildTime are injected via Go ldflags.
package version
