// Package release contains the core domain types of the maple self-update flow.
//
// It extracts comparable version numbers from remote and local tags, describes
// the latest published release and the terminal outcome of one update check,
// and defines the error kinds every layer wraps.
package release
