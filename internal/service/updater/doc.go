// Package updater checks for a newer maple release and replaces the binary.
//
// It compares the tag of the latest remote release with the tag the running
// binary was built from, reports the download URL or downloads the platform
// asset into a temporary file next to the executable, and moves it over
// bin/maple with a single rename so the executable is never missing or
// half-written.
package updater
