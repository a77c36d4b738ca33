// Package github fetches release metadata from a GitHub-compatible REST API.
//
// The Client issues one GET to /repos/<owner>/<repo>/releases/latest, buffers
// the body and decodes the tag of the latest release.
package github
