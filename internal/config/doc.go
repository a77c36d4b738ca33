// Package config defines the settings of the maple self-updater and provides
// helpers to load and validate them from YAML.
//
// The release owner and repository live here rather than in package globals so
// clients can be pointed at any endpoint.
package config
