package release

import "errors"

var (
	// ErrNetwork is returned when the metadata or asset endpoint cannot be reached
	// or does not serve the requested resource.
	ErrNetwork = errors.New("network error")
	// ErrMalformedResponse is returned when release metadata cannot be decoded.
	ErrMalformedResponse = errors.New("malformed release metadata")
	// ErrMalformedTag is returned when a tag does not follow the expected lexical format.
	ErrMalformedTag = errors.New("malformed tag")
	// ErrURLResolution is returned when a tag cannot be mapped to a download URL.
	ErrURLResolution = errors.New("unable to resolve download url")
	// ErrInstallLocation is returned when the running executable is not under a bin directory.
	ErrInstallLocation = errors.New("unexpected install location")
	// ErrIO is returned when the temporary file cannot be created, written or installed.
	ErrIO = errors.New("io error")
)
