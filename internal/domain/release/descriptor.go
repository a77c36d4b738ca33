package release

// Descriptor is the latest published release as reported by the metadata service.
type Descriptor struct {
	// TagName is the remote tag, e.g. "v0.13".
	TagName string
}
