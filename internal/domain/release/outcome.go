package release

// Status is the terminal state of a single update check.
type Status int

const (
	// StatusUpToDate means the remote and local versions are equal.
	StatusUpToDate Status = iota + 1
	// StatusUpdateAvailable means the versions differ and nothing was downloaded.
	StatusUpdateAvailable
	// StatusUpdated means the new binary was downloaded and moved into place.
	StatusUpdated
)

// String returns a short, log-friendly name of the status.
func (s Status) String() string {
	switch s {
	case StatusUpToDate:
		return "up_to_date"
	case StatusUpdateAvailable:
		return "update_available"
	case StatusUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Outcome is the result of one update check.
type Outcome struct {
	// Status is the terminal state reached.
	Status Status
	// RemoteTag is the tag of the latest remote release.
	RemoteTag string
	// DownloadURL is where the release asset can be fetched; set for StatusUpdateAvailable.
	DownloadURL string
	// InstalledPath is the replaced executable; set for StatusUpdated.
	InstalledPath string
	// Downgrade is true when the remote release orders before the running build.
	Downgrade bool
}

// UpToDate builds the outcome for equal versions.
func UpToDate(remoteTag string) *Outcome {
	return &Outcome{
		Status:    StatusUpToDate,
		RemoteTag: remoteTag,
	}
}

// UpdateAvailable builds the report-only outcome for differing versions.
func UpdateAvailable(remoteTag, downloadURL string) *Outcome {
	return &Outcome{
		Status:      StatusUpdateAvailable,
		RemoteTag:   remoteTag,
		DownloadURL: downloadURL,
	}
}

// Updated builds the outcome for a completed binary swap.
func Updated(remoteTag, installedPath string) *Outcome {
	return &Outcome{
		Status:        StatusUpdated,
		RemoteTag:     remoteTag,
		InstalledPath: installedPath,
	}
}
