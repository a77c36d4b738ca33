package release

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	// remoteSeparator splits a remote tag such as "v0.13" into segments.
	remoteSeparator = "."
	// localSeparator splits a local tag such as "v0.13-4-g58738c0" into segments.
	localSeparator = "-"
	// versionSegment is the index of the segment holding the version number.
	versionSegment = 1
)

// VersionNumber is the release number carried by a tag.
// Two numbers are only ever compared for equality.
type VersionNumber uint32

// ExtractRemoteVersion returns the number stored in the second dot-separated
// segment of a remote tag: "v0.13" yields 13. The leading "v" is not required.
func ExtractRemoteVersion(tag string) (VersionNumber, error) {
	segments := strings.Split(tag, remoteSeparator)
	if len(segments) <= versionSegment {
		return 0, fmt.Errorf("%q has no %q separator: %w", tag, remoteSeparator, ErrMalformedTag)
	}

	number, err := strconv.ParseUint(segments[versionSegment], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q has non-numeric version segment %q: %w",
			tag, segments[versionSegment], ErrMalformedTag)
	}

	return VersionNumber(number), nil
}

// ExtractLocalVersion applies ExtractRemoteVersion to the part of a local tag
// before the first dash: "v0.13-4-g58738c0" yields 13.
func ExtractLocalVersion(tag string) (VersionNumber, error) {
	return ExtractRemoteVersion(baseTag(tag))
}

// IsDowngrade reports whether the remote tag orders before the local one.
// Tags that are not valid semantic versions never count as a downgrade.
func IsDowngrade(localTag, remoteTag string) bool {
	local, remote := canonicalTag(baseTag(localTag)), canonicalTag(remoteTag)
	if !semver.IsValid(local) || !semver.IsValid(remote) {
		return false
	}

	return semver.Compare(remote, local) < 0
}

// baseTag strips the "-<commits>-g<hash>" suffix produced by git describe.
func baseTag(tag string) string {
	base, _, _ := strings.Cut(tag, localSeparator)

	return base
}

func canonicalTag(tag string) string {
	if strings.HasPrefix(tag, "v") {
		return tag
	}

	return "v" + tag
}
