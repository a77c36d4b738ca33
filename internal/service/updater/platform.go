package updater

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/oshokin/maple/internal/domain/release"
)

// baseExecutable is the installed binary name; platform helpers append the extension.
const baseExecutable = "maple"

// Platform decides the installed filename and the release asset for a host.
type Platform interface {
	// TargetFilename is the name of the binary inside the bin directory.
	TargetFilename() string
	// AssetName is the release asset built for this platform.
	AssetName() (string, error)
}

// HostPlatform is an operating system and architecture pair.
type HostPlatform struct {
	// OS is a GOOS value such as linux or windows.
	OS string
	// Arch is a GOARCH value such as amd64 or arm64.
	Arch string
}

//nolint:gochecknoglobals // Read-only lookup table of published assets.
var assetNames = map[HostPlatform]string{
	{OS: "linux", Arch: "amd64"}:   "maple-x86_64-unknown-linux-musl",
	{OS: "linux", Arch: "arm64"}:   "maple-aarch64-unknown-linux-gnu",
	{OS: "darwin", Arch: "amd64"}:  "maple-x86_64-apple-darwin",
	{OS: "darwin", Arch: "arm64"}:  "maple-aarch64-apple-darwin",
	{OS: "windows", Arch: "amd64"}: "maple-x86_64-pc-windows-msvc.exe",
}

// DetectPlatform returns the platform of the running process.
func DetectPlatform() HostPlatform {
	return HostPlatform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
}

// TargetFilename returns "maple.exe" on Windows and "maple" elsewhere.
func (p HostPlatform) TargetFilename() string {
	return baseExecutable + executableExtension(p.OS)
}

// AssetName returns the published asset for the platform.
func (p HostPlatform) AssetName() (string, error) {
	name, ok := assetNames[p]
	if !ok {
		return "", fmt.Errorf("no prebuilt binary for %s/%s: %w", p.OS, p.Arch, release.ErrURLResolution)
	}

	return name, nil
}

// String renders the platform as os/arch.
func (p HostPlatform) String() string {
	return p.OS + "/" + p.Arch
}

// executableExtension returns ".exe" on Windows and "" elsewhere.
func executableExtension(goos string) string {
	if strings.Contains(strings.ToLower(goos), "windows") {
		return ".exe"
	}

	return ""
}
