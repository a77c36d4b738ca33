package updater

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oshokin/maple/internal/domain/release"
	"github.com/oshokin/maple/internal/logger"
)

// ReleaseSource provides the latest remote release.
type ReleaseSource interface {
	LatestRelease(ctx context.Context) (*release.Descriptor, error)
}

// BinaryFetcher resolves and downloads release assets.
type BinaryFetcher interface {
	DownloadURL(tag string) (string, error)
	Download(ctx context.Context, tag, dir string) (*TemporaryDownload, error)
}

// Updater compares the running build with the latest release and optionally replaces it.
type Updater struct {
	// releases answers which release is the latest.
	releases ReleaseSource
	// fetcher downloads the release asset.
	fetcher BinaryFetcher
	// platform names the installed binary.
	platform Platform
	// executable returns the path of the running binary.
	executable func() (string, error)
	// out receives the human-readable progress lines.
	out io.Writer
}

// Option configures an Updater.
type Option func(*Updater)

// WithPlatform overrides the detected platform.
func WithPlatform(platform Platform) Option {
	return func(u *Updater) {
		u.platform = platform
	}
}

// WithExecutable overrides how the running executable is located.
func WithExecutable(executable func() (string, error)) Option {
	return func(u *Updater) {
		u.executable = executable
	}
}

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(u *Updater) {
		u.out = w
	}
}

// NewUpdater creates an Updater. Progress lines are discarded unless WithOutput is given.
func NewUpdater(releases ReleaseSource, fetcher BinaryFetcher, opts ...Option) *Updater {
	u := &Updater{
		releases:   releases,
		fetcher:    fetcher,
		platform:   DetectPlatform(),
		executable: os.Executable,
		out:        io.Discard,
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

// CheckForUpdate fetches the latest release and compares it with localTag.
// Equal versions yield UpToDate. Otherwise the download URL is reported, or,
// with autoDownload, the release is downloaded and installed over the binary.
// Any version difference counts as a new release, including older remotes.
func (u *Updater) CheckForUpdate(ctx context.Context, localTag string, autoDownload bool) (*release.Outcome, error) {
	u.printf("Retrieving the latest remote release info...\n")

	descriptor, err := u.releases.LatestRelease(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}

	remoteTag := descriptor.TagName

	remoteVersion, err := release.ExtractRemoteVersion(remoteTag)
	if err != nil {
		return nil, fmt.Errorf("remote version: %w", err)
	}

	localVersion, err := release.ExtractLocalVersion(localTag)
	if err != nil {
		return nil, fmt.Errorf("local version: %w", err)
	}

	logger.DebugKV(ctx, "Compared versions",
		"local_tag", localTag, "local", localVersion,
		"remote_tag", remoteTag, "remote", remoteVersion)

	if remoteVersion == localVersion {
		u.printf("No newer release, current maple version: %s\n", remoteTag)
		return release.UpToDate(remoteTag), nil
	}

	downgrade := release.IsDowngrade(localTag, remoteTag)
	if downgrade {
		u.printf("Latest remote release %s is older than the running build %s\n", remoteTag, localTag)
		logger.WarnKV(ctx, "Latest remote release is older than the running build",
			"local_tag", localTag, "remote_tag", remoteTag)
	}

	var outcome *release.Outcome
	if autoDownload {
		outcome, err = u.install(ctx, remoteTag)
	} else {
		outcome, err = u.report(remoteTag)
	}

	if err != nil {
		return nil, err
	}

	outcome.Downgrade = downgrade

	return outcome, nil
}

// report resolves the download URL without touching the filesystem.
func (u *Updater) report(remoteTag string) (*release.Outcome, error) {
	downloadURL, err := u.fetcher.DownloadURL(remoteTag)
	if err != nil {
		return nil, fmt.Errorf("resolve download url: %w", err)
	}

	u.printf("New maple release %s is available, please download it from %s or rerun with --download flag.\n",
		remoteTag, downloadURL)

	return release.UpdateAvailable(remoteTag, downloadURL), nil
}

// install downloads remoteTag next to the executable and renames it over bin/maple.
// The temporary file is removed on every path that does not install it.
func (u *Updater) install(ctx context.Context, remoteTag string) (*release.Outcome, error) {
	target, err := resolveTarget(ctx, u.executable, u.platform)
	if err != nil {
		return nil, err
	}

	if err = checkPermissions(target); err != nil {
		return nil, err
	}

	u.printf("New maple release %s is available, downloading...\n", remoteTag)

	download, err := u.fetcher.Download(ctx, remoteTag, filepath.Dir(target))
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", remoteTag, err)
	}

	defer func() {
		if discardErr := download.Discard(); discardErr != nil {
			logger.WarnKV(ctx, "Unable to remove temporary download", "error", discardErr)
		}
	}()

	logger.DebugKV(ctx, "Downloaded release", "tag", remoteTag, "path", download.Path())

	reportRunningInstances(ctx, u.platform.TargetFilename())

	if err = download.Install(target); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Installed release", "tag", remoteTag, "path", target)
	u.printf("Latest version %s download completed\n", remoteTag)

	return release.Updated(remoteTag, target), nil
}

func (u *Updater) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(u.out, format, args...)
}
