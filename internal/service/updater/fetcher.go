package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/oshokin/maple/internal/config"
	"github.com/oshokin/maple/internal/domain/release"
)

const (
	// DefaultFileMode is applied to the downloaded binary before it is installed.
	DefaultFileMode os.FileMode = 0o755

	// tempFilePattern names downloads in progress; hidden so they are not mistaken for a binary.
	tempFilePattern = ".maple-download-*"
)

// Fetcher resolves release asset URLs and downloads them to temporary files.
type Fetcher struct {
	// httpClient performs the asset transfer.
	httpClient *http.Client
	// baseURL is the root assets are served from, without a trailing slash.
	baseURL string
	// owner is the repository owner.
	owner string
	// repo is the repository name.
	repo string
	// platform picks the asset to download.
	platform Platform
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetcherHTTPClient replaces the HTTP client used for downloads.
func WithFetcherHTTPClient(httpClient *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if httpClient != nil {
			f.httpClient = httpClient
		}
	}
}

// NewFetcher creates a fetcher for the repository named by cfg.
func NewFetcher(cfg *config.Config, platform Platform, opts ...FetcherOption) *Fetcher {
	fetcher := &Fetcher{
		httpClient: &http.Client{Timeout: cfg.DownloadTimeout},
		baseURL:    strings.TrimRight(cfg.DownloadBaseURL, "/"),
		owner:      cfg.Owner,
		repo:       cfg.Repo,
		platform:   platform,
	}

	for _, opt := range opts {
		opt(fetcher)
	}

	return fetcher
}

// DownloadURL maps a release tag to the asset URL for the fetcher's platform.
func (f *Fetcher) DownloadURL(tag string) (string, error) {
	if tag == "" || strings.ContainsAny(tag, " \t\r\n/?#") {
		return "", fmt.Errorf("tag %q: %w", tag, release.ErrURLResolution)
	}

	asset, err := f.platform.AssetName()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		f.baseURL, url.PathEscape(f.owner), url.PathEscape(f.repo), url.PathEscape(tag), asset), nil
}

// Download streams the asset of tag into a new temporary file inside dir
// (os.TempDir when dir is empty). The caller owns the returned download.
func (f *Fetcher) Download(ctx context.Context, tag, dir string) (*TemporaryDownload, error) {
	downloadURL, err := f.DownloadURL(tag)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %v: %w", downloadURL, err, release.ErrURLResolution)
	}

	response, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %v: %w", downloadURL, err, release.ErrNetwork)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s, %s: %w", downloadURL, response.Status, release.ErrNetwork)
	}

	return saveToTempFile(dir, response.Body)
}

// saveToTempFile copies body into a new executable temporary file in dir.
// The file is removed again on any failure.
func saveToTempFile(dir string, body io.Reader) (_ *TemporaryDownload, err error) {
	outputFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return nil, fmt.Errorf("create temporary file: %v: %w", err, release.ErrIO)
	}

	download := &TemporaryDownload{path: outputFile.Name()}

	defer func() {
		if err != nil {
			_ = outputFile.Close()
			_ = download.Discard()
		}
	}()

	source := &trackingReader{reader: body}
	if _, err = io.Copy(outputFile, source); err != nil {
		if source.err != nil {
			return nil, fmt.Errorf("read asset: %v: %w", source.err, release.ErrNetwork)
		}

		return nil, fmt.Errorf("write %s: %v: %w", download.path, err, release.ErrIO)
	}

	if err = outputFile.Chmod(DefaultFileMode); err != nil {
		return nil, fmt.Errorf("chmod %s: %v: %w", download.path, err, release.ErrIO)
	}

	if err = outputFile.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %v: %w", download.path, err, release.ErrIO)
	}

	return download, nil
}

// trackingReader remembers read failures so they can be told apart from write failures.
type trackingReader struct {
	reader io.Reader
	err    error
}

func (r *trackingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		r.err = err
	}

	return n, err
}

// TemporaryDownload is a downloaded asset waiting to be installed.
// It is consumed either by Install or by Discard.
type TemporaryDownload struct {
	// path is the temporary file location.
	path string
	// consumed is set once the file was renamed away or removed.
	consumed bool
}

// Path returns the location of the temporary file.
func (d *TemporaryDownload) Path() string {
	return d.path
}

// Install moves the temporary file onto target with a single rename.
func (d *TemporaryDownload) Install(target string) error {
	if d.consumed {
		return fmt.Errorf("download %s was already consumed: %w", d.path, release.ErrIO)
	}

	if err := os.Rename(d.path, target); err != nil {
		return fmt.Errorf("move %s to %s: %v: %w", d.path, target, err, release.ErrIO)
	}

	d.consumed = true

	return nil
}

// Discard removes the temporary file unless it was installed. Safe to call repeatedly.
func (d *TemporaryDownload) Discard() error {
	if d == nil || d.consumed {
		return nil
	}

	d.consumed = true

	if err := os.Remove(d.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %v: %w", d.path, err, release.ErrIO)
	}

	return nil
}
