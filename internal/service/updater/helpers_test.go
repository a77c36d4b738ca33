package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/maple/internal/config"
	"github.com/oshokin/maple/internal/domain/release"
)

// linuxAMD64 is a fixed platform so asset names do not depend on the test host.
//
//nolint:gochecknoglobals // Read-only test fixture.
var linuxAMD64 = HostPlatform{OS: "linux", Arch: "amd64"}

// fakeReleases returns a fixed descriptor and counts calls.
type fakeReleases struct {
	tag   string
	err   error
	calls atomic.Int32
}

func (f *fakeReleases) LatestRelease(_ context.Context) (*release.Descriptor, error) {
	f.calls.Add(1)

	if f.err != nil {
		return nil, f.err
	}

	return &release.Descriptor{TagName: f.tag}, nil
}

// assetServer serves body for every asset of liuchengxu/vim-clap and counts requests.
type assetServer struct {
	*httptest.Server

	hits atomic.Int32
}

func newAssetServer(t *testing.T, status int, body []byte) *assetServer {
	t.Helper()

	srv := new(assetServer)
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.hits.Add(1)

		if !strings.HasPrefix(r.URL.Path, "/liuchengxu/vim-clap/releases/download/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

// newTestFetcher builds a linux/amd64 fetcher downloading from baseURL.
func newTestFetcher(baseURL string) *Fetcher {
	cfg := config.Default()
	cfg.DownloadBaseURL = baseURL

	return NewFetcher(cfg, linuxAMD64)
}

// installLayout creates <tmp>/vim-clap/<dirName>/maple holding contents and returns its path.
func installLayout(t *testing.T, dirName string, contents []byte) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "vim-clap", dirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	exe := filepath.Join(dir, "maple")
	require.NoError(t, os.WriteFile(exe, contents, 0o755))

	return exe
}

// executableAt returns an executable locator pointing at path.
func executableAt(path string) func() (string, error) {
	return func() (string, error) {
		return path, nil
	}
}

// leftoverDownloads lists temporary downloads remaining in dir.
func leftoverDownloads(t *testing.T, dir string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, tempFilePattern))
	require.NoError(t, err)

	return matches
}
