package updater

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/maple/internal/config"
	"github.com/oshokin/maple/internal/domain/release"
)

// writeConfig points a settings file at the given metadata and asset servers.
func writeConfig(t *testing.T, apiURL, downloadURL string) string {
	t.Helper()

	cfg := config.Default()
	cfg.APIBaseURL = apiURL
	cfg.DownloadBaseURL = downloadURL

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "maple.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

// newMetadataServer serves a latest release with the given tag.
func newMetadataServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/liuchengxu/vim-clap/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `"}`))
	}))
	t.Cleanup(ts.Close)

	return ts
}

// TestRun_UpToDate runs the full pipeline against local servers.
func TestRun_UpToDate(t *testing.T) {
	metadata := newMetadataServer(t, "v0.13")
	assets := newAssetServer(t, http.StatusOK, []byte("new"))

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: writeConfig(t, metadata.URL, assets.URL),
		LocalTag:   "v0.13-4-g58738c0",
		Download:   true,
		Output:     &out,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Retrieving the latest remote release info...")
	require.Contains(t, out.String(), "No newer release, current maple version: v0.13")
	require.Zero(t, assets.hits.Load())
}

// TestRun_Report prints the download URL for the host platform.
func TestRun_Report(t *testing.T) {
	metadata := newMetadataServer(t, "v0.13")
	assets := newAssetServer(t, http.StatusOK, []byte("new"))

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath: writeConfig(t, metadata.URL, assets.URL),
		LocalTag:   "v0.12-1-gabc",
		Output:     &out,
	})

	if _, assetErr := DetectPlatform().AssetName(); assetErr != nil {
		require.ErrorIs(t, err, release.ErrURLResolution)
		return
	}

	require.NoError(t, err)
	require.Contains(t, out.String(), "New maple release v0.13 is available, please download it from "+assets.URL)
	require.Zero(t, assets.hits.Load())
}

// TestRun_Errors covers configuration, log level and network failures.
func TestRun_Errors(t *testing.T) {
	err := Run(context.Background(), &Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)

	metadata := newMetadataServer(t, "v0.13")
	cfgPath := writeConfig(t, metadata.URL, metadata.URL)

	err = Run(context.Background(), &Options{ConfigPath: cfgPath, LogLevel: "chatty"})
	require.ErrorIs(t, err, errUnknownLogLevel)

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()

	err = Run(context.Background(), &Options{
		ConfigPath: writeConfig(t, closed.URL, closed.URL),
		LocalTag:   "v0.13",
		Output:     new(bytes.Buffer),
	})
	require.ErrorIs(t, err, release.ErrNetwork)
}
