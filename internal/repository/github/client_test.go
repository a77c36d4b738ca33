package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/maple/internal/config"
	"github.com/oshokin/maple/internal/domain/release"
)

// newTestClient points a client at the given server.
func newTestClient(serverURL string) *Client {
	cfg := config.Default()
	cfg.APIBaseURL = serverURL + "/"

	return NewClient(cfg)
}

// TestLatestRelease_SendsHeadersAndDecodes checks the request shape and decoded tag.
func TestLatestRelease_SendsHeadersAndDecodes(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		if r.Method != http.MethodGet ||
			r.URL.Path != "/repos/liuchengxu/vim-clap/releases/latest" ||
			r.Header.Get("User-Agent") != "liuchengxu" ||
			r.Header.Get("Accept") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		_, _ = w.Write([]byte(`{"tag_name":"v0.13","name":"ignored","assets":[]}`))
	}))
	defer ts.Close()

	desc, err := newTestClient(ts.URL).LatestRelease(context.Background())
	require.NoError(t, err)
	require.Equal(t, "v0.13", desc.TagName)
	require.EqualValues(t, 1, calls.Load())
}

// TestLatestRelease_MalformedResponse covers bodies that cannot become a descriptor.
func TestLatestRelease_MalformedResponse(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"not json", `{"name":"no tag"}`, `{"tag_name":""}`, `[]`} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		_, err := newTestClient(ts.URL).LatestRelease(context.Background())
		require.ErrorIs(t, err, release.ErrMalformedResponse, body)

		ts.Close()
	}
}

// TestLatestRelease_OversizedBody ensures the buffered body is bounded.
func TestLatestRelease_OversizedBody(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat(" ", maxResponseBytes+1)))
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).LatestRelease(context.Background())
	require.ErrorIs(t, err, release.ErrMalformedResponse)
}

// TestLatestRelease_NetworkErrors covers unreachable hosts and error statuses.
func TestLatestRelease_NetworkErrors(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))

	_, err := newTestClient(ts.URL).LatestRelease(context.Background())
	require.ErrorIs(t, err, release.ErrNetwork)

	// Closed server refuses connections.
	ts.Close()

	_, err = newTestClient(ts.URL).LatestRelease(context.Background())
	require.ErrorIs(t, err, release.ErrNetwork)
}

// TestLatestReleaseURL verifies the endpoint template.
func TestLatestReleaseURL(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Owner = "someone"
	cfg.Repo = "fork"

	client := NewClient(cfg, WithHTTPClient(http.DefaultClient))
	require.Equal(t, "https://api.github.com/repos/someone/fork/releases/latest", client.LatestReleaseURL())
	require.Same(t, http.DefaultClient, client.httpClient)
}
