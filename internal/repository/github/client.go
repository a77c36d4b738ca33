package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oshokin/maple/internal/config"
	"github.com/oshokin/maple/internal/domain/release"
)

// maxResponseBytes bounds the buffered metadata body (10 MiB).
const maxResponseBytes = 10 << 20

// Client fetches the latest release descriptor of one repository.
type Client struct {
	// httpClient performs the request.
	httpClient *http.Client
	// baseURL is the API root, without a trailing slash.
	baseURL string
	// owner is the repository owner; also sent as User-Agent.
	owner string
	// repo is the repository name.
	repo string
}

// Option configures client behaviour.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client, e.g. to route through a proxy.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the overall request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// latestRelease is the wire format of the metadata response; other fields are ignored.
type latestRelease struct {
	TagName string `json:"tag_name"`
}

// NewClient creates a client for the repository named by cfg.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: config.DefaultTimeout},
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		owner:      cfg.Owner,
		repo:       cfg.Repo,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// LatestReleaseURL returns the metadata endpoint queried by LatestRelease.
func (c *Client) LatestReleaseURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/latest",
		c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo))
}

// LatestRelease fetches and decodes the latest release descriptor.
// It performs exactly one request and never retries.
func (c *Client) LatestRelease(ctx context.Context) (*release.Descriptor, error) {
	data, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return parseDescriptor(data)
}

// fetch returns the whole response body of the metadata request.
func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	endpoint := c.LatestReleaseURL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %v: %w", endpoint, err, release.ErrNetwork)
	}

	req.Header.Set("User-Agent", c.owner)
	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %v: %w", endpoint, err, release.ErrNetwork)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s, %s: %w", endpoint, response.Status, release.ErrNetwork)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", endpoint, err, release.ErrNetwork)
	}

	if len(data) > maxResponseBytes {
		return nil, fmt.Errorf("response of %s exceeds %d bytes: %w",
			endpoint, maxResponseBytes, release.ErrMalformedResponse)
	}

	return data, nil
}

// parseDescriptor decodes the metadata body; a missing tag_name is malformed.
func parseDescriptor(data []byte) (*release.Descriptor, error) {
	var wire latestRelease
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode release: %v: %w", err, release.ErrMalformedResponse)
	}

	if strings.TrimSpace(wire.TagName) == "" {
		return nil, fmt.Errorf("release has no tag_name: %w", release.ErrMalformedResponse)
	}

	return &release.Descriptor{TagName: wire.TagName}, nil
}
