package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the endpoints and limits used by check-release.
type Config struct {
	// APIBaseURL is the root of the release metadata service.
	APIBaseURL string `yaml:"api_base_url"`
	// DownloadBaseURL is the root that release assets are served from.
	DownloadBaseURL string `yaml:"download_base_url"`
	// Owner is the account publishing releases; also sent as User-Agent.
	Owner string `yaml:"owner"`
	// Repo is the repository publishing releases.
	Repo string `yaml:"repo"`
	// Timeout bounds the metadata request.
	Timeout time.Duration `yaml:"timeout"`
	// DownloadTimeout bounds the asset transfer.
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultAPIBaseURL is the GitHub REST API root.
	DefaultAPIBaseURL = "https://api.github.com"

	// DefaultDownloadBaseURL is the GitHub web root serving release assets.
	DefaultDownloadBaseURL = "https://github.com"

	// DefaultOwner publishes the maple releases.
	DefaultOwner = "liuchengxu"

	// DefaultRepo holds the maple releases.
	DefaultRepo = "vim-clap"

	// DefaultTimeout is the default duration for the metadata request.
	DefaultTimeout = 30 * time.Second

	// DefaultDownloadTimeout is the default duration for the asset transfer.
	DefaultDownloadTimeout = 10 * time.Minute

	// DefaultLogLevel is used when the file does not set one.
	DefaultLogLevel = "info"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errRepositoryRequired is returned when owner or repo is missing.
	errRepositoryRequired = errors.New("owner and repo must be provided")
	// errUnknownLogLevel is returned for log levels other than debug, info, warn and error.
	errUnknownLogLevel = errors.New("unknown log level")
	// errRelativeURL is returned for base URLs without a scheme or host.
	errRelativeURL = errors.New("base URL must be absolute")
)

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		APIBaseURL:      DefaultAPIBaseURL,
		DownloadBaseURL: DefaultDownloadBaseURL,
		Owner:           DefaultOwner,
		Repo:            DefaultRepo,
		Timeout:         DefaultTimeout,
		DownloadTimeout: DefaultDownloadTimeout,
		LogLevel:        DefaultLogLevel,
	}
}

// Load reads configuration from the provided path on top of Default.
// An empty path returns Default unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the provided settings and fills zero values with defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if strings.TrimSpace(cfg.Owner) == "" || strings.TrimSpace(cfg.Repo) == "" {
		return errRepositoryRequired
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}

	if cfg.DownloadBaseURL == "" {
		cfg.DownloadBaseURL = DefaultDownloadBaseURL
	}

	for _, raw := range []string{cfg.APIBaseURL, cfg.DownloadBaseURL} {
		if err := validateBaseURL(raw); err != nil {
			return err
		}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = DefaultDownloadTimeout
	}

	switch strings.ToLower(strings.TrimSpace(cfg.LogLevel)) {
	case "":
		cfg.LogLevel = DefaultLogLevel
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%q: %w", cfg.LogLevel, errUnknownLogLevel)
	}

	return nil
}

// validateBaseURL accepts only absolute URLs with a host, such as https://api.github.com.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", raw, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q: %w", raw, errRelativeURL)
	}

	return nil
}
