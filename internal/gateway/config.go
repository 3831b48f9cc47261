package gateway

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/sortbin/internal/common"
)

// Default settings for the classification service.
const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultAPIPrefix = "/api"
	DefaultTimeout   = 30 * time.Second
)

// Config holds the settings needed to reach the remote services.
type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	APIPrefix  string
	UserAgent  string
	Timeout    time.Duration
}

// DefaultConfig returns a config pointing at a local service.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		APIPrefix: DefaultAPIPrefix,
		Timeout:   DefaultTimeout,
		UserAgent: "sortbin",
	}
}

// Validate checks the config for obvious mistakes.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: gateway base URL is required", common.ErrMissingConfig)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: gateway base URL: %v", common.ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: gateway base URL must be http or https, got %q", common.ErrInvalidConfig, c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: gateway base URL has no host", common.ErrInvalidConfig)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: gateway timeout must not be negative", common.ErrInvalidConfig)
	}

	return nil
}
