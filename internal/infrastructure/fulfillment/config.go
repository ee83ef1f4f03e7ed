package fulfillment

import (
	"errors"
	"net/url"
)

// Config holds the fulfillment provider connection settings
type Config struct {
	// APIBaseURL is the provider API root, e.g. "https://api.sandbox.prodigi.com"
	APIBaseURL string
	// APIKey authenticates requests via the X-API-Key header
	APIKey string
	// TimeoutSeconds bounds each individual provider call. A timeout is
	// treated like any other per-call failure.
	TimeoutSeconds int
	// PlaceholderAssetURL is quoted in place of the final print asset; the
	// provider requires an asset to price an item, but pricing happens
	// before the artwork is rendered
	PlaceholderAssetURL string
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("fulfillment config is nil")
	}
	if c.APIBaseURL == "" {
		return errors.New("fulfillment API base URL is required")
	}
	if _, err := url.Parse(c.APIBaseURL); err != nil {
		return errors.New("fulfillment API base URL is not a valid URL")
	}
	if c.APIKey == "" {
		return errors.New("fulfillment API key is required")
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 15
	}
	return nil
}
