package steamtrack

import (
	"github.com/steamtrack/steamtrack/internal/config"
	"github.com/steamtrack/steamtrack/internal/transport"
	"github.com/steamtrack/steamtrack/pkg/errors"
	"github.com/steamtrack/steamtrack/pkg/pins"
)

// clientConfig holds the assembled Client settings.
type clientConfig struct {
	region       config.Region
	detectRegion bool
	proxy        string
	transport    *transport.Client
	pinStore     pins.Store
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		region: config.Default(),
	}
}

// Option configures a Client.
type Option func(*clientConfig) error

// WithRegion fixes the storefront region instead of the default.
func WithRegion(region config.Region) Option {
	return func(c *clientConfig) error {
		if region.CC == "" || region.Lang == "" {
			return errors.NewValidationError("region", region, "country code and language are required")
		}
		c.region = region
		return nil
	}
}

// WithRegionDetection enables IP-based region detection during Warmup.
func WithRegionDetection(enabled bool) Option {
	return func(c *clientConfig) error {
		c.detectRegion = enabled
		return nil
	}
}

// WithProxy routes provider requests through a CORS-style proxy prefix.
func WithProxy(base string) Option {
	return func(c *clientConfig) error {
		c.proxy = base
		return nil
	}
}

// WithTransport supplies a pre-built transport client, overriding the
// proxy option.
func WithTransport(t *transport.Client) Option {
	return func(c *clientConfig) error {
		if t == nil {
			return errors.NewValidationError("transport", nil, "transport client must not be nil")
		}
		c.transport = t
		return nil
	}
}

// WithPinStore supplies a pin store, e.g. the YAML-backed file store.
func WithPinStore(store pins.Store) Option {
	return func(c *clientConfig) error {
		if store == nil {
			return errors.NewValidationError("pins", nil, "pin store must not be nil")
		}
		c.pinStore = store
		return nil
	}
}
