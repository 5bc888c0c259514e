package machines

import (
	"fmt"
	"net/url"
	"time"

	"github.com/silverlyra/flytrap/placement"
)

// API origins.
const (
	// PublicOrigin serves the Machines API over the public internet.
	PublicOrigin = "https://api.machines.dev"
	// PrivateOrigin serves the Machines API inside a Fly.io private network.
	PrivateOrigin = "http://_api.internal:4280"
)

const defaultTimeout = 30 * time.Second

// Swapped out in tests.
var privateAddress = placement.PrivateAddress

// Config configures the Machines API client.
type Config struct {
	// Origin is the API base URL. When empty, DefaultOrigin is used.
	Origin string `mapstructure:"origin"`

	// Token is the Fly.io API authentication token.
	Token string `mapstructure:"token" validate:"required"`

	// Timeout is the request timeout. Defaults to 30s.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Origin == "" {
		c.Origin = DefaultOrigin()
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("machines: token is required")
	}
	u, err := url.Parse(c.Origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("machines: invalid origin %q", c.Origin)
	}
	return nil
}

// DefaultOrigin returns the API origin to use by default: the in-network
// endpoint when the host has a Fly.io private network address, and the
// public endpoint otherwise.
func DefaultOrigin() string {
	if _, ok := privateAddress(); ok {
		return PrivateOrigin
	}
	return PublicOrigin
}
