package resolver

import (
	"fmt"
	"net/netip"
	"time"
)

// Config holds settings for the internal DNS resolver.
type Config struct {
	// Server is the nameserver to query, as "address" or "address:port".
	// When empty, the server is derived from the host's private network
	// address.
	Server string `mapstructure:"server"`

	// Local is the local address DNS query sockets bind to. When empty and
	// Server is also empty, the detected private address is used.
	Local string `mapstructure:"local"`

	// Timeout bounds each DNS exchange.
	Timeout time.Duration `mapstructure:"timeout"`

	// Strict makes malformed records fail the whole query instead of being
	// skipped with a warning.
	Strict bool `mapstructure:"strict"`
}

// ApplyDefaults applies default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 5 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Server != "" {
		if _, err := serverAddress(c.Server); err != nil {
			return fmt.Errorf("invalid server %q: %w", c.Server, err)
		}
	}
	if c.Local != "" {
		if _, err := netip.ParseAddr(c.Local); err != nil {
			return fmt.Errorf("invalid local address %q: %w", c.Local, err)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	return nil
}

// serverAddress parses a nameserver as "address" or "address:port",
// defaulting the port to 53.
func serverAddress(s string) (netip.AddrPort, error) {
	if addr, err := netip.ParseAddr(s); err == nil {
		return netip.AddrPortFrom(addr, 53), nil
	}
	return netip.ParseAddrPort(s)
}
