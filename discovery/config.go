package discovery

import (
	"fmt"
	"os"

	"github.com/silverlyra/flytrap/machines"
	"github.com/silverlyra/flytrap/placement"
	"github.com/silverlyra/flytrap/resolver"
)

// Config holds peer discovery configuration.
type Config struct {
	// Strategy selects the discovery source: "dns" or "api".
	Strategy string `mapstructure:"strategy"`

	// App is the app whose peers are discovered. Defaults to $FLY_APP_NAME.
	App string `mapstructure:"app"`

	// ExcludeSelf drops the current machine (as named by $FLY_MACHINE_ID)
	// from results.
	ExcludeSelf bool `mapstructure:"exclude_self"`

	// Resolver configures the "dns" source.
	Resolver resolver.Config `mapstructure:"resolver"`

	// Machines configures the "api" source.
	Machines machines.Config `mapstructure:"machines"`
}

// ApplyDefaults fills zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Strategy == "" {
		c.Strategy = StrategyDNS
	}
	if c.App == "" {
		c.App = os.Getenv(placement.EnvAppName)
	}
}

// Validate checks that required fields are present and consistent.
func (c *Config) Validate() error {
	if _, ok := sourceFactories[c.Strategy]; !ok {
		return fmt.Errorf("unsupported discovery strategy %q", c.Strategy)
	}
	if c.App == "" {
		return fmt.Errorf("app is required (or set $%s)", placement.EnvAppName)
	}
	return nil
}
