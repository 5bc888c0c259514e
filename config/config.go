package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/silverlyra/flytrap/discovery"
	"github.com/silverlyra/flytrap/logger"
	"github.com/silverlyra/flytrap/telemetry"
)

// EnvAPIToken is the environment variable holding the Fly.io API token.
const EnvAPIToken = "FLY_API_TOKEN"

// Config is the root configuration of a flytrap service.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `mapstructure:"listen" validate:"required"`

	// Token is the Fly.io API token, used by the "api" discovery strategy.
	// Defaults to $FLY_API_TOKEN.
	Token string `mapstructure:"token"`

	Log       logger.Config    `mapstructure:"log"`
	Discovery discovery.Config `mapstructure:"discovery"`
	Telemetry telemetry.Config `mapstructure:"telemetry"`
}

// ApplyDefaults fills zero-valued fields with sensible defaults, and
// propagates shared settings into component configs.
func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		if port := os.Getenv("PORT"); port != "" {
			c.Listen = ":" + port
		} else {
			c.Listen = ":8080"
		}
	}
	if c.Token == "" {
		c.Token = os.Getenv(EnvAPIToken)
	}
	if c.Discovery.Machines.Token == "" {
		c.Discovery.Machines.Token = c.Token
	}

	c.Log.ApplyDefaults()
	c.Discovery.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return c.Log.Validate()
}

var validate = validator.New()
