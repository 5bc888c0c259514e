// Package config loads service configuration from YAML files, .env files,
// and environment variables, in increasing order of precedence.
package config
