package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts file operations, for testing the loader.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type osFileSystem struct{}

func (osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderOption customizes Load.
type LoaderOption func(*loader)

type loader struct {
	fs         FileSystem
	configFile string
	envFile    string
}

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(l *loader) { l.fs = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(l *loader) { l.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(l *loader) { l.envFile = path }
}

// Load reads configuration for a service into cfg. A config.yml and .env
// file are searched for in standard locations unless explicit paths are
// given; environment variables override both.
func Load(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	l := loader{fs: osFileSystem{}}
	for _, opt := range opts {
		opt(&l)
	}

	if l.configFile == "" {
		l.configFile = findFirst(l.fs, configSearchPaths(serviceName))
	}
	if l.envFile == "" {
		l.envFile = findFirst(l.fs, envSearchPaths(serviceName))
	}

	// The .env file loads before env binding so its values are visible.
	if l.envFile != "" {
		if err := l.fs.LoadEnv(l.envFile); err != nil {
			return fmt.Errorf("config: loading %s: %w", l.envFile, err)
		}
	}

	v := viper.New()
	if l.configFile != "" && l.fs.Exists(l.configFile) {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: reading %s: %w", l.configFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnv(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshaling for %s: %w", serviceName, err)
	}
	return nil
}

func configSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		"./config.yml",
		fmt.Sprintf("/etc/%s/config.yml", serviceName),
	}
}

func envSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf(".env.%s", serviceName),
		".env",
	}
}

func findFirst(fs FileSystem, paths []string) string {
	for _, path := range paths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// bindEnv maps UPPER_SNAKE environment variables onto nested config keys:
// DISCOVERY_STRATEGY becomes both "discovery_strategy" and
// "discovery.strategy", and deeper keys get every split point.
func bindEnv(v *viper.Viper) {
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || value == "" {
			continue
		}
		for _, variant := range keyVariants(key) {
			v.Set(variant, value)
		}
	}
}

func keyVariants(envKey string) []string {
	key := strings.ToLower(envKey)
	parts := strings.Split(key, "_")
	if len(parts) <= 1 {
		return []string{key}
	}

	variants := []string{key, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return variants
}
