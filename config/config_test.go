package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := "listen: \":9090\"\ndiscovery:\n  strategy: api\n  app: flytrap-demo\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg Config
	if err := Load("flytrap-demo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Listen != ":9090" {
		t.Errorf("unexpected listen: %s", cfg.Listen)
	}
	if cfg.Discovery.Strategy != "api" || cfg.Discovery.App != "flytrap-demo" {
		t.Errorf("unexpected discovery config: %+v", cfg.Discovery)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("discovery:\n  strategy: api\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DISCOVERY_STRATEGY", "dns")

	var cfg Config
	if err := Load("flytrap-demo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Discovery.Strategy != "dns" {
		t.Errorf("environment should override the file, got %s", cfg.Discovery.Strategy)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	var cfg Config
	if err := Load("flytrap-demo", &cfg, WithEnvFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected the .env value, got %q", cfg.Log.Level)
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Setenv(EnvAPIToken, "fo1_secret")

	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Listen != ":8080" {
		t.Errorf("unexpected listen default: %s", cfg.Listen)
	}
	if cfg.Token != "fo1_secret" {
		t.Errorf("token should default to $FLY_API_TOKEN, got %q", cfg.Token)
	}
	if cfg.Discovery.Machines.Token != "fo1_secret" {
		t.Error("token should propagate to the machines client config")
	}
	if cfg.Log.Level == "" {
		t.Error("log defaults should be applied")
	}
}

func TestValidate(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err == nil {
		t.Error("an empty config should not validate")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("a defaulted config should validate: %v", err)
	}
}
