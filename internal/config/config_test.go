package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.Server.HTTPPort)
	}
	if cfg.Vitals.Backend != "redis" || cfg.Subjects.Backend != "postgres" {
		t.Errorf("backends = %s/%s, want redis/postgres", cfg.Vitals.Backend, cfg.Subjects.Backend)
	}
	if cfg.Queue.Type != "nats" {
		t.Errorf("queue type = %s, want nats", cfg.Queue.Type)
	}
	if cfg.Pipeline.ForecastHorizon != 24 || cfg.Pipeline.AnomalyAlgorithm != "isolation_forest" {
		t.Errorf("pipeline defaults = %+v", cfg.Pipeline)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"port too high", func(c *Config) { c.Server.HTTPPort = 70000 }},
		{"bad vitals backend", func(c *Config) { c.Vitals.Backend = "cassandra" }},
		{"bad subjects backend", func(c *Config) { c.Subjects.Backend = "mysql" }},
		{"negative contamination", func(c *Config) { c.Pipeline.Contamination = -0.1 }},
		{"contamination at one", func(c *Config) { c.Pipeline.Contamination = 1.0 }},
		{"negative horizon", func(c *Config) { c.Pipeline.ForecastHorizon = -1 }},
		{"auth without keys", func(c *Config) { c.Auth.Enabled = true; c.Auth.APIKeys = nil }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate should reject this config")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  http_port: 9090
vitals:
  backend: memory
queue:
  type: memory
pipeline:
  forecast_horizon: 48
  contamination: 0.05
auth:
  enabled: true
  api_keys:
    - "0123456789abcdef0123456789abcdef"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != 9090 {
		t.Errorf("HTTPPort = %d, want 9090", cfg.Server.HTTPPort)
	}
	if cfg.Vitals.Backend != "memory" {
		t.Errorf("vitals backend = %s, want memory", cfg.Vitals.Backend)
	}
	if cfg.Pipeline.ForecastHorizon != 48 || cfg.Pipeline.Contamination != 0.05 {
		t.Errorf("pipeline = %+v", cfg.Pipeline)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("ReadTimeout = %v, want default 30s", cfg.Server.ReadTimeout)
	}
	if cfg.Pipeline.SummaryTrendDays != 7 {
		t.Errorf("SummaryTrendDays = %d, want default 7", cfg.Pipeline.SummaryTrendDays)
	}
	if !cfg.Auth.Enabled || len(cfg.Auth.APIKeys) != 1 {
		t.Errorf("auth = %+v", cfg.Auth)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  http_port: -5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should reject a config that fails validation")
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if cfg.Server.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want default 8080", cfg.Server.HTTPPort)
	}
}
