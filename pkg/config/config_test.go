package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "testing")
	t.Setenv("RESTOCK_STORE_NAME", "Corner Shop")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment != EnvTesting {
		t.Errorf("Environment: got %q, want %q", cfg.Environment, EnvTesting)
	}
	if cfg.StoreName != "Corner Shop" {
		t.Errorf("StoreName: got %q", cfg.StoreName)
	}
	if cfg.SessionCacheTTL != time.Hour {
		t.Errorf("SessionCacheTTL: got %v, want 1h", cfg.SessionCacheTTL)
	}
	if cfg.TemporalTaskQueue != "restock-emails" {
		t.Errorf("TemporalTaskQueue: got %q", cfg.TemporalTaskQueue)
	}
}

func TestValidateForProduction(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment:          EnvProduction,
			LogLevel:             "info",
			SessionAuthKey:       strings.Repeat("a", 32),
			SessionEncryptionKey: strings.Repeat("b", 32),
			SenderEmail:          "orders@corner.shop",
		}
	}

	t.Run("valid production config", func(t *testing.T) {
		if err := ValidateForProduction(valid()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("non-production is skipped", func(t *testing.T) {
		cfg := &Config{Environment: EnvDevelopment, LogLevel: "debug"}
		if err := ValidateForProduction(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"short auth key", func(c *Config) { c.SessionAuthKey = "short" }, "SESSION_AUTH_KEY"},
		{"short encryption key", func(c *Config) { c.SessionEncryptionKey = "short" }, "SESSION_ENCRYPTION_KEY"},
		{"debug log level", func(c *Config) { c.LogLevel = "debug" }, "LOG_LEVEL"},
		{"bad sender email", func(c *Config) { c.SenderEmail = "not an address" }, "RESTOCK_SENDER_EMAIL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := ValidateForProduction(cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}
