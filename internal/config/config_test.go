package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:               "8081",
		GeminiAPIKey:       "key",
		GeminiModel:        "gemini-2.0-flash",
		DefaultIncomeCents: 500000,
		SessionTTL:         2 * time.Hour,
		MaxUploadBytes:     10 << 20,
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GEMINI_API_KEY", "GEMINI_MODEL", "DEFAULT_INCOME_CENTS", "SESSION_TTL", "MAX_UPLOAD_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8081" {
		t.Fatalf("expected default port 8081, got %s", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("unexpected default model %s", cfg.GeminiModel)
	}
	if cfg.DefaultIncomeCents != 500000 {
		t.Fatalf("unexpected default income %d", cfg.DefaultIncomeCents)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("unexpected default TTL %v", cfg.SessionTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("DEFAULT_INCOME_CENTS", "123456")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")

	cfg := Load()

	if cfg.Port != "9090" || cfg.GeminiAPIKey != "secret" || cfg.GeminiModel != "gemini-1.5-pro" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.DefaultIncomeCents != 123456 {
		t.Fatalf("expected income 123456, got %d", cfg.DefaultIncomeCents)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected TTL 30m, got %v", cfg.SessionTTL)
	}
	if cfg.MaxUploadBytes != 2048 {
		t.Fatalf("expected max upload 2048, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("DEFAULT_INCOME_CENTS", "lots")
	t.Setenv("SESSION_TTL", "soon")

	cfg := Load()

	if cfg.DefaultIncomeCents != 500000 {
		t.Fatalf("expected default income on parse failure, got %d", cfg.DefaultIncomeCents)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected default TTL on parse failure, got %v", cfg.SessionTTL)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"no api key still valid", func(c *Config) { c.GeminiAPIKey = "" }, true},
		{"bad port", func(c *Config) { c.Port = "http" }, false},
		{"port out of range", func(c *Config) { c.Port = "70000" }, false},
		{"empty model", func(c *Config) { c.GeminiModel = "" }, false},
		{"negative income", func(c *Config) { c.DefaultIncomeCents = -1 }, false},
		{"ttl too short", func(c *Config) { c.SessionTTL = time.Second }, false},
		{"ttl too long", func(c *Config) { c.SessionTTL = 48 * time.Hour }, false},
		{"upload too small", func(c *Config) { c.MaxUploadBytes = 10 }, false},
		{"upload too big", func(c *Config) { c.MaxUploadBytes = 500 << 20 }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
