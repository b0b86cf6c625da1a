package config_test

import (
	"testing"
	"time"

	"github.com/ivost9/incidents-backend/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Http.Port != ":5000" {
		t.Fatalf("unexpected default port %q", cfg.Http.Port)
	}
	if cfg.Http.AllowedOrigin != "*" {
		t.Fatalf("unexpected default origin %q", cfg.Http.AllowedOrigin)
	}
	if cfg.Http.BaseURL != "http://localhost:5000" {
		t.Fatalf("unexpected default base url %q", cfg.Http.BaseURL)
	}
	if cfg.Uploads.Dir != "./uploads" {
		t.Fatalf("unexpected default uploads dir %q", cfg.Uploads.Dir)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9000")
	t.Setenv("FRONTEND_URL", "https://map.example.com")
	t.Setenv("BASE_URL", "https://api.example.com")
	t.Setenv("HTTP_READ_TIMEOUT", "5s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Http.Port != ":9000" {
		t.Fatalf("HTTP_PORT not applied: %q", cfg.Http.Port)
	}
	if cfg.Http.AllowedOrigin != "https://map.example.com" {
		t.Fatalf("FRONTEND_URL not applied: %q", cfg.Http.AllowedOrigin)
	}
	if cfg.Http.BaseURL != "https://api.example.com" {
		t.Fatalf("BASE_URL not applied: %q", cfg.Http.BaseURL)
	}
	if cfg.Http.ReadTimeout != 5*time.Second {
		t.Fatalf("HTTP_READ_TIMEOUT not applied: %v", cfg.Http.ReadTimeout)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(*config.Config){
		"port without colon": func(c *config.Config) { c.Http.Port = "5000" },
		"empty port":         func(c *config.Config) { c.Http.Port = "" },
		"trailing slash url": func(c *config.Config) { c.Http.BaseURL = "http://x/" },
		"empty uploads dir":  func(c *config.Config) { c.Uploads.Dir = "" },
		"empty pg host":      func(c *config.Config) { c.Postgres.Host = "" },
	}

	for name, mutate := range cases {
		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
