package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "GEMINI_MODEL", "SNAPSHOT_CACHE_ENTRIES", "SNAPSHOT_CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != ":8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.Env != "local" {
		t.Fatalf("Env = %q", cfg.Env)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Fatalf("Model = %q", cfg.Gemini.Model)
	}
	if cfg.Cache.Entries != 128 || cfg.Cache.TTL != 10*time.Minute {
		t.Fatalf("cache defaults: %+v", cfg.Cache)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_RPS", "2.5")
	t.Setenv("SNAPSHOT_CACHE_TTL", "30m")

	cfg := Load()
	if cfg.Port != ":9090" {
		t.Fatalf("Port = %q, want :9090 (colon prefixed)", cfg.Port)
	}
	if cfg.Env != "prod" {
		t.Fatalf("Env = %q", cfg.Env)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Fatalf("Model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.RPS != 2.5 {
		t.Fatalf("RPS = %v", cfg.Gemini.RPS)
	}
	if cfg.Cache.TTL != 30*time.Minute {
		t.Fatalf("TTL = %v", cfg.Cache.TTL)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("GEMINI_MAX_TOKENS", "many")
	t.Setenv("SNAPSHOT_CACHE_TTL", "soon")

	cfg := Load()
	if cfg.Gemini.MaxTokens != 2048 {
		t.Fatalf("MaxTokens = %d, want default", cfg.Gemini.MaxTokens)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Fatalf("TTL = %v, want default", cfg.Cache.TTL)
	}
}
