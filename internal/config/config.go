// Package config loads server settings from the environment, with a .env
// file honored when present.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the binaries need; all fields have defaults so an
// empty environment still boots.
type Config struct {
	Port         string
	Env          string
	GitHubAPIURL string
	Gemini       GeminiConfig
	Cache        CacheConfig
}

// GeminiConfig tunes the generative text calls.
type GeminiConfig struct {
	Model       string
	Temperature float32
	MaxTokens   int32
	RPS         float64
	Burst       int
}

// CacheConfig bounds the in-memory snapshot cache.
type CacheConfig struct {
	Entries int
	TTL     time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:         port,
		Env:          env,
		GitHubAPIURL: strings.TrimSpace(os.Getenv("GITHUB_API_URL")),
		Gemini: GeminiConfig{
			Model:       firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.5-flash"),
			Temperature: envFloat32("GEMINI_TEMPERATURE", 0.7),
			MaxTokens:   int32(envInt("GEMINI_MAX_TOKENS", 2048)),
			RPS:         envFloat64("GEMINI_RPS", 0),
			Burst:       envInt("GEMINI_BURST", 1),
		},
		Cache: CacheConfig{
			Entries: envInt("SNAPSHOT_CACHE_ENTRIES", 128),
			TTL:     envDuration("SNAPSHOT_CACHE_TTL", 10*time.Minute),
		},
	}
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat64(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envFloat32(key string, def float32) float32 {
	return float32(envFloat64(key, float64(def)))
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
