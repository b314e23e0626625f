package config

import (
	"os"
	"strings"
)

type AppConfig struct {
	// Backend
	APIBaseURL string

	// Session mirror / tenant caches
	StoreDriver string // file, redis, memory
	StorePath   string
	RedisAddr   string
	RedisPass   string
	RedisDB     int

	// Demo allowlist. Must stay off in production: when false the canned
	// credential pairs are unreachable no matter what the user types.
	DemoMode bool

	// Demo server
	HTTPAddr  string
	JWTSecret string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8000"),

		StoreDriver: getEnv("STORE_DRIVER", "file"),
		StorePath:   getEnv("STORE_PATH", defaultStorePath()),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASS", ""),
		RedisDB:     0,

		DemoMode: strings.ToLower(getEnv("DEMO_MODE", "false")) == "true",

		HTTPAddr:  getEnv("HTTP_ADDR", ":8000"),
		JWTSecret: getEnv("JWT_SECRET", "dev-only-secret"),
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".backoffice/session.json"
	}
	return home + "/.backoffice/session.json"
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
