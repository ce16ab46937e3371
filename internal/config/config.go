package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr         string
	DatabasePath string
	LogLevel     string

	// Headless Chrome used for the preview capture step of the PDF export.
	ChromePath      string
	ChromeNoSandbox bool
	CaptureTimeout  time.Duration
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Addr = getEnv("OFFERTE_ADDR", ":8080")
	cfg.DatabasePath = getEnv("OFFERTE_DB", "offerte.db")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.ChromePath = os.Getenv("CHROME_PATH")
	cfg.ChromeNoSandbox = ParseBool("CHROME_NO_SANDBOX", false)
	cfg.CaptureTimeout = 30 * time.Second
	if v := os.Getenv("CAPTURE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CaptureTimeout = time.Duration(n) * time.Second
		}
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}
	return def
}
