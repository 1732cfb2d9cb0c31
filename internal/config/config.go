// Package config provides centralized configuration for the Git Tutor backend.
package config

import (
	"os"
	"path/filepath"
)

// Config holds application-wide configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// DataDir is the base directory for persistent data (session saves).
	DataDir string
	// LogLevel is a zap level string (debug, info, warn, error).
	LogLevel string
	// Env toggles development conveniences ("dev" or "prod").
	Env string
}

// Default returns the default configuration, reading from environment variables.
func Default() *Config {
	return &Config{
		Addr:     envOr("GITTUTOR_ADDR", ":8080"),
		DataDir:  envOr("GITTUTOR_DATA_DIR", ".gittutor-data"),
		LogLevel: envOr("GITTUTOR_LOG_LEVEL", "info"),
		Env:      envOr("GITTUTOR_ENV", "prod"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// StoreDir returns the path for the session store.
func (c *Config) StoreDir() string {
	return filepath.Join(c.DataDir, "store")
}

// Dev reports whether development mode is enabled.
func (c *Config) Dev() bool {
	return c.Env == "dev"
}
