// Package config handles application configuration.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database. Empty means the volatile in-memory store, which is the
	// default: record lifetime equals process lifetime.
	DatabaseURL string

	// Password storage: "bcrypt" or "plain". Plain exists only for parity
	// testing against the legacy API this service replaces.
	PasswordHashing string

	// Logging
	LogLevel  string
	LogFormat string // "json" or "text"

	// Environment
	Environment string // "dev", "staging", "prod"
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		PasswordHashing: getEnv("PASSWORD_HASHING", "bcrypt"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		Environment: getEnv("ENVIRONMENT", "dev"),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "prod"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
