package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment names understood by Load
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// Config holds all application configuration
type Config struct {
	// Environment selects which database URL is used
	Env string

	// Server configuration
	Port             string
	CORSAllowOrigins string

	// Database configuration
	DatabaseURL       string
	DBConnectionLimit int

	// Logging mode: dev or prod
	LogMode string
}

// Load loads configuration from environment variables.
// development and testing read DATABASE_URL, production reads PRODUCTION_DATABASE_URL.
func Load() (*Config, error) {
	env := strings.ToLower(getEnv("APP_ENV", EnvDevelopment))

	cfg := &Config{
		Env:               env,
		Port:              getEnv("PORT", "3000"),
		CORSAllowOrigins:  getEnv("CORS_ALLOW_ORIGINS", "*"),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		LogMode:           getEnv("LOG_MODE", "dev"),
	}

	switch env {
	case EnvDevelopment, EnvTesting:
		cfg.DatabaseURL = getEnv("DATABASE_URL", "")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	case EnvProduction:
		cfg.DatabaseURL = getEnv("PRODUCTION_DATABASE_URL", "")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PRODUCTION_DATABASE_URL is required")
		}
		if os.Getenv("LOG_MODE") == "" {
			cfg.LogMode = "prod"
		}
	default:
		return nil, fmt.Errorf("unknown APP_ENV: %s", env)
	}

	if cfg.DBConnectionLimit < 1 {
		return nil, fmt.Errorf("DB_CONNECTION_LIMIT must be positive, got %d", cfg.DBConnectionLimit)
	}

	return cfg, nil
}

// IsProduction reports whether the production environment is selected
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvAsInt64 reads an optional int64 variable; ok is false when unset or malformed
func GetEnvAsInt64(key string) (value int64, ok bool) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return 0, false
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
