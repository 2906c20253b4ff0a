package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Logging  LoggingConfig
	Import   ImportConfig

	// UserID scopes every stored row. The application is single-user, so it is
	// configuration rather than an authenticated identity.
	UserID string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

// ImportConfig controls retention of the import_batch audit trail.
type ImportConfig struct {
	RetentionDays int
	PruneSchedule string // cron spec, e.g. "@daily" or "0 3 * * *"
}

// DefaultUserID is used when USER_ID is not set.
const DefaultUserID = "default-user"

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	retentionDays, err := strconv.Atoi(getEnv("IMPORT_RETENTION_DAYS", "90"))
	if err != nil || retentionDays < 0 {
		return nil, fmt.Errorf("invalid IMPORT_RETENTION_DAYS: must be a non-negative number")
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/fund_cashflow.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		Import: ImportConfig{
			RetentionDays: retentionDays,
			PruneSchedule: getEnv("IMPORT_PRUNE_SCHEDULE", "@daily"),
		},
		UserID: getEnv("USER_ID", DefaultUserID),
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	items := []string{}
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
