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
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Finance   FinanceConfig
	Scheduler SchedulerConfig
	Catalog   CatalogConfig
	Secrets   SecretsConfig
	Auth      AuthConfig
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

// FinanceConfig holds the one-time ledger seed
type FinanceConfig struct {
	InitialInvestment float64
}

// SchedulerConfig holds cron expressions for the background jobs
type SchedulerConfig struct {
	CoolingRefreshSchedule string
	SnapshotSchedule       string
	SnapshotPeriod         string
}

// CatalogConfig points at an optional category table override
type CatalogConfig struct {
	Path string
}

// SecretsConfig holds the fernet key for encrypted settings
type SecretsConfig struct {
	FernetKey string
}

// AuthConfig holds the API key guarding mutating endpoints
type AuthConfig struct {
	InternalAPIKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	initialInvestment, err := getEnvFloat("INITIAL_INVESTMENT", 0)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/skin_ledger.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Finance: FinanceConfig{
			InitialInvestment: initialInvestment,
		},
		Scheduler: SchedulerConfig{
			CoolingRefreshSchedule: getEnv("COOLING_REFRESH_SCHEDULE", "*/5 * * * *"),
			SnapshotSchedule:       getEnv("SNAPSHOT_SCHEDULE", "0 0 * * *"),
			SnapshotPeriod:         getEnv("SNAPSHOT_PERIOD", "week"),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Secrets: SecretsConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
		},
		Auth: AuthConfig{
			InternalAPIKey: getEnv("INTERNAL_API_KEY", ""),
		},
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

// getEnvFloat gets an environment variable parsed as a float
func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q", key, value)
	}
	return parsed, nil
}

// getEnvList gets a comma-separated environment variable as a slice
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
