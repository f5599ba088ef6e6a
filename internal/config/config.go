package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"attritionlens/internal/errors"
)

// Dataset source kinds
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Database DatabaseConfig
	Server   ServerConfig
	Ops      OpsConfig
	Session  SessionConfig
	LogLevel string
}

// DataConfig describes where the employee table comes from
type DataConfig struct {
	Source string
	Path   string
}

// DatabaseConfig holds database connection settings for the postgres source
type DatabaseConfig struct {
	URL   string
	Table string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// OpsConfig holds the health/pprof listener settings
type OpsConfig struct {
	Port    string
	Enabled bool
}

// SessionConfig controls per-session filter state
type SessionConfig struct {
	TTL time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:     *LoadDataConfig(),
		Database: *LoadDatabaseConfig(),
		Server:   *loadServerConfig(),
		Ops:      *loadOpsConfig(),
		Session:  *loadSessionConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// LoadDataConfig reads the dataset source settings without validating them
func LoadDataConfig() *DataConfig {
	return &DataConfig{
		Source: strings.ToLower(getEnvOrDefault("DATASET_SOURCE", SourceFile)),
		Path:   getEnvOrDefault("DATASET_PATH", "EA.csv"),
	}
}

// LoadDatabaseConfig reads the PostgreSQL settings
func LoadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:   getEnvOrDefault("DATABASE_URL", ""),
		Table: getEnvOrDefault("EMPLOYEES_TABLE", "employees"),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadOpsConfig() *OpsConfig {
	return &OpsConfig{
		Port:    getEnvOrDefault("OPS_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
	}
}

func loadSessionConfig() *SessionConfig {
	return &SessionConfig{
		TTL: getEnvDurationOrDefault("SESSION_TTL", 2*time.Hour),
	}
}

func validateConfig(config *Config) error {
	switch config.Data.Source {
	case SourceFile:
		if config.Data.Path == "" {
			return errors.ConfigInvalid("DATASET_PATH is required for the file source")
		}
	case SourcePostgres:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the postgres source")
		}
		if config.Database.Table == "" {
			return errors.ConfigInvalid("EMPLOYEES_TABLE cannot be empty")
		}
	default:
		return errors.ConfigInvalid("DATASET_SOURCE must be 'file' or 'postgres', got '" + config.Data.Source + "'")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
