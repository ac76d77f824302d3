package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"sheetpivot/domain/table"
	"sheetpivot/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Pivot    PivotConfig
	LogLevel string
}

// DatabaseConfig holds database connection settings. An empty URL keeps
// snapshots in memory.
type DatabaseConfig struct {
	URL            string
	MaxOpenConns   int
	ConnectTimeout time.Duration
}

// ServerConfig holds web server settings. JSON requests may only name files
// under DataDir; with an empty DataDir they must upload the file.
type ServerConfig struct {
	Port         string
	DataDir      string
	MaxUploadMB  int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PivotConfig holds the defaults applied when a request does not say otherwise
type PivotConfig struct {
	SheetFile string
	SheetName string
	HeaderRow int
	GapPolicy table.GapPolicy
	Workers   int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	pivotConfig, err := loadPivotConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load pivot configuration")
	}

	config := &Config{
		Database: *loadDatabaseConfig(),
		Server:   *loadServerConfig(),
		Pivot:    *pivotConfig,
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:            os.Getenv("DATABASE_URL"),
		MaxOpenConns:   getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		ConnectTimeout: getEnvDurationOrDefault("DB_CONNECT_TIMEOUT", 5*time.Second),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:         getEnvOrDefault("PORT", "8080"),
		DataDir:      getEnvOrDefault("SHEET_DIR", ""),
		MaxUploadMB:  getEnvIntOrDefault("MAX_UPLOAD_MB", 32),
		ReadTimeout:  getEnvDurationOrDefault("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: getEnvDurationOrDefault("WRITE_TIMEOUT", 60*time.Second),
	}
}

func loadPivotConfig() (*PivotConfig, error) {
	gaps, err := table.ParseGapPolicy(os.Getenv("GAP_POLICY"))
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	return &PivotConfig{
		SheetFile: getEnvOrDefault("SHEET_FILE", ""),
		SheetName: getEnvOrDefault("SHEET_NAME", ""),
		HeaderRow: getEnvIntOrDefault("HEADER_ROW", 0),
		GapPolicy: gaps,
		Workers:   getEnvIntOrDefault("PIVOT_WORKERS", 4),
	}, nil
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Server.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Pivot.HeaderRow < 0 {
		return errors.ConfigInvalid("HEADER_ROW must not be negative")
	}
	if config.Pivot.Workers <= 0 {
		return errors.ConfigInvalid("PIVOT_WORKERS must be positive")
	}
	if config.Database.URL != "" && !strings.HasPrefix(config.Database.URL, "postgres") {
		return errors.ConfigInvalid("DATABASE_URL must be a postgres URL")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
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
