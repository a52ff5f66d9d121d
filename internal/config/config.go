// Package config loads application settings from environment variables.
package config

import (
	"os"
	"strconv"

	"gosurvey/domain/core"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Workday  WorkdayConfig
	Data     DataConfig
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. Persistence is
// optional; an empty URL disables it.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// WorkdayConfig holds Workday report credentials.
type WorkdayConfig struct {
	User      string
	Password  string
	ReportURL string
}

// DataConfig holds local response file settings.
type DataConfig struct {
	ResponseFile   string
	DefinitionFile string
	Alpha          float64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Workday: WorkdayConfig{
			User:      os.Getenv("WORKDAY_USER"),
			Password:  os.Getenv("WORKDAY_PASSWORD"),
			ReportURL: os.Getenv("WORKDAY_REPORT_URL"),
		},
		Data: DataConfig{
			ResponseFile:   os.Getenv("RESPONSE_FILE"),
			DefinitionFile: os.Getenv("SURVEY_DEFINITION"),
			Alpha:          getEnvFloatOrDefault("SIGNIFICANCE_ALPHA", 0.05),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Workday.ReportURL != "" && cfg.Workday.User == "" {
		return core.NewConfigurationError("WORKDAY_USER is required when WORKDAY_REPORT_URL is set")
	}
	if cfg.Data.Alpha <= 0 || cfg.Data.Alpha >= 1 {
		return core.NewConfigurationError("SIGNIFICANCE_ALPHA must be between 0 and 1")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
