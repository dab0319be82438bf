package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Database   DatabaseConfig   `envPrefix:"SQLPILOT_"`
	Completion CompletionConfig `envPrefix:"SQLPILOT_"`
	Output     OutputConfig     `envPrefix:"SQLPILOT_"`
	Logging    LoggingConfig    `envPrefix:"SQLPILOT_"`
}

// DatabaseConfig represents the MySQL connection settings
type DatabaseConfig struct {
	Host     string `env:"DB_HOST"     envDefault:"localhost"`
	Port     int    `env:"DB_PORT"     envDefault:"3306"`
	User     string `env:"DB_USER"     envDefault:"root"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
}

// CompletionConfig represents the text-completion service settings
type CompletionConfig struct {
	APIKey          string        `env:"API_KEY"`
	BaseURL         string        `env:"API_BASE_URL"     envDefault:"https://generativelanguage.googleapis.com/v1"`
	ListTimeout     time.Duration `env:"LIST_TIMEOUT"     envDefault:"10s"`
	CompleteTimeout time.Duration `env:"COMPLETE_TIMEOUT" envDefault:"30s"`
	MaxOutputTokens int           `env:"MAX_OUTPUT_TOKENS" envDefault:"500"`
}

// OutputConfig represents where generated artifacts are written
type OutputConfig struct {
	Directory string `env:"OUTPUT_DIR" envDefault:"outputs"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"` // debug, info, warn, error
}

// DSN builds the go-sql-driver connection string. parseTime makes the driver
// return temporal columns as time.Time so the executor can normalize them.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// LoadConfig loads configuration from a .env file (if present) and the
// environment. Environment variables win over .env values.
func LoadConfig() (*Config, error) {
	// Missing .env is not an error; godotenv never overrides existing vars.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validateConfig validates the configuration for common errors
func validateConfig(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf(
			"invalid log level: %s (must be debug, info, warn, or error)",
			cfg.Logging.Level,
		)
	}

	if cfg.Completion.APIKey == "" {
		return fmt.Errorf("SQLPILOT_API_KEY is required")
	}

	if _, err := url.Parse(cfg.Completion.BaseURL); err != nil {
		return fmt.Errorf("invalid completion base URL: %s", cfg.Completion.BaseURL)
	}

	if cfg.Database.Name == "" {
		return fmt.Errorf("SQLPILOT_DB_NAME is required")
	}

	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		return fmt.Errorf("database port out of range: %d", cfg.Database.Port)
	}

	if cfg.Completion.MaxOutputTokens <= 0 {
		return fmt.Errorf("max output tokens must be positive: %d", cfg.Completion.MaxOutputTokens)
	}

	return nil
}
