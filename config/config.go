// Package config handles loading and managing application configuration.
// Configuration is read once at process start and never mutated.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/telepix/pix-gateway/internal/domain"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Upstream PIX gateway configuration
	Gateway GatewayConfig

	// Persistence settings (optional)
	Database DatabaseConfig

	// Logging and metrics sinks (optional)
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    string
	GinMode string // "debug", "release", or "test"
}

// GatewayConfig holds the upstream gateway credentials and endpoint policy.
type GatewayConfig struct {
	PublicKey string
	SecretKey string

	// APIBase is the gateway API base URL.
	APIBase string
	// CreateOverride optionally replaces the creation endpoint, either as an
	// absolute URL or as a path suffix joined to APIBase.
	CreateOverride string
	// WebhookBaseURL, when set, is used to synthesize the charge callback URL
	// for requests that don't carry their own.
	WebhookBaseURL string
	// WebhookSecret enables webhook authenticity verification when set.
	WebhookSecret string
}

// DatabaseConfig holds transaction persistence configuration. An empty URL
// degrades persistence only, never the gateway logic.
type DatabaseConfig struct {
	URL           string
	MigrationsDir string
}

// ObservabilityConfig holds optional remote log and metrics targets.
type ObservabilityConfig struct {
	LokiURL           string
	MetricsPushURL    string
	MetricsIntervalMs int
	MetricsLabels     string
}

// Load reads configuration from the environment, with .env autoloaded when
// present. Returns a Config struct with all settings populated.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "3000"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Gateway: GatewayConfig{
			PublicKey:      getEnv("VENUZ_PUBLIC_KEY", ""),
			SecretKey:      getEnv("VENUZ_SECRET_KEY", ""),
			APIBase:        getEnv("VENUZ_API_BASE", "https://app.venuzpay.com/api/v1"),
			CreateOverride: getEnv("PIX_CREATE_URL", ""),
			WebhookBaseURL: getEnv("WEBHOOK_BASE_URL", ""),
			WebhookSecret:  getEnv("PIX_WEBHOOK_SECRET", ""),
		},
		Database: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", ""),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		},
		Observability: ObservabilityConfig{
			LokiURL:           getEnv("LOKI_URL", ""),
			MetricsPushURL:    getEnv("METRICS_PUSH_URL", ""),
			MetricsIntervalMs: getEnvInt("METRICS_INTERVAL_MS", 10000),
			MetricsLabels:     getEnv("METRICS_LABELS", `service="pix-gateway"`),
		},
	}
}

// Validate checks that mandatory settings are present. Missing credentials are
// fatal: the process must refuse to start rather than emit unsigned requests.
func (c *Config) Validate() error {
	if c.Gateway.PublicKey == "" || c.Gateway.SecretKey == "" {
		return fmt.Errorf("%w: VENUZ_PUBLIC_KEY and VENUZ_SECRET_KEY must be set",
			domain.ErrMissingCredentials)
	}
	return nil
}

// getEnv retrieves an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as an integer with a fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
