package config

import (
	"os"
	"strconv"
)

// DefaultSessionSecret is the insecure development fallback used when
// SESSION_SECRET is not set.
const DefaultSessionSecret = "dev-secret"

// Config holds the application configuration.
type Config struct {
	ServerPort        int
	DataFile          string // Path to the user directory JSON file
	SessionSecret     string
	AdminUser         string
	AdminPass         string
	TelemetrySchedule string // Cron descriptor for the fleet broadcaster
	Env               string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:        port,
		DataFile:          getEnv("DATA_FILE", "./users.json"),
		SessionSecret:     getEnv("SESSION_SECRET", DefaultSessionSecret),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPass:         getEnv("ADMIN_PASS", "admin123"),
		TelemetrySchedule: getEnv("TELEMETRY_SCHEDULE", "@every 15s"),
		Env:               getEnv("APP_ENV", "development"),
	}, nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
