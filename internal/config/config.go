// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret signs and verifies login tokens. Required.
	JWTSecret string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RunMigrations applies pending goose migrations at startup when true.
	// Set MIGRATE=true to enable.
	RunMigrations bool

	// Notifier selects the notification sink implementation.
	// Valid values: "log" (default), "smtp", "kafka".
	Notifier string

	// SMTP settings, used only when Notifier is "smtp".
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string

	// Kafka settings, used only when Notifier is "kafka".
	// KafkaTopic defaults to "reservation-events".
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is loaded first if present, so local
// development does not need exported variables.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// Absence of a .env file is the normal case in production.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RunMigrations: strings.EqualFold(os.Getenv("MIGRATE"), "true"),
		Notifier:      getEnv("NOTIFIER", "log"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		KafkaBrokers:  splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "reservation-events"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	switch cfg.Notifier {
	case "log":
	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPUser == "" {
			return Config{}, fmt.Errorf("NOTIFIER=smtp requires SMTP_HOST and SMTP_USER")
		}
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			return Config{}, fmt.Errorf("NOTIFIER=kafka requires KAFKA_BROKERS")
		}
	default:
		return Config{}, fmt.Errorf("invalid NOTIFIER %q: must be log, smtp, or kafka", cfg.Notifier)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
