package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultDBName          = "roster-sync.db"
	defaultIntervalMinutes = 5
	defaultTimeoutSeconds  = 10
)

// Load reads configuration from environment variables and .env file.
// It exits the process when a required variable is missing or invalid.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := parse(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// parse builds a Config from lookup. Required variables missing from lookup
// are reported as an error.
func parse(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	required := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	optional := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	token := optional("BACKEND_TOKEN", "")
	if token == "" {
		token = required("WEEZEVENT_DRUPAL_TOKEN")
	}

	cfg := Config{
		Port:     optional("PORT", defaultPort),
		DBName:   optional("DB_NAME", defaultDBName),
		LogLevel: optional("LOG_LEVEL", "info"),
		Backend: BackendConfig{
			URL:   required("BACKEND_API_URL"),
			Token: token,
		},
		Weezevent: WeezeventConfig{
			URL:         optional("WEEZEVENT_API_URL", ""),
			AccessToken: required("WEEZEVENT_ACCESS_TOKEN"),
			APIKey:      required("WEEZEVENT_API_KEY"),
		},
		Toornament: ToornamentConfig{
			URL:         optional("TOORNAMENT_API_URL", ""),
			APIKey:      required("TOORNAMENT_API_KEY"),
			AccessToken: required("TOORNAMENT_ACCESS_TOKEN"),
		},
		Slack: SlackConfig{
			Token:     optional("SLACK_BOT_TOKEN", ""),
			ChannelID: optional("SLACK_CHANNEL_ID", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL", ""),
			AuthToken:  optional("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: optional("GCP_PROJECT", ""),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %v", missing)
	}

	interval, err := positiveInt(optional("SYNC_INTERVAL_MINUTES", ""), defaultIntervalMinutes)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SYNC_INTERVAL_MINUTES: %w", err)
	}
	timeout, err := positiveInt(optional("HTTP_TIMEOUT_SECONDS", ""), defaultTimeoutSeconds)
	if err != nil {
		return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS: %w", err)
	}
	cfg.SyncInterval = time.Duration(interval) * time.Minute
	cfg.HTTPTimeout = time.Duration(timeout) * time.Second
	return cfg, nil
}

func positiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
