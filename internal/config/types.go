package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port         string
	DBName       string
	LogLevel     string
	SyncInterval time.Duration
	HTTPTimeout  time.Duration
	Backend      BackendConfig
	Weezevent    WeezeventConfig
	Toornament   ToornamentConfig
	Slack        SlackConfig
	Turso        TursoConfig
	ProjectID    string
}

type BackendConfig struct {
	URL   string
	Token string
}

type WeezeventConfig struct {
	URL         string
	AccessToken string
	APIKey      string
}

type ToornamentConfig struct {
	URL         string
	APIKey      string
	AccessToken string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// Enabled reports whether failure alerts can be posted.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
