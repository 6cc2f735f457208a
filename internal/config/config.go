package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Site    SiteConfig
	Robots  RobotsConfig
	Fetch   FetchConfig
	Logging LogConfig
}

// SiteConfig holds the scrape target configuration.
type SiteConfig struct {
	BaseURL string `envconfig:"SITE_BASE_URL" default:"https://www.airbnb.com"`
}

// RobotsConfig holds crawl-permission gate configuration.
type RobotsConfig struct {
	Ignore         bool   `envconfig:"IGNORE_ROBOTS_TXT" default:"false"`
	UserAgent      string `envconfig:"ROBOTS_USER_AGENT" default:"StayScoutBot"`
	TimeoutSeconds int    `envconfig:"ROBOTS_TIMEOUT_SECONDS" default:"10"`
}

// FetchConfig holds page retrieval configuration.
type FetchConfig struct {
	// Identity selects the User-Agent sent on page fetches: "browser" or "declared".
	Identity       string `envconfig:"FETCH_IDENTITY" default:"browser"`
	TimeoutSeconds int    `envconfig:"FETCH_TIMEOUT_SECONDS" default:"30"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL: "https://www.airbnb.com",
		},
		Robots: RobotsConfig{
			Ignore:         false,
			UserAgent:      "StayScoutBot",
			TimeoutSeconds: 10,
		},
		Fetch: FetchConfig{
			Identity:       "browser",
			TimeoutSeconds: 30,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
