package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application.
type Config struct {
	// Port is the HTTP server port.
	Port int `env:"PORT" envDefault:"3000"`

	// AppViewURL is the BlueSky AppView origin used for thread fetches.
	AppViewURL string `env:"APPVIEW_URL" envDefault:"https://public.api.bsky.app"`

	// CDNURL is the image CDN origin used to resolve embedded image blobs.
	CDNURL string `env:"CDN_URL" envDefault:"https://cdn.bsky.app"`

	// DBPath is the SQLite database file holding cached threads.
	DBPath string `env:"DB_PATH" envDefault:"skeetstorm.db"`

	// UserAgent is sent when fetching post pages to resolve author DIDs.
	UserAgent string `env:"USER_AGENT" envDefault:"skeetstorm/1.0"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
