// Package config defines process configuration and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and environment vars.
// - External errors must be wrapped via this package's error helpers.
package config

import "time"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// GitLabURL is the GitLab instance the activity feed comes from.
	GitLabURL string `koanf:"gitlab_url"`

	// GitLabToken is the personal access token. Keep it in the
	// environment or a .env file; never commit it.
	GitLabToken string `koanf:"gitlab_token"`

	// GitLabUsername is the user whose activity drives the game.
	GitLabUsername string `koanf:"gitlab_username"`

	// SavePath locates the on-disk save database.
	SavePath string `koanf:"save_path"`

	// CharacterName is used when creating a fresh character.
	CharacterName string `koanf:"character_name"`

	// Demo runs against the offline demo activity source instead of
	// GitLab.
	Demo bool `koanf:"demo"`

	// SyncInterval is the period between syncs in watch mode.
	SyncInterval time.Duration `koanf:"sync_interval"`

	// MetricsAddr configures the /metrics listen address in watch mode.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		GitLabURL:     "https://gitlab.com",
		SavePath:      "committed.db",
		CharacterName: "Brave Adventurer",
		SyncInterval:  15 * time.Minute,
		MetricsAddr:   ":9090",
	}
}
