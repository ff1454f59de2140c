// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads podcms settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"your-secret-key-here-change-in-production",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"PODCMS_DB_PATH" envDefault:"./data/podcms.db"`
	SessionSecret string `env:"PODCMS_SESSION_SECRET,required"`
	ServerHost    string `env:"PODCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PODCMS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"PODCMS_ENV" envDefault:"development"`
	LogLevel      string `env:"PODCMS_LOG_LEVEL" envDefault:"info"`

	// Uploads
	UploadsDir        string   `env:"PODCMS_UPLOADS_DIR" envDefault:"./static/uploads"`
	MaxUploadSize     int64    `env:"PODCMS_MAX_UPLOAD_SIZE" envDefault:"50777216"`
	AllowedExtensions []string `env:"PODCMS_ALLOWED_EXTENSIONS" envSeparator:"," envDefault:"png,jpg,jpeg,gif,mp3,wav,m4a"`

	// Activity log retention in days; 0 keeps everything.
	ActivityRetentionDays int `env:"PODCMS_ACTIVITY_RETENTION_DAYS" envDefault:"90"`

	// GeoIP configuration
	GeoIPDBPath string `env:"PODCMS_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Site profile override (JSON)
	SiteFile string `env:"PODCMS_SITE_FILE"`

	DemoMode bool `env:"PODCMS_DEMO_MODE" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// AllowedExtensionSet returns the upload allow-list as a lookup set of
// lowercase extensions without the leading dot.
func (c Config) AllowedExtensionSet() map[string]bool {
	set := make(map[string]bool, len(c.AllowedExtensions))
	for _, ext := range c.AllowedExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set[ext] = true
		}
	}
	return set
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PODCMS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("PODCMS_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("PODCMS_MAX_UPLOAD_SIZE must be positive, got %d", cfg.MaxUploadSize)
	}
	if len(cfg.AllowedExtensionSet()) == 0 {
		return nil, fmt.Errorf("PODCMS_ALLOWED_EXTENSIONS must list at least one extension")
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("PODCMS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
