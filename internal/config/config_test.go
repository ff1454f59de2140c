// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PODCMS_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/podcms.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/podcms.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.UploadsDir != "./static/uploads" {
		t.Errorf("UploadsDir = %q, want %q", cfg.UploadsDir, "./static/uploads")
	}
	if cfg.MaxUploadSize != 50777216 {
		t.Errorf("MaxUploadSize = %d, want %d", cfg.MaxUploadSize, 50777216)
	}
	if cfg.ActivityRetentionDays != 90 {
		t.Errorf("ActivityRetentionDays = %d, want 90", cfg.ActivityRetentionDays)
	}
	if cfg.DemoMode {
		t.Error("DemoMode should default to false")
	}

	set := cfg.AllowedExtensionSet()
	for _, ext := range []string{"png", "jpg", "jpeg", "gif", "mp3", "wav", "m4a"} {
		if !set[ext] {
			t.Errorf("default allow-list missing %q", ext)
		}
	}
	if len(set) != 7 {
		t.Errorf("len(allow-list) = %d, want 7", len(set))
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PODCMS_SESSION_SECRET", testSecret)
	setEnv(t, "PODCMS_DB_PATH", "/custom/path.db")
	setEnv(t, "PODCMS_SERVER_HOST", "0.0.0.0")
	setEnv(t, "PODCMS_SERVER_PORT", "3000")
	setEnv(t, "PODCMS_ENV", "production")
	setEnv(t, "PODCMS_LOG_LEVEL", "debug")
	setEnv(t, "PODCMS_UPLOADS_DIR", "/srv/uploads")
	setEnv(t, "PODCMS_MAX_UPLOAD_SIZE", "1024")
	setEnv(t, "PODCMS_ALLOWED_EXTENSIONS", " PNG, .Mp3 ,ogg")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false for production")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want %v", cfg.SlogLevel(), slog.LevelDebug)
	}
	if cfg.UploadsDir != "/srv/uploads" {
		t.Errorf("UploadsDir = %q, want %q", cfg.UploadsDir, "/srv/uploads")
	}
	if cfg.MaxUploadSize != 1024 {
		t.Errorf("MaxUploadSize = %d, want 1024", cfg.MaxUploadSize)
	}

	set := cfg.AllowedExtensionSet()
	for _, ext := range []string{"png", "mp3", "ogg"} {
		if !set[ext] {
			t.Errorf("allow-list missing %q: %v", ext, set)
		}
	}
	if set["jpg"] {
		t.Error("allow-list should be replaced, not merged with defaults")
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without PODCMS_SESSION_SECRET")
	}
}

func TestLoad_SessionSecretTooShort(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PODCMS_SESSION_SECRET", "short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail for a short secret")
	}
	if !strings.Contains(err.Error(), "at least 32 bytes") {
		t.Errorf("error = %q, want mention of minimum length", err)
	}
}

func TestLoad_KnownWeakSecret(t *testing.T) {
	for _, weak := range knownWeakSecrets {
		os.Clearenv()
		setEnv(t, "PODCMS_SESSION_SECRET", weak)

		if _, err := Load(); err == nil {
			t.Errorf("Load() accepted known weak secret %q", weak)
		}
	}
}

func TestLoad_InvalidMaxUploadSize(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PODCMS_SESSION_SECRET", testSecret)
	setEnv(t, "PODCMS_MAX_UPLOAD_SIZE", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a zero upload size")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"aaaaaaaaaaaaaaaaAAAAAAAAAAAAAAAA", false},
		{"aaaaaaaaaaaaaaaaAAAAAAAAAAAA1111", true},
		{"aaaaaaaaaaaaaaaa!!!!!!!!!!!!1111", true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}

	for in, want := range tests {
		cfg := Config{LogLevel: in}
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConfig_GeoIPEnabled(t *testing.T) {
	if (Config{}).GeoIPEnabled() {
		t.Error("GeoIPEnabled() = true with empty path")
	}
	if !(Config{GeoIPDBPath: "/data/GeoLite2-Country.mmdb"}).GeoIPEnabled() {
		t.Error("GeoIPEnabled() = false with a path set")
	}
}

func TestLoadSite_Default(t *testing.T) {
	site, err := LoadSite("")
	if err != nil {
		t.Fatalf("LoadSite error: %v", err)
	}
	if site.Podcast.Title != "Micro Podcast" {
		t.Errorf("Podcast.Title = %q, want %q", site.Podcast.Title, "Micro Podcast")
	}
	if len(site.Hosts) != 1 {
		t.Errorf("len(Hosts) = %d, want 1", len(site.Hosts))
	}
}

func TestLoadSite_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.json")
	body := `{"podcast":{"title":"Behind The Mic"},"social_links":{"twitter":"https://x.com/btm"},"hosts":[{"name":"A"},{"name":"B"}]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing site file: %v", err)
	}

	site, err := LoadSite(path)
	if err != nil {
		t.Fatalf("LoadSite error: %v", err)
	}
	if site.Podcast.Title != "Behind The Mic" {
		t.Errorf("Podcast.Title = %q, want %q", site.Podcast.Title, "Behind The Mic")
	}
	if site.Contact.Email != "contact@example.com" {
		t.Errorf("Contact.Email = %q, want default to survive", site.Contact.Email)
	}
	if site.Social["twitter"] != "https://x.com/btm" {
		t.Errorf("Social[twitter] = %q", site.Social["twitter"])
	}
	if site.Social["youtube"] != "#" {
		t.Errorf("Social[youtube] = %q, want default to survive", site.Social["youtube"])
	}
	if len(site.Hosts) != 2 {
		t.Errorf("len(Hosts) = %d, want 2", len(site.Hosts))
	}
}

func TestLoadSite_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("writing site file: %v", err)
	}
	if _, err := LoadSite(path); err == nil {
		t.Fatal("LoadSite should fail on malformed JSON")
	}
}
