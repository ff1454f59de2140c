// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/podcms/internal/model"
	"github.com/olegiv/podcms/internal/store"
	"github.com/olegiv/podcms/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func recentActivity(t *testing.T, db *sql.DB) []store.ActivityLog {
	t.Helper()
	rows, err := store.New(db).ListRecentActivity(context.Background(), 50)
	if err != nil {
		t.Fatalf("ListRecentActivity: %v", err)
	}
	return rows
}

func TestActivityLogHandler_LevelThreshold(t *testing.T) {
	tests := []struct {
		name  string
		log   func(*slog.Logger)
		want  int
		level string
	}{
		{"error stored", func(l *slog.Logger) { l.Error("database connection failed") }, 1, model.ActivityLevelError},
		{"warn stored", func(l *slog.Logger) { l.Warn("slow query") }, 1, model.ActivityLevelWarning},
		{"info skipped", func(l *slog.Logger) { l.Info("server started") }, 0, ""},
		{"debug skipped", func(l *slog.Logger) { l.Debug("details") }, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := testutil.TestDB(t)
			defer cleanup()

			tt.log(slog.New(NewActivityLogHandler(discardHandler{}, db)))

			rows := recentActivity(t, db)
			if len(rows) != tt.want {
				t.Fatalf("got %d activity rows, want %d", len(rows), tt.want)
			}
			if tt.want > 0 && rows[0].Level != tt.level {
				t.Errorf("Level = %q, want %q", rows[0].Level, tt.level)
			}
		})
	}
}

func TestActivityLogHandler_CustomLevel(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewActivityLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo))
	logger.Info("blog post created")

	rows := recentActivity(t, db)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Category != model.ActivityCategoryContent {
		t.Errorf("Category = %q, want %q", rows[0].Category, model.ActivityCategoryContent)
	}
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"admin login failed", model.ActivityCategoryAuth},
		{"upload rejected", model.ActivityCategoryUpload},
		{"failed to delete message", model.ActivityCategoryMessage},
		{"episode update failed", model.ActivityCategoryContent},
		{"user lookup failed", model.ActivityCategoryUser},
		{"disk almost full", model.ActivityCategorySystem},
	}
	for _, tt := range tests {
		if got := inferCategory(tt.msg); got != tt.want {
			t.Errorf("inferCategory(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestActivityLogHandler_ExplicitCategoryAndMetadata(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewActivityLogHandler(discardHandler{}, db)).With("component", "scheduler")
	logger.Warn("something odd", "category", model.ActivityCategoryUpload, "file", `a"b.png`)

	rows := recentActivity(t, db)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Category != model.ActivityCategoryUpload {
		t.Errorf("Category = %q, want %q", rows[0].Category, model.ActivityCategoryUpload)
	}
	for _, want := range []string{`"component":"scheduler"`, `"file":"a\"b.png"`} {
		if !strings.Contains(rows[0].Metadata, want) {
			t.Errorf("Metadata = %s, want it to contain %s", rows[0].Metadata, want)
		}
	}
}

func TestActivityLogHandler_SkipsAuditRecords(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewActivityLogHandler(discardHandler{}, db))
	logger.Warn("admin login failed", AuditKey, true)

	if rows := recentActivity(t, db); len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestRecorder(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	prev := slog.Default()
	slog.SetDefault(slog.New(NewActivityLogHandler(discardHandler{}, db)))
	defer slog.SetDefault(prev)

	req := httptest.NewRequest("POST", "/admin/login", nil)
	req.RemoteAddr = "127.0.0.1:5555"
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	NewRecorder(db, nil).Warn(req, model.ActivityCategoryAuth, "admin login failed", "username", "root")

	rows := recentActivity(t, db)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (audit entries must not be duplicated)", len(rows))
	}
	got := rows[0]
	if got.IPAddress != "127.0.0.1" {
		t.Errorf("IPAddress = %q, want 127.0.0.1", got.IPAddress)
	}
	if got.Level != model.ActivityLevelWarning || got.Category != model.ActivityCategoryAuth {
		t.Errorf("got level %q category %q", got.Level, got.Category)
	}
	for _, want := range []string{`"username":"root"`, `"browser":"Chrome"`, `"os":"Windows"`} {
		if !strings.Contains(got.Metadata, want) {
			t.Errorf("Metadata = %s, want it to contain %s", got.Metadata, want)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "[::1]:8080"
	if got := ClientIP(req); got != "::1" {
		t.Errorf("ClientIP() = %q, want ::1", got)
	}
	req.RemoteAddr = "203.0.113.9"
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Errorf("ClientIP() = %q, want 203.0.113.9", got)
	}
}
