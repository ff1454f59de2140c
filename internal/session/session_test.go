// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Create sessions table required by sqlite3store
	_, err = db.Exec(`
		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX sessions_expiry_idx ON sessions(expiry);
	`)
	if err != nil {
		t.Fatalf("failed to create sessions table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_DevMode(t *testing.T) {
	sm := New(setupTestDB(t), true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name == "__Host-session" {
		t.Error("expected default cookie name in dev mode")
	}
	if sm.Store == nil {
		t.Error("expected Store to be initialized")
	}
}

func TestNew_ProductionMode(t *testing.T) {
	sm := New(setupTestDB(t), false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-session" {
		t.Errorf("Cookie.Name = %q, want %q", sm.Cookie.Name, "__Host-session")
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("Cookie.Path = %q, want %q", sm.Cookie.Path, "/")
	}
}

func TestNew_SessionSettings(t *testing.T) {
	sm := New(setupTestDB(t), true)

	if sm.Lifetime != Lifetime {
		t.Errorf("Lifetime = %v, want %v", sm.Lifetime, Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", sm.Cookie.SameSite)
	}
}

func loadedContext(t *testing.T) (context.Context, func() State, *scs.SessionManager) {
	t.Helper()
	sm := New(setupTestDB(t), true)
	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("sm.Load: %v", err)
	}
	return ctx, func() State { return Load(ctx, sm) }, sm
}

func TestState_Anonymous(t *testing.T) {
	_, state, _ := loadedContext(t)

	s := state()
	if s.IsUser() || s.IsAdmin() {
		t.Errorf("fresh session state = %+v, want anonymous", s)
	}
}

func TestState_UserAndAdminIndependent(t *testing.T) {
	ctx, state, sm := loadedContext(t)

	if err := LoginUser(ctx, sm, 7, "alice"); err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if err := LoginAdmin(ctx, sm, 1, "root"); err != nil {
		t.Fatalf("LoginAdmin: %v", err)
	}

	s := state()
	if s.UserID != 7 || s.Username != "alice" {
		t.Errorf("user = (%d, %q), want (7, %q)", s.UserID, s.Username, "alice")
	}
	if s.AdminID != 1 || s.AdminUsername != "root" {
		t.Errorf("admin = (%d, %q), want (1, %q)", s.AdminID, s.AdminUsername, "root")
	}

	LogoutAdmin(ctx, sm)
	s = state()
	if s.IsAdmin() {
		t.Error("admin flag should be cleared after LogoutAdmin")
	}
	if !s.IsUser() {
		t.Error("user flag should survive LogoutAdmin")
	}

	LogoutUser(ctx, sm)
	if state().IsUser() {
		t.Error("user flag should be cleared after LogoutUser")
	}
}

func TestFlash_PopClears(t *testing.T) {
	ctx, _, sm := loadedContext(t)

	if msg, kind := PopFlash(ctx, sm); msg != "" || kind != "" {
		t.Errorf("PopFlash() on empty session = %q, %q; want empty", msg, kind)
	}

	PutFlash(ctx, sm, "Blog post created successfully!", FlashSuccess)
	msg, kind := PopFlash(ctx, sm)
	if msg != "Blog post created successfully!" || kind != FlashSuccess {
		t.Errorf("PopFlash() = %q, %q", msg, kind)
	}

	if msg, _ := PopFlash(ctx, sm); msg != "" {
		t.Errorf("second PopFlash() = %q, want empty", msg)
	}
}

func TestFlash_DefaultKind(t *testing.T) {
	ctx, _, sm := loadedContext(t)

	sm.Put(ctx, KeyFlash, "hello")
	if _, kind := PopFlash(ctx, sm); kind != FlashInfo {
		t.Errorf("kind = %q, want %q", kind, FlashInfo)
	}
}
