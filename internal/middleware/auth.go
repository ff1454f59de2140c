// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for session loading, the
// admin gate, CSRF protection, rate limiting and response headers.
package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/podcms/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeySession holds the session.State of the request.
const ContextKeySession ContextKey = "session"

// Paths the auth gates redirect to.
const (
	AdminLoginPath = "/admin/login"
	UserLoginPath  = "/login"
)

// MsgAdminLoginRequired is flashed when an anonymous request hits an admin route.
const MsgAdminLoginRequired = "Please log in to access the admin dashboard."

// LoadSession reads the authentication state once per request and stores it
// in the request context. It must run inside sm.LoadAndSave.
func LoadSession(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := session.Load(r.Context(), sm)
			ctx := context.WithValue(r.Context(), ContextKeySession, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the state stored by LoadSession, or the anonymous
// state when none is present.
func GetSession(r *http.Request) session.State {
	state, _ := r.Context().Value(ContextKeySession).(session.State)
	return state
}

// WithSession returns a copy of r carrying state, as LoadSession would.
// Tests use it to exercise RequireAdmin and friends without a session store.
func WithSession(r *http.Request, state session.State) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeySession, state))
}

// RequireAdmin redirects requests without the admin flag to the admin login
// page with a notice.
func RequireAdmin(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !GetSession(r).IsAdmin() {
				session.PutFlash(r.Context(), sm, MsgAdminLoginRequired, session.FlashError)
				http.Redirect(w, r, AdminLoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
