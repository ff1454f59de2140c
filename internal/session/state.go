// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"fmt"

	"github.com/alexedwards/scs/v2"
)

// Session keys.
const (
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyAdminID       = "admin_id"
	KeyAdminUsername = "admin_username"
)

// State is the authentication state carried by one browser session.
// The user and admin identities are independent; either, both or neither
// may be present.
type State struct {
	UserID        int64
	Username      string
	AdminID       int64
	AdminUsername string
}

// IsUser reports whether a regular user is signed in.
func (s State) IsUser() bool {
	return s.UserID != 0
}

// IsAdmin reports whether the administrator is signed in.
func (s State) IsAdmin() bool {
	return s.AdminID != 0
}

// Load reads the state from the session attached to ctx.
func Load(ctx context.Context, sm *scs.SessionManager) State {
	return State{
		UserID:        sm.GetInt64(ctx, KeyUserID),
		Username:      sm.GetString(ctx, KeyUsername),
		AdminID:       sm.GetInt64(ctx, KeyAdminID),
		AdminUsername: sm.GetString(ctx, KeyAdminUsername),
	}
}

// LoginUser sets the user flag. The session token is renewed first to
// prevent session fixation.
func LoginUser(ctx context.Context, sm *scs.SessionManager, id int64, username string) error {
	if err := sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	sm.Put(ctx, KeyUserID, id)
	sm.Put(ctx, KeyUsername, username)
	return nil
}

// LogoutUser clears the user flag and leaves the admin flag untouched.
func LogoutUser(ctx context.Context, sm *scs.SessionManager) {
	sm.Remove(ctx, KeyUserID)
	sm.Remove(ctx, KeyUsername)
}

// LoginAdmin sets the admin flag. The session token is renewed first.
func LoginAdmin(ctx context.Context, sm *scs.SessionManager, id int64, username string) error {
	if err := sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	sm.Put(ctx, KeyAdminID, id)
	sm.Put(ctx, KeyAdminUsername, username)
	return nil
}

// LogoutAdmin clears the admin flag and leaves the user flag untouched.
func LogoutAdmin(ctx context.Context, sm *scs.SessionManager) {
	sm.Remove(ctx, KeyAdminID)
	sm.Remove(ctx, KeyAdminUsername)
}
