// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the account and upload logic shared by the
// public site and the admin dashboard.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/podcms/internal/auth"
	"github.com/olegiv/podcms/internal/model"
	"github.com/olegiv/podcms/internal/store"
)

// Account errors
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminExists        = errors.New("an admin account already exists")
	ErrPasswordMismatch   = errors.New("secrets do not match")
)

// Accounts manages site users and the single admin account.
type Accounts struct {
	db  *sql.DB
	now func() time.Time
}

// NewAccounts creates an account service backed by db.
func NewAccounts(db *sql.DB) *Accounts {
	return &Accounts{db: db, now: time.Now}
}

// RegisterUser creates a site user. Username and email are each unique.
func (a *Accounts) RegisterUser(ctx context.Context, f model.RegisterForm) (store.User, error) {
	username := strings.TrimSpace(f.Username)
	email := strings.TrimSpace(f.Email)
	if f.Password != f.ConfirmPassword {
		return store.User{}, ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(f.Password)
	if err != nil {
		return store.User{}, fmt.Errorf("hashing password: %w", err)
	}

	var user store.User
	err = store.ExecTx(ctx, a.db, func(q *store.Queries) error {
		if _, err := q.GetUserByUsername(ctx, username); err == nil {
			return ErrUsernameTaken
		} else if !store.IsNotFound(err) {
			return err
		}
		if _, err := q.GetUserByEmail(ctx, email); err == nil {
			return ErrEmailTaken
		} else if !store.IsNotFound(err) {
			return err
		}

		user, err = q.CreateUser(ctx, store.CreateUserParams{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    a.now(),
		})
		return uniqueViolation(err)
	})
	if err != nil {
		return store.User{}, err
	}
	return user, nil
}

// AuthenticateUser returns the user when password matches the stored hash.
func (a *Accounts) AuthenticateUser(ctx context.Context, username, password string) (store.User, error) {
	user, err := store.New(a.db).GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if store.IsNotFound(err) {
			return store.User{}, ErrInvalidCredentials
		}
		return store.User{}, err
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return store.User{}, ErrInvalidCredentials
	}

	// Re-hash hashes made with older argon2 parameters.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := store.New(a.db).UpdateUserPasswordHash(ctx, store.UpdateUserPasswordHashParams{
				PasswordHash: newHash,
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			} else {
				user.PasswordHash = newHash
				slog.Info("password re-hashed with updated parameters", "user_id", user.ID)
			}
		}
	}
	return user, nil
}

// AdminExists reports whether the admin account has been created.
func (a *Accounts) AdminExists(ctx context.Context) (bool, error) {
	n, err := store.New(a.db).CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RegisterAdmin creates the admin account. Registration is closed for good
// once an admin exists.
func (a *Accounts) RegisterAdmin(ctx context.Context, f model.AdminRegisterForm) (store.Admin, error) {
	username := strings.TrimSpace(f.Username)
	if f.PIN != f.ConfirmPIN {
		return store.Admin{}, ErrPasswordMismatch
	}

	hash, err := auth.HashPIN(f.PIN)
	if err != nil {
		return store.Admin{}, fmt.Errorf("hashing PIN: %w", err)
	}

	var admin store.Admin
	err = store.ExecTx(ctx, a.db, func(q *store.Queries) error {
		n, err := q.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrAdminExists
		}

		admin, err = q.CreateAdmin(ctx, store.CreateAdminParams{
			Username:  username,
			PinHash:   hash,
			CreatedAt: a.now(),
		})
		if isConstraintError(err) {
			return ErrAdminExists
		}
		return err
	})
	if err != nil {
		return store.Admin{}, err
	}
	return admin, nil
}

// AuthenticateAdmin returns the admin when pin matches the stored hash.
func (a *Accounts) AuthenticateAdmin(ctx context.Context, username, pin string) (store.Admin, error) {
	admin, err := store.New(a.db).GetAdminByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if store.IsNotFound(err) {
			return store.Admin{}, ErrInvalidCredentials
		}
		return store.Admin{}, err
	}

	ok, err := auth.CheckPIN(pin, admin.PinHash)
	if err != nil || !ok {
		return store.Admin{}, ErrInvalidCredentials
	}

	if auth.NeedsRehash(admin.PinHash) {
		if newHash, err := auth.HashPIN(pin); err == nil {
			if err := store.New(a.db).UpdateAdminPinHash(ctx, store.UpdateAdminPinHashParams{
				PinHash: newHash,
				ID:      admin.ID,
			}); err != nil {
				slog.Error("failed to re-hash admin PIN", "error", err, "admin_id", admin.ID)
			} else {
				admin.PinHash = newHash
				slog.Info("admin PIN re-hashed with updated parameters", "admin_id", admin.ID)
			}
		}
	}
	return admin, nil
}

// uniqueViolation maps a users UNIQUE failure that slipped past the
// lookups to the matching account error.
func uniqueViolation(err error) error {
	if err == nil || !isConstraintError(err) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "users.email"):
		return ErrEmailTaken
	case strings.Contains(msg, "users.username"):
		return ErrUsernameTaken
	}
	return err
}

func isConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "CHECK constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY")
}
