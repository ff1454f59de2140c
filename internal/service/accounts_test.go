// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"

	"github.com/olegiv/podcms/internal/auth"
	"github.com/olegiv/podcms/internal/model"
	"github.com/olegiv/podcms/internal/store"
	"github.com/olegiv/podcms/internal/testutil"
)

// legacyHash encodes secret with the older 64MB argon2id parameters.
func legacyHash(secret string) string {
	salt := []byte("0123456789abcdef")
	const memory, iterations, threads = 64 * 1024, 1, 4
	key := argon2.IDKey([]byte(secret), salt, iterations, memory, threads, auth.Argon2KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, iterations, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

func TestRegisterUser(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	accounts := NewAccounts(db)
	ctx := context.Background()

	user, err := accounts.RegisterUser(ctx, model.RegisterForm{Username: "alice", Email: "alice@example.com", Password: "secret", ConfirmPassword: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret", user.PasswordHash)

	_, err = accounts.RegisterUser(ctx, model.RegisterForm{Username: "alice", Email: "other@example.com", Password: "secret", ConfirmPassword: "secret"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = accounts.RegisterUser(ctx, model.RegisterForm{Username: "bob", Email: "alice@example.com", Password: "secret", ConfirmPassword: "secret"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = accounts.RegisterUser(ctx, model.RegisterForm{Username: "carol", Email: "carol@example.com", Password: "secret", ConfirmPassword: "nope"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	assert.Equal(t, 1, testutil.CountRows(t, db, "users"))
}

func TestAuthenticateUser(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	accounts := NewAccounts(db)
	ctx := context.Background()

	_, err := accounts.RegisterUser(ctx, model.RegisterForm{Username: "alice", Email: "alice@example.com", Password: "secret", ConfirmPassword: "secret"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"correct password", "alice", "secret", nil},
		{"wrong password", "alice", "Secret", ErrInvalidCredentials},
		{"unknown user", "mallory", "secret", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := accounts.AuthenticateUser(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", user.Username)
		})
	}
}

func TestRegisterAdminOnlyOnce(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	accounts := NewAccounts(db)
	ctx := context.Background()

	exists, err := accounts.AdminExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = accounts.RegisterAdmin(ctx, model.AdminRegisterForm{Username: "root", PIN: "1234", ConfirmPIN: "4321"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	admin, err := accounts.RegisterAdmin(ctx, model.AdminRegisterForm{Username: "root", PIN: "1234", ConfirmPIN: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "root", admin.Username)

	exists, err = accounts.AdminExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = accounts.RegisterAdmin(ctx, model.AdminRegisterForm{Username: "other", PIN: "5678", ConfirmPIN: "5678"})
	assert.ErrorIs(t, err, ErrAdminExists)
	assert.Equal(t, 1, testutil.CountRows(t, db, "admins"))
}

func TestAuthenticateAdmin(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	accounts := NewAccounts(db)
	ctx := context.Background()

	_, err := accounts.RegisterAdmin(ctx, model.AdminRegisterForm{Username: "root", PIN: "1234", ConfirmPIN: "1234"})
	require.NoError(t, err)

	_, err = accounts.AuthenticateAdmin(ctx, "root", "1234")
	assert.NoError(t, err)

	_, err = accounts.AuthenticateAdmin(ctx, "root", "0000")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = accounts.AuthenticateAdmin(ctx, "other", "5678")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUserRehashesLegacyHash(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	q := store.New(db)
	old := legacyHash("secret")
	require.True(t, auth.NeedsRehash(old))

	created, err := q.CreateUser(ctx, store.CreateUserParams{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: old,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	accounts := NewAccounts(db)

	_, err = accounts.AuthenticateUser(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	stored, err := q.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, old, stored.PasswordHash, "failed login must not touch the hash")

	user, err := accounts.AuthenticateUser(ctx, "alice", "secret")
	require.NoError(t, err)

	stored, err = q.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, old, stored.PasswordHash)
	assert.False(t, auth.NeedsRehash(stored.PasswordHash))
	assert.Equal(t, stored.PasswordHash, user.PasswordHash)

	ok, err := auth.CheckPassword("secret", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// A current hash is left alone.
	_, err = accounts.AuthenticateUser(ctx, "alice", "secret")
	require.NoError(t, err)
	again, err := q.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.PasswordHash, again.PasswordHash)
}

func TestAuthenticateAdminRehashesLegacyHash(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	q := store.New(db)
	old := legacyHash("1234")

	_, err := q.CreateAdmin(ctx, store.CreateAdminParams{Username: "root", PinHash: old, CreatedAt: time.Now()})
	require.NoError(t, err)

	admin, err := NewAccounts(db).AuthenticateAdmin(ctx, "root", "1234")
	require.NoError(t, err)

	stored, err := q.GetAdminByUsername(ctx, "root")
	require.NoError(t, err)
	assert.NotEqual(t, old, stored.PinHash)
	assert.False(t, auth.NeedsRehash(stored.PinHash))
	assert.Equal(t, stored.PinHash, admin.PinHash)

	ok, err := auth.CheckPIN("1234", stored.PinHash)
	require.NoError(t, err)
	assert.True(t, ok)
}
