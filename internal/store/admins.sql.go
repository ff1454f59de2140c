// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// AdminSingletonID is the only id an admin row may have.
const AdminSingletonID = 1

const createAdmin = `-- name: CreateAdmin :one
INSERT INTO admins (id, username, pin_hash, created_at)
VALUES (1, ?, ?, ?)
RETURNING id, username, pin_hash, created_at`

type CreateAdminParams struct {
	Username  string
	PinHash   string
	CreatedAt time.Time
}

// CreateAdmin inserts the administrator. A second call fails on the
// primary key constraint.
func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) (Admin, error) {
	row := q.db.QueryRowContext(ctx, createAdmin, arg.Username, arg.PinHash, arg.CreatedAt.UTC())
	var i Admin
	err := row.Scan(&i.ID, &i.Username, &i.PinHash, &i.CreatedAt)
	return i, err
}

const getAdminByUsername = `-- name: GetAdminByUsername :one
SELECT id, username, pin_hash, created_at FROM admins WHERE username = ?`

func (q *Queries) GetAdminByUsername(ctx context.Context, username string) (Admin, error) {
	row := q.db.QueryRowContext(ctx, getAdminByUsername, username)
	var i Admin
	err := row.Scan(&i.ID, &i.Username, &i.PinHash, &i.CreatedAt)
	return i, err
}

const countAdmins = `-- name: CountAdmins :one
SELECT COUNT(*) FROM admins`

func (q *Queries) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countAdmins).Scan(&count)
	return count, err
}

const updateAdminPinHash = `-- name: UpdateAdminPinHash :exec
UPDATE admins SET pin_hash = ? WHERE id = ?`

type UpdateAdminPinHashParams struct {
	PinHash string
	ID      int64
}

func (q *Queries) UpdateAdminPinHash(ctx context.Context, arg UpdateAdminPinHashParams) error {
	res, err := q.db.ExecContext(ctx, updateAdminPinHash, arg.PinHash, arg.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
