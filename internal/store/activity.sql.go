// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const createActivity = `-- name: CreateActivity :one
INSERT INTO activity_log (level, category, message, ip_address, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, level, category, message, ip_address, metadata, created_at`

type CreateActivityParams struct {
	Level     string
	Category  string
	Message   string
	IPAddress string
	Metadata  string
	CreatedAt time.Time
}

func (q *Queries) CreateActivity(ctx context.Context, arg CreateActivityParams) (ActivityLog, error) {
	row := q.db.QueryRowContext(ctx, createActivity,
		arg.Level, arg.Category, arg.Message, arg.IPAddress, arg.Metadata, arg.CreatedAt.UTC())
	var i ActivityLog
	err := row.Scan(&i.ID, &i.Level, &i.Category, &i.Message, &i.IPAddress, &i.Metadata, &i.CreatedAt)
	return i, err
}

const listRecentActivity = `-- name: ListRecentActivity :many
SELECT id, level, category, message, ip_address, metadata, created_at
FROM activity_log
ORDER BY created_at DESC, id DESC
LIMIT ?`

func (q *Queries) ListRecentActivity(ctx context.Context, limit int64) ([]ActivityLog, error) {
	rows, err := q.db.QueryContext(ctx, listRecentActivity, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []ActivityLog
	for rows.Next() {
		var i ActivityLog
		if err := rows.Scan(&i.ID, &i.Level, &i.Category, &i.Message, &i.IPAddress, &i.Metadata, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteActivityBefore = `-- name: DeleteActivityBefore :execrows
DELETE FROM activity_log WHERE created_at < ?`

// DeleteActivityBefore removes activity rows older than cutoff and returns
// how many were removed.
func (q *Queries) DeleteActivityBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteActivityBefore, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
