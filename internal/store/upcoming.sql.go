// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const upcomingColumns = `id, title, description, scheduled_date, image_url, created_at`

func scanUpcoming(row interface{ Scan(...any) error }) (UpcomingEpisode, error) {
	var i UpcomingEpisode
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.ScheduledDate, &i.ImageURL, &i.CreatedAt)
	return i, err
}

const createUpcoming = `-- name: CreateUpcoming :one
INSERT INTO upcoming_episodes (title, description, scheduled_date, image_url, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + upcomingColumns

type CreateUpcomingParams struct {
	Title         string
	Description   string
	ScheduledDate time.Time
	ImageURL      string
	CreatedAt     time.Time
}

func (q *Queries) CreateUpcoming(ctx context.Context, arg CreateUpcomingParams) (UpcomingEpisode, error) {
	row := q.db.QueryRowContext(ctx, createUpcoming,
		arg.Title, arg.Description, arg.ScheduledDate.UTC(), arg.ImageURL, arg.CreatedAt.UTC())
	return scanUpcoming(row)
}

const getUpcoming = `-- name: GetUpcoming :one
SELECT ` + upcomingColumns + ` FROM upcoming_episodes WHERE id = ?`

func (q *Queries) GetUpcoming(ctx context.Context, id int64) (UpcomingEpisode, error) {
	i, err := scanUpcoming(q.db.QueryRowContext(ctx, getUpcoming, id))
	return i, notFound(err)
}

const listUpcoming = `-- name: ListUpcoming :many
SELECT ` + upcomingColumns + ` FROM upcoming_episodes ORDER BY scheduled_date ASC, id ASC`

// ListUpcoming returns upcoming episodes, soonest first.
func (q *Queries) ListUpcoming(ctx context.Context) ([]UpcomingEpisode, error) {
	rows, err := q.db.QueryContext(ctx, listUpcoming)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []UpcomingEpisode
	for rows.Next() {
		i, err := scanUpcoming(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateUpcoming = `-- name: UpdateUpcoming :one
UPDATE upcoming_episodes
SET title = ?, description = ?, scheduled_date = ?, image_url = ?
WHERE id = ?
RETURNING ` + upcomingColumns

type UpdateUpcomingParams struct {
	ID            int64
	Title         string
	Description   string
	ScheduledDate time.Time
	ImageURL      string
}

func (q *Queries) UpdateUpcoming(ctx context.Context, arg UpdateUpcomingParams) (UpcomingEpisode, error) {
	row := q.db.QueryRowContext(ctx, updateUpcoming,
		arg.Title, arg.Description, arg.ScheduledDate.UTC(), arg.ImageURL, arg.ID)
	i, err := scanUpcoming(row)
	return i, notFound(err)
}

const deleteUpcoming = `-- name: DeleteUpcoming :exec
DELETE FROM upcoming_episodes WHERE id = ?`

func (q *Queries) DeleteUpcoming(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteUpcoming, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
