// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const eventColumns = `id, title, description, event_date, location, image_url, created_at`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var i Event
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.EventDate, &i.Location, &i.ImageURL, &i.CreatedAt)
	return i, err
}

const createEvent = `-- name: CreateEvent :one
INSERT INTO events (title, description, event_date, location, image_url, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + eventColumns

type CreateEventParams struct {
	Title       string
	Description string
	EventDate   time.Time
	Location    string
	ImageURL    string
	CreatedAt   time.Time
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.Title, arg.Description, arg.EventDate.UTC(), arg.Location, arg.ImageURL, arg.CreatedAt.UTC())
	return scanEvent(row)
}

const getEvent = `-- name: GetEvent :one
SELECT ` + eventColumns + ` FROM events WHERE id = ?`

func (q *Queries) GetEvent(ctx context.Context, id int64) (Event, error) {
	i, err := scanEvent(q.db.QueryRowContext(ctx, getEvent, id))
	return i, notFound(err)
}

const listEvents = `-- name: ListEvents :many
SELECT ` + eventColumns + ` FROM events ORDER BY event_date DESC, id DESC LIMIT ?`

// ListEvents returns events by date, latest first. A limit of 0 or less
// returns all of them.
func (q *Queries) ListEvents(ctx context.Context, limit int64) ([]Event, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := q.db.QueryContext(ctx, listEvents, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []Event
	for rows.Next() {
		i, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateEvent = `-- name: UpdateEvent :one
UPDATE events
SET title = ?, description = ?, event_date = ?, location = ?, image_url = ?
WHERE id = ?
RETURNING ` + eventColumns

type UpdateEventParams struct {
	ID          int64
	Title       string
	Description string
	EventDate   time.Time
	Location    string
	ImageURL    string
}

func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, updateEvent,
		arg.Title, arg.Description, arg.EventDate.UTC(), arg.Location, arg.ImageURL, arg.ID)
	i, err := scanEvent(row)
	return i, notFound(err)
}

const deleteEvent = `-- name: DeleteEvent :exec
DELETE FROM events WHERE id = ?`

func (q *Queries) DeleteEvent(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteEvent, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
