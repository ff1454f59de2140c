// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const messageColumns = `id, user_id, name, email, subject, message, is_read, created_at`

func scanMessage(row interface{ Scan(...any) error }) (ContactMessage, error) {
	var i ContactMessage
	err := row.Scan(&i.ID, &i.UserID, &i.Name, &i.Email, &i.Subject, &i.Message, &i.IsRead, &i.CreatedAt)
	return i, err
}

func (q *Queries) listMessages(ctx context.Context, query string, args ...any) ([]ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []ContactMessage
	for rows.Next() {
		i, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createMessage = `-- name: CreateMessage :one
INSERT INTO contact_messages (user_id, name, email, subject, message, is_read, created_at)
VALUES (?, ?, ?, ?, ?, 0, ?)
RETURNING ` + messageColumns

type CreateMessageParams struct {
	UserID    sql.NullInt64
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, createMessage,
		arg.UserID, arg.Name, arg.Email, arg.Subject, arg.Message, arg.CreatedAt.UTC())
	return scanMessage(row)
}

const getMessage = `-- name: GetMessage :one
SELECT ` + messageColumns + ` FROM contact_messages WHERE id = ?`

func (q *Queries) GetMessage(ctx context.Context, id int64) (ContactMessage, error) {
	i, err := scanMessage(q.db.QueryRowContext(ctx, getMessage, id))
	return i, notFound(err)
}

const listMessages = `-- name: ListMessages :many
SELECT ` + messageColumns + ` FROM contact_messages ORDER BY created_at DESC, id DESC`

func (q *Queries) ListMessages(ctx context.Context) ([]ContactMessage, error) {
	return q.listMessages(ctx, listMessages)
}

const listRecentMessages = `-- name: ListRecentMessages :many
SELECT ` + messageColumns + ` FROM contact_messages ORDER BY created_at DESC, id DESC LIMIT ?`

func (q *Queries) ListRecentMessages(ctx context.Context, limit int64) ([]ContactMessage, error) {
	return q.listMessages(ctx, listRecentMessages, limit)
}

const markMessageRead = `-- name: MarkMessageRead :exec
UPDATE contact_messages SET is_read = 1 WHERE id = ?`

func (q *Queries) MarkMessageRead(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, markMessageRead, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

const toggleMessageRead = `-- name: ToggleMessageRead :one
UPDATE contact_messages SET is_read = NOT is_read WHERE id = ?
RETURNING ` + messageColumns

// ToggleMessageRead flips the read flag and returns the updated message.
func (q *Queries) ToggleMessageRead(ctx context.Context, id int64) (ContactMessage, error) {
	i, err := scanMessage(q.db.QueryRowContext(ctx, toggleMessageRead, id))
	return i, notFound(err)
}

const deleteMessage = `-- name: DeleteMessage :exec
DELETE FROM contact_messages WHERE id = ?`

func (q *Queries) DeleteMessage(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteMessage, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

const countMessages = `-- name: CountMessages :one
SELECT COUNT(*) FROM contact_messages`

func (q *Queries) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countMessages).Scan(&count)
	return count, err
}

const countUnreadMessages = `-- name: CountUnreadMessages :one
SELECT COUNT(*) FROM contact_messages WHERE is_read = 0`

func (q *Queries) CountUnreadMessages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countUnreadMessages).Scan(&count)
	return count, err
}
