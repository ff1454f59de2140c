// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const videoColumns = `id, title, description, video_url, is_active, created_at`

func scanVideo(row interface{ Scan(...any) error }) (HomepageVideo, error) {
	var i HomepageVideo
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.VideoURL, &i.IsActive, &i.CreatedAt)
	return i, err
}

func (q *Queries) listVideos(ctx context.Context, query string) ([]HomepageVideo, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []HomepageVideo
	for rows.Next() {
		i, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createVideo = `-- name: CreateVideo :one
INSERT INTO homepage_videos (title, description, video_url, is_active, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + videoColumns

type CreateVideoParams struct {
	Title       string
	Description sql.NullString
	VideoURL    string
	IsActive    bool
	CreatedAt   time.Time
}

func (q *Queries) CreateVideo(ctx context.Context, arg CreateVideoParams) (HomepageVideo, error) {
	row := q.db.QueryRowContext(ctx, createVideo,
		arg.Title, arg.Description, arg.VideoURL, arg.IsActive, arg.CreatedAt.UTC())
	return scanVideo(row)
}

const getVideo = `-- name: GetVideo :one
SELECT ` + videoColumns + ` FROM homepage_videos WHERE id = ?`

func (q *Queries) GetVideo(ctx context.Context, id int64) (HomepageVideo, error) {
	i, err := scanVideo(q.db.QueryRowContext(ctx, getVideo, id))
	return i, notFound(err)
}

const listVideos = `-- name: ListVideos :many
SELECT ` + videoColumns + ` FROM homepage_videos ORDER BY created_at DESC, id DESC`

func (q *Queries) ListVideos(ctx context.Context) ([]HomepageVideo, error) {
	return q.listVideos(ctx, listVideos)
}

const listActiveVideos = `-- name: ListActiveVideos :many
SELECT ` + videoColumns + ` FROM homepage_videos WHERE is_active = 1 ORDER BY created_at DESC, id DESC`

// ListActiveVideos returns only the videos visitors may see.
func (q *Queries) ListActiveVideos(ctx context.Context) ([]HomepageVideo, error) {
	return q.listVideos(ctx, listActiveVideos)
}

const updateVideo = `-- name: UpdateVideo :one
UPDATE homepage_videos
SET title = ?, description = ?, video_url = ?, is_active = ?
WHERE id = ?
RETURNING ` + videoColumns

type UpdateVideoParams struct {
	ID          int64
	Title       string
	Description sql.NullString
	VideoURL    string
	IsActive    bool
}

func (q *Queries) UpdateVideo(ctx context.Context, arg UpdateVideoParams) (HomepageVideo, error) {
	row := q.db.QueryRowContext(ctx, updateVideo,
		arg.Title, arg.Description, arg.VideoURL, arg.IsActive, arg.ID)
	i, err := scanVideo(row)
	return i, notFound(err)
}

const deleteVideo = `-- name: DeleteVideo :exec
DELETE FROM homepage_videos WHERE id = ?`

func (q *Queries) DeleteVideo(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteVideo, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
