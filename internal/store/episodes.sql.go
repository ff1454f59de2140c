// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const episodeColumns = `id, title, description, duration, episode_number, image_url, audio_url, publish_date, is_published, created_at`

func scanEpisode(row interface{ Scan(...any) error }) (PodcastEpisode, error) {
	var i PodcastEpisode
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.Duration, &i.EpisodeNumber,
		&i.ImageURL, &i.AudioURL, &i.PublishDate, &i.IsPublished, &i.CreatedAt)
	return i, err
}

func (q *Queries) listEpisodes(ctx context.Context, query string, args ...any) ([]PodcastEpisode, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []PodcastEpisode
	for rows.Next() {
		i, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createEpisode = `-- name: CreateEpisode :one
INSERT INTO podcast_episodes (title, description, duration, episode_number, image_url, audio_url, publish_date, is_published, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + episodeColumns

type CreateEpisodeParams struct {
	Title         string
	Description   string
	Duration      string
	EpisodeNumber int64
	ImageURL      string
	AudioURL      string
	PublishDate   time.Time
	IsPublished   bool
	CreatedAt     time.Time
}

func (q *Queries) CreateEpisode(ctx context.Context, arg CreateEpisodeParams) (PodcastEpisode, error) {
	row := q.db.QueryRowContext(ctx, createEpisode,
		arg.Title, arg.Description, arg.Duration, arg.EpisodeNumber, arg.ImageURL, arg.AudioURL,
		arg.PublishDate.UTC(), arg.IsPublished, arg.CreatedAt.UTC())
	return scanEpisode(row)
}

const getEpisode = `-- name: GetEpisode :one
SELECT ` + episodeColumns + ` FROM podcast_episodes WHERE id = ?`

func (q *Queries) GetEpisode(ctx context.Context, id int64) (PodcastEpisode, error) {
	i, err := scanEpisode(q.db.QueryRowContext(ctx, getEpisode, id))
	return i, notFound(err)
}

const listEpisodes = `-- name: ListEpisodes :many
SELECT ` + episodeColumns + ` FROM podcast_episodes ORDER BY episode_number DESC, id DESC`

// ListEpisodes returns every episode by episode number, highest first.
func (q *Queries) ListEpisodes(ctx context.Context) ([]PodcastEpisode, error) {
	return q.listEpisodes(ctx, listEpisodes)
}

const listPublishedEpisodes = `-- name: ListPublishedEpisodes :many
SELECT ` + episodeColumns + ` FROM podcast_episodes
WHERE is_published = 1
ORDER BY publish_date DESC, id DESC`

func (q *Queries) ListPublishedEpisodes(ctx context.Context) ([]PodcastEpisode, error) {
	return q.listEpisodes(ctx, listPublishedEpisodes)
}

const updateEpisode = `-- name: UpdateEpisode :one
UPDATE podcast_episodes
SET title = ?, description = ?, duration = ?, episode_number = ?, image_url = ?, audio_url = ?,
    publish_date = ?, is_published = ?
WHERE id = ?
RETURNING ` + episodeColumns

type UpdateEpisodeParams struct {
	ID            int64
	Title         string
	Description   string
	Duration      string
	EpisodeNumber int64
	ImageURL      string
	AudioURL      string
	PublishDate   time.Time
	IsPublished   bool
}

func (q *Queries) UpdateEpisode(ctx context.Context, arg UpdateEpisodeParams) (PodcastEpisode, error) {
	row := q.db.QueryRowContext(ctx, updateEpisode,
		arg.Title, arg.Description, arg.Duration, arg.EpisodeNumber, arg.ImageURL, arg.AudioURL,
		arg.PublishDate.UTC(), arg.IsPublished, arg.ID)
	i, err := scanEpisode(row)
	return i, notFound(err)
}

const deleteEpisode = `-- name: DeleteEpisode :exec
DELETE FROM podcast_episodes WHERE id = ?`

func (q *Queries) DeleteEpisode(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteEpisode, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

const countEpisodes = `-- name: CountEpisodes :one
SELECT COUNT(*) FROM podcast_episodes`

func (q *Queries) CountEpisodes(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countEpisodes).Scan(&count)
	return count, err
}
