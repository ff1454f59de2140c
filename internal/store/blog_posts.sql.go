// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const blogPostColumns = `id, title, excerpt, content, image, author, publish_date, is_published, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...any) error }) (BlogPost, error) {
	var i BlogPost
	err := row.Scan(&i.ID, &i.Title, &i.Excerpt, &i.Content, &i.Image, &i.Author,
		&i.PublishDate, &i.IsPublished, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

func (q *Queries) listBlogPosts(ctx context.Context, query string, args ...any) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []BlogPost
	for rows.Next() {
		i, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createBlogPost = `-- name: CreateBlogPost :one
INSERT INTO blog_posts (title, excerpt, content, image, author, publish_date, is_published, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + blogPostColumns

type CreateBlogPostParams struct {
	Title       string
	Excerpt     string
	Content     string
	Image       string
	Author      string
	PublishDate time.Time
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, createBlogPost,
		arg.Title, arg.Excerpt, arg.Content, arg.Image, arg.Author,
		arg.PublishDate.UTC(), arg.IsPublished, arg.CreatedAt.UTC(), arg.UpdatedAt.UTC())
	return scanBlogPost(row)
}

const getBlogPost = `-- name: GetBlogPost :one
SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = ?`

func (q *Queries) GetBlogPost(ctx context.Context, id int64) (BlogPost, error) {
	i, err := scanBlogPost(q.db.QueryRowContext(ctx, getBlogPost, id))
	return i, notFound(err)
}

const listBlogPosts = `-- name: ListBlogPosts :many
SELECT ` + blogPostColumns + ` FROM blog_posts ORDER BY created_at DESC, id DESC`

// ListBlogPosts returns all posts, newest first, for the admin list.
func (q *Queries) ListBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return q.listBlogPosts(ctx, listBlogPosts)
}

const listPublishedBlogPosts = `-- name: ListPublishedBlogPosts :many
SELECT ` + blogPostColumns + ` FROM blog_posts
WHERE is_published = 1
ORDER BY publish_date DESC, id DESC
LIMIT ?`

// ListPublishedBlogPosts returns published posts by publish date, newest
// first. A limit of 0 or less returns all of them.
func (q *Queries) ListPublishedBlogPosts(ctx context.Context, limit int64) ([]BlogPost, error) {
	if limit <= 0 {
		limit = -1
	}
	return q.listBlogPosts(ctx, listPublishedBlogPosts, limit)
}

const updateBlogPost = `-- name: UpdateBlogPost :one
UPDATE blog_posts
SET title = ?, excerpt = ?, content = ?, image = ?, author = ?,
    publish_date = ?, is_published = ?, updated_at = ?
WHERE id = ?
RETURNING ` + blogPostColumns

type UpdateBlogPostParams struct {
	ID          int64
	Title       string
	Excerpt     string
	Content     string
	Image       string
	Author      string
	PublishDate time.Time
	IsPublished bool
	UpdatedAt   time.Time
}

func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, updateBlogPost,
		arg.Title, arg.Excerpt, arg.Content, arg.Image, arg.Author,
		arg.PublishDate.UTC(), arg.IsPublished, arg.UpdatedAt.UTC(), arg.ID)
	i, err := scanBlogPost(row)
	return i, notFound(err)
}

const deleteBlogPost = `-- name: DeleteBlogPost :exec
DELETE FROM blog_posts WHERE id = ?`

func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteBlogPost, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

const countBlogPosts = `-- name: CountBlogPosts :one
SELECT COUNT(*) FROM blog_posts`

func (q *Queries) CountBlogPosts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBlogPosts).Scan(&count)
	return count, err
}
