// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/olegiv/podcms/internal/auth"
)

// Demo mode credentials
const (
	DemoAdminUsername = "demo"
	DemoAdminPIN      = "1234"
)

// DemoPlaceholderImage is the image path used by seeded content.
const DemoPlaceholderImage = "/static/img/placeholder.svg"

// SeedOptions controls demo content generation.
type SeedOptions struct {
	Posts    int
	Episodes int
	Upcoming int
	Events   int
	Videos   int
	Messages int
	// Seed makes gofakeit output deterministic when non-zero.
	Seed int64
}

// DefaultSeedOptions returns a small, browsable data set.
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{
		Posts:    6,
		Episodes: 8,
		Upcoming: 3,
		Events:   4,
		Videos:   2,
		Messages: 5,
	}
}

// SeedDemo fills an empty database with fake content for showcasing the site.
// It does nothing when any blog post or episode already exists.
func SeedDemo(ctx context.Context, db *sql.DB, opts SeedOptions) error {
	queries := New(db)

	posts, err := queries.CountBlogPosts(ctx)
	if err != nil {
		return fmt.Errorf("counting blog posts: %w", err)
	}
	episodes, err := queries.CountEpisodes(ctx)
	if err != nil {
		return fmt.Errorf("counting episodes: %w", err)
	}
	if posts > 0 || episodes > 0 {
		slog.Info("content already exists, skipping demo seed")
		return nil
	}

	if opts.Seed != 0 {
		gofakeit.Seed(opts.Seed)
	} else {
		gofakeit.Seed(time.Now().UnixNano())
	}

	slog.Info("seeding demo content")

	if err := seedDemoAdmin(ctx, queries); err != nil {
		return fmt.Errorf("seeding demo admin: %w", err)
	}

	return ExecTx(ctx, db, func(q *Queries) error {
		if err := seedDemoPosts(ctx, q, opts.Posts); err != nil {
			return fmt.Errorf("seeding demo posts: %w", err)
		}
		if err := seedDemoEpisodes(ctx, q, opts.Episodes, opts.Upcoming); err != nil {
			return fmt.Errorf("seeding demo episodes: %w", err)
		}
		if err := seedDemoEvents(ctx, q, opts.Events); err != nil {
			return fmt.Errorf("seeding demo events: %w", err)
		}
		if err := seedDemoVideos(ctx, q, opts.Videos); err != nil {
			return fmt.Errorf("seeding demo videos: %w", err)
		}
		if err := seedDemoMessages(ctx, q, opts.Messages); err != nil {
			return fmt.Errorf("seeding demo messages: %w", err)
		}
		slog.Info("demo content seeded successfully")
		return nil
	})
}

func seedDemoAdmin(ctx context.Context, queries *Queries) error {
	count, err := queries.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("admin already exists, skipping demo admin")
		return nil
	}

	pinHash, err := auth.HashPIN(DemoAdminPIN)
	if err != nil {
		return fmt.Errorf("hashing demo PIN: %w", err)
	}

	if _, err := queries.CreateAdmin(ctx, CreateAdminParams{
		Username:  DemoAdminUsername,
		PinHash:   pinHash,
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}

	slog.Info("created demo admin", "username", DemoAdminUsername, "pin", DemoAdminPIN)
	return nil
}

func seedDemoPosts(ctx context.Context, q *Queries, n int) error {
	now := time.Now()
	for i := 0; i < n; i++ {
		published := pastDate(now, 120)
		_, err := q.CreateBlogPost(ctx, CreateBlogPostParams{
			Title:       gofakeit.Sentence(5),
			Excerpt:     gofakeit.Sentence(18),
			Content:     gofakeit.Paragraph(3, 4, 12, "\n\n"),
			Image:       DemoPlaceholderImage,
			Author:      gofakeit.Name(),
			PublishDate: published,
			IsPublished: i%5 != 4,
			CreatedAt:   published,
			UpdatedAt:   published,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func seedDemoEpisodes(ctx context.Context, q *Queries, n, upcoming int) error {
	now := time.Now()
	for i := 1; i <= n; i++ {
		published := now.AddDate(0, 0, -7*(n-i))
		_, err := q.CreateEpisode(ctx, CreateEpisodeParams{
			Title:         gofakeit.HipsterSentence(4),
			Description:   gofakeit.Paragraph(1, 3, 14, " "),
			Duration:      fmt.Sprintf("%d:%02d", gofakeit.Number(20, 75), gofakeit.Number(0, 59)),
			EpisodeNumber: int64(i),
			ImageURL:      DemoPlaceholderImage,
			AudioURL:      gofakeit.URL() + "/episode.mp3",
			PublishDate:   published,
			IsPublished:   true,
			CreatedAt:     published,
		})
		if err != nil {
			return err
		}
	}

	for i := 1; i <= upcoming; i++ {
		_, err := q.CreateUpcoming(ctx, CreateUpcomingParams{
			Title:         gofakeit.HipsterSentence(4),
			Description:   gofakeit.Sentence(20),
			ScheduledDate: now.AddDate(0, 0, 7*i),
			ImageURL:      DemoPlaceholderImage,
			CreatedAt:     now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func seedDemoEvents(ctx context.Context, q *Queries, n int) error {
	now := time.Now()
	for i := 0; i < n; i++ {
		_, err := q.CreateEvent(ctx, CreateEventParams{
			Title:       gofakeit.BuzzWord() + " " + gofakeit.Noun() + " live",
			Description: gofakeit.Sentence(24),
			EventDate:   gofakeit.DateRange(now.AddDate(0, -3, 0), now.AddDate(0, 3, 0)),
			Location:    gofakeit.City() + ", " + gofakeit.StateAbr(),
			ImageURL:    DemoPlaceholderImage,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func seedDemoVideos(ctx context.Context, q *Queries, n int) error {
	youtubeIDs := []string{"dQw4w9WgXcQ", "9bZkp7q19f0", "3JZ_D3ELwOQ", "L_jWHffIx5E"}
	now := time.Now()
	for i := 0; i < n; i++ {
		_, err := q.CreateVideo(ctx, CreateVideoParams{
			Title:       gofakeit.Sentence(4),
			Description: sql.NullString{String: gofakeit.Sentence(12), Valid: true},
			VideoURL:    "https://www.youtube.com/embed/" + youtubeIDs[i%len(youtubeIDs)],
			IsActive:    true,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func seedDemoMessages(ctx context.Context, q *Queries, n int) error {
	now := time.Now()
	for i := 0; i < n; i++ {
		_, err := q.CreateMessage(ctx, CreateMessageParams{
			Name:      gofakeit.Name(),
			Email:     gofakeit.Email(),
			Subject:   gofakeit.Question(),
			Message:   gofakeit.Paragraph(1, 3, 10, " "),
			CreatedAt: pastDate(now, 30),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// pastDate returns a random time within the last maxDays days.
func pastDate(now time.Time, maxDays int) time.Time {
	return gofakeit.DateRange(now.AddDate(0, 0, -maxDays), now)
}
