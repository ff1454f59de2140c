// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: activity log pruning
// and GeoIP database reloads.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/podcms/internal/store"
)

// Job schedules
const (
	RetentionSchedule   = "15 3 * * *"
	GeoIPReloadSchedule = "30 4 * * 0"
)

// Reloader is implemented by resources that can be refreshed from disk.
type Reloader interface {
	Reload() error
}

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	db        *sql.DB
	cron      *cron.Cron
	logger    *slog.Logger
	retention time.Duration
	geo       Reloader
	now       func() time.Time
}

// New creates a scheduler that keeps retentionDays of activity log.
// A non-positive retention disables pruning. geo may be nil.
func New(db *sql.DB, logger *slog.Logger, retentionDays int, geo Reloader) *Scheduler {
	return &Scheduler{
		db:        db,
		cron:      cron.New(),
		logger:    logger,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		geo:       geo,
		now:       time.Now,
	}
}

// Start registers the jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	if s.retention > 0 {
		if _, err := s.cron.AddFunc(RetentionSchedule, func() {
			if _, err := s.PruneActivity(context.Background()); err != nil {
				s.logger.Error("failed to prune activity log", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	if s.geo != nil {
		if _, err := s.cron.AddFunc(GeoIPReloadSchedule, func() {
			if err := s.geo.Reload(); err != nil {
				s.logger.Warn("failed to reload GeoIP database", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PruneActivity deletes activity rows older than the retention window and
// returns how many were removed.
func (s *Scheduler) PruneActivity(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.retention)
	n, err := store.New(s.db).DeleteActivityBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("pruned activity log", "deleted", n, "before", cutoff.Format(time.RFC3339))
	}
	return n, nil
}
