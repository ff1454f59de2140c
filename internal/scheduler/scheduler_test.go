// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/olegiv/podcms/internal/store"
	"github.com/olegiv/podcms/internal/testutil"
)

type countingReloader struct{ calls int }

func (c *countingReloader) Reload() error {
	c.calls++
	return nil
}

func TestScheduler_StartStop(t *testing.T) {
	tests := []struct {
		name      string
		retention int
		geo       Reloader
		wantJobs  int
	}{
		{"no jobs", 0, nil, 0},
		{"retention only", 30, nil, 1},
		{"retention and geoip", 30, &countingReloader{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil, testutil.TestLogger(), tt.retention, tt.geo)
			if err := s.Start(); err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			if got := len(s.cron.Entries()); got != tt.wantJobs {
				t.Errorf("jobs = %d, want %d", got, tt.wantJobs)
			}
			s.Stop()
		})
	}
}

func TestPruneActivity(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	q := store.New(db)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, age := range []time.Duration{1 * time.Hour, 40 * 24 * time.Hour, 100 * 24 * time.Hour} {
		if _, err := q.CreateActivity(ctx, store.CreateActivityParams{
			Level:     "info",
			Category:  "system",
			Message:   "tick",
			Metadata:  "{}",
			CreatedAt: now.Add(-age),
		}); err != nil {
			t.Fatalf("CreateActivity: %v", err)
		}
	}

	s := New(db, testutil.TestLogger(), 30, nil)
	s.now = func() time.Time { return now }

	n, err := s.PruneActivity(ctx)
	if err != nil {
		t.Fatalf("PruneActivity() error = %v", err)
	}
	if n != 2 {
		t.Errorf("PruneActivity() deleted %d, want 2", n)
	}
	if got := testutil.CountRows(t, db, "activity_log"); got != 1 {
		t.Errorf("remaining rows = %d, want 1", got)
	}
}

func TestPruneActivityDisabled(t *testing.T) {
	s := New(nil, testutil.TestLogger(), 0, nil)
	n, err := s.PruneActivity(context.Background())
	if err != nil || n != 0 {
		t.Errorf("PruneActivity() = %d, %v; want 0, nil", n, err)
	}
}
