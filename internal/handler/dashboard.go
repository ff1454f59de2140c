// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/olegiv/podcms/internal/render"
	"github.com/olegiv/podcms/internal/store"
)

// DashboardHandler handles the admin dashboard.
type DashboardHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *sql.DB, renderer *render.Renderer) *DashboardHandler {
	return &DashboardHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// DashboardStats holds the counts and recent rows shown on the dashboard.
type DashboardStats struct {
	Users    int64
	Messages int64
	Unread   int64
	Posts    int64
	Episodes int64
	Recent   []store.ContactMessage
	Activity []store.ActivityLog
}

// Dashboard renders the admin dashboard.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.loadStats(r.Context())
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to load dashboard", "error", err)
		return
	}
	renderPage(w, r, h.renderer, tmplDashboard, render.TemplateData{Title: "Dashboard", Data: stats})
}

func (h *DashboardHandler) loadStats(ctx context.Context) (DashboardStats, error) {
	var (
		stats DashboardStats
		err   error
	)

	counts := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&stats.Users, h.queries.CountUsers},
		{&stats.Messages, h.queries.CountMessages},
		{&stats.Unread, h.queries.CountUnreadMessages},
		{&stats.Posts, h.queries.CountBlogPosts},
		{&stats.Episodes, h.queries.CountEpisodes},
	}
	for _, c := range counts {
		if *c.dst, err = c.fn(ctx); err != nil {
			return stats, err
		}
	}

	if stats.Recent, err = h.queries.ListRecentMessages(ctx, dashboardRecentMsgs); err != nil {
		return stats, err
	}
	if stats.Activity, err = h.queries.ListRecentActivity(ctx, dashboardActivity); err != nil {
		return stats, err
	}
	return stats, nil
}
