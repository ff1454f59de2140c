// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging connects slog to the activity log table. Warnings and
// errors logged anywhere in the process are copied into activity_log, and
// Recorder writes explicit audit entries for admin actions.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/olegiv/podcms/internal/model"
	"github.com/olegiv/podcms/internal/store"
)

// AuditKey marks records already written by Recorder so the handler does not
// store them twice.
const AuditKey = "audit"

// ActivityLogHandler is a slog.Handler that wraps another handler and also
// writes records at or above its level to activity_log.
type ActivityLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []slog.Attr
}

// NewActivityLogHandler wraps inner and stores WARN and above.
func NewActivityLogHandler(inner slog.Handler, db *sql.DB) *ActivityLogHandler {
	return NewActivityLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewActivityLogHandlerWithLevel wraps inner and stores records at or above level.
func NewActivityLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *ActivityLogHandler {
	return &ActivityLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *ActivityLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ActivityLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level && !h.isAudit(r) {
		h.store(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *ActivityLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ActivityLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
		attrs:   append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

// WithGroup implements slog.Handler.
func (h *ActivityLogHandler) WithGroup(name string) slog.Handler {
	return &ActivityLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
		attrs:   h.attrs,
	}
}

func (h *ActivityLogHandler) isAudit(r slog.Record) bool {
	audit := false
	h.eachAttr(r, func(a slog.Attr) {
		if a.Key == AuditKey {
			audit = true
		}
	})
	return audit
}

func (h *ActivityLogHandler) eachAttr(r slog.Record, fn func(slog.Attr)) {
	for _, a := range h.attrs {
		fn(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		fn(a)
		return true
	})
}

// store writes r with a background context so that a cancelled request
// still leaves its trace.
func (h *ActivityLogHandler) store(r slog.Record) {
	category := ""
	meta := map[string]string{}
	h.eachAttr(r, func(a slog.Attr) {
		if a.Key == "category" {
			category = a.Value.String()
			return
		}
		meta[a.Key] = a.Value.String()
	})
	if category == "" {
		category = inferCategory(r.Message)
	}

	_, _ = h.queries.CreateActivity(context.Background(), store.CreateActivityParams{
		Level:     activityLevel(r.Level),
		Category:  category,
		Message:   r.Message,
		Metadata:  encodeMetadata(meta),
		CreatedAt: r.Time,
	})
}

func activityLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.ActivityLevelError
	case level >= slog.LevelWarn:
		return model.ActivityLevelWarning
	default:
		return model.ActivityLevelInfo
	}
}

func inferCategory(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") ||
		strings.Contains(msg, "auth") || strings.Contains(msg, "admin registration"):
		return model.ActivityCategoryAuth
	case strings.Contains(msg, "upload") || strings.Contains(msg, "thumbnail"):
		return model.ActivityCategoryUpload
	case strings.Contains(msg, "message"):
		return model.ActivityCategoryMessage
	case strings.Contains(msg, "blog") || strings.Contains(msg, "episode") ||
		strings.Contains(msg, "event") || strings.Contains(msg, "video"):
		return model.ActivityCategoryContent
	case strings.Contains(msg, "user"):
		return model.ActivityCategoryUser
	default:
		return model.ActivityCategorySystem
	}
}

func encodeMetadata[V any](meta map[string]V) string {
	if len(meta) == 0 {
		return "{}"
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(b)
}
