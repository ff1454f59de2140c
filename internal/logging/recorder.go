// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/podcms/internal/geoip"
	"github.com/olegiv/podcms/internal/model"
	"github.com/olegiv/podcms/internal/store"
)

// Recorder writes audit entries for requests into activity_log and mirrors
// them to slog.
type Recorder struct {
	queries *store.Queries
	geo     *geoip.Lookup
	now     func() time.Time
}

// NewRecorder creates a Recorder. geo may be nil.
func NewRecorder(db *sql.DB, geo *geoip.Lookup) *Recorder {
	return &Recorder{queries: store.New(db), geo: geo, now: time.Now}
}

// Info records an info-level entry.
func (rec *Recorder) Info(r *http.Request, category, message string, args ...any) {
	rec.Record(r, model.ActivityLevelInfo, category, message, args...)
}

// Warn records a warning-level entry.
func (rec *Recorder) Warn(r *http.Request, category, message string, args ...any) {
	rec.Record(r, model.ActivityLevelWarning, category, message, args...)
}

// Record stores an entry. args are slog-style key/value pairs and end up in
// the metadata together with the client's browser, OS and country.
func (rec *Recorder) Record(r *http.Request, level, category, message string, args ...any) {
	ip := ClientIP(r)
	meta := requestMetadata(r)
	if rec.geo != nil {
		if country := rec.geo.Country(ip); country != "" {
			meta["country"] = country
		}
	}
	for i := 0; i+1 < len(args); i += 2 {
		meta[fmt.Sprint(args[i])] = fmt.Sprint(args[i+1])
	}

	logArgs := append([]any{"category", category, "ip", ip, AuditKey, true}, args...)
	slog.Log(r.Context(), slogLevel(level), message, logArgs...)

	if _, err := rec.queries.CreateActivity(context.WithoutCancel(r.Context()), store.CreateActivityParams{
		Level:     level,
		Category:  category,
		Message:   message,
		IPAddress: ip,
		Metadata:  encodeMetadata(meta),
		CreatedAt: rec.now(),
	}); err != nil {
		slog.Error("failed to record activity", "error", err, AuditKey, true)
	}
}

// ClientIP returns the request's remote address without the port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func requestMetadata(r *http.Request) map[string]string {
	meta := map[string]string{}
	raw := r.UserAgent()
	if raw == "" {
		return meta
	}
	ua := useragent.Parse(raw)
	if ua.Name != "" {
		meta["browser"] = ua.Name
	}
	if ua.OS != "" {
		meta["os"] = ua.OS
	}
	switch {
	case ua.Bot:
		meta["device"] = "bot"
	case ua.Mobile:
		meta["device"] = "mobile"
	case ua.Tablet:
		meta["device"] = "tablet"
	case ua.Desktop:
		meta["device"] = "desktop"
	}
	return meta
}

func slogLevel(level string) slog.Level {
	switch level {
	case model.ActivityLevelError:
		return slog.LevelError
	case model.ActivityLevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
