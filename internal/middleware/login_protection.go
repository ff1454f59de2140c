// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// LoginProtection throttles login attempts per client IP. It never locks
// an account, so a correct credential always succeeds once the request is
// let through.
type LoginProtection struct {
	ipLimiters *limiterCache[string]
	done       chan struct{}
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	// IPRateLimit is requests per second per IP.
	IPRateLimit float64
	// IPBurst is the maximum burst per IP.
	IPBurst int
}

// DefaultLoginProtectionConfig allows a burst of 5 then one attempt every 2s.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit: 0.5,
		IPBurst:     5,
	}
}

// NewLoginProtection creates a login protection instance and starts its
// cleanup goroutine. Call Stop to end it.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = 0.5
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = 5
	}

	lp := &LoginProtection{
		ipLimiters: newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		done:       make(chan struct{}),
	}
	go lp.cleanup()
	return lp
}

// Allow reports whether another attempt from ip may proceed.
func (lp *LoginProtection) Allow(ip string) bool {
	return lp.ipLimiters.get(ip).Allow()
}

// Stop ends the cleanup goroutine.
func (lp *LoginProtection) Stop() {
	close(lp.done)
}

func (lp *LoginProtection) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if lp.ipLimiters.clearIfExceeds(10000) {
				slog.Info("cleared login rate limiters due to size")
			}
		case <-lp.done:
			return
		}
	}
}

// Middleware rate limits POST requests to the wrapped login route.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			if !lp.Allow(ip) {
				slog.Warn("login rate limit exceeded", "ip", ip, "path", r.URL.Path)
				http.Error(w, "Too many login attempts. Please wait and try again.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
