// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olegiv/podcms/internal/imaging"
	"github.com/olegiv/podcms/internal/model"
)

// templateFuncs returns custom template functions.
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"dateInput": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(model.DateLayout)
		},
		"truncate":  truncate,
		"markdown":  r.renderMarkdown,
		"thumb":     thumbURL,
		"embedURL":  embedURL,
		"fieldError": func(errs model.ValidationErrors, field string) string {
			return errs[field]
		},
	}
}

// renderMarkdown converts markdown to sanitized HTML.
func (r *Renderer) renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		slog.Warn("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}

// thumbURL maps an upload URL to its thumbnail URL. Non-image paths are
// returned unchanged.
func thumbURL(publicPath string) string {
	switch strings.ToLower(path.Ext(publicPath)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return publicPath
	}
	if !strings.HasPrefix(publicPath, "/static/uploads/") {
		return publicPath
	}
	dir, name := path.Split(publicPath)
	return path.Join(dir, imaging.ThumbDir, strings.TrimSuffix(name, path.Ext(name))+".jpg")
}

// embedURL turns a YouTube or Vimeo page link into its embeddable player
// URL. Unknown links are returned as is.
func embedURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube-nocookie.com/embed/" + url.PathEscape(id)
		}
		if strings.HasPrefix(u.Path, "/embed/") {
			return "https://www.youtube-nocookie.com" + u.Path
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube-nocookie.com/embed/" + url.PathEscape(id)
		}
	case "vimeo.com":
		if id := strings.Trim(u.Path, "/"); id != "" && !strings.Contains(id, "/") {
			return "https://player.vimeo.com/video/" + url.PathEscape(id)
		}
	}
	return raw
}
