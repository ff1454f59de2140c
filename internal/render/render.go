// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded HTML templates and renders pages with
// the data every page shares: site profile, session state and flash message.
package render

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/podcms/internal/config"
	"github.com/olegiv/podcms/internal/middleware"
	"github.com/olegiv/podcms/internal/model"
	"github.com/olegiv/podcms/internal/session"
	"github.com/olegiv/podcms/internal/store"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	db             *sql.DB
	site           config.Site
	markdown       goldmark.Markdown
	policy         *bluemonday.Policy
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	// DB supplies the per-request globals. It may be nil in tests.
	DB   *sql.DB
	Site config.Site
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		db:             cfg.DB,
		site:           cfg.Site,
		markdown:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:         bluemonday.UGCPolicy(),
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

// parseTemplates builds one template set per page. Public and auth pages use
// the base layout; admin pages add the admin layout on top of it.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	const baseLayout = "layouts/base.html"
	groups := []struct {
		dir     string
		layouts []string
	}{
		{"pages", []string{baseLayout}},
		{"auth", []string{baseLayout}},
		{"admin", []string{baseLayout, "layouts/admin.html"}},
	}

	for _, g := range groups {
		pages, err := templateFiles(templatesFS, g.dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", g.dir, err)
		}
		for _, page := range pages {
			name := g.dir + "/" + strings.TrimSuffix(path.Base(page), ".html")

			files := append(append(append([]string{}, g.layouts...), partials...), page)
			tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}
	return nil
}

// templateFiles returns the .html files directly inside dir.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// Has reports whether a template called name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title     string
	Data      any
	Form      any
	Errors    model.ValidationErrors
	Flash     string
	FlashType string

	Site            config.Site
	Session         session.State
	AdminRegistered bool
	ActiveVideos    []store.HomepageVideo
	CurrentYear     int
	CurrentPath     string
}

// Render renders a page with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a page with the given status code.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	data.CurrentPath = req.URL.Path
	data.Site = r.site
	data.Session = middleware.GetSession(req)
	r.loadGlobals(req.Context(), &data)

	if r.sessionManager != nil {
		if msg, kind := session.PopFlash(req.Context(), r.sessionManager); msg != "" {
			data.Flash = msg
			data.FlashType = kind
		}
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

// loadGlobals fills the values shown in the shared layout. Failures are
// logged and leave the defaults in place.
func (r *Renderer) loadGlobals(ctx context.Context, data *TemplateData) {
	if r.db == nil {
		return
	}
	q := store.New(r.db)

	n, err := q.CountAdmins(ctx)
	if err != nil {
		slog.Warn("failed to count admins", "error", err)
	}
	data.AdminRegistered = n > 0

	if data.ActiveVideos == nil {
		videos, err := q.ListActiveVideos(ctx)
		if err != nil {
			slog.Warn("failed to load active videos", "error", err)
		}
		data.ActiveVideos = videos
	}
}

// SetFlash sets a flash message in the session.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		session.PutFlash(req.Context(), r.sessionManager, message, flashType)
	}
}
