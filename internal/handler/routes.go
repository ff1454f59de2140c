// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/podcms/internal/logging"
	"github.com/olegiv/podcms/internal/middleware"
	"github.com/olegiv/podcms/internal/render"
	"github.com/olegiv/podcms/internal/service"
)

// Form submissions allowed per client IP on the public POST forms.
const (
	formRateRequests = 10
	formRateWindow   = time.Minute
)

// Deps holds everything the handlers need.
type Deps struct {
	DB             *sql.DB
	Renderer       *render.Renderer
	SessionManager *scs.SessionManager
	Uploader       *service.Uploader
	Recorder       *logging.Recorder
	Accounts       *service.Accounts

	// LoginProtection throttles the login endpoints when set.
	LoginProtection *middleware.LoginProtection
}

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerCRUD registers the admin routes for a resource.
// Routes: GET base, GET|POST base/new, GET|POST base/edit/{id}, POST base/delete/{id}
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	r.Get(base, h.List)
	r.Get(base+RouteSuffixNew, h.NewForm)
	r.Post(base+RouteSuffixNew, h.Create)
	r.Get(base+RouteSuffixEditID, h.EditForm)
	r.Post(base+RouteSuffixEditID, h.Update)
	r.Post(base+RouteSuffixDeleteID, h.Delete)
}

// RegisterRoutes mounts the site, auth, admin and health routes on r.
// Static files are mounted by the caller.
func RegisterRoutes(r chi.Router, d Deps) {
	sm := d.SessionManager

	publicHandler := NewPublicHandler(d.DB, d.Renderer, d.Recorder)
	authHandler := NewAuthHandler(d.Accounts, d.Renderer, sm, d.Recorder)
	dashboardHandler := NewDashboardHandler(d.DB, d.Renderer)
	blogHandler := NewBlogHandler(d.DB, d.Renderer, d.Uploader, d.Recorder)
	episodesHandler := NewEpisodesHandler(d.DB, d.Renderer, d.Uploader, d.Recorder)
	upcomingHandler := NewUpcomingHandler(d.DB, d.Renderer, d.Uploader, d.Recorder)
	eventsHandler := NewEventsHandler(d.DB, d.Renderer, d.Uploader, d.Recorder)
	videosHandler := NewVideosHandler(d.DB, d.Renderer, d.Recorder)
	messagesHandler := NewMessagesHandler(d.DB, d.Renderer, d.Recorder)
	healthHandler := NewHealthHandler(d.DB, sm, d.Uploader.Root)

	// Health checks answer without touching the session store.
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	loginGuard := func(next http.Handler) http.Handler { return next }
	if d.LoginProtection != nil {
		loginGuard = d.LoginProtection.Middleware()
	}
	formLimit := middleware.FormRateLimit(formRateRequests, formRateWindow)

	r.Group(func(r chi.Router) {
		r.Use(sm.LoadAndSave)
		r.Use(middleware.LoadSession(sm))

		r.NotFound(publicHandler.NotFound)

		// Public site
		r.Get(RouteRoot, publicHandler.Home)
		r.Get(RouteHost, publicHandler.Host)
		r.Get(RouteBlog, publicHandler.Blog)
		r.Get(RouteBlog+RouteParamID, publicHandler.BlogPost)
		r.Get(RouteEvents, publicHandler.Events)
		r.Get(RouteEpisode+RouteParamID, publicHandler.Episode)
		r.Get(RouteContact, publicHandler.ContactForm)
		r.With(formLimit).Post(RouteContact, publicHandler.Contact)

		// User accounts
		r.Get(RouteRegister, authHandler.RegisterForm)
		r.With(formLimit).Post(RouteRegister, authHandler.Register)
		r.Get(RouteLogin, authHandler.LoginForm)
		r.With(loginGuard).Post(RouteLogin, authHandler.Login)
		r.Get(RouteLogout, authHandler.Logout)

		r.Route(RouteAdmin, func(r chi.Router) {
			r.Use(middleware.NoStore)

			// Admin account
			r.Get(RouteRegister, authHandler.AdminRegisterForm)
			r.Post(RouteRegister, authHandler.AdminRegister)
			r.Get(RouteLogin, authHandler.AdminLoginForm)
			r.With(loginGuard).Post(RouteLogin, authHandler.AdminLogin)
			r.Get(RouteLogout, authHandler.AdminLogout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(sm))

				r.Get(RouteRoot, dashboardHandler.Dashboard)
				r.Get(RouteDashboard, dashboardHandler.Dashboard)

				registerCRUD(r, RouteBlog, crudHandlers{
					List: blogHandler.List, NewForm: blogHandler.NewForm, Create: blogHandler.Create,
					EditForm: blogHandler.EditForm, Update: blogHandler.Update, Delete: blogHandler.Delete,
				})
				registerCRUD(r, RouteEpisodes, crudHandlers{
					List: episodesHandler.List, NewForm: episodesHandler.NewForm, Create: episodesHandler.Create,
					EditForm: episodesHandler.EditForm, Update: episodesHandler.Update, Delete: episodesHandler.Delete,
				})
				registerCRUD(r, RouteUpcoming, crudHandlers{
					List: upcomingHandler.List, NewForm: upcomingHandler.NewForm, Create: upcomingHandler.Create,
					EditForm: upcomingHandler.EditForm, Update: upcomingHandler.Update, Delete: upcomingHandler.Delete,
				})
				registerCRUD(r, RouteEvents, crudHandlers{
					List: eventsHandler.List, NewForm: eventsHandler.NewForm, Create: eventsHandler.Create,
					EditForm: eventsHandler.EditForm, Update: eventsHandler.Update, Delete: eventsHandler.Delete,
				})
				registerCRUD(r, RouteVideos, crudHandlers{
					List: videosHandler.List, NewForm: videosHandler.NewForm, Create: videosHandler.Create,
					EditForm: videosHandler.EditForm, Update: videosHandler.Update, Delete: videosHandler.Delete,
				})

				r.Get(RouteMessages, messagesHandler.List)
				r.Get(RouteMessageView, messagesHandler.View)
				r.Post(RouteMessageToggle, messagesHandler.ToggleRead)
				r.Post(RouteMessages+RouteSuffixDeleteID, messagesHandler.Delete)
			})
		})
	})
}
