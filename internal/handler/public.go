// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/podcms/internal/logging"
	"github.com/olegiv/podcms/internal/middleware"
	"github.com/olegiv/podcms/internal/model"
	"github.com/olegiv/podcms/internal/render"
	"github.com/olegiv/podcms/internal/store"
	"github.com/olegiv/podcms/internal/util"
)

// PublicHandler serves the visitor facing pages.
type PublicHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	recorder *logging.Recorder
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(db *sql.DB, renderer *render.Renderer, recorder *logging.Recorder) *PublicHandler {
	return &PublicHandler{
		queries:  store.New(db),
		renderer: renderer,
		recorder: recorder,
	}
}

// HomeData is the content shown on the homepage.
type HomeData struct {
	Episodes []store.PodcastEpisode
	Upcoming []store.UpcomingEpisode
	Posts    []store.BlogPost
	Events   []store.Event
}

// Home handles GET /.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	episodes, err := h.queries.ListPublishedEpisodes(ctx)
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list episodes", "error", err)
		return
	}
	upcoming, err := h.queries.ListUpcoming(ctx)
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list upcoming episodes", "error", err)
		return
	}
	posts, err := h.queries.ListPublishedBlogPosts(ctx, homePostsLimit)
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list blog posts", "error", err)
		return
	}
	events, err := h.queries.ListEvents(ctx, homeEventsLimit)
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list events", "error", err)
		return
	}

	renderPage(w, r, h.renderer, tmplHome, render.TemplateData{
		Title: "Home",
		Data: HomeData{
			Episodes: episodes,
			Upcoming: upcoming,
			Posts:    posts,
			Events:   events,
		},
	})
}

// Host handles GET /host.
func (h *PublicHandler) Host(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplHost, render.TemplateData{Title: "Hosts"})
}

// Blog handles GET /blog.
func (h *PublicHandler) Blog(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPublishedBlogPosts(r.Context(), listAll)
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list blog posts", "error", err)
		return
	}
	renderPage(w, r, h.renderer, tmplBlog, render.TemplateData{Title: "Blog", Data: posts})
}

// BlogPost handles GET /blog/{id}. Drafts are only visible to the admin.
func (h *PublicHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityOrNotFound(w, r, h.renderer, blogLabels,
		func(id int64) (store.BlogPost, error) { return h.queries.GetBlogPost(r.Context(), id) })
	if !ok {
		return
	}
	if !post.IsPublished && !middleware.GetSession(r).IsAdmin() {
		renderNotFound(w, r, h.renderer, blogLabels.notFound())
		return
	}
	renderPage(w, r, h.renderer, tmplBlogPost, render.TemplateData{Title: post.Title, Data: post})
}

// Events handles GET /events.
func (h *PublicHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.queries.ListEvents(r.Context(), listAll)
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list events", "error", err)
		return
	}
	renderPage(w, r, h.renderer, tmplEvents, render.TemplateData{Title: "Events", Data: events})
}

// Episode handles GET /episode/{id}. Unpublished episodes are only visible
// to the admin.
func (h *PublicHandler) Episode(w http.ResponseWriter, r *http.Request) {
	episode, ok := requireEntityOrNotFound(w, r, h.renderer, episodeLabels,
		func(id int64) (store.PodcastEpisode, error) { return h.queries.GetEpisode(r.Context(), id) })
	if !ok {
		return
	}
	if !episode.IsPublished && !middleware.GetSession(r).IsAdmin() {
		renderNotFound(w, r, h.renderer, episodeLabels.notFound())
		return
	}
	renderPage(w, r, h.renderer, tmplEpisode, render.TemplateData{Title: episode.Title, Data: episode})
}

// ContactForm handles GET /contact. Signed-in users get their name and
// email filled in.
func (h *PublicHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	form := model.ContactForm{}
	if state := middleware.GetSession(r); state.IsUser() {
		form.Name = state.Username
		if user, err := h.queries.GetUserByID(r.Context(), state.UserID); err == nil {
			form.Email = user.Email
		}
	}
	renderPage(w, r, h.renderer, tmplContact, render.TemplateData{Title: "Contact", Form: form})
}

// Contact handles POST /contact.
func (h *PublicHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectContact) {
		return
	}

	form := contactFormFrom(r)
	if errs := form.Validate(); errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplContact, render.TemplateData{Title: "Contact", Form: form}, errs)
		return
	}

	var userID int64
	if state := middleware.GetSession(r); state.IsUser() {
		userID = state.UserID
	}

	msg, err := h.queries.CreateMessage(r.Context(), store.CreateMessageParams{
		UserID:    util.NullInt64FromValue(userID),
		Name:      form.Name,
		Email:     form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to save contact message", "error", err)
		flashError(w, r, h.renderer, redirectContact, msgContactFailed)
		return
	}

	h.recorder.Info(r, model.ActivityCategoryMessage, "Contact message received",
		"message_id", msg.ID, "subject", msg.Subject)
	flashSuccess(w, r, h.renderer, redirectContact, msgContactSent)
}

// NotFound renders the 404 page for unknown routes.
func (h *PublicHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r, h.renderer, "")
}
