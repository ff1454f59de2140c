// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/podcms/internal/logging"
	"github.com/olegiv/podcms/internal/model"
	"github.com/olegiv/podcms/internal/render"
	"github.com/olegiv/podcms/internal/service"
	"github.com/olegiv/podcms/internal/store"
)

// UpcomingHandler handles upcoming episode management. Upcoming episodes are
// listed on the admin episodes page.
type UpcomingHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	uploader *service.Uploader
	recorder *logging.Recorder
}

// NewUpcomingHandler creates a new UpcomingHandler.
func NewUpcomingHandler(db *sql.DB, renderer *render.Renderer, uploader *service.Uploader, recorder *logging.Recorder) *UpcomingHandler {
	return &UpcomingHandler{
		queries:  store.New(db),
		renderer: renderer,
		uploader: uploader,
		recorder: recorder,
	}
}

var upcomingImageSlot = []fileSlot{{field: "image", category: service.CategoryUpcoming, missing: msgImageRequired}}

// List handles GET /admin/upcoming.
func (h *UpcomingHandler) List(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, redirectAdminEpisodes, http.StatusSeeOther)
}

// NewForm handles GET /admin/upcoming/new.
func (h *UpcomingHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplUpcomingForm, render.TemplateData{
		Title: "New upcoming episode",
		Form:  model.UpcomingForm{},
	})
}

// Create handles POST /admin/upcoming/new.
func (h *UpcomingHandler) Create(w http.ResponseWriter, r *http.Request) {
	newURL := RouteAdmin + RouteUpcoming + RouteSuffixNew
	if !parseMultipartOrRedirect(w, r, h.renderer, h.uploader.MaxSize, newURL) {
		return
	}

	form := upcomingFormFrom(r)
	data := render.TemplateData{Title: "New upcoming episode", Form: form}

	errs := form.Validate(true)
	files, err := acceptFiles(r, h.uploader, upcomingImageSlot, true, errs)
	if err != nil {
		slog.Error("failed to store upcoming episode image", "error", err)
		flashError(w, r, h.renderer, newURL, upcomingLabels.failed("creating"))
		return
	}
	if errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplUpcomingForm, data, errs)
		return
	}

	now := time.Now()
	upcoming, err := h.queries.CreateUpcoming(r.Context(), store.CreateUpcomingParams{
		Title:         form.Title,
		Description:   form.Description,
		ScheduledDate: form.ScheduledDateOr(now),
		ImageURL:      files["image"].PublicPath,
		CreatedAt:     now,
	})
	if err != nil {
		removeUploads(files)
		slog.Error("failed to create upcoming episode", "error", err)
		flashError(w, r, h.renderer, newURL, upcomingLabels.failed("creating"))
		return
	}

	h.recorder.Info(r, model.ActivityCategoryContent, "Upcoming episode created", "upcoming_id", upcoming.ID, "title", upcoming.Title)
	flashSuccess(w, r, h.renderer, redirectAdminEpisodes, upcomingLabels.created())
}

// EditForm handles GET /admin/upcoming/edit/{id}.
func (h *UpcomingHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	upcoming, ok := h.requireUpcoming(w, r)
	if !ok {
		return
	}
	renderPage(w, r, h.renderer, tmplUpcomingForm, render.TemplateData{
		Title: "Edit upcoming episode",
		Data:  upcoming,
		Form: model.UpcomingForm{
			Title:         upcoming.Title,
			Description:   upcoming.Description,
			ScheduledDate: upcoming.ScheduledDate.Format(model.DateLayout),
		},
	})
}

// Update handles POST /admin/upcoming/edit/{id}. A blank date keeps the
// scheduled date and a missing file keeps the image.
func (h *UpcomingHandler) Update(w http.ResponseWriter, r *http.Request) {
	upcoming, ok := h.requireUpcoming(w, r)
	if !ok {
		return
	}
	editURL := fmt.Sprintf(redirectAdminUpcomingEditID, upcoming.ID)
	if !parseMultipartOrRedirect(w, r, h.renderer, h.uploader.MaxSize, editURL) {
		return
	}

	form := upcomingFormFrom(r)
	data := render.TemplateData{Title: "Edit upcoming episode", Data: upcoming, Form: form}

	errs := form.Validate(false)
	files, err := acceptFiles(r, h.uploader, upcomingImageSlot, false, errs)
	if err != nil {
		slog.Error("failed to store upcoming episode image", "error", err, "upcoming_id", upcoming.ID)
		flashError(w, r, h.renderer, editURL, upcomingLabels.failed("updating"))
		return
	}
	if errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplUpcomingForm, data, errs)
		return
	}

	updated, err := h.queries.UpdateUpcoming(r.Context(), store.UpdateUpcomingParams{
		ID:            upcoming.ID,
		Title:         form.Title,
		Description:   form.Description,
		ScheduledDate: form.ScheduledDateOr(upcoming.ScheduledDate),
		ImageURL:      pathOr(files, "image", upcoming.ImageURL),
	})
	if err != nil {
		removeUploads(files)
		if store.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminEpisodes, upcomingLabels.notFound())
			return
		}
		slog.Error("failed to update upcoming episode", "error", err, "upcoming_id", upcoming.ID)
		flashError(w, r, h.renderer, editURL, upcomingLabels.failed("updating"))
		return
	}

	h.recorder.Info(r, model.ActivityCategoryContent, "Upcoming episode updated", "upcoming_id", updated.ID, "title", updated.Title)
	flashSuccess(w, r, h.renderer, redirectAdminEpisodes, upcomingLabels.updated())
}

// Delete handles POST /admin/upcoming/delete/{id}.
func (h *UpcomingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, h.renderer, h.recorder, redirectAdminEpisodes, upcomingLabels, h.queries.DeleteUpcoming)
}

func (h *UpcomingHandler) requireUpcoming(w http.ResponseWriter, r *http.Request) (store.UpcomingEpisode, bool) {
	return requireEntityByParam(w, r, h.renderer, redirectAdminEpisodes, upcomingLabels, h.queries.GetUpcoming)
}
