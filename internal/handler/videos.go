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
	"github.com/olegiv/podcms/internal/store"
	"github.com/olegiv/podcms/internal/util"
)

// VideosHandler handles homepage video management.
type VideosHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	recorder *logging.Recorder
}

// NewVideosHandler creates a new VideosHandler.
func NewVideosHandler(db *sql.DB, renderer *render.Renderer, recorder *logging.Recorder) *VideosHandler {
	return &VideosHandler{
		queries:  store.New(db),
		renderer: renderer,
		recorder: recorder,
	}
}

// List handles GET /admin/videos.
func (h *VideosHandler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.queries.ListVideos(r.Context())
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list videos", "error", err)
		return
	}
	renderPage(w, r, h.renderer, tmplVideosList, render.TemplateData{Title: "Homepage videos", Data: videos})
}

// NewForm handles GET /admin/videos/new.
func (h *VideosHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplVideoForm, render.TemplateData{
		Title: "Add video",
		Form:  model.VideoForm{IsActive: true},
	})
}

// Create handles POST /admin/videos/new.
func (h *VideosHandler) Create(w http.ResponseWriter, r *http.Request) {
	newURL := redirectAdminVideos + RouteSuffixNew
	if !parseFormOrRedirect(w, r, h.renderer, newURL) {
		return
	}

	form := videoFormFrom(r)
	if errs := form.Validate(); errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplVideoForm, render.TemplateData{Title: "Add video", Form: form}, errs)
		return
	}

	video, err := h.queries.CreateVideo(r.Context(), store.CreateVideoParams{
		Title:       form.Title,
		Description: util.NullStringFromValue(form.Description),
		VideoURL:    form.VideoURL,
		IsActive:    form.IsActive,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("failed to create video", "error", err)
		flashError(w, r, h.renderer, newURL, videoLabels.failed("adding"))
		return
	}

	h.recorder.Info(r, model.ActivityCategoryContent, "Video added", "video_id", video.ID, "title", video.Title)
	flashSuccess(w, r, h.renderer, redirectAdminVideos, videoLabels.created())
}

// EditForm handles GET /admin/videos/edit/{id}.
func (h *VideosHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	video, ok := h.requireVideo(w, r)
	if !ok {
		return
	}
	renderPage(w, r, h.renderer, tmplVideoForm, render.TemplateData{
		Title: "Edit video",
		Data:  video,
		Form: model.VideoForm{
			Title:       video.Title,
			Description: video.Description.String,
			VideoURL:    video.VideoURL,
			IsActive:    video.IsActive,
		},
	})
}

// Update handles POST /admin/videos/edit/{id}.
func (h *VideosHandler) Update(w http.ResponseWriter, r *http.Request) {
	video, ok := h.requireVideo(w, r)
	if !ok {
		return
	}
	editURL := fmt.Sprintf(redirectAdminVideosEditID, video.ID)
	if !parseFormOrRedirect(w, r, h.renderer, editURL) {
		return
	}

	form := videoFormFrom(r)
	if errs := form.Validate(); errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplVideoForm,
			render.TemplateData{Title: "Edit video", Data: video, Form: form}, errs)
		return
	}

	updated, err := h.queries.UpdateVideo(r.Context(), store.UpdateVideoParams{
		ID:          video.ID,
		Title:       form.Title,
		Description: util.NullStringFromValue(form.Description),
		VideoURL:    form.VideoURL,
		IsActive:    form.IsActive,
	})
	if err != nil {
		if store.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminVideos, videoLabels.notFound())
			return
		}
		slog.Error("failed to update video", "error", err, "video_id", video.ID)
		flashError(w, r, h.renderer, editURL, videoLabels.failed("updating"))
		return
	}

	h.recorder.Info(r, model.ActivityCategoryContent, "Video updated", "video_id", updated.ID, "title", updated.Title)
	flashSuccess(w, r, h.renderer, redirectAdminVideos, videoLabels.updated())
}

// Delete handles POST /admin/videos/delete/{id}.
func (h *VideosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, h.renderer, h.recorder, redirectAdminVideos, videoLabels, h.queries.DeleteVideo)
}

func (h *VideosHandler) requireVideo(w http.ResponseWriter, r *http.Request) (store.HomepageVideo, bool) {
	return requireEntityByParam(w, r, h.renderer, redirectAdminVideos, videoLabels, h.queries.GetVideo)
}
