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

// EpisodesHandler handles podcast episode management.
type EpisodesHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	uploader *service.Uploader
	recorder *logging.Recorder
}

// NewEpisodesHandler creates a new EpisodesHandler.
func NewEpisodesHandler(db *sql.DB, renderer *render.Renderer, uploader *service.Uploader, recorder *logging.Recorder) *EpisodesHandler {
	return &EpisodesHandler{
		queries:  store.New(db),
		renderer: renderer,
		uploader: uploader,
		recorder: recorder,
	}
}

// episodeSlots are the two files of an episode. Both are required on create.
var episodeSlots = []fileSlot{
	{field: "image", category: service.CategoryEpisodeImage, missing: msgBothFilesRequired},
	{field: "audio", category: service.CategoryEpisodeAudio, missing: msgBothFilesRequired},
}

// EpisodesListData is shown on the admin episodes page.
type EpisodesListData struct {
	Episodes []store.PodcastEpisode
	Upcoming []store.UpcomingEpisode
}

// List handles GET /admin/episodes. Upcoming episodes are listed on the
// same page.
func (h *EpisodesHandler) List(w http.ResponseWriter, r *http.Request) {
	episodes, err := h.queries.ListEpisodes(r.Context())
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list episodes", "error", err)
		return
	}
	upcoming, err := h.queries.ListUpcoming(r.Context())
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list upcoming episodes", "error", err)
		return
	}
	renderPage(w, r, h.renderer, tmplEpisodesList, render.TemplateData{
		Title: "Episodes",
		Data:  EpisodesListData{Episodes: episodes, Upcoming: upcoming},
	})
}

// NewForm handles GET /admin/episodes/new.
func (h *EpisodesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplEpisodeForm, render.TemplateData{
		Title: "New episode",
		Form: model.EpisodeForm{
			PublishDate: time.Now().Format(model.DateLayout),
			IsPublished: true,
		},
	})
}

// Create handles POST /admin/episodes/new.
func (h *EpisodesHandler) Create(w http.ResponseWriter, r *http.Request) {
	newURL := redirectAdminEpisodes + RouteSuffixNew
	if !parseMultipartOrRedirect(w, r, h.renderer, h.uploader.MaxSize, newURL) {
		return
	}

	form := episodeFormFrom(r)
	data := render.TemplateData{Title: "New episode", Form: form}

	errs := form.Validate()
	files, err := acceptFiles(r, h.uploader, episodeSlots, true, errs)
	if err != nil {
		slog.Error("failed to store episode files", "error", err)
		flashError(w, r, h.renderer, newURL, episodeLabels.failed("creating"))
		return
	}
	if errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplEpisodeForm, data, errs)
		return
	}

	now := time.Now()
	episode, err := h.queries.CreateEpisode(r.Context(), store.CreateEpisodeParams{
		Title:         form.Title,
		Description:   form.Description,
		Duration:      form.Duration,
		EpisodeNumber: form.Number(),
		ImageURL:      files["image"].PublicPath,
		AudioURL:      files["audio"].PublicPath,
		PublishDate:   form.PublishDateOr(now),
		IsPublished:   form.IsPublished,
		CreatedAt:     now,
	})
	if err != nil {
		removeUploads(files)
		slog.Error("failed to create episode", "error", err)
		flashError(w, r, h.renderer, newURL, episodeLabels.failed("creating"))
		return
	}

	h.recorder.Info(r, model.ActivityCategoryContent, "Episode created",
		"episode_id", episode.ID, "episode_number", episode.EpisodeNumber, "title", episode.Title)
	flashSuccess(w, r, h.renderer, redirectAdminEpisodes, episodeLabels.created())
}

// EditForm handles GET /admin/episodes/edit/{id}.
func (h *EpisodesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	episode, ok := h.requireEpisode(w, r)
	if !ok {
		return
	}
	renderPage(w, r, h.renderer, tmplEpisodeForm, render.TemplateData{
		Title: "Edit episode",
		Data:  episode,
		Form: model.EpisodeForm{
			Title:         episode.Title,
			Description:   episode.Description,
			Duration:      episode.Duration,
			EpisodeNumber: fmt.Sprint(episode.EpisodeNumber),
			PublishDate:   episode.PublishDate.Format(model.DateLayout),
			IsPublished:   episode.IsPublished,
		},
	})
}

// Update handles POST /admin/episodes/edit/{id}. Each file is replaced only
// when a new one is posted.
func (h *EpisodesHandler) Update(w http.ResponseWriter, r *http.Request) {
	episode, ok := h.requireEpisode(w, r)
	if !ok {
		return
	}
	editURL := fmt.Sprintf(redirectAdminEpisodesEditID, episode.ID)
	if !parseMultipartOrRedirect(w, r, h.renderer, h.uploader.MaxSize, editURL) {
		return
	}

	form := episodeFormFrom(r)
	data := render.TemplateData{Title: "Edit episode", Data: episode, Form: form}

	errs := form.Validate()
	files, err := acceptFiles(r, h.uploader, episodeSlots, false, errs)
	if err != nil {
		slog.Error("failed to store episode files", "error", err, "episode_id", episode.ID)
		flashError(w, r, h.renderer, editURL, episodeLabels.failed("updating"))
		return
	}
	if errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplEpisodeForm, data, errs)
		return
	}

	updated, err := h.queries.UpdateEpisode(r.Context(), store.UpdateEpisodeParams{
		ID:            episode.ID,
		Title:         form.Title,
		Description:   form.Description,
		Duration:      form.Duration,
		EpisodeNumber: form.Number(),
		ImageURL:      pathOr(files, "image", episode.ImageURL),
		AudioURL:      pathOr(files, "audio", episode.AudioURL),
		PublishDate:   form.PublishDateOr(episode.PublishDate),
		IsPublished:   form.IsPublished,
	})
	if err != nil {
		removeUploads(files)
		if store.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminEpisodes, episodeLabels.notFound())
			return
		}
		slog.Error("failed to update episode", "error", err, "episode_id", episode.ID)
		flashError(w, r, h.renderer, editURL, episodeLabels.failed("updating"))
		return
	}

	h.recorder.Info(r, model.ActivityCategoryContent, "Episode updated", "episode_id", updated.ID, "title", updated.Title)
	flashSuccess(w, r, h.renderer, redirectAdminEpisodes, episodeLabels.updated())
}

// Delete handles POST /admin/episodes/delete/{id}.
func (h *EpisodesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, h.renderer, h.recorder, redirectAdminEpisodes, episodeLabels, h.queries.DeleteEpisode)
}

func (h *EpisodesHandler) requireEpisode(w http.ResponseWriter, r *http.Request) (store.PodcastEpisode, bool) {
	return requireEntityByParam(w, r, h.renderer, redirectAdminEpisodes, episodeLabels, h.queries.GetEpisode)
}
