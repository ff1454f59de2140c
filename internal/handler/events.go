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

// EventsHandler handles event management.
type EventsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	uploader *service.Uploader
	recorder *logging.Recorder
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(db *sql.DB, renderer *render.Renderer, uploader *service.Uploader, recorder *logging.Recorder) *EventsHandler {
	return &EventsHandler{
		queries:  store.New(db),
		renderer: renderer,
		uploader: uploader,
		recorder: recorder,
	}
}

var eventImageSlot = []fileSlot{{field: "image", category: service.CategoryEvents, missing: msgImageRequired}}

// List handles GET /admin/events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.queries.ListEvents(r.Context(), listAll)
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list events", "error", err)
		return
	}
	renderPage(w, r, h.renderer, tmplEventsList, render.TemplateData{Title: "Events", Data: events})
}

// NewForm handles GET /admin/events/new.
func (h *EventsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplEventForm, render.TemplateData{
		Title: "New event",
		Form:  model.EventForm{},
	})
}

// Create handles POST /admin/events/new.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	newURL := redirectAdminEvents + RouteSuffixNew
	if !parseMultipartOrRedirect(w, r, h.renderer, h.uploader.MaxSize, newURL) {
		return
	}

	form := eventFormFrom(r)
	data := render.TemplateData{Title: "New event", Form: form}

	errs := form.Validate(true)
	files, err := acceptFiles(r, h.uploader, eventImageSlot, true, errs)
	if err != nil {
		slog.Error("failed to store event image", "error", err)
		flashError(w, r, h.renderer, newURL, eventLabels.failed("creating"))
		return
	}
	if errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplEventForm, data, errs)
		return
	}

	now := time.Now()
	event, err := h.queries.CreateEvent(r.Context(), store.CreateEventParams{
		Title:       form.Title,
		Description: form.Description,
		EventDate:   form.EventDateOr(now),
		Location:    form.Location,
		ImageURL:    files["image"].PublicPath,
		CreatedAt:   now,
	})
	if err != nil {
		removeUploads(files)
		slog.Error("failed to create event", "error", err)
		flashError(w, r, h.renderer, newURL, eventLabels.failed("creating"))
		return
	}

	h.recorder.Info(r, model.ActivityCategoryContent, "Event created", "event_id", event.ID, "title", event.Title)
	flashSuccess(w, r, h.renderer, redirectAdminEvents, eventLabels.created())
}

// EditForm handles GET /admin/events/edit/{id}.
func (h *EventsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	event, ok := h.requireEvent(w, r)
	if !ok {
		return
	}
	renderPage(w, r, h.renderer, tmplEventForm, render.TemplateData{
		Title: "Edit event",
		Data:  event,
		Form: model.EventForm{
			Title:       event.Title,
			Description: event.Description,
			EventDate:   event.EventDate.Format(model.DateLayout),
			Location:    event.Location,
		},
	})
}

// Update handles POST /admin/events/edit/{id}.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	event, ok := h.requireEvent(w, r)
	if !ok {
		return
	}
	editURL := fmt.Sprintf(redirectAdminEventsEditID, event.ID)
	if !parseMultipartOrRedirect(w, r, h.renderer, h.uploader.MaxSize, editURL) {
		return
	}

	form := eventFormFrom(r)
	data := render.TemplateData{Title: "Edit event", Data: event, Form: form}

	errs := form.Validate(false)
	files, err := acceptFiles(r, h.uploader, eventImageSlot, false, errs)
	if err != nil {
		slog.Error("failed to store event image", "error", err, "event_id", event.ID)
		flashError(w, r, h.renderer, editURL, eventLabels.failed("updating"))
		return
	}
	if errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplEventForm, data, errs)
		return
	}

	updated, err := h.queries.UpdateEvent(r.Context(), store.UpdateEventParams{
		ID:          event.ID,
		Title:       form.Title,
		Description: form.Description,
		EventDate:   form.EventDateOr(event.EventDate),
		Location:    form.Location,
		ImageURL:    pathOr(files, "image", event.ImageURL),
	})
	if err != nil {
		removeUploads(files)
		if store.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminEvents, eventLabels.notFound())
			return
		}
		slog.Error("failed to update event", "error", err, "event_id", event.ID)
		flashError(w, r, h.renderer, editURL, eventLabels.failed("updating"))
		return
	}

	h.recorder.Info(r, model.ActivityCategoryContent, "Event updated", "event_id", updated.ID, "title", updated.Title)
	flashSuccess(w, r, h.renderer, redirectAdminEvents, eventLabels.updated())
}

// Delete handles POST /admin/events/delete/{id}.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, h.renderer, h.recorder, redirectAdminEvents, eventLabels, h.queries.DeleteEvent)
}

func (h *EventsHandler) requireEvent(w http.ResponseWriter, r *http.Request) (store.Event, bool) {
	return requireEntityByParam(w, r, h.renderer, redirectAdminEvents, eventLabels, h.queries.GetEvent)
}
