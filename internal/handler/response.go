// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/podcms/internal/logging"
	"github.com/olegiv/podcms/internal/model"
	"github.com/olegiv/podcms/internal/render"
	"github.com/olegiv/podcms/internal/session"
	"github.com/olegiv/podcms/internal/store"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, session.FlashError)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, session.FlashSuccess)
}

// parseFormOrRedirect parses the request form and redirects with an error message on failure.
// Returns true if parsing succeeded, false if it failed (and redirect was performed).
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, renderer, redirectURL, msgInvalidForm)
		return false
	}
	return true
}

// parseMultipartOrRedirect caps the body at maxSize and parses a multipart
// form. On failure it redirects with an error flash and returns false.
func parseMultipartOrRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, maxSize int64, redirectURL string) bool {
	if maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		slog.Warn("failed to parse upload form", "error", err, "path", r.URL.Path)
		flashError(w, r, renderer, redirectURL, msgUploadTooLarge)
		return false
	}
	return true
}

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// renderPage renders name with status 200 and turns a template failure
// into a 500.
func renderPage(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, name string, data render.TemplateData) {
	renderStatus(w, r, renderer, http.StatusOK, name, data)
}

// renderStatus renders name with the given status.
func renderStatus(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, status int, name string, data render.TemplateData) {
	if err := renderer.RenderStatus(w, r, status, name, data); err != nil {
		logAndInternalError(w, "failed to render template", "error", err, "template", name)
	}
}

// renderFormErrors re-renders a form with 422 and the first error as flash.
func renderFormErrors(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, name string, data render.TemplateData, errs model.ValidationErrors) {
	data.Errors = errs
	if data.Flash == "" {
		data.Flash = errs.First()
		data.FlashType = session.FlashError
	}
	renderStatus(w, r, renderer, http.StatusUnprocessableEntity, name, data)
}

// renderNotFound renders the 404 page. message replaces the default text
// when it is not empty.
func renderNotFound(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, message string) {
	data := render.TemplateData{Title: "Not found"}
	if message != "" {
		data.Data = message
	}
	renderStatus(w, r, renderer, http.StatusNotFound, tmplNotFound, data)
}

// renderServerError renders the generic error page with status 500.
func renderServerError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	renderStatus(w, r, renderer, http.StatusInternalServerError, tmplError, render.TemplateData{Title: "Error"})
}

// parseIDParam returns the positive integer {id} URL parameter.
func parseIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// =============================================================================
// GENERIC ENTITY FETCHING HELPERS
// =============================================================================

// requireEntityWithRedirect fetches an entity by ID using the provided query function.
// On error, it sets a flash message and redirects. Returns the entity and true if successful,
// or zero value and false if an error occurred (redirect already performed).
//
// Example usage:
//
//	post, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminBlog, blogLabels, id,
//	    func(id int64) (store.BlogPost, error) { return h.queries.GetBlogPost(r.Context(), id) })
func requireEntityWithRedirect[T any](
	w http.ResponseWriter,
	r *http.Request,
	renderer *render.Renderer,
	redirectURL string,
	labels entityLabels,
	id int64,
	queryFn func(id int64) (T, error),
) (T, bool) {
	var zero T
	entity, err := queryFn(id)
	if err != nil {
		if store.IsNotFound(err) {
			flashError(w, r, renderer, redirectURL, labels.notFound())
		} else {
			slog.Error("failed to get "+labels.lower, "error", err, "id", id)
			flashError(w, r, renderer, redirectURL, labels.failed("loading"))
		}
		return zero, false
	}
	return entity, true
}

// requireEntityByParam reads the {id} URL parameter and fetches the entity
// with getFn, redirecting to listURL when it cannot.
func requireEntityByParam[T any](
	w http.ResponseWriter,
	r *http.Request,
	renderer *render.Renderer,
	listURL string,
	labels entityLabels,
	getFn func(ctx context.Context, id int64) (T, error),
) (T, bool) {
	id, ok := parseIDParam(r)
	if !ok {
		var zero T
		flashError(w, r, renderer, listURL, labels.notFound())
		return zero, false
	}
	return requireEntityWithRedirect(w, r, renderer, listURL, labels, id,
		func(id int64) (T, error) { return getFn(r.Context(), id) })
}

// requireEntityOrNotFound fetches an entity for a public page and renders
// the 404 page when it does not exist.
func requireEntityOrNotFound[T any](
	w http.ResponseWriter,
	r *http.Request,
	renderer *render.Renderer,
	labels entityLabels,
	queryFn func(id int64) (T, error),
) (T, bool) {
	var zero T
	id, ok := parseIDParam(r)
	if !ok {
		renderNotFound(w, r, renderer, labels.notFound())
		return zero, false
	}
	entity, err := queryFn(id)
	if err != nil {
		if store.IsNotFound(err) {
			renderNotFound(w, r, renderer, labels.notFound())
		} else {
			renderServerError(w, r, renderer, "failed to get "+labels.lower, "error", err, "id", id)
		}
		return zero, false
	}
	return entity, true
}

// entityLabels names a content type in flash messages.
type entityLabels struct {
	// title is the capitalized name, e.g. "Blog post".
	title string
	// lower is the name inside a sentence, e.g. "blog post".
	lower string
	// createdVerb replaces "created" in the success message when set.
	createdVerb string
	// category is the activity log category of writes.
	category string
}

func newEntityLabels(title string) entityLabels {
	return entityLabels{title: title, lower: strings.ToLower(title), category: model.ActivityCategoryContent}
}

func (l entityLabels) created() string {
	verb := l.createdVerb
	if verb == "" {
		verb = "created"
	}
	return fmt.Sprintf("%s %s successfully!", l.title, verb)
}

func (l entityLabels) updated() string {
	return l.title + " updated successfully!"
}

func (l entityLabels) deleted() string {
	return l.title + " deleted successfully!"
}

func (l entityLabels) notFound() string {
	return l.title + " not found"
}

// failed formats the generic persistence failure message for an action
// such as "creating" or "deleting".
func (l entityLabels) failed(action string) string {
	return fmt.Sprintf("There was an error %s the %s. Please try again.", action, l.lower)
}

var (
	blogLabels     = newEntityLabels("Blog post")
	episodeLabels  = newEntityLabels("Episode")
	upcomingLabels = newEntityLabels("Upcoming episode")
	eventLabels    = newEntityLabels("Event")
	videoLabels    = entityLabels{title: "Video", lower: "video", createdVerb: "added", category: model.ActivityCategoryContent}
	messageLabels  = entityLabels{title: "Message", lower: "message", category: model.ActivityCategoryMessage}
)

// deleteEntity handles POST .../delete/{id}: it removes exactly one row and
// redirects to listURL. A missing row leaves storage unchanged and flashes
// the not-found message.
func deleteEntity(
	w http.ResponseWriter,
	r *http.Request,
	renderer *render.Renderer,
	recorder *logging.Recorder,
	listURL string,
	labels entityLabels,
	deleteFn func(ctx context.Context, id int64) error,
) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, renderer, listURL, labels.notFound())
		return
	}

	if err := deleteFn(r.Context(), id); err != nil {
		if store.IsNotFound(err) {
			flashError(w, r, renderer, listURL, labels.notFound())
			return
		}
		slog.Error("failed to delete "+labels.lower, "error", err, "id", id)
		flashError(w, r, renderer, listURL, labels.failed("deleting"))
		return
	}

	recorder.Info(r, labels.category, labels.title+" deleted", "id", id)
	flashSuccess(w, r, renderer, listURL, labels.deleted())
}
