// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/olegiv/podcms/internal/logging"
	"github.com/olegiv/podcms/internal/render"
	"github.com/olegiv/podcms/internal/store"
)

// MessagesHandler handles the contact message inbox.
type MessagesHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	recorder *logging.Recorder
}

// NewMessagesHandler creates a new MessagesHandler.
func NewMessagesHandler(db *sql.DB, renderer *render.Renderer, recorder *logging.Recorder) *MessagesHandler {
	return &MessagesHandler{
		queries:  store.New(db),
		renderer: renderer,
		recorder: recorder,
	}
}

// List handles GET /admin/messages.
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.queries.ListMessages(r.Context())
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list messages", "error", err)
		return
	}
	renderPage(w, r, h.renderer, tmplMessagesList, render.TemplateData{Title: "Messages", Data: messages})
}

// View handles GET /admin/messages/view/{id} and marks the message read.
func (h *MessagesHandler) View(w http.ResponseWriter, r *http.Request) {
	msg, ok := requireEntityByParam(w, r, h.renderer, redirectAdminMessages, messageLabels, h.queries.GetMessage)
	if !ok {
		return
	}

	if !msg.IsRead {
		if err := h.queries.MarkMessageRead(r.Context(), msg.ID); err != nil {
			slog.Error("failed to mark message read", "error", err, "message_id", msg.ID)
		} else {
			msg.IsRead = true
		}
	}

	renderPage(w, r, h.renderer, tmplMessageView, render.TemplateData{Title: msg.Subject, Data: msg})
}

// ToggleRead handles POST /admin/messages/toggle-read/{id}.
func (h *MessagesHandler) ToggleRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminMessages, messageLabels.notFound())
		return
	}

	msg, err := h.queries.ToggleMessageRead(r.Context(), id)
	if err != nil {
		if store.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminMessages, messageLabels.notFound())
			return
		}
		slog.Error("failed to toggle message read state", "error", err, "message_id", id)
		flashError(w, r, h.renderer, redirectAdminMessages, messageLabels.failed("updating"))
		return
	}

	text := "Message marked as unread"
	if msg.IsRead {
		text = "Message marked as read"
	}
	flashSuccess(w, r, h.renderer, redirectAdminMessages, text)
}

// Delete handles POST /admin/messages/delete/{id}.
func (h *MessagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, h.renderer, h.recorder, redirectAdminMessages, messageLabels, h.queries.DeleteMessage)
}
