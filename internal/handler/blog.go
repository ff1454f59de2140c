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

// BlogHandler handles blog post management.
type BlogHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	uploader *service.Uploader
	recorder *logging.Recorder
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(db *sql.DB, renderer *render.Renderer, uploader *service.Uploader, recorder *logging.Recorder) *BlogHandler {
	return &BlogHandler{
		queries:  store.New(db),
		renderer: renderer,
		uploader: uploader,
		recorder: recorder,
	}
}

var blogImageSlot = []fileSlot{{field: "image", category: service.CategoryBlog, missing: msgNoFile}}

// List handles GET /admin/blog.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListBlogPosts(r.Context())
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list blog posts", "error", err)
		return
	}
	renderPage(w, r, h.renderer, tmplBlogList, render.TemplateData{Title: "Blog posts", Data: posts})
}

// NewForm handles GET /admin/blog/new.
func (h *BlogHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplBlogForm, render.TemplateData{
		Title: "New post",
		Form: model.BlogPostForm{
			PublishDate: time.Now().Format(model.DateLayout),
			IsPublished: true,
		},
	})
}

// Create handles POST /admin/blog/new.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseMultipartOrRedirect(w, r, h.renderer, h.uploader.MaxSize, redirectAdminBlogNew) {
		return
	}

	form := blogPostFormFrom(r)
	data := render.TemplateData{Title: "New post", Form: form}

	errs := form.Validate()
	files, err := acceptFiles(r, h.uploader, blogImageSlot, true, errs)
	if err != nil {
		slog.Error("failed to store blog image", "error", err)
		flashError(w, r, h.renderer, redirectAdminBlogNew, blogLabels.failed("creating"))
		return
	}
	if errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplBlogForm, data, errs)
		return
	}

	now := time.Now()
	post, err := h.queries.CreateBlogPost(r.Context(), store.CreateBlogPostParams{
		Title:       form.Title,
		Excerpt:     form.Excerpt,
		Content:     form.Content,
		Image:       files["image"].PublicPath,
		Author:      form.Author,
		PublishDate: form.PublishDateOr(now),
		IsPublished: form.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		removeUploads(files)
		slog.Error("failed to create blog post", "error", err)
		flashError(w, r, h.renderer, redirectAdminBlogNew, blogLabels.failed("creating"))
		return
	}

	h.recorder.Info(r, model.ActivityCategoryContent, "Blog post created", "post_id", post.ID, "title", post.Title)
	flashSuccess(w, r, h.renderer, redirectAdminBlog, blogLabels.created())
}

// EditForm handles GET /admin/blog/edit/{id}.
func (h *BlogHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requirePost(w, r)
	if !ok {
		return
	}
	renderPage(w, r, h.renderer, tmplBlogForm, render.TemplateData{
		Title: "Edit post",
		Data:  post,
		Form: model.BlogPostForm{
			Title:       post.Title,
			Excerpt:     post.Excerpt,
			Content:     post.Content,
			Author:      post.Author,
			PublishDate: post.PublishDate.Format(model.DateLayout),
			IsPublished: post.IsPublished,
		},
	})
}

// Update handles POST /admin/blog/edit/{id}. Without a new image the
// current one is kept.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requirePost(w, r)
	if !ok {
		return
	}
	editURL := fmt.Sprintf(redirectAdminBlogEditID, post.ID)
	if !parseMultipartOrRedirect(w, r, h.renderer, h.uploader.MaxSize, editURL) {
		return
	}

	form := blogPostFormFrom(r)
	data := render.TemplateData{Title: "Edit post", Data: post, Form: form}

	errs := form.Validate()
	files, err := acceptFiles(r, h.uploader, blogImageSlot, false, errs)
	if err != nil {
		slog.Error("failed to store blog image", "error", err, "post_id", post.ID)
		flashError(w, r, h.renderer, editURL, blogLabels.failed("updating"))
		return
	}
	if errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplBlogForm, data, errs)
		return
	}

	updated, err := h.queries.UpdateBlogPost(r.Context(), store.UpdateBlogPostParams{
		ID:          post.ID,
		Title:       form.Title,
		Excerpt:     form.Excerpt,
		Content:     form.Content,
		Image:       pathOr(files, "image", post.Image),
		Author:      form.Author,
		PublishDate: form.PublishDateOr(post.PublishDate),
		IsPublished: form.IsPublished,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		removeUploads(files)
		if store.IsNotFound(err) {
			flashError(w, r, h.renderer, redirectAdminBlog, blogLabels.notFound())
			return
		}
		slog.Error("failed to update blog post", "error", err, "post_id", post.ID)
		flashError(w, r, h.renderer, editURL, blogLabels.failed("updating"))
		return
	}

	h.recorder.Info(r, model.ActivityCategoryContent, "Blog post updated", "post_id", updated.ID, "title", updated.Title)
	flashSuccess(w, r, h.renderer, redirectAdminBlog, blogLabels.updated())
}

// Delete handles POST /admin/blog/delete/{id}. The image file stays on disk.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, h.renderer, h.recorder, redirectAdminBlog, blogLabels, h.queries.DeleteBlogPost)
}

func (h *BlogHandler) requirePost(w http.ResponseWriter, r *http.Request) (store.BlogPost, bool) {
	return requireEntityByParam(w, r, h.renderer, redirectAdminBlog, blogLabels, h.queries.GetBlogPost)
}
