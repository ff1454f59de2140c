// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/olegiv/podcms/internal/imaging"
	"github.com/olegiv/podcms/internal/model"
	"github.com/olegiv/podcms/internal/service"
)

// formValue returns the trimmed value of a posted field.
func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// formChecked reports whether a checkbox was submitted.
func formChecked(r *http.Request, key string) bool {
	_, ok := r.PostForm[key]
	return ok
}

func registerFormFrom(r *http.Request) model.RegisterForm {
	return model.RegisterForm{
		Username:        formValue(r, "username"),
		Email:           formValue(r, "email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
}

func loginFormFrom(r *http.Request) model.LoginForm {
	return model.LoginForm{
		Username: formValue(r, "username"),
		Password: r.PostFormValue("password"),
	}
}

func adminRegisterFormFrom(r *http.Request) model.AdminRegisterForm {
	return model.AdminRegisterForm{
		Username:   formValue(r, "username"),
		PIN:        r.PostFormValue("pin"),
		ConfirmPIN: r.PostFormValue("confirm_pin"),
	}
}

func adminLoginFormFrom(r *http.Request) model.AdminLoginForm {
	return model.AdminLoginForm{
		Username: formValue(r, "username"),
		PIN:      r.PostFormValue("pin"),
	}
}

func contactFormFrom(r *http.Request) model.ContactForm {
	return model.ContactForm{
		Name:    formValue(r, "name"),
		Email:   formValue(r, "email"),
		Subject: formValue(r, "subject"),
		Message: formValue(r, "message"),
	}
}

func blogPostFormFrom(r *http.Request) model.BlogPostForm {
	return model.BlogPostForm{
		Title:       formValue(r, "title"),
		Excerpt:     formValue(r, "excerpt"),
		Content:     r.PostFormValue("content"),
		Author:      formValue(r, "author"),
		PublishDate: formValue(r, "publish_date"),
		IsPublished: formChecked(r, "is_published"),
	}
}

func episodeFormFrom(r *http.Request) model.EpisodeForm {
	return model.EpisodeForm{
		Title:         formValue(r, "title"),
		Description:   formValue(r, "description"),
		Duration:      formValue(r, "duration"),
		EpisodeNumber: formValue(r, "episode_number"),
		PublishDate:   formValue(r, "publish_date"),
		IsPublished:   formChecked(r, "is_published"),
	}
}

func upcomingFormFrom(r *http.Request) model.UpcomingForm {
	return model.UpcomingForm{
		Title:         formValue(r, "title"),
		Description:   formValue(r, "description"),
		ScheduledDate: formValue(r, "scheduled_date"),
	}
}

func eventFormFrom(r *http.Request) model.EventForm {
	return model.EventForm{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		EventDate:   formValue(r, "event_date"),
		Location:    formValue(r, "location"),
	}
}

func videoFormFrom(r *http.Request) model.VideoForm {
	return model.VideoForm{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		VideoURL:    formValue(r, "video_url"),
		IsActive:    formChecked(r, "is_active"),
	}
}

// =============================================================================
// UPLOAD HELPERS
// =============================================================================

// formFile returns the uploaded file for field. A missing part or an empty
// filename yields nil.
func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 || strings.TrimSpace(files[0].Filename) == "" {
		return nil
	}
	return files[0]
}

// uploadErrorMessage maps an upload validation error to its flash text.
func uploadErrorMessage(err error, allowed map[string]bool) string {
	switch {
	case errors.Is(err, service.ErrNoFile):
		return msgNoFile
	case errors.Is(err, service.ErrFileType):
		return fmt.Sprintf(msgInvalidFileType, allowedList(allowed))
	case errors.Is(err, service.ErrFileTooLarge):
		return msgFileTooLarge
	default:
		return msgInvalidFileName
	}
}

// allowedList renders the allow-list as a sorted, comma separated string.
func allowedList(allowed map[string]bool) string {
	exts := make([]string, 0, len(allowed))
	for ext, ok := range allowed {
		if ok {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

// fileSlot names one upload field of a content form.
type fileSlot struct {
	field    string
	category service.Category
	// missing is the message used when a required file is absent.
	missing string
}

// acceptFiles stores the files posted for slots, keyed by field. On create
// (required) every slot needs a file; on edit absent files are skipped.
// Validation failures land in errs and leave nothing on disk. Any other
// error is returned.
func acceptFiles(r *http.Request, uploader *service.Uploader, slots []fileSlot, required bool, errs model.ValidationErrors) (map[string]service.Upload, error) {
	headers := make(map[string]*multipart.FileHeader, len(slots))
	for _, slot := range slots {
		fh := formFile(r, slot.field)
		switch {
		case fh == nil && required:
			errs.Add(slot.field, slot.missing)
		case fh != nil && !uploader.Allows(fh.Filename):
			errs.Add(slot.field, uploadErrorMessage(service.ErrFileType, uploader.Allowed))
		case fh != nil:
			headers[slot.field] = fh
		}
	}
	if errs.HasErrors() {
		return nil, nil
	}

	stored := make(map[string]service.Upload, len(headers))
	for _, slot := range slots {
		fh, ok := headers[slot.field]
		if !ok {
			continue
		}
		up, err := uploader.Accept(fh, slot.category)
		if err != nil {
			removeUploads(stored)
			if service.IsUploadError(err) {
				errs.Add(slot.field, uploadErrorMessage(err, uploader.Allowed))
				return nil, nil
			}
			return nil, err
		}
		stored[slot.field] = up
	}
	return stored, nil
}

// pathOr returns the public path stored for field, or current when the
// field received no file.
func pathOr(stored map[string]service.Upload, field, current string) string {
	if up, ok := stored[field]; ok {
		return up.PublicPath
	}
	return current
}

// removeUploads deletes files written for a request whose database write
// failed.
func removeUploads(stored map[string]service.Upload) {
	for _, up := range stored {
		for _, p := range []string{up.DiskPath, imaging.ThumbPath(up.DiskPath)} {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				slog.Warn("failed to remove orphaned upload", "file", p, "error", err)
			}
		}
	}
}
