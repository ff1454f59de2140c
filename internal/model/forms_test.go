// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFormValidate(t *testing.T) {
	tests := []struct {
		name      string
		form      RegisterForm
		wantField string
		wantMsg   string
	}{
		{
			name: "valid",
			form: RegisterForm{Username: "alice", Email: "alice@example.com", Password: "secret", ConfirmPassword: "secret"},
		},
		{
			name:      "missing username",
			form:      RegisterForm{Email: "alice@example.com", Password: "secret", ConfirmPassword: "secret"},
			wantField: "username",
			wantMsg:   MsgFillAllFields,
		},
		{
			name:      "password mismatch",
			form:      RegisterForm{Username: "alice", Email: "alice@example.com", Password: "secret", ConfirmPassword: "other"},
			wantField: "confirm_password",
			wantMsg:   "Passwords do not match",
		},
		{
			name:      "bad email",
			form:      RegisterForm{Username: "alice", Email: "not-an-email", Password: "secret", ConfirmPassword: "secret"},
			wantField: "email",
			wantMsg:   "Invalid email format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if tt.wantField == "" {
				assert.False(t, errs.HasErrors(), "unexpected errors: %v", errs)
				return
			}
			assert.Equal(t, tt.wantMsg, errs[tt.wantField])
		})
	}
}

func TestAdminRegisterFormValidate(t *testing.T) {
	errs := AdminRegisterForm{Username: "root", PIN: "1234", ConfirmPIN: "1234"}.Validate()
	assert.False(t, errs.HasErrors())

	errs = AdminRegisterForm{Username: "root", PIN: "1234", ConfirmPIN: "4321"}.Validate()
	assert.Equal(t, "PINs do not match", errs["confirm_pin"])

	errs = AdminRegisterForm{PIN: "1234", ConfirmPIN: "1234"}.Validate()
	assert.Equal(t, MsgFillAllFields, errs.First())
}

func TestLoginFormsRequireFields(t *testing.T) {
	assert.True(t, LoginForm{Username: "alice"}.Validate().HasErrors())
	assert.False(t, LoginForm{Username: "alice", Password: "x"}.Validate().HasErrors())
	assert.True(t, AdminLoginForm{PIN: "1234"}.Validate().HasErrors())
	assert.False(t, AdminLoginForm{Username: "root", PIN: "1234"}.Validate().HasErrors())
}

func TestContactFormValidate(t *testing.T) {
	valid := ContactForm{Name: "Bob", Email: "bob@example.com", Subject: "Hi", Message: "Hello"}
	assert.False(t, valid.Validate().HasErrors())

	blank := valid
	blank.Message = "   "
	assert.Equal(t, MsgFillAllFields, blank.Validate()["message"])
}

func TestBlogPostFormValidate(t *testing.T) {
	form := BlogPostForm{Title: "Launch", Excerpt: "e", Content: "c", Author: "a"}
	assert.False(t, form.Validate().HasErrors())

	form.PublishDate = "2024-13-40"
	assert.Contains(t, form.Validate(), "publish_date")

	form.Title = ""
	form.PublishDate = ""
	assert.Equal(t, MsgFillAllFields, form.Validate()["title"])
}

func TestBlogPostFormPublishDateOr(t *testing.T) {
	fallback := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, fallback, BlogPostForm{}.PublishDateOr(fallback))
	assert.Equal(t,
		time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		BlogPostForm{PublishDate: "2024-05-06"}.PublishDateOr(fallback))
}

func TestEpisodeFormValidate(t *testing.T) {
	form := EpisodeForm{Title: "Ep", Description: "d", Duration: "45:00", EpisodeNumber: "12"}
	assert.False(t, form.Validate().HasErrors())
	assert.Equal(t, int64(12), form.Number())

	form.EpisodeNumber = "twelve"
	assert.Contains(t, form.Validate(), "episode_number")

	form.EpisodeNumber = "-1"
	assert.Contains(t, form.Validate(), "episode_number")
}

func TestUpcomingFormDateRequiredOnlyOnCreate(t *testing.T) {
	form := UpcomingForm{Title: "Soon", Description: "d"}

	assert.Equal(t, MsgFillAllFields, form.Validate(true)["scheduled_date"])
	assert.False(t, form.Validate(false).HasErrors())

	form.ScheduledDate = "2025-02-30"
	assert.Contains(t, form.Validate(false), "scheduled_date")
}

func TestEventFormDateRequiredOnlyOnCreate(t *testing.T) {
	form := EventForm{Title: "Live", Description: "d", Location: "Berlin"}

	assert.Contains(t, form.Validate(true), "event_date")
	assert.False(t, form.Validate(false).HasErrors())

	stored := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, stored, form.EventDateOr(stored))
}

func TestVideoFormValidate(t *testing.T) {
	assert.True(t, VideoForm{Title: "Intro"}.Validate().HasErrors())
	assert.False(t, VideoForm{Title: "Intro", VideoURL: "https://youtu.be/x"}.Validate().HasErrors())
}

func TestValidationErrorsFirst(t *testing.T) {
	v := ValidationErrors{}
	assert.Equal(t, "", v.First())

	v.Add("b", "second")
	v.Add("a", "first")
	v.Add("a", "ignored")
	assert.Equal(t, "first", v.First())
	assert.Equal(t, "first", v.Error())

	v.Add("z", MsgFillAllFields)
	assert.Equal(t, MsgFillAllFields, v.First())
}
