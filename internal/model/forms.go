// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model holds the typed form inputs accepted by each endpoint and the
// shared constants of the activity log.
package model

import (
	"time"
)

// RegisterForm is the body of POST /register.
type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (f RegisterForm) Validate() ValidationErrors {
	v := ValidationErrors{}
	requireFields(v, map[string]string{
		"username":         f.Username,
		"email":            f.Email,
		"password":         f.Password,
		"confirm_password": f.ConfirmPassword,
	})
	checkEmail(v, "email", f.Email)
	if f.Password != "" && f.ConfirmPassword != "" && f.Password != f.ConfirmPassword {
		v.Add("confirm_password", "Passwords do not match")
	}
	return v
}

// LoginForm is the body of POST /login.
type LoginForm struct {
	Username string
	Password string
}

func (f LoginForm) Validate() ValidationErrors {
	v := ValidationErrors{}
	requireFields(v, map[string]string{"username": f.Username, "password": f.Password})
	return v
}

// AdminRegisterForm is the body of POST /admin/register.
type AdminRegisterForm struct {
	Username   string
	PIN        string
	ConfirmPIN string
}

func (f AdminRegisterForm) Validate() ValidationErrors {
	v := ValidationErrors{}
	requireFields(v, map[string]string{
		"username":    f.Username,
		"pin":         f.PIN,
		"confirm_pin": f.ConfirmPIN,
	})
	if f.PIN != "" && f.ConfirmPIN != "" && f.PIN != f.ConfirmPIN {
		v.Add("confirm_pin", "PINs do not match")
	}
	return v
}

// AdminLoginForm is the body of POST /admin/login.
type AdminLoginForm struct {
	Username string
	PIN      string
}

func (f AdminLoginForm) Validate() ValidationErrors {
	v := ValidationErrors{}
	requireFields(v, map[string]string{"username": f.Username, "pin": f.PIN})
	return v
}

// ContactForm is the body of POST /contact.
type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (f ContactForm) Validate() ValidationErrors {
	v := ValidationErrors{}
	requireFields(v, map[string]string{
		"name":    f.Name,
		"email":   f.Email,
		"subject": f.Subject,
		"message": f.Message,
	})
	checkEmail(v, "email", f.Email)
	return v
}

// BlogPostForm is the text part of the blog post create/edit forms.
// The image travels separately as a multipart file.
type BlogPostForm struct {
	Title       string
	Excerpt     string
	Content     string
	Author      string
	PublishDate string
	IsPublished bool
}

func (f BlogPostForm) Validate() ValidationErrors {
	v := ValidationErrors{}
	requireFields(v, map[string]string{
		"title":   f.Title,
		"excerpt": f.Excerpt,
		"content": f.Content,
		"author":  f.Author,
	})
	checkDate(v, "publish_date", f.PublishDate)
	return v
}

// PublishDateOr returns the submitted publish date or fallback when blank.
func (f BlogPostForm) PublishDateOr(fallback time.Time) time.Time {
	return dateOr(f.PublishDate, fallback)
}

// EpisodeForm is the text part of the podcast episode forms.
type EpisodeForm struct {
	Title         string
	Description   string
	Duration      string
	EpisodeNumber string
	PublishDate   string
	IsPublished   bool
}

func (f EpisodeForm) Validate() ValidationErrors {
	v := ValidationErrors{}
	requireFields(v, map[string]string{
		"title":          f.Title,
		"description":    f.Description,
		"duration":       f.Duration,
		"episode_number": f.EpisodeNumber,
	})
	if f.EpisodeNumber != "" {
		if _, ok := parseNonNegativeInt(f.EpisodeNumber); !ok {
			v.Add("episode_number", "Episode number must be a whole number")
		}
	}
	checkDate(v, "publish_date", f.PublishDate)
	return v
}

// Number returns the parsed episode number. Callers validate first.
func (f EpisodeForm) Number() int64 {
	n, _ := parseNonNegativeInt(f.EpisodeNumber)
	return n
}

// PublishDateOr returns the submitted publish date or fallback when blank.
func (f EpisodeForm) PublishDateOr(fallback time.Time) time.Time {
	return dateOr(f.PublishDate, fallback)
}

// UpcomingForm is the text part of the upcoming episode forms.
type UpcomingForm struct {
	Title         string
	Description   string
	ScheduledDate string
}

// Validate checks the form. The scheduled date is required when creating and
// may be left blank on edit to keep the stored one.
func (f UpcomingForm) Validate(isNew bool) ValidationErrors {
	v := ValidationErrors{}
	required := map[string]string{"title": f.Title, "description": f.Description}
	if isNew {
		required["scheduled_date"] = f.ScheduledDate
	}
	requireFields(v, required)
	checkDate(v, "scheduled_date", f.ScheduledDate)
	return v
}

// ScheduledDateOr returns the submitted date or fallback when blank.
func (f UpcomingForm) ScheduledDateOr(fallback time.Time) time.Time {
	return dateOr(f.ScheduledDate, fallback)
}

// EventForm is the text part of the event forms.
type EventForm struct {
	Title       string
	Description string
	EventDate   string
	Location    string
}

// Validate checks the form. The event date is required when creating and
// may be left blank on edit to keep the stored one.
func (f EventForm) Validate(isNew bool) ValidationErrors {
	v := ValidationErrors{}
	required := map[string]string{
		"title":       f.Title,
		"description": f.Description,
		"location":    f.Location,
	}
	if isNew {
		required["event_date"] = f.EventDate
	}
	requireFields(v, required)
	checkDate(v, "event_date", f.EventDate)
	return v
}

// EventDateOr returns the submitted date or fallback when blank.
func (f EventForm) EventDateOr(fallback time.Time) time.Time {
	return dateOr(f.EventDate, fallback)
}

// VideoForm is the body of the homepage video forms.
type VideoForm struct {
	Title       string
	Description string
	VideoURL    string
	IsActive    bool
}

func (f VideoForm) Validate() ValidationErrors {
	v := ValidationErrors{}
	requireFields(v, map[string]string{"title": f.Title, "video_url": f.VideoURL})
	return v
}
