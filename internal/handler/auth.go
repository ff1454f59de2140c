// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/podcms/internal/logging"
	"github.com/olegiv/podcms/internal/middleware"
	"github.com/olegiv/podcms/internal/model"
	"github.com/olegiv/podcms/internal/render"
	"github.com/olegiv/podcms/internal/service"
	"github.com/olegiv/podcms/internal/session"
)

// AuthHandler handles site user and admin authentication routes. The two
// identities are independent: signing one in or out never touches the other.
type AuthHandler struct {
	accounts       *service.Accounts
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	recorder       *logging.Recorder
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.Accounts, renderer *render.Renderer, sm *scs.SessionManager, recorder *logging.Recorder) *AuthHandler {
	return &AuthHandler{
		accounts:       accounts,
		renderer:       renderer,
		sessionManager: sm,
		recorder:       recorder,
	}
}

// =============================================================================
// SITE USERS
// =============================================================================

// RegisterForm renders the user registration page.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplRegister, render.TemplateData{
		Title: "Register",
		Form:  model.RegisterForm{},
	})
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectRegister) {
		return
	}

	form := registerFormFrom(r)
	data := render.TemplateData{Title: "Register", Form: model.RegisterForm{Username: form.Username, Email: form.Email}}

	if errs := form.Validate(); errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplRegister, data, errs)
		return
	}

	user, err := h.accounts.RegisterUser(r.Context(), form)
	if err != nil {
		errs := model.ValidationErrors{}
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			errs.Add("username", msgUsernameTaken)
		case errors.Is(err, service.ErrEmailTaken):
			errs.Add("email", msgEmailTaken)
		case errors.Is(err, service.ErrPasswordMismatch):
			errs.Add("confirm_password", msgPasswordMismatch)
		default:
			slog.Error("failed to register user", "error", err, "username", form.Username)
			flashError(w, r, h.renderer, redirectRegister, msgRegisterFailed)
			return
		}
		renderFormErrors(w, r, h.renderer, tmplRegister, data, errs)
		return
	}

	h.recorder.Info(r, model.ActivityCategoryUser, "User registered", "user_id", user.ID, "username", user.Username)
	flashSuccess(w, r, h.renderer, redirectLogin, msgRegistered)
}

// LoginForm renders the user login page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, tmplLogin, render.TemplateData{
		Title: "Log in",
		Form:  model.LoginForm{},
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	form := loginFormFrom(r)
	if errs := form.Validate(); errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplLogin,
			render.TemplateData{Title: "Log in", Form: model.LoginForm{Username: form.Username}}, errs)
		return
	}

	user, err := h.accounts.AuthenticateUser(r.Context(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			slog.Error("database error during login", "error", err)
		}
		h.recorder.Warn(r, model.ActivityCategoryAuth, "Login failed", "username", form.Username)
		flashError(w, r, h.renderer, redirectLogin, msgInvalidLogin)
		return
	}

	if err := session.LoginUser(r.Context(), h.sessionManager, user.ID, user.Username); err != nil {
		slog.Error("session renewal error", "error", err)
		flashError(w, r, h.renderer, redirectLogin, msgSessionFailed)
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	flashSuccess(w, r, h.renderer, redirectHome, msgLoggedIn)
}

// Logout handles GET /logout. Only the user flag is cleared.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetSession(r)
	session.LogoutUser(r.Context(), h.sessionManager)

	slog.Info("user logged out", "user_id", state.UserID)
	flashAndRedirect(w, r, h.renderer, redirectHome, msgLoggedOut, session.FlashInfo)
}

// =============================================================================
// ADMIN
// =============================================================================

// adminRegistrationOpen redirects to the admin login with a notice when the
// admin account already exists.
func (h *AuthHandler) adminRegistrationOpen(w http.ResponseWriter, r *http.Request) bool {
	exists, err := h.accounts.AdminExists(r.Context())
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to check admin account", "error", err)
		return false
	}
	if exists {
		flashError(w, r, h.renderer, redirectAdminLogin, msgAdminClosed)
		return false
	}
	return true
}

// AdminRegisterForm renders the admin registration page while it is open.
func (h *AuthHandler) AdminRegisterForm(w http.ResponseWriter, r *http.Request) {
	if !h.adminRegistrationOpen(w, r) {
		return
	}
	renderPage(w, r, h.renderer, tmplAdminRegister, render.TemplateData{
		Title: "Admin registration",
		Form:  model.AdminRegisterForm{},
	})
}

// AdminRegister handles POST /admin/register.
func (h *AuthHandler) AdminRegister(w http.ResponseWriter, r *http.Request) {
	if !h.adminRegistrationOpen(w, r) {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminRegister) {
		return
	}

	form := adminRegisterFormFrom(r)
	data := render.TemplateData{Title: "Admin registration", Form: model.AdminRegisterForm{Username: form.Username}}

	if errs := form.Validate(); errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplAdminRegister, data, errs)
		return
	}

	admin, err := h.accounts.RegisterAdmin(r.Context(), form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminExists):
			h.recorder.Warn(r, model.ActivityCategoryAuth, "Admin registration rejected", "username", form.Username)
			flashError(w, r, h.renderer, redirectAdminLogin, msgAdminClosed)
		case errors.Is(err, service.ErrPasswordMismatch):
			errs := model.ValidationErrors{}
			errs.Add("confirm_pin", msgPINMismatch)
			renderFormErrors(w, r, h.renderer, tmplAdminRegister, data, errs)
		default:
			slog.Error("failed to register admin", "error", err)
			flashError(w, r, h.renderer, redirectAdminRegister, msgRegisterFailed)
		}
		return
	}

	h.recorder.Info(r, model.ActivityCategoryAuth, "Admin account created", "admin_id", admin.ID, "username", admin.Username)
	flashSuccess(w, r, h.renderer, redirectAdminLogin, msgAdminRegistered)
}

// AdminLoginForm renders the admin login page.
func (h *AuthHandler) AdminLoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r).IsAdmin() {
		http.Redirect(w, r, redirectAdminDashboard, http.StatusSeeOther)
		return
	}
	renderPage(w, r, h.renderer, tmplAdminLogin, render.TemplateData{
		Title: "Admin login",
		Form:  model.AdminLoginForm{},
	})
}

// AdminLogin handles POST /admin/login.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminLogin) {
		return
	}

	form := adminLoginFormFrom(r)
	if errs := form.Validate(); errs.HasErrors() {
		renderFormErrors(w, r, h.renderer, tmplAdminLogin,
			render.TemplateData{Title: "Admin login", Form: model.AdminLoginForm{Username: form.Username}}, errs)
		return
	}

	admin, err := h.accounts.AuthenticateAdmin(r.Context(), form.Username, form.PIN)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			slog.Error("database error during admin login", "error", err)
		}
		h.recorder.Warn(r, model.ActivityCategoryAuth, "Admin login failed", "username", form.Username)
		flashError(w, r, h.renderer, redirectAdminLogin, msgInvalidAdmin)
		return
	}

	if err := session.LoginAdmin(r.Context(), h.sessionManager, admin.ID, admin.Username); err != nil {
		slog.Error("session renewal error", "error", err)
		flashError(w, r, h.renderer, redirectAdminLogin, msgSessionFailed)
		return
	}

	h.recorder.Info(r, model.ActivityCategoryAuth, "Admin logged in", "admin_id", admin.ID, "username", admin.Username)
	flashSuccess(w, r, h.renderer, redirectAdminDashboard, msgAdminLoggedIn)
}

// AdminLogout handles GET /admin/logout. Only the admin flag is cleared.
func (h *AuthHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	state := middleware.GetSession(r)
	session.LogoutAdmin(r.Context(), h.sessionManager)

	if state.IsAdmin() {
		h.recorder.Info(r, model.ActivityCategoryAuth, "Admin logged out", "admin_id", state.AdminID)
	}
	flashAndRedirect(w, r, h.renderer, redirectHome, msgAdminLoggedOut, session.FlashInfo)
}
