// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEditID is the suffix for edit routes.
	RouteSuffixEditID = "/edit/{id}"
	// RouteSuffixDeleteID is the suffix for delete routes.
	RouteSuffixDeleteID = "/delete/{id}"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"

	RouteHost     = "/host"
	RouteBlog     = "/blog"
	RouteEvents   = "/events"
	RouteEpisode  = "/episode"
	RouteContact  = "/contact"
	RouteRegister = "/register"
	RouteLogin    = "/login"
	RouteLogout   = "/logout"

	RouteAdmin     = "/admin"
	RouteDashboard = "/dashboard"
	RouteEpisodes  = "/episodes"
	RouteUpcoming  = "/upcoming"
	RouteVideos    = "/videos"
	RouteMessages  = "/messages"

	// RouteMessageView is the message view route pattern.
	RouteMessageView = RouteMessages + "/view/{id}"
	// RouteMessageToggle is the message read toggle route pattern.
	RouteMessageToggle = RouteMessages + "/toggle-read/{id}"
)

const (
	redirectHome           = RouteRoot
	redirectLogin          = RouteLogin
	redirectRegister       = RouteRegister
	redirectContact        = RouteContact
	redirectAdminLogin     = RouteAdmin + RouteLogin
	redirectAdminRegister  = RouteAdmin + RouteRegister
	redirectAdminDashboard = RouteAdmin + RouteDashboard
	redirectAdminBlog      = RouteAdmin + RouteBlog
	redirectAdminBlogNew   = redirectAdminBlog + RouteSuffixNew
	redirectAdminEpisodes  = RouteAdmin + RouteEpisodes
	redirectAdminEvents    = RouteAdmin + RouteEvents
	redirectAdminVideos    = RouteAdmin + RouteVideos
	redirectAdminMessages  = RouteAdmin + RouteMessages

	redirectAdminBlogEditID     = redirectAdminBlog + "/edit/%d"
	redirectAdminEpisodesEditID = redirectAdminEpisodes + "/edit/%d"
	redirectAdminUpcomingEditID = RouteAdmin + RouteUpcoming + "/edit/%d"
	redirectAdminEventsEditID   = redirectAdminEvents + "/edit/%d"
	redirectAdminVideosEditID   = redirectAdminVideos + "/edit/%d"
)

// Template names.
const (
	tmplHome          = "pages/home"
	tmplHost          = "pages/host"
	tmplBlog          = "pages/blog"
	tmplBlogPost      = "pages/blog_post"
	tmplEvents        = "pages/events"
	tmplEpisode       = "pages/episode"
	tmplContact       = "pages/contact"
	tmplNotFound      = "pages/not_found"
	tmplError         = "pages/error"
	tmplRegister      = "auth/register"
	tmplLogin         = "auth/login"
	tmplAdminRegister = "auth/admin_register"
	tmplAdminLogin    = "auth/admin_login"
	tmplDashboard     = "admin/dashboard"
	tmplBlogList      = "admin/blog_list"
	tmplBlogForm      = "admin/blog_form"
	tmplEpisodesList  = "admin/episodes_list"
	tmplEpisodeForm   = "admin/episode_form"
	tmplUpcomingForm  = "admin/upcoming_form"
	tmplEventsList    = "admin/events_list"
	tmplEventForm     = "admin/event_form"
	tmplVideosList    = "admin/videos_list"
	tmplVideoForm     = "admin/video_form"
	tmplMessagesList  = "admin/messages_list"
	tmplMessageView   = "admin/message_view"
)

// Flash messages shown to visitors and the admin.
const (
	msgInvalidForm    = "Invalid form data"
	msgUploadTooLarge = "The upload is too large or could not be read."

	msgContactSent   = "Your message has been sent successfully!"
	msgContactFailed = "There was an error sending your message. Please try again."

	msgRegistered       = "Registration successful! Please log in."
	msgRegisterFailed   = "There was an error creating your account. Please try again."
	msgUsernameTaken    = "Username already exists"
	msgEmailTaken       = "Email already registered"
	msgLoggedIn         = "Login successful!"
	msgInvalidLogin     = "Invalid username or password"
	msgLoggedOut        = "You have been logged out"
	msgAdminClosed      = "Admin registration is closed. Only one admin account can exist."
	msgAdminRegistered  = "Admin registration successful! Please log in."
	msgAdminLoggedIn    = "Admin login successful!"
	msgInvalidAdmin     = "Invalid username or PIN"
	msgAdminLoggedOut   = "Admin logout successful"
	msgSessionFailed    = "There was an error signing you in. Please try again."
	msgPasswordMismatch = "Passwords do not match"
	msgPINMismatch      = "PINs do not match"

	msgNoFile            = "No file selected"
	msgInvalidFileType   = "Invalid file type. Allowed types: %s"
	msgInvalidFileName   = "Invalid file name"
	msgFileTooLarge      = "File is too large"
	msgBothFilesRequired = "Both image and audio files are required"
	msgImageRequired     = "Image file is required"
)

// Default list sizes.
const (
	homePostsLimit      = 3
	homeEventsLimit     = 3
	dashboardRecentMsgs = 5
	dashboardActivity   = 20

	// listAll asks a limited list query for every row.
	listAll = 0
)

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"
