// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Activity log levels
const (
	ActivityLevelInfo    = "info"
	ActivityLevelWarning = "warning"
	ActivityLevelError   = "error"
)

// Activity log categories
const (
	ActivityCategoryAuth    = "auth"
	ActivityCategoryContent = "content"
	ActivityCategoryMessage = "message"
	ActivityCategoryUser    = "user"
	ActivityCategoryUpload  = "upload"
	ActivityCategorySystem  = "system"
)
