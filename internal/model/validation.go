// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"net/mail"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of every date form field.
const DateLayout = "2006-01-02"

// MsgFillAllFields is reported when any required field is blank.
const MsgFillAllFields = "Please fill in all fields"

// ValidationErrors maps a form field name to a user-facing message.
type ValidationErrors map[string]string

// Add records msg for field unless the field already has an error.
func (v ValidationErrors) Add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

// HasErrors reports whether any field failed validation.
func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// First returns one message suitable for a flash, preferring the
// "fill in all fields" message, otherwise the first field alphabetically.
func (v ValidationErrors) First() string {
	if len(v) == 0 {
		return ""
	}
	fields := make([]string, 0, len(v))
	for f, msg := range v {
		if msg == MsgFillAllFields {
			return msg
		}
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return v[fields[0]]
}

// Error implements error so validation results can travel through error returns.
func (v ValidationErrors) Error() string {
	return v.First()
}

// requireFields adds MsgFillAllFields for each blank value.
func requireFields(v ValidationErrors, fields map[string]string) {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			v.Add(name, MsgFillAllFields)
		}
	}
}

// ParseDate parses a YYYY-MM-DD form value as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// checkDate records an error for a non-empty value that is not a valid date.
func checkDate(v ValidationErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := ParseDate(value); err != nil {
		v.Add(field, "Dates must use the YYYY-MM-DD format")
	}
}

// dateOr returns the parsed date, or fallback when value is blank.
// Callers validate the value first.
func dateOr(value string, fallback time.Time) time.Time {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	t, err := ParseDate(value)
	if err != nil {
		return fallback
	}
	return t
}

func checkEmail(v ValidationErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.Add(field, "Invalid email format")
	}
}

func parseNonNegativeInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
