// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides filename, path and null-value helpers shared by the
// upload and persistence code.
package util

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// unsafeFilenameChars matches everything outside the portable filename set.
var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// windowsDeviceNames cannot be used as file names on Windows.
var windowsDeviceNames = map[string]bool{
	"CON": true, "AUX": true, "COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "PRN": true, "NUL": true,
}

// SecureFilename returns an ASCII-only version of name that is safe to use as
// a single path component. Directory parts are flattened into the name, so
// "../../etc/passwd" becomes "etc_passwd". The result may be empty, which
// callers must treat as an invalid name.
func SecureFilename(name string) string {
	// Decompose accents and drop the combining marks, then transliterate
	// whatever is left outside ASCII.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, name)
	if err != nil {
		result = name
	}
	result = unidecode.Unidecode(result)

	for _, sep := range []string{"/", "\\"} {
		result = strings.ReplaceAll(result, sep, " ")
	}
	result = strings.Join(strings.Fields(result), "_")
	result = unsafeFilenameChars.ReplaceAllString(result, "")
	result = strings.Trim(result, "._")

	base := strings.ToUpper(strings.SplitN(result, ".", 2)[0])
	if windowsDeviceNames[base] {
		result = "_" + result
	}
	return result
}

// FileExt returns the lowercase extension of name without the leading dot.
// Names without a dot have no extension, and neither does a bare dotfile
// such as ".png", so uploads named that way are rejected.
func FileExt(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
