// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/podcms/internal/imaging"
	"github.com/olegiv/podcms/internal/util"
)

// PublicUploadPrefix is the URL prefix the upload root is served under.
const PublicUploadPrefix = "/static/uploads"

// Category is a subdirectory of the upload root.
type Category string

// Upload categories
const (
	CategoryBlog         Category = "blog"
	CategoryEpisodeImage Category = "episodes/images"
	CategoryEpisodeAudio Category = "episodes/audio"
	CategoryUpcoming     Category = "upcoming"
	CategoryEvents       Category = "events"
)

// Categories lists every upload category.
var Categories = []Category{
	CategoryBlog,
	CategoryEpisodeImage,
	CategoryEpisodeAudio,
	CategoryUpcoming,
	CategoryEvents,
}

// Upload errors. All of them are validation failures.
var (
	ErrNoFile       = errors.New("no file selected")
	ErrFileType     = errors.New("file type not allowed")
	ErrFileName     = errors.New("invalid file name")
	ErrFileTooLarge = errors.New("file too large")
)

// thumbnailExts are the extensions that get a preview thumbnail.
var thumbnailExts = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true,
}

// Upload describes a stored file.
type Upload struct {
	PublicPath string
	DiskPath   string
	Name       string
}

// Uploader validates and stores multipart files below Root.
type Uploader struct {
	Root    string
	Allowed map[string]bool
	MaxSize int64

	thumbs *imaging.Thumbnailer
}

// NewUploader creates an Uploader. Allowed keys are lowercase extensions
// without the dot. A MaxSize of zero disables the size check.
func NewUploader(root string, allowed map[string]bool, maxSize int64) *Uploader {
	return &Uploader{
		Root:    root,
		Allowed: allowed,
		MaxSize: maxSize,
		thumbs:  imaging.NewThumbnailer(),
	}
}

// EnsureDirs creates every category directory.
func (u *Uploader) EnsureDirs() error {
	for _, c := range Categories {
		if err := os.MkdirAll(filepath.Join(u.Root, filepath.FromSlash(string(c))), 0o755); err != nil {
			return fmt.Errorf("creating upload directory %s: %w", c, err)
		}
	}
	return nil
}

// Allows reports whether name carries an allowed extension.
func (u *Uploader) Allows(name string) bool {
	ext := util.FileExt(name)
	return ext != "" && u.Allowed[ext]
}

// Accept stores fh under category and returns where it went. A nil header
// or an empty filename yields ErrNoFile.
func (u *Uploader) Accept(fh *multipart.FileHeader, category Category) (Upload, error) {
	if fh == nil || strings.TrimSpace(fh.Filename) == "" {
		return Upload{}, ErrNoFile
	}
	if !u.Allows(fh.Filename) {
		return Upload{}, ErrFileType
	}
	if u.MaxSize > 0 && fh.Size > u.MaxSize {
		return Upload{}, ErrFileTooLarge
	}

	name := util.SecureFilename(fh.Filename)
	if name == "" || !u.Allows(name) {
		return Upload{}, ErrFileName
	}

	dir, err := util.SafeJoinPath(u.Root, filepath.FromSlash(string(category)))
	if err != nil {
		return Upload{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Upload{}, fmt.Errorf("creating upload directory: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("opening upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, name, err := createUnique(dir, name)
	if err != nil {
		return Upload{}, err
	}
	diskPath := filepath.Join(dir, name)

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(diskPath)
		return Upload{}, fmt.Errorf("writing upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(diskPath)
		return Upload{}, fmt.Errorf("closing upload: %w", err)
	}

	if thumbnailExts[util.FileExt(name)] {
		if _, err := u.thumbs.Create(diskPath); err != nil {
			slog.Warn("thumbnail not created", "file", diskPath, "error", err)
		}
	}

	return Upload{
		PublicPath: util.PublicURLPath(PublicUploadPrefix, string(category), name),
		DiskPath:   diskPath,
		Name:       name,
	}, nil
}

// createUnique opens dir/name exclusively. When the name is taken it retries
// with a short random suffix before the extension.
func createUnique(dir, name string) (*os.File, string, error) {
	const attempts = 5

	candidate := name
	for i := 0; i < attempts; i++ {
		if err := util.ValidatePathWithinBase(dir, filepath.Join(dir, candidate)); err != nil {
			return nil, "", err
		}
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("creating upload file: %w", err)
		}
		ext := filepath.Ext(name)
		candidate = strings.TrimSuffix(name, ext) + "-" + uuid.NewString()[:8] + ext
	}
	return nil, "", fmt.Errorf("creating upload file: no free name for %s", name)
}

// IsUploadError reports whether err is a user-facing upload validation error.
func IsUploadError(err error) bool {
	return errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrFileType) ||
		errors.Is(err, ErrFileName) ||
		errors.Is(err, ErrFileTooLarge)
}
