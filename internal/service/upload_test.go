// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a multipart.FileHeader the way net/http would after
// parsing an upload.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func testUploader(t *testing.T) *Uploader {
	t.Helper()
	return NewUploader(t.TempDir(), map[string]bool{
		"png": true, "jpg": true, "jpeg": true, "mp3": true,
	}, 1<<20)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAcceptExtensionAllowList(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  error
	}{
		{"lowercase allowed", "cover.png", nil},
		{"uppercase allowed", "COVER.PNG", nil},
		{"mixed case allowed", "show.Mp3", nil},
		{"not allowed", "notes.txt", ErrFileType},
		{"no extension", "README", ErrFileType},
		{"dotfile", ".png", ErrFileType},
		{"executable", "evil.png.exe", ErrFileType},
		{"empty name", "", ErrNoFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := testUploader(t)
			var fh *multipart.FileHeader
			if tt.filename != "" {
				fh = fileHeader(t, tt.filename, []byte("data"))
			}

			up, err := u.Accept(fh, CategoryEpisodeAudio)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsUploadError(err))
				return
			}
			require.NoError(t, err)
			assert.FileExists(t, up.DiskPath)
			assert.True(t, strings.HasPrefix(up.PublicPath, "/static/uploads/episodes/audio/"))
		})
	}
}

func TestAcceptNilHeader(t *testing.T) {
	_, err := testUploader(t).Accept(nil, CategoryBlog)
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestAcceptSanitizesTraversal(t *testing.T) {
	u := testUploader(t)
	fh := fileHeader(t, "cover.png", []byte("data"))
	fh.Filename = "../../etc/passwd.png"

	up, err := u.Accept(fh, CategoryBlog)
	require.NoError(t, err)

	assert.Equal(t, "etc_passwd.png", up.Name)
	assert.Equal(t, "/static/uploads/blog/etc_passwd.png", up.PublicPath)
	assert.Equal(t, filepath.Join(u.Root, "blog", "etc_passwd.png"), up.DiskPath)
}

func TestAcceptDeduplicatesNames(t *testing.T) {
	u := testUploader(t)

	first, err := u.Accept(fileHeader(t, "show.mp3", []byte("one")), CategoryEpisodeAudio)
	require.NoError(t, err)
	second, err := u.Accept(fileHeader(t, "show.mp3", []byte("two")), CategoryEpisodeAudio)
	require.NoError(t, err)

	assert.Equal(t, "show.mp3", first.Name)
	assert.NotEqual(t, first.Name, second.Name)
	assert.True(t, strings.HasPrefix(second.Name, "show-"))
	assert.True(t, strings.HasSuffix(second.Name, ".mp3"))

	data, err := os.ReadFile(first.DiskPath)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestAcceptTooLarge(t *testing.T) {
	u := testUploader(t)
	u.MaxSize = 3

	_, err := u.Accept(fileHeader(t, "show.mp3", []byte("four")), CategoryEpisodeAudio)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestAcceptCreatesThumbnail(t *testing.T) {
	u := testUploader(t)

	up, err := u.Accept(fileHeader(t, "cover.png", pngBytes(t)), CategoryEvents)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(u.Root, "events", "thumbs", "cover.jpg"))
	assert.FileExists(t, up.DiskPath)
}

func TestAcceptBrokenImageStillStored(t *testing.T) {
	u := testUploader(t)

	up, err := u.Accept(fileHeader(t, "cover.jpg", []byte("not an image")), CategoryUpcoming)
	require.NoError(t, err)

	assert.FileExists(t, up.DiskPath)
	assert.NoFileExists(t, filepath.Join(u.Root, "upcoming", "thumbs", "cover.jpg"))
}

func TestEnsureDirs(t *testing.T) {
	u := testUploader(t)
	require.NoError(t, u.EnsureDirs())

	for _, c := range Categories {
		assert.DirExists(t, filepath.Join(u.Root, filepath.FromSlash(string(c))))
	}
}
