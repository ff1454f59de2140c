// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// createTestImage creates a simple test image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestThumbPath(t *testing.T) {
	got := ThumbPath(filepath.Join("uploads", "blog", "cover.png"))
	want := filepath.Join("uploads", "blog", "thumbs", "cover.jpg")
	if got != want {
		t.Errorf("ThumbPath = %q, want %q", got, want)
	}
}

func TestThumbnailer_Create(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cover.png")
	writePNG(t, src, createTestImage(800, 200))

	dst, err := NewThumbnailer().Create(src)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dst != ThumbPath(src) {
		t.Errorf("dst = %q, want %q", dst, ThumbPath(src))
	}

	img, err := imaging.Open(dst)
	if err != nil {
		t.Fatalf("opening thumbnail: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 100 {
		t.Errorf("thumbnail size = %dx%d, want 400x100", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestThumbnailer_SmallImageKeepsSize(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "small.png")
	writePNG(t, src, createTestImage(120, 80))

	dst, err := NewThumbnailer().Create(src)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	img, err := imaging.Open(dst)
	if err != nil {
		t.Fatalf("opening thumbnail: %v", err)
	}
	if img.Bounds().Dx() != 120 {
		t.Errorf("thumbnail width = %d, want 120", img.Bounds().Dx())
	}
}

func TestThumbnailer_NotAnImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "fake.jpg")
	if err := os.WriteFile(src, []byte("ID3 this is an mp3 really"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := NewThumbnailer().Create(src)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Create error = %v, want ErrUnsupportedFormat", err)
	}
	if _, statErr := os.Stat(ThumbPath(src)); !os.IsNotExist(statErr) {
		t.Error("no thumbnail should be written for a non-image")
	}
}

func TestDetectFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, createTestImage(2, 2)); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", buf.Bytes(), "png"},
		{"gif", []byte("GIF89a"), "gif"},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF}, "jpeg"},
		{"tiff rejected", []byte{0x49, 0x49, 0x2A, 0x00}, ""},
		{"text", []byte("hello"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.data); got != tt.want {
				t.Errorf("detectFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyOrientation(t *testing.T) {
	img := createTestImage(100, 50)

	tests := []struct {
		orientation int
		wantW       int
		wantH       int
	}{
		{1, 100, 50},
		{2, 100, 50},
		{3, 100, 50},
		{4, 100, 50},
		{5, 50, 100},
		{6, 50, 100},
		{7, 50, 100},
		{8, 50, 100},
		{0, 100, 50},
	}

	for _, tt := range tests {
		got := applyOrientation(img, tt.orientation)
		if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
			t.Errorf("orientation %d: size = %dx%d, want %dx%d",
				tt.orientation, got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
		}
	}
}
