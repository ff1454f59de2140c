// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/podcms/internal/auth"
	"github.com/olegiv/podcms/internal/config"
	"github.com/olegiv/podcms/internal/logging"
	"github.com/olegiv/podcms/internal/render"
	"github.com/olegiv/podcms/internal/service"
	"github.com/olegiv/podcms/internal/store"
	"github.com/olegiv/podcms/internal/testutil"
	"github.com/olegiv/podcms/web"
)

// testApp is the full router backed by a temporary database and upload
// root, served over a real listener so session cookies round-trip.
type testApp struct {
	db      *sql.DB
	queries *store.Queries
	uploads string
	server  *httptest.Server
	client  *http.Client
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	sm := scs.New()
	sm.Store = memstore.New()

	renderer, err := render.New(render.Config{
		TemplatesFS:    web.Templates,
		SessionManager: sm,
		DB:             db,
		Site:           config.DefaultSite(),
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	uploads := t.TempDir()
	uploader := service.NewUploader(uploads, map[string]bool{
		"png": true, "jpg": true, "jpeg": true, "mp3": true,
	}, 10<<20)
	if err := uploader.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, Deps{
		DB:             db,
		Renderer:       renderer,
		SessionManager: sm,
		Uploader:       uploader,
		Recorder:       logging.NewRecorder(db, nil),
		Accounts:       service.NewAccounts(db),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testApp{
		db:      db,
		queries: store.New(db),
		uploads: uploads,
		server:  srv,
		client:  newClient(t),
	}
}

// newClient returns a client with its own cookie jar that reports redirects
// instead of following them.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// response is a drained HTTP response.
type response struct {
	status   int
	location string
	body     string
}

func (a *testApp) do(t *testing.T, c *http.Client, req *http.Request) response {
	t.Helper()
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return response{status: resp.StatusCode, location: resp.Header.Get("Location"), body: string(body)}
}

func (a *testApp) get(t *testing.T, c *http.Client, path string) response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	return a.do(t, c, req)
}

func (a *testApp) postForm(t *testing.T, c *http.Client, path string, values url.Values) response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(values.Encode()))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	return a.do(t, c, req)
}

// upload is one file part of a multipart request.
type upload struct {
	field    string
	filename string
	content  []byte
}

func (a *testApp) postMultipart(t *testing.T, c *http.Client, path string, values url.Values, files ...upload) response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vals := range values {
		for _, v := range vals {
			if err := mw.WriteField(key, v); err != nil {
				t.Fatalf("WriteField: %v", err)
			}
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("writing part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, &buf)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set(HeaderContentType, mw.FormDataContentType())
	return a.do(t, c, req)
}

// pngBytes returns a small valid PNG image.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// createAdmin stores the admin account directly.
func (a *testApp) createAdmin(t *testing.T, username, pin string) store.Admin {
	t.Helper()
	hash, err := auth.HashPIN(pin)
	if err != nil {
		t.Fatalf("HashPIN: %v", err)
	}
	admin, err := a.queries.CreateAdmin(context.Background(), store.CreateAdminParams{
		Username:  username,
		PinHash:   hash,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	return admin
}

// adminClient creates the admin account and returns a client signed in as it.
func (a *testApp) adminClient(t *testing.T) *http.Client {
	t.Helper()
	a.createAdmin(t, "root", "1234")
	c := newClient(t)
	resp := a.postForm(t, c, "/admin/login", url.Values{"username": {"root"}, "pin": {"1234"}})
	assertRedirect(t, resp, "/admin/dashboard")
	return c
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

func assertRedirect(t *testing.T, resp response, want string) {
	t.Helper()
	if resp.status != http.StatusSeeOther {
		t.Fatalf("status = %d; want 303 (body: %.200s)", resp.status, resp.body)
	}
	if resp.location != want {
		t.Fatalf("Location = %q; want %q", resp.location, want)
	}
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("body does not contain %q", want)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
