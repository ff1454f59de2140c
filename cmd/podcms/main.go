// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/podcms/internal/config"
	"github.com/olegiv/podcms/internal/geoip"
	"github.com/olegiv/podcms/internal/handler"
	"github.com/olegiv/podcms/internal/logging"
	"github.com/olegiv/podcms/internal/middleware"
	"github.com/olegiv/podcms/internal/render"
	"github.com/olegiv/podcms/internal/scheduler"
	"github.com/olegiv/podcms/internal/service"
	"github.com/olegiv/podcms/internal/session"
	"github.com/olegiv/podcms/internal/store"
	"github.com/olegiv/podcms/internal/version"
	"github.com/olegiv/podcms/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "podcms - podcast and media site\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PODCMS_SESSION_SECRET      Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PODCMS_DB_PATH             SQLite database path (default: ./data/podcms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PODCMS_SERVER_PORT         Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PODCMS_ENV                 Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PODCMS_UPLOADS_DIR         Upload root (default: ./static/uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PODCMS_ALLOWED_EXTENSIONS  Comma separated upload allow-list\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PODCMS_SITE_FILE           JSON file overriding the site profile (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PODCMS_DEMO_MODE           Seed fake content into an empty database\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Println(version.Current().String())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	site, err := config.LoadSite(cfg.SiteFile)
	if err != nil {
		return fmt.Errorf("loading site profile: %w", err)
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(textHandler))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Warnings and errors also go to the activity log.
	logger := slog.New(logging.NewActivityLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DemoMode {
		if err := store.SeedDemo(ctx, db, store.DefaultSeedOptions()); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	// An empty path gives a lookup that answers every query with no country.
	geo, _ := geoip.Open("")
	if cfg.GeoIPEnabled() {
		if geo, err = geoip.Open(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip database not loaded", "path", cfg.GeoIPDBPath, "error", err)
		}
	} else {
		slog.Info("geoip disabled, activity log entries will have no country")
	}
	defer func() { _ = geo.Close() }()

	sessionManager := session.New(db, cfg.IsDevelopment())

	renderer, err := render.New(render.Config{
		TemplatesFS:    web.Templates,
		SessionManager: sessionManager,
		DB:             db,
		Site:           site,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	uploader := service.NewUploader(cfg.UploadsDir, cfg.AllowedExtensionSet(), cfg.MaxUploadSize)
	if err := uploader.EnsureDirs(); err != nil {
		return fmt.Errorf("preparing uploads: %w", err)
	}

	sched := scheduler.New(db, logger, cfg.ActivityRetentionDays, geo)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr())))

	// Static assets: cache for 1 year
	r.Handle("/static/*", middleware.StaticCache(31536000)(
		http.StripPrefix("/static/", http.FileServer(http.FS(web.Static)))))
	// Uploads: cache for 1 week
	r.Handle("/static/uploads/*", middleware.StaticCache(604800)(
		http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))))

	handler.RegisterRoutes(r, handler.Deps{
		DB:              db,
		Renderer:        renderer,
		SessionManager:  sessionManager,
		Uploader:        uploader,
		Recorder:        logging.NewRecorder(db, geo),
		Accounts:        service.NewAccounts(db),
		LoginProtection: loginProtection,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // audio uploads are large
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Current().Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
