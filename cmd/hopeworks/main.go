// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"encoding/json"
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

	"github.com/hopeworks/hopeworks-go/internal/cache"
	"github.com/hopeworks/hopeworks-go/internal/config"
	"github.com/hopeworks/hopeworks-go/internal/geoip"
	"github.com/hopeworks/hopeworks-go/internal/handler/api"
	"github.com/hopeworks/hopeworks-go/internal/imaging"
	"github.com/hopeworks/hopeworks-go/internal/logging"
	"github.com/hopeworks/hopeworks-go/internal/middleware"
	"github.com/hopeworks/hopeworks-go/internal/notify"
	"github.com/hopeworks/hopeworks-go/internal/scheduler"
	"github.com/hopeworks/hopeworks-go/internal/service"
	"github.com/hopeworks/hopeworks-go/internal/session"
	"github.com/hopeworks/hopeworks-go/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "HopeWorks - nonprofit site and back-office server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOPEWORKS_SESSION_SECRET           Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOPEWORKS_DB_PATH                  SQLite database path (default: ./data/hopeworks.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOPEWORKS_SERVER_PORT              Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOPEWORKS_ENV                      Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOPEWORKS_UPLOADS_DIR              Upload storage directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOPEWORKS_REDIS_URL                Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOPEWORKS_GEOIP_DB_PATH            GeoLite2 country database path (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOPEWORKS_NOTIFICATION_CAPACITY    Admin notification buffer size (default: 100)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOPEWORKS_EVENT_RETENTION_DAYS     Audit log retention in days, 0 disables (default: 90)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOPEWORKS_DO_SEED                  Seed demo content on startup (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("HopeWorks %s\n", appVersion)
		fmt.Printf("  commit: %s\n", appGitCommit)
		fmt.Printf("  built:  %s\n", appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load .env file if present (ignore error if missing)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Set up logging
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	slog.Info("starting hopeworks", "version", appVersion, "env", cfg.Env)

	// Ensure data directories exist
	if dir := filepath.Dir(cfg.DBPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0o750); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Upgrade the default logger so warnings and errors land in the audit log
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	cacheType := cache.TypeMemory
	if cfg.UseRedisCache() {
		cacheType = cache.TypeRedis
	}
	cacheManager, err := cache.NewManager(cache.Config{
		Type:            cacheType,
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacheManager.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	slog.Info("cache initialized", "type", cacheType)

	hub := notify.NewHub(cfg.NotificationCapacity)

	geo := geoip.NewLookup()
	if cfg.GeoIPEnabled() {
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip unavailable, continuing without country lookup", "error", err)
		}
	}
	defer func() {
		if err := geo.Close(); err != nil {
			slog.Error("error closing geoip database", "error", err)
		}
	}()

	eventService := service.NewEventService(db)
	processor := imaging.NewProcessor(cfg.UploadsDir)

	sched := scheduler.New(db, geo, logger,
		time.Duration(cfg.EventRetentionDays)*24*time.Hour,
		time.Duration(cfg.AppointmentRetentionDays)*24*time.Hour,
	)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	formRateLimiter := middleware.NewRateLimiter(2, 5)

	apiHandler := api.NewHandler(db, cacheManager, hub, sessionManager,
		processor, geo, eventService, cfg.UploadsDir).
		WithLoginProtection(loginProtection)

	queries := store.New(db)
	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))

	// Create router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	// Health check routes
	r.Get("/health", apiHandler.Health)
	r.Get("/health/live", apiHandler.Live)
	r.Get("/health/ready", apiHandler.Ready)

	// Serve uploaded media files
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	r.Route("/api", func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(csrfMiddleware)

		// Public endpoints; form submissions get an extra per-IP rate limit
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			apiHandler.MountPublic(r, func(r chi.Router) {
				r.Use(formRateLimiter.Middleware())
			})
		})

		// Capability-gated endpoints living directly under /api
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			r.Use(middleware.RequireAuth(sessionManager))
			r.Use(middleware.LoadUser(sessionManager, queries))
			apiHandler.MountAuthenticated(r)
		})

		r.Route("/admin", func(r chi.Router) {
			// Login stays outside RequireAuth; defense-in-depth via
			// login protection (IP rate limit + account lockout)
			r.With(middleware.Timeout(30*time.Second), loginProtection.Middleware()).
				Post("/login", apiHandler.Login)

			// No request timeout here: the notification stream holds
			// its connection open
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(sessionManager))
				r.Use(middleware.LoadUser(sessionManager, queries))
				r.Post("/logout", apiHandler.Logout)
				apiHandler.MountAdmin(r)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	})

	// WriteTimeout stays unset so server-sent event connections survive;
	// per-route timeouts guard the regular handlers.
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
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
