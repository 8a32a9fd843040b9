// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"HOPEWORKS_DB_PATH" envDefault:"./data/hopeworks.db"`
	SessionSecret string `env:"HOPEWORKS_SESSION_SECRET,required"`
	ServerHost    string `env:"HOPEWORKS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"HOPEWORKS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"HOPEWORKS_ENV" envDefault:"development"`
	LogLevel      string `env:"HOPEWORKS_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"HOPEWORKS_UPLOADS_DIR" envDefault:"./uploads"`

	// Cache configuration
	RedisURL     string `env:"HOPEWORKS_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"HOPEWORKS_CACHE_PREFIX" envDefault:"hw:"`     // Redis key prefix
	CacheTTL     int    `env:"HOPEWORKS_CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"HOPEWORKS_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Admin notification feed
	NotificationCapacity int `env:"HOPEWORKS_NOTIFICATION_CAPACITY" envDefault:"100"` // Ring buffer size

	// GeoIP configuration
	GeoIPDBPath string `env:"HOPEWORKS_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Retention configuration (days; 0 disables the purge job)
	EventRetentionDays       int `env:"HOPEWORKS_EVENT_RETENTION_DAYS" envDefault:"90"`
	AppointmentRetentionDays int `env:"HOPEWORKS_APPOINTMENT_RETENTION_DAYS" envDefault:"365"`

	// Seeding configuration
	DoSeed bool `env:"HOPEWORKS_DO_SEED" envDefault:"false"` // Enable demo content seeding
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("HOPEWORKS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	if cfg.NotificationCapacity < 1 {
		return nil, fmt.Errorf("HOPEWORKS_NOTIFICATION_CAPACITY must be at least 1, got %d", cfg.NotificationCapacity)
	}

	cfg.Env = strings.ToLower(cfg.Env)

	return cfg, nil
}
