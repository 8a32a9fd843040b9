package config

import (
	"strings"
	"testing"
)

const testSecret = "0123456789abcdef0123456789abcdef" // 32 bytes

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOPEWORKS_SESSION_SECRET", testSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "./data/hopeworks.db" {
		t.Errorf("DBPath = %q; want default", cfg.DBPath)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d; want 8080", cfg.ServerPort)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q; want development", cfg.Env)
	}
	if cfg.NotificationCapacity != 100 {
		t.Errorf("NotificationCapacity = %d; want 100", cfg.NotificationCapacity)
	}
	if cfg.EventRetentionDays != 90 {
		t.Errorf("EventRetentionDays = %d; want 90", cfg.EventRetentionDays)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() should be true by default")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() should be false without HOPEWORKS_REDIS_URL")
	}
	if cfg.GeoIPEnabled() {
		t.Error("GeoIPEnabled() should be false without HOPEWORKS_GEOIP_DB_PATH")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("HOPEWORKS_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing session secret")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("HOPEWORKS_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for short session secret")
	}
	if !strings.Contains(err.Error(), "HOPEWORKS_SESSION_SECRET") {
		t.Errorf("error should mention the variable name, got: %v", err)
	}
}

func TestLoad_InvalidNotificationCapacity(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HOPEWORKS_NOTIFICATION_CAPACITY", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero notification capacity")
	}
}

func TestLoad_EnvNormalized(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HOPEWORKS_ENV", "Production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q; want production", cfg.Env)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() should be false in production")
	}
}

func TestServerAddr(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HOPEWORKS_SERVER_HOST", "0.0.0.0")
	t.Setenv("HOPEWORKS_SERVER_PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.ServerAddr(); got != "0.0.0.0:9000" {
		t.Errorf("ServerAddr() = %q; want 0.0.0.0:9000", got)
	}
}
