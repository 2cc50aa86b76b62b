package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if cfg.CMS.BaseURL != "http://localhost:1337" {
		t.Fatalf("unexpected CMS base URL: %q", cfg.CMS.BaseURL)
	}

	if got := cfg.Cart.TTL; got != 720*time.Hour {
		t.Fatalf("expected default cart TTL 720h, got %v", got)
	}

	if got := cfg.Cron.TempOrderTTL; got != 168*time.Hour {
		t.Fatalf("expected default temp order TTL 168h, got %v", got)
	}

	if cfg.MercadoPago.BaseURL != "https://api.mercadopago.com" {
		t.Fatalf("unexpected Mercado Pago base URL %q", cfg.MercadoPago.BaseURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv(EnvCMSBaseURL, "http://localhost:1337")
	t.Setenv(EnvMPAccessToken, "TEST-token")
	t.Setenv(EnvMPBackURLBase, "http://localhost:3000")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
