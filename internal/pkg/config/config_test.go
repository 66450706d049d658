package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Port != "3333" {
		t.Errorf("expected port 3333, got %q", cfg.Port)
	}
	if cfg.JWT.TTL != 7*24*time.Hour {
		t.Errorf("expected 7d ttl, got %s", cfg.JWT.TTL)
	}
	if cfg.Store.Driver != DriverMongo {
		t.Errorf("expected mongo driver, got %q", cfg.Store.Driver)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("expected redis disabled by default, got %q", cfg.Redis.Addr)
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 || cfg.HTTP.AllowedOrigins[0] != "*" {
		t.Errorf("unexpected origins: %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Errorf("expected 15s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development env by default")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	for _, secret := range []string{"", "   "} {
		_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
			"JWT_SECRET": secret,
		}))
		if !errors.Is(err, ErrMissingJWTSecret) {
			t.Fatalf("secret %q: expected ErrMissingJWTSecret, got %v", secret, err)
		}
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "s3cret",
		"JWT_TTL":              "1h",
		"PORT":                 "8080",
		"STORE_DRIVER":         "Postgres",
		"DATABASE_URL":         "postgres://localhost/fintrack",
		"REDIS_ADDR":           "localhost:6379",
		"CORS_ALLOWED_ORIGINS": "http://localhost:5173,https://app.fintrack.dev",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if cfg.JWT.TTL != time.Hour || cfg.Port != "8080" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Fatalf("expected normalised driver, got %q", cfg.Store.Driver)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.HTTP.AllowedOrigins)
	}
}

func TestLoad_InvalidStore(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":       {"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"},
		"postgres without url": {"JWT_SECRET": "s", "STORE_DRIVER": "postgres"},
		"non-positive ttl":     {"JWT_SECRET": "s", "JWT_TTL": "0s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
