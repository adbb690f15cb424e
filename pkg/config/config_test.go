package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNPassesThrough(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://user:pw@db:5432/stockmaster?sslmode=disable"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	if cfg.DSN != "postgres://user:pw@db:5432/stockmaster?sslmode=disable" {
		t.Fatalf("dsn mutated: %s", cfg.DSN)
	}
}

func TestEnsureDSNAssemblesLegacyVars(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "db.internal",
		LegacyPort:     5433,
		LegacyUser:     "stock",
		LegacyPassword: "s3cret",
		LegacyName:     "stockmaster",
		LegacySSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	for _, part := range []string{"postgres://", "stock:s3cret@", "db.internal:5433", "/stockmaster", "sslmode=require"} {
		if !strings.Contains(cfg.DSN, part) {
			t.Fatalf("dsn missing %q: %s", part, cfg.DSN)
		}
	}
}

func TestEnsureDSNReportsMissingVars(t *testing.T) {
	cfg := DBConfig{LegacyHost: "db.internal"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error for missing legacy vars")
	}
	if !strings.Contains(err.Error(), EnvDBUser) || !strings.Contains(err.Error(), EnvDBName) {
		t.Fatalf("error must name the missing vars: %v", err)
	}
}

func TestAppEnvHelpers(t *testing.T) {
	if !(AppConfig{Env: "dev"}).IsDev() {
		t.Fatal("dev must be dev")
	}
	if !(AppConfig{Env: "PROD"}).IsProd() {
		t.Fatal("env comparison must be case-insensitive")
	}
	if (AppConfig{Env: "prod"}).IsDev() {
		t.Fatal("prod is not dev")
	}
}
