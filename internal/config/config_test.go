package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "DB_PATH", "SNAPSHOT_TTL", "DEFAULT_FUEL_PRICE", "INCLUDE_AWAITING_CONFIRMATION"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.DBDriver != "sqlite" || cfg.DatabaseURL != "data/fleet.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SnapshotTTL != 5*time.Minute {
		t.Fatalf("SnapshotTTL = %s", cfg.SnapshotTTL)
	}
	if cfg.DefaultFuelPrice != 2 || cfg.IncludeAwaitingConfirmation {
		t.Fatalf("unexpected engine defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DATABASE_URL", "postgres://fleet@localhost/fleet")
	t.Setenv("SNAPSHOT_TTL", "30s")
	t.Setenv("DEFAULT_FUEL_PRICE", "2.5")
	t.Setenv("INCLUDE_AWAITING_CONFIRMATION", "true")

	cfg := Load()
	if cfg.DBDriver != "pgx" || cfg.DatabaseURL != "postgres://fleet@localhost/fleet" {
		t.Fatalf("db config = %+v", cfg)
	}
	if cfg.SnapshotTTL != 30*time.Second || cfg.DefaultFuelPrice != 2.5 || !cfg.IncludeAwaitingConfirmation {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SNAPSHOT_TTL", "soon")
	t.Setenv("DEFAULT_FUEL_PRICE", "-1")

	if got := Duration("SNAPSHOT_TTL", time.Minute); got != time.Minute {
		t.Fatalf("Duration = %s", got)
	}
	if got := Float("DEFAULT_FUEL_PRICE", 2); got != 2 {
		t.Fatalf("Float = %v", got)
	}
}

func TestNonPositiveDurationsFallBack(t *testing.T) {
	for _, v := range []string{"0s", "-1m"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("STATUS_SWEEP_INTERVAL", v)

			if got := Load().StatusSweepInterval; got != time.Minute {
				t.Fatalf("StatusSweepInterval = %s, want 1m", got)
			}
		})
	}
}
