package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const entryColumnsDDL = `
		id TEXT PRIMARY KEY,
		trip_date TEXT NOT NULL DEFAULT '',
		truck_id TEXT NOT NULL DEFAULT '',
		driver_id TEXT NOT NULL DEFAULT '',
		origin_governorate TEXT NOT NULL DEFAULT '',
		origin_delegation TEXT NOT NULL DEFAULT '',
		dest_governorate TEXT NOT NULL DEFAULT '',
		dest_delegation TEXT NOT NULL DEFAULT '',
		destination TEXT NOT NULL DEFAULT '',
		kilometers DOUBLE PRECISION NOT NULL DEFAULT 0,
		fuel_liters DOUBLE PRECISION NOT NULL DEFAULT 0,
		fuel_price_per_liter DOUBLE PRECISION,
		maintenance DOUBLE PRECISION NOT NULL DEFAULT 0,
		delivery_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		remarks TEXT NOT NULL DEFAULT '',
		created_at TEXT`

// InitSchema creates the record tables. The DDL is valid for both
// Postgres and SQLite.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS trucks (
		id TEXT PRIMARY KEY,
		matricule TEXT NOT NULL DEFAULT '',
		truck_type TEXT NOT NULL DEFAULT 'PLATEAU',
		fixed_charges DOUBLE PRECISION NOT NULL DEFAULT 0,
		insurance DOUBLE PRECISION NOT NULL DEFAULT 0,
		tax DOUBLE PRECISION NOT NULL DEFAULT 0,
		personnel_charges DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS drivers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		truck_id TEXT NOT NULL DEFAULT ''
	);
	`,
		`CREATE TABLE IF NOT EXISTS entries (` + entryColumnsDDL + `
	);`,
		`CREATE TABLE IF NOT EXISTS planifications (` + entryColumnsDDL + `,
		status TEXT NOT NULL DEFAULT 'planifie',
		scheduled_at TEXT,
		start_photos TEXT NOT NULL DEFAULT '{}',
		end_photos TEXT NOT NULL DEFAULT '{}',
		updated_at TEXT
	);`,
		`
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY,
		default_fuel_price DOUBLE PRECISION NOT NULL
	);
	`,
		`CREATE INDEX IF NOT EXISTS idx_entries_truck_date ON entries(truck_id, trip_date);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_driver_date ON entries(driver_id, trip_date);`,
		`CREATE INDEX IF NOT EXISTS idx_planifications_status ON planifications(status);`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
