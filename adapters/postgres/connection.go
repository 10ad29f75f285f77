// Package postgres persists unit frames and inference results. Frames are
// stored whole as JSON documents keyed by name and fingerprint; results are
// append-only rows keyed by run ID.
package postgres

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens a postgres connection pool and verifies it.
func Connect(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Printf("[Postgres] Connected")
	return db, nil
}

// Migrate creates the tables when they do not exist yet.
func Migrate(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS frames (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		fingerprint TEXT NOT NULL,
		unit_count  INTEGER NOT NULL,
		unit_ids    JSONB NOT NULL,
		columns     JSONB NOT NULL,
		geometry    JSONB,
		created_at  TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS inference_results (
		run_id       TEXT PRIMARY KEY,
		kind         TEXT NOT NULL,
		measure      TEXT NOT NULL,
		approach     TEXT NOT NULL,
		seed         BIGINT NOT NULL,
		statistic    DOUBLE PRECISION NOT NULL,
		p_value      DOUBLE PRECISION NOT NULL,
		estimates    JSONB NOT NULL,
		fingerprint  TEXT NOT NULL,
		completed_at TIMESTAMPTZ NOT NULL
	);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
