package migration

import (
	"context"
	"fmt"

	"gohaz/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createCalculationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create calculations table")
	}

	if err := r.createHazardCurvesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create hazard_curves table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createCalculationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS calculations (
			id               UUID PRIMARY KEY,
			status           TEXT NOT NULL,
			time_span        DOUBLE PRECISION NOT NULL,
			truncation_level DOUBLE PRECISION NOT NULL,
			cav_min          DOUBLE PRECISION NOT NULL DEFAULT 0,
			num_sites        INTEGER NOT NULL,
			num_sources      INTEGER NOT NULL,
			workers          INTEGER NOT NULL DEFAULT 1,
			error_message    TEXT,
			created_at       TIMESTAMPTZ NOT NULL,
			completed_at     TIMESTAMPTZ
		)
	`)
	return err
}

func (r *MigrationRunner) createHazardCurvesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS hazard_curves (
			calculation_id UUID NOT NULL REFERENCES calculations(id) ON DELETE CASCADE,
			imt            TEXT NOT NULL,
			site_index     INTEGER NOT NULL,
			levels         JSONB NOT NULL,
			poes           JSONB NOT NULL,
			PRIMARY KEY (calculation_id, imt, site_index)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_calculations_status ON calculations(status)",
		"CREATE INDEX IF NOT EXISTS idx_curves_calculation_id ON hazard_curves(calculation_id)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Log but don't fail on index creation errors
			fmt.Printf("Warning: failed to create index: %v\n", err)
		}
	}

	return nil
}
