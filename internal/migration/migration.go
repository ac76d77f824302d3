package migration

import (
	"context"

	"sheetpivot/internal/errors"

	"github.com/jmoiron/sqlx"
)

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

// Run executes all database migrations in order. Every statement is idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, step := range r.steps() {
		if _, err := db.ExecContext(ctx, step.statement); err != nil {
			return errors.DatabaseError("failed to "+step.name, err)
		}
	}
	return nil
}

type migrationStep struct {
	name      string
	statement string
}

func (r *MigrationRunner) steps() []migrationStep {
	return []migrationStep{
		{name: "create table_snapshots table", statement: createTableSnapshots},
		{name: "add table_snapshots columns", statement: addTableSnapshotColumns},
		{name: "create idx_snapshots_created_at", statement: "CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON table_snapshots(created_at DESC)"},
		{name: "create idx_snapshots_parent_id", statement: "CREATE INDEX IF NOT EXISTS idx_snapshots_parent_id ON table_snapshots(parent_id)"},
		{name: "create idx_snapshots_source", statement: "CREATE INDEX IF NOT EXISTS idx_snapshots_source ON table_snapshots(source, sheet)"},
	}
}

const createTableSnapshots = `
	CREATE TABLE IF NOT EXISTS table_snapshots (
		id UUID PRIMARY KEY,
		source TEXT NOT NULL,
		sheet TEXT NOT NULL,
		header_row INTEGER NOT NULL DEFAULT 0,
		gap_policy VARCHAR(16) NOT NULL DEFAULT 'pad',
		parent_id UUID REFERENCES table_snapshots(id) ON DELETE SET NULL,
		filter_column TEXT,
		filter_keyword TEXT,
		headers TEXT[] NOT NULL DEFAULT '{}',
		row_count INTEGER NOT NULL DEFAULT 0,
		table_data JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)
`

const addTableSnapshotColumns = `
	DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = 'table_snapshots' AND column_name = 'gap_policy'
		) THEN
			ALTER TABLE table_snapshots ADD COLUMN gap_policy VARCHAR(16) NOT NULL DEFAULT 'pad';
		END IF;
	END $$;
`
