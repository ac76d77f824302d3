package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"sheetpivot/domain/core"
	"sheetpivot/domain/dataset"
	"sheetpivot/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// snapshotRow is the table_snapshots row layout
type snapshotRow struct {
	ID            string         `db:"id"`
	Source        string         `db:"source"`
	Sheet         string         `db:"sheet"`
	HeaderRow     int            `db:"header_row"`
	GapPolicy     string         `db:"gap_policy"`
	ParentID      sql.NullString `db:"parent_id"`
	FilterColumn  sql.NullString `db:"filter_column"`
	FilterKeyword sql.NullString `db:"filter_keyword"`
	Headers       pq.StringArray `db:"headers"`
	RowCount      int            `db:"row_count"`
	TableData     []byte         `db:"table_data"`
	CreatedAt     time.Time      `db:"created_at"`
}

// tableRepository implements the TableRepository interface
type tableRepository struct {
	db *sqlx.DB
}

// NewTableRepository creates a new table snapshot repository
func NewTableRepository(db *sqlx.DB) ports.TableRepository {
	return &tableRepository{db: db}
}

// Save inserts a snapshot, replacing any existing snapshot with the same id
func (r *tableRepository) Save(ctx context.Context, snapshot *dataset.TableSnapshot) error {
	row, err := toRow(snapshot)
	if err != nil {
		return err
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO table_snapshots (
			id, source, sheet, header_row, gap_policy, parent_id, filter_column,
			filter_keyword, headers, row_count, table_data, created_at
		) VALUES (
			:id, :source, :sheet, :header_row, :gap_policy, :parent_id, :filter_column,
			:filter_keyword, :headers, :row_count, :table_data, :created_at
		)
		ON CONFLICT (id) DO UPDATE SET
			headers = EXCLUDED.headers,
			row_count = EXCLUDED.row_count,
			table_data = EXCLUDED.table_data`, row)
	if err != nil {
		return fmt.Errorf("failed to save table snapshot: %w", err)
	}
	return nil
}

// Get retrieves a snapshot with its table
func (r *tableRepository) Get(ctx context.Context, id core.TableID) (*dataset.TableSnapshot, error) {
	var row snapshotRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, source, sheet, header_row, gap_policy, parent_id, filter_column,
			filter_keyword, headers, row_count, table_data, created_at
		FROM table_snapshots WHERE id = $1`, id.String())
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrTableNotFound, id)
		}
		return nil, fmt.Errorf("failed to get table snapshot: %w", err)
	}
	return fromRow(row, true)
}

// List returns snapshots newest first without decoding their tables
func (r *tableRepository) List(ctx context.Context, limit, offset int) ([]*dataset.TableSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []snapshotRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, source, sheet, header_row, gap_policy, parent_id, filter_column,
			filter_keyword, headers, row_count, created_at
		FROM table_snapshots
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list table snapshots: %w", err)
	}

	snapshots := make([]*dataset.TableSnapshot, 0, len(rows))
	for _, row := range rows {
		s, err := fromRow(row, false)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}

// Delete removes a snapshot
func (r *tableRepository) Delete(ctx context.Context, id core.TableID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM table_snapshots WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete table snapshot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete table snapshot: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", core.ErrTableNotFound, id)
	}
	return nil
}

func toRow(s *dataset.TableSnapshot) (snapshotRow, error) {
	data, err := dataset.EncodeTable(s.Table)
	if err != nil {
		return snapshotRow{}, fmt.Errorf("failed to encode table: %w", err)
	}

	row := snapshotRow{
		ID:        s.ID.String(),
		Source:    s.Source,
		Sheet:     s.Sheet,
		HeaderRow: s.HeaderRow,
		GapPolicy: s.GapPolicy,
		ParentID:  nullString(s.ParentID.String()),
		Headers:   pq.StringArray(s.Headers),
		RowCount:  s.RowCount,
		TableData: data,
		CreatedAt: s.CreatedAt,
	}
	if s.Filter != nil {
		row.FilterColumn = sql.NullString{String: s.Filter.Column, Valid: true}
		row.FilterKeyword = sql.NullString{String: s.Filter.Keyword, Valid: true}
	}
	return row, nil
}

func fromRow(row snapshotRow, withTable bool) (*dataset.TableSnapshot, error) {
	s := &dataset.TableSnapshot{
		ID:        core.TableID(row.ID),
		Source:    row.Source,
		Sheet:     row.Sheet,
		HeaderRow: row.HeaderRow,
		GapPolicy: row.GapPolicy,
		ParentID:  core.TableID(row.ParentID.String),
		Headers:   []string(row.Headers),
		RowCount:  row.RowCount,
		CreatedAt: row.CreatedAt,
	}
	if row.FilterColumn.Valid {
		s.Filter = &dataset.FilterSpec{Column: row.FilterColumn.String, Keyword: row.FilterKeyword.String}
	}
	if withTable {
		t, err := dataset.DecodeTable(row.TableData)
		if err != nil {
			return nil, err
		}
		s.Table = t
	}
	return s, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
