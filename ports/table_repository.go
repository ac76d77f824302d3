package ports

import (
	"context"

	"sheetpivot/domain/core"
	"sheetpivot/domain/dataset"
)

// TableRepository stores pivoted table snapshots
type TableRepository interface {
	Save(ctx context.Context, snapshot *dataset.TableSnapshot) error
	// Get returns core.ErrTableNotFound when no snapshot has the id
	Get(ctx context.Context, id core.TableID) (*dataset.TableSnapshot, error)
	// List returns snapshots newest first, without their tables
	List(ctx context.Context, limit, offset int) ([]*dataset.TableSnapshot, error)
	Delete(ctx context.Context, id core.TableID) error
}
