package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"sheetpivot/domain/core"
	"sheetpivot/domain/dataset"
	"sheetpivot/ports"
)

// TableRepository keeps snapshots in process memory
type TableRepository struct {
	mu        sync.RWMutex
	snapshots map[core.TableID]*dataset.TableSnapshot
}

var _ ports.TableRepository = (*TableRepository)(nil)

// NewTableRepository creates an empty repository
func NewTableRepository() *TableRepository {
	return &TableRepository{snapshots: make(map[core.TableID]*dataset.TableSnapshot)}
}

// Save stores the snapshot, replacing any with the same id
func (r *TableRepository) Save(ctx context.Context, snapshot *dataset.TableSnapshot) error {
	if snapshot == nil || snapshot.ID.String() == "" {
		return fmt.Errorf("snapshot must have an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[snapshot.ID] = snapshot
	return nil
}

// Get returns a stored snapshot
func (r *TableRepository) Get(ctx context.Context, id core.TableID) (*dataset.TableSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrTableNotFound, id)
	}
	return s, nil
}

// List returns snapshots newest first. Tables are left out, as in the
// postgres repository.
func (r *TableRepository) List(ctx context.Context, limit, offset int) ([]*dataset.TableSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	r.mu.RLock()
	all := make([]*dataset.TableSnapshot, 0, len(r.snapshots))
	for _, s := range r.snapshots {
		all = append(all, s)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*dataset.TableSnapshot{}, nil
	}
	end := min(offset+limit, len(all))

	out := make([]*dataset.TableSnapshot, 0, end-offset)
	for _, s := range all[offset:end] {
		summary := *s
		summary.Table = nil
		out = append(out, &summary)
	}
	return out, nil
}

// Delete removes a snapshot
func (r *TableRepository) Delete(ctx context.Context, id core.TableID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.snapshots[id]; !ok {
		return fmt.Errorf("%w: %s", core.ErrTableNotFound, id)
	}
	delete(r.snapshots, id)
	return nil
}
