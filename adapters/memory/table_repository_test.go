package memory

import (
	"context"
	"testing"
	"time"

	"sheetpivot/domain/core"
	"sheetpivot/domain/dataset"
	"sheetpivot/domain/table"
	"sheetpivot/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshot(t *testing.T, createdAt time.Time) *dataset.TableSnapshot {
	tbl, err := table.Build(testkit.PeopleGrid(), 0)
	require.NoError(t, err)
	s := dataset.NewSnapshot("people.xlsx", "People", 0, table.GapPad, tbl)
	s.CreatedAt = createdAt
	return s
}

func TestTableRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewTableRepository()
	s := newSnapshot(t, time.Now())

	require.NoError(t, repo.Save(ctx, s))
	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, repo.Delete(ctx, s.ID))
	_, err = repo.Get(ctx, s.ID)
	assert.ErrorIs(t, err, core.ErrTableNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, s.ID), core.ErrNotFound)

	assert.Error(t, repo.Save(ctx, &dataset.TableSnapshot{}))
}

func TestTableRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewTableRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []core.TableID
	for i := 0; i < 3; i++ {
		s := newSnapshot(t, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.Save(ctx, s))
		ids = append(ids, s.ID)
	}

	list, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
	assert.Nil(t, list[0].Table)

	rest, err := repo.List(ctx, 10, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, ids[0], rest[0].ID)

	empty, err := repo.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	// listing must not strip the stored table
	stored, err := repo.Get(ctx, ids[2])
	require.NoError(t, err)
	assert.NotNil(t, stored.Table)
}
