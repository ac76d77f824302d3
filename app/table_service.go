package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"sheetpivot/domain/core"
	"sheetpivot/domain/dataset"
	"sheetpivot/domain/table"
	"sheetpivot/internal"
	"sheetpivot/internal/errors"
	"sheetpivot/internal/profiling"
	"sheetpivot/ports"

	"golang.org/x/sync/errgroup"
)

// TableService turns spreadsheet sheets into stored column tables
type TableService struct {
	opener  ports.SheetOpener
	repo    ports.TableRepository
	gaps    table.GapPolicy
	workers int
	log     *internal.Logger
}

// PivotRequest describes one sheet to pivot. An empty GapPolicy uses the
// service default.
type PivotRequest struct {
	Path      string `json:"path"`
	Sheet     string `json:"sheet"`
	HeaderRow int    `json:"header_row"`
	GapPolicy string `json:"gap_policy,omitempty"`

	// Source overrides the recorded source name, e.g. the original name of an upload
	Source string `json:"-"`
}

// TableServiceOption configures a TableService
type TableServiceOption func(*TableService)

// WithDefaultGapPolicy sets the gap policy used when a request names none
func WithDefaultGapPolicy(p table.GapPolicy) TableServiceOption {
	return func(s *TableService) { s.gaps = p }
}

// WithWorkers bounds how many sheets PivotSheets reads at once
func WithWorkers(n int) TableServiceOption {
	return func(s *TableService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger replaces the service logger
func WithLogger(l *internal.Logger) TableServiceOption {
	return func(s *TableService) { s.log = l }
}

// NewTableService creates a table service
func NewTableService(opener ports.SheetOpener, repo ports.TableRepository, opts ...TableServiceOption) *TableService {
	s := &TableService{
		opener:  opener,
		repo:    repo,
		gaps:    table.GapPad,
		workers: 4,
		log:     internal.DefaultLogger.Named("pivot"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PivotFile reads one sheet, builds its column table and stores the snapshot
func (s *TableService) PivotFile(ctx context.Context, req PivotRequest) (*dataset.TableSnapshot, error) {
	if strings.TrimSpace(req.Path) == "" {
		return nil, errors.InvalidInput("path is required")
	}
	if req.HeaderRow < 0 {
		return nil, errors.InvalidInput("header_row must not be negative")
	}
	gaps := s.gaps
	if req.GapPolicy != "" {
		p, err := table.ParseGapPolicy(req.GapPolicy)
		if err != nil {
			return nil, errors.InvalidInput(err.Error())
		}
		gaps = p
	}

	start := time.Now()
	opened, err := s.opener.OpenSheet(ctx, req.Path, req.Sheet)
	if err != nil {
		return nil, errors.Wrapf(errors.FromDomain(err), "failed to open %s", filepath.Base(req.Path))
	}

	t, err := table.Build(opened.Grid, req.HeaderRow,
		table.WithGapPolicy(gaps),
		table.WithDuplicateHook(func(header string, dropped, kept int) {
			s.log.Warn("duplicate header %q in sheet %s: column %d replaced by column %d", header, opened.Sheet, dropped, kept)
		}),
	)
	if err != nil {
		return nil, errors.FromDomain(err)
	}

	source := req.Source
	if source == "" {
		source = filepath.Base(req.Path)
	}
	snapshot := dataset.NewSnapshot(source, opened.Sheet, req.HeaderRow, gaps, t)
	if err := s.repo.Save(ctx, snapshot); err != nil {
		return nil, errors.DatabaseError("failed to save table", err)
	}

	s.log.Info("pivoted %s/%s: %d columns, %d rows in %v", source, opened.Sheet, len(snapshot.Headers), snapshot.RowCount, time.Since(start))
	return snapshot, nil
}

// PivotSheets pivots several sheets of one file concurrently, using req for
// everything but the sheet name. An empty sheets list pivots every sheet in the
// file; a listed name the file does not have fails with ErrSheetNotFound before
// anything is stored. Results keep the order of the sheet names; the first
// failure cancels the remaining reads.
func (s *TableService) PivotSheets(ctx context.Context, req PivotRequest, sheets []string) ([]*dataset.TableSnapshot, error) {
	if strings.TrimSpace(req.Path) == "" {
		return nil, errors.InvalidInput("path is required")
	}
	names, err := s.opener.SheetNames(ctx, req.Path)
	if err != nil {
		return nil, errors.Wrapf(errors.FromDomain(err), "failed to list sheets of %s", filepath.Base(req.Path))
	}
	if len(sheets) > 0 {
		if names, err = selectSheets(names, sheets); err != nil {
			return nil, errors.FromDomain(err)
		}
	}

	results := make([]*dataset.TableSnapshot, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, name := range names {
		g.Go(func() error {
			sheetReq := req
			sheetReq.Sheet = name
			snapshot, err := s.PivotFile(gctx, sheetReq)
			if err != nil {
				return errors.Wrapf(err, "sheet %q", name)
			}
			results[i] = snapshot
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// selectSheets resolves requested names against the sheets of a file, ignoring
// case, in request order. Repeated names are read once.
func selectSheets(available, requested []string) ([]string, error) {
	out := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, want := range requested {
		idx := slices.IndexFunc(available, func(name string) bool { return strings.EqualFold(name, want) })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", core.ErrSheetNotFound, want)
		}
		name := available[idx]
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out, nil
}

// Get returns a stored snapshot with its table
func (s *TableService) Get(ctx context.Context, id string) (*dataset.TableSnapshot, error) {
	tableID, err := core.ParseTableID(id)
	if err != nil {
		return nil, errors.InvalidInput(err.Error())
	}
	snapshot, err := s.repo.Get(ctx, tableID)
	if err != nil {
		return nil, s.repoError(err, "failed to load table")
	}
	return snapshot, nil
}

// List returns stored snapshots newest first, without tables
func (s *TableService) List(ctx context.Context, limit, offset int) ([]*dataset.TableSnapshot, error) {
	if offset < 0 {
		return nil, errors.InvalidInput("offset must not be negative")
	}
	snapshots, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, errors.DatabaseError("failed to list tables", err)
	}
	return snapshots, nil
}

// Filter keeps the rows of a stored table whose column holds keyword, ignoring
// case, and stores the result as a new snapshot linked to its parent
func (s *TableService) Filter(ctx context.Context, id, column, keyword string) (*dataset.TableSnapshot, error) {
	if column == "" {
		return nil, errors.InvalidInput("column is required")
	}
	parent, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	filtered, err := table.Filter(parent.Table, column, keyword)
	if err != nil {
		return nil, errors.FromDomain(err)
	}

	child := parent.Derive(dataset.FilterSpec{Column: column, Keyword: keyword}, filtered)
	if err := s.repo.Save(ctx, child); err != nil {
		return nil, errors.DatabaseError("failed to save filtered table", err)
	}
	s.log.Debug("filtered %s on %s=%q: %d of %d rows", parent.ID, column, keyword, child.RowCount, parent.RowCount)
	return child, nil
}

// Describe profiles every column of a stored table
func (s *TableService) Describe(ctx context.Context, id string) ([]profiling.ColumnProfile, error) {
	snapshot, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return profiling.Describe(snapshot.Table), nil
}

// Delete removes a stored snapshot
func (s *TableService) Delete(ctx context.Context, id string) error {
	tableID, err := core.ParseTableID(id)
	if err != nil {
		return errors.InvalidInput(err.Error())
	}
	if err := s.repo.Delete(ctx, tableID); err != nil {
		return s.repoError(err, "failed to delete table")
	}
	return nil
}

func (s *TableService) repoError(err error, message string) error {
	if core.IsNotFoundError(err) {
		return errors.WithCode(errors.CodeNotFound, fmt.Errorf("%s: %w", message, err))
	}
	return errors.DatabaseError(message, err)
}
