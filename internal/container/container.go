package container

import (
	"context"
	"fmt"
	"net/http"

	"sheetpivot/adapters/excel"
	"sheetpivot/adapters/memory"
	"sheetpivot/adapters/postgres"
	"sheetpivot/app"
	"sheetpivot/internal"
	"sheetpivot/internal/api"
	"sheetpivot/internal/config"
	"sheetpivot/internal/errors"
	"sheetpivot/internal/migration"
	"sheetpivot/ports"
	"sheetpivot/ui"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure; DB is nil when tables are kept in memory
	DB *sqlx.DB

	Opener    ports.SheetOpener
	TableRepo ports.TableRepository
	Tables    *app.TableService

	API *api.TableHandler
	UI  *ui.App
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Container{Config: cfg, Logger: logger}, nil
}

// Init connects storage and builds the services. With an empty DATABASE_URL
// the in-memory repository is used.
func (c *Container) Init(ctx context.Context) error {
	if c.Config.Database.URL != "" {
		db, err := c.connect(ctx)
		if err != nil {
			return err
		}
		c.DB = db
		c.TableRepo = postgres.NewTableRepository(db)
		c.Logger.Info("storing tables in PostgreSQL")
	} else {
		c.TableRepo = memory.NewTableRepository()
		c.Logger.Info("DATABASE_URL not set, storing tables in memory")
	}
	return c.initServices()
}

func (c *Container) connect(ctx context.Context) (*sqlx.DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, c.Config.Database.ConnectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(connectCtx, "postgres", c.Config.Database.URL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)

	migrator := migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	c.Logger.Debug("migrations at version %s applied", migrator.Version())
	return db, nil
}

func (c *Container) initServices() error {
	c.Opener = excel.NewDataReader(excel.DefaultExcelConfig())
	c.Tables = app.NewTableService(c.Opener, c.TableRepo,
		app.WithDefaultGapPolicy(c.Config.Pivot.GapPolicy),
		app.WithWorkers(c.Config.Pivot.Workers),
		app.WithLogger(c.Logger.Named("pivot")),
	)
	c.API = api.NewTableHandler(c.Tables, c.Config.Server.MaxUploadMB, c.Config.Server.DataDir)

	uiApp, err := ui.NewApp(c.Tables)
	if err != nil {
		return errors.Wrap(err, "failed to create UI")
	}
	c.UI = uiApp
	return nil
}

// Preload pivots the configured SHEET_FILE, if any, so it is browsable on startup
func (c *Container) Preload(ctx context.Context) {
	pivot := c.Config.Pivot
	if pivot.SheetFile == "" {
		return
	}
	snapshot, err := c.Tables.PivotFile(ctx, app.PivotRequest{
		Path:      pivot.SheetFile,
		Sheet:     pivot.SheetName,
		HeaderRow: pivot.HeaderRow,
	})
	if err != nil {
		c.Logger.Warn("failed to preload %s: %v", pivot.SheetFile, err)
		return
	}
	c.Logger.Info("preloaded %s as table %s", pivot.SheetFile, snapshot.ID)
}

// Handler routes /api/ to the JSON API and everything else to the UI
func (c *Container) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(c.API, c.Logger.Named("http")))
	mux.Handle("/", c.UI.Router())
	return mux
}

// Shutdown releases held resources
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
