package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

type migrator interface {
	Up() error
	Close() (sourceErr error, databaseErr error)
}

var driverFactory = func(db *sql.DB, cfg Config) (database.Driver, error) {
	if cfg.Dialect == DialectPostgres {
		return postgres.WithInstance(db, &postgres.Config{MigrationsTable: cfg.MigrationsTable})
	}
	return sqlite3.WithInstance(db, &sqlite3.Config{MigrationsTable: cfg.MigrationsTable})
}

var sourceFactory = func(fsys fs.FS) (source.Driver, error) {
	return iofs.New(fsys, ".")
}

// migratorFactory reads scripts from src when it is set and from sourceURL otherwise.
var migratorFactory = func(sourceURL string, src source.Driver, databaseName string, driver database.Driver) (migrator, error) {
	if src != nil {
		return migrate.NewWithInstance("iofs", src, databaseName, driver)
	}
	return migrate.NewWithDatabaseInstance(sourceURL, databaseName, driver)
}

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Config struct {
	// Dialect is DialectSQLite (default) or DialectPostgres.
	Dialect string
	// FS holds embedded scripts. Dir, when set, wins over FS.
	FS              fs.FS
	Dir             string
	MigrationsTable string
	Logger          Logger
}

// Up applies every pending migration. The database driver takes ownership of
// db and closes it when the run ends, so callers must pass a dedicated handle.
func Up(ctx context.Context, db *sql.DB, cfg Config) error {
	if db == nil {
		return fmt.Errorf("migrations: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Dialect) == "" {
		cfg.Dialect = DialectSQLite
	}
	if cfg.Dialect != DialectSQLite && cfg.Dialect != DialectPostgres {
		return fmt.Errorf("migrations: unsupported dialect %q", cfg.Dialect)
	}
	if strings.TrimSpace(cfg.MigrationsTable) == "" {
		cfg.MigrationsTable = "schema_migrations"
	}
	if strings.TrimSpace(cfg.Dir) == "" && cfg.FS == nil {
		cfg.Dir = "migrations"
	}

	var (
		sourceURL string
		src       source.Driver
		location  string
	)

	if strings.TrimSpace(cfg.Dir) != "" {
		absDir, err := filepath.Abs(cfg.Dir)
		if err != nil {
			return fmt.Errorf("migrations: resolve dir: %w", err)
		}

		// Build a proper file:// URL with correct escaping and path separators.
		// Use ToSlash to normalize Windows backslashes to forward slashes.
		sourceURL = (&url.URL{
			Scheme: "file",
			Path:   filepath.ToSlash(absDir),
		}).String()
		location = absDir
	} else {
		var err error
		src, err = sourceFactory(cfg.FS)
		if err != nil {
			return fmt.Errorf("migrations: embedded source: %w", err)
		}
		location = "embedded"
	}

	driver, err := driverFactory(db, cfg)
	if err != nil {
		return fmt.Errorf("migrations: %s driver: %w", cfg.Dialect, err)
	}

	m, err := migratorFactory(sourceURL, src, cfg.Dialect, driver)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}
	closeOnce := sync.Once{}
	closeMigrator := func() {
		closeOnce.Do(func() {
			srcErr, dbErr := m.Close()
			if cfg.Logger != nil {
				if srcErr != nil {
					cfg.Logger.Warn("Migrations source close error", "error", srcErr)
				}
				if dbErr != nil {
					cfg.Logger.Warn("Migrations db close error", "error", dbErr)
				}
			}
		})
	}
	defer closeMigrator()

	if cfg.Logger != nil {
		cfg.Logger.Info("Running SQL migrations", "source", location, "dialect", cfg.Dialect, "table", cfg.MigrationsTable)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Up()
	}()

	select {
	case <-ctx.Done():
		// Best-effort interruption. migrate doesn't accept a context directly.
		closeMigrator()
		return ctx.Err()
	case err := <-errCh:
		if err != nil {
			if err == migrate.ErrNoChange {
				if cfg.Logger != nil {
					cfg.Logger.Info("No migrations to apply")
				}
				return nil
			}
			return fmt.Errorf("migrations: up: %w", err)
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("Migrations applied successfully")
	}
	return nil
}
