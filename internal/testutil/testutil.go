package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/akeren/teamup-site/db"
	"github.com/akeren/teamup-site/internal/models"
	"github.com/akeren/teamup-site/pkg/migrations"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLiteDB opens a file-backed SQLite database under t.TempDir() with every
// model migrated. The connection is closed via t.Cleanup.
func OpenSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb := openSQLiteFile(t, filepath.Join(t.TempDir(), "test.db"))
	if err := gdb.AutoMigrate(models.ModelRegistry...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return gdb
}

// OpenMigratedSQLiteDB builds the schema from the embedded SQL migrations,
// the same scripts the server applies at startup.
func OpenMigratedSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "migrated.db")

	scripts, err := db.Migrations(migrations.DialectSQLite)
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}

	// The migrate driver closes the handle it is given.
	migrationDB, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open migration db: %v", err)
	}
	if err := migrations.Up(context.Background(), migrationDB, migrations.Config{
		Dialect: migrations.DialectSQLite,
		FS:      scripts,
	}); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	return openSQLiteFile(t, path)
}

func openSQLiteFile(t *testing.T, path string) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// SQLite serializes writes at the database level. Limiting to one open
	// connection prevents "database is locked" errors under concurrent load.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return gdb
}
