// Package db embeds the SQL migrations for every supported dialect.
package db

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

// Migrations returns the migration scripts for dialect ("sqlite" or "postgres").
func Migrations(dialect string) (fs.FS, error) {
	switch dialect {
	case "sqlite", "postgres":
		return fs.Sub(migrationFiles, "migrations/"+dialect)
	default:
		return nil, fmt.Errorf("db: no migrations for dialect %q", dialect)
	}
}
