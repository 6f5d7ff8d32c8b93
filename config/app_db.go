package config

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/teamup-site/db"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/pkg/migrations"
	"github.com/akeren/teamup-site/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultDatabasePath = "instance/teamup.db"
)

type DBConfig struct {
	Driver          string
	Path            string // SQLite file; its directory is created on startup.
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SSLMode         string // Default: "require" for prod safety
	// MigrationsDir overrides the embedded SQL scripts when set.
	MigrationsDir string
}

func NewDBConfig() *DBConfig {
	return &DBConfig{
		Driver:          strings.ToLower(sanitizeEnv(utils.GetEnvTrimmedOrDefault("DATABASE_DRIVER", DriverSQLite))),
		Path:            sanitizeEnv(utils.GetEnvTrimmedOrDefault("DATABASE_PATH", DefaultDatabasePath)),
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Minute,
		SSLMode:         "require",
		MigrationsDir:   utils.GetEnvTrimmed("MIGRATIONS_DIR"),
	}
}

func (cfg *DBConfig) dialect() string {
	if cfg.Driver == DriverPostgres {
		return migrations.DialectPostgres
	}
	return migrations.DialectSQLite
}

func (cfg *DBConfig) dialector(logger *log.Logger) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		path := cfg.Path
		if strings.TrimSpace(path) == "" {
			path = DefaultDatabasePath
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory %q: %w", dir, err)
			}
		}
		logger.Info("Using SQLite database", "path", path)
		return sqlite.Open(path + "?_busy_timeout=5000&_foreign_keys=on"), nil

	case DriverPostgres:
		appDatabaseURL := sanitizeEnv(GetValueFromEnvironmentVariable("APP_DATABASE_URL", ""))
		dsn, err := buildDSNFromEnv(appDatabaseURL, logger, cfg)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil

	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q (allowed: sqlite, postgres)", cfg.Driver)
	}
}

func (cfg *DBConfig) open(logger *log.Logger) (*gorm.DB, error) {
	dialector, err := cfg.dialector(logger)
	if err != nil {
		logger.Error("Invalid database configuration", "error", err)
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(logger),
	})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return gdb, nil
}

// newGormLogger sends gorm's slow-query and error lines through the
// application's JSON logger. Missing rows are an expected outcome of toggles
// on absent ids and are not logged.
func newGormLogger(logger *log.Logger) gormlogger.Interface {
	return gormlogger.New(
		slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func NewDatabase(logger *log.Logger, cfg *DBConfig) (*gorm.DB, error) {
	if cfg == nil {
		cfg = NewDBConfig()
	}

	gdb, err := cfg.open(logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Error("Failed to get database instance", "error", err)
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.dialect() == migrations.DialectSQLite {
		// SQLite allows one writer; a single connection avoids SQLITE_BUSY under load.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		logger.Error("Database ping failed", "error", err)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Database connection established successfully", "driver", cfg.dialect())
	return gdb, nil
}

// RunMigrations applies the embedded SQL migrations for the configured
// driver. The migrate driver closes the handle it is given, so it runs on a
// connection of its own.
func RunMigrations(ctx context.Context, logger *log.Logger, cfg *DBConfig) error {
	if cfg == nil {
		cfg = NewDBConfig()
	}

	scripts, err := db.Migrations(cfg.dialect())
	if err != nil {
		return err
	}

	sqlDB, err := openMigrationDB(cfg, logger)
	if err != nil {
		return err
	}
	// The migrate driver closes the handle once it owns it; closing again is a
	// no-op. This covers failures before the driver takes over.
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close migration connection", "error", err)
		}
	}()

	return migrations.Up(ctx, sqlDB, migrations.Config{
		Dialect: cfg.dialect(),
		FS:      scripts,
		Dir:     cfg.MigrationsDir,
		Logger:  logger,
	})
}

var openMigrationDB = func(cfg *DBConfig, logger *log.Logger) (*sql.DB, error) {
	gdb, err := cfg.open(logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB, nil
}

func buildDSNFromEnv(appDatabaseURL string, logger *log.Logger, cfg *DBConfig) (string, error) {
	if strings.TrimSpace(appDatabaseURL) != "" {
		logger.Info("Using APP_DATABASE_URL for database connection")
		return appDatabaseURL, nil
	}

	host, portStr, user, pass, dbName, ssl := getDatabaseEnvParams()
	if ssl == "" {
		ssl = cfg.SSLMode
	}

	missing := []string{}

	if host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}

	if portStr == "" {
		missing = append(missing, "POSTGRES_PORT")
	}

	if user == "" {
		missing = append(missing, "POSTGRES_USER")
	}

	if dbName == "" {
		missing = append(missing, "POSTGRES_DB_NAME")
	}

	if len(missing) > 0 {
		logger.Error("Missing required database environment variables", "missing_vars", strings.Join(missing, ", "))

		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		logger.Error("Invalid POSTGRES_PORT", "error", err)
		return "", fmt.Errorf("invalid POSTGRES_PORT %q: %w", portStr, err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, dbName, ssl,
	)

	logger.Info("Connecting to database",
		"host", host,
		"port", port,
		"user", user,
		"dbname", dbName,
		"sslmode", ssl,
	)
	return dsn, nil
}

func getDatabaseEnvParams() (host, port, user, pass, dbName, ssl string) {
	host = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_HOST", ""))
	port = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_PORT", ""))
	user = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_USER", ""))
	pass = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_PASSWORD", ""))
	dbName = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_DB_NAME", ""))
	ssl = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_SSLMODE", ""))

	return host, port, user, pass, dbName, ssl
}

func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	return s
}

func AutoMigrate(logger *log.Logger, gdb *gorm.DB, models ...interface{}) error {
	if gdb == nil {
		logger.Error("Cannot migrate: db is empty")
		return fmt.Errorf("cannot migrate: db is empty")
	}

	if err := gdb.AutoMigrate(models...); err != nil {
		logger.Error("Database migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database migration completed successfully")

	return nil
}

func CloseDatabase(gdb *gorm.DB, logger *log.Logger) {
	if gdb == nil {
		return
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	} else {
		logger.Info("Database closed successfully")
	}
}
