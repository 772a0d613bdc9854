package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Options tweak how connections are opened.
type Options struct {
	Logger *slog.Logger
	// Debug logs every SQL statement at debug level.
	Debug bool
}

func gormConfig(opts Options) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         NewSlogLogger(opts.Logger, opts.Debug),
	}
}

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string, opts Options) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig(opts))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	if err := RegisterQueryCounter(db); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectFromEnv dials PostgreSQL using POSTGRES_DSN and returns the DB plus a cleanup function.
// See ConnectWithFallback for what happens when PostgreSQL is unavailable.
func ConnectFromEnv(ctx context.Context, opts Options) (*gorm.DB, func(), error) {
	return ConnectWithFallback(ctx, os.Getenv("POSTGRES_DSN"), os.Getenv("SQLITE_DSN"), opts)
}

// ConnectWithFallback dials PostgreSQL at dsn. When dsn is empty or the
// connection fails, it opens the embedded SQLite database at sqliteDSN
// instead (in-memory when empty).
func ConnectWithFallback(ctx context.Context, dsn, sqliteDSN string, opts Options) (*gorm.DB, func(), error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(dsn) == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to embedded sqlite")
		return openFallback(logger, sqliteDSN, opts)
	}
	db, err := Connect(ctx, dsn, opts)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to embedded sqlite", slog.String("error", err.Error()))
		return openFallback(logger, sqliteDSN, opts)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to embedded sqlite", slog.String("error", err.Error()))
		return openFallback(logger, sqliteDSN, opts)
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }, nil
}

func openFallback(logger *slog.Logger, dsn string, opts Options) (*gorm.DB, func(), error) {
	db, err := OpenSQLite(dsn, opts)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open sqlite fallback: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, func() {}, err
	}
	logger.Info("embedded sqlite database opened")
	return db, func() { _ = sqlDB.Close() }, nil
}

// IsPostgres reports whether db talks to PostgreSQL.
func IsPostgres(db *gorm.DB) bool {
	return db != nil && db.Dialector != nil && db.Dialector.Name() == "postgres"
}
