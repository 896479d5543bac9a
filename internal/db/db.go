package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/wptechprodigy/mail-sonic/internal/config"
)

// NewConnection opens the contact datastore described by cfg, applies any
// pending migrations and returns the shared handle. One handle is opened per
// process; every contact worker borrows it.
func NewConnection(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.ContactsDriver {
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.ContactsDSN)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.ContactsDSN)
	default:
		return nil, fmt.Errorf("unsupported contacts driver %q", cfg.ContactsDriver)
	}
}

// OpenSQLite opens (or creates) the SQLite file at path.
// SQLite allows a single writer, so the pool is capped at one connection and
// concurrent workers queue inside database/sql instead of failing with SQLITE_BUSY.
// Pragmas travel in the DSN so every connection the pool opens gets them.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	params := url.Values{"_pragma": {"busy_timeout(5000)", "journal_mode(WAL)"}}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params.Encode()
}

// OpenPostgres connects to a Postgres database through the pgx stdlib driver.
func OpenPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres db: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// CloseConnection closes the given datastore handle.
func CloseConnection(db *sqlx.DB) {
	if db != nil {
		_ = db.Close()
	}
}
