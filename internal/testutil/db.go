package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/wptechprodigy/mail-sonic/internal/db"
)

// NewTestDB opens a migrated SQLite contact datastore in a fresh temp file.
// The handle is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "contacts.db")
	handle, err := db.OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open test datastore: %v", err)
	}

	t.Cleanup(func() {
		db.CloseConnection(handle)
	})

	return handle
}

// NewTestPostgresDB starts a Postgres container, migrates it and returns a handle.
// The test is skipped when no container runtime is available.
func NewTestPostgresDB(t *testing.T) *sqlx.DB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("mailsonic_test"),
		postgres.WithUsername("mailsonic"),
		postgres.WithPassword("mailsonic"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start Postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Errorf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	handle, err := db.OpenPostgres(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to open Postgres datastore: %v", err)
	}

	t.Cleanup(func() {
		db.CloseConnection(handle)
	})

	return handle
}
