package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testDB *DB
)

// GetTestDB returns the shared test database connection.
// Available after TestMain has run and SetupTestDB succeeded.
// Returns nil if called before TestMain.
func GetTestDB() *DB {
	return testDB
}

// SetupTestDB opens a sqlite database at path and runs the schema
// migration. Should be called once in TestMain, not in individual tests.
func SetupTestDB(path string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return db, nil
}

// CleanupTestDB empties all tables for a fresh test state.
// Call this at the start of each integration test.
// Fails the test if cleanup fails.
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx := context.Background()
	for _, table := range []string{"project_updates", "projects"} {
		_, err := db.conn.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}
	// Reset autoincrement counters so ids are predictable per test. The
	// sequence table only exists once something has been inserted.
	_, _ = db.conn.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name IN ('projects', 'project_updates')")

	db.dropOptionCache()
}

// TeardownTestDB closes the test database connection.
// Safe to call with nil DB (no-op).
func TeardownTestDB(db *DB) {
	if db != nil {
		db.Close()
	}
}
