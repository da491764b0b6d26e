package testutil

import (
	"database/sql"
	"testing"

	"github.com/mkaminska/studycal/internal/db"
)

// NewTestDB opens a fresh in-memory study log with the full schema applied.
// Closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW wraps a test database in a UnitOfWork for service tests.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
