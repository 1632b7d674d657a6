package testutil

import (
	"testing"

	"tas-go/internal/database"
	"tas-go/internal/tas"
)

// NewTestDatabase creates a new in-memory SQLite database with the schema
// migrated. The database is automatically closed when the test completes.
func NewTestDatabase(t *testing.T) tas.Database {
	t.Helper()

	db, err := database.NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
