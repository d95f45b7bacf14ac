package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/daygoal/internal/db"
	"github.com/alexanderramin/daygoal/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLUnitOfWork(database)
}

// NewTestRepos binds SQLite repositories directly to database, outside any
// transaction. Useful for seeding and asserting stored state.
func NewTestRepos(database *sql.DB) repository.Repos {
	return repository.NewFactory(db.DialectSQLite)(database)
}
