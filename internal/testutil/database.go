package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/database"
)

// TestUserID is the user every test repository is scoped to.
const TestUserID = "test-user"

// SetupTestDB creates an in-memory SQLite database for testing.
// The schema is created by running the embedded goose migrations, so tests
// always exercise the production schema.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Single connection keeps every query on the same in-memory database
	if err := database.Configure(db); err != nil {
		t.Fatalf("Failed to configure test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil { // Faster for tests
		t.Fatalf("Failed to set pragma: %v", err)
	}

	if _, err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
//
// Example usage:
//
//	count := testutil.CountRows(t, db, "portfolio")
//	assert.Equal(t, 2, count)
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	//nolint:gosec // G202: Table names come from test code
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "portfolio", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
