// Package testutil provides helpers for setting up test databases, building
// test fixtures, and driving chi handlers in tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
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

	// A second pooled connection would see its own empty :memory: database,
	// so pin the pool to one connection.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE project (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_archived BOOLEAN NOT NULL DEFAULT FALSE,
		hurdle_method VARCHAR(12) NOT NULL DEFAULT 'irr',
		num_tiers INTEGER NOT NULL DEFAULT 2,
		return_of_capital VARCHAR(10) NOT NULL DEFAULT 'lp_first',
		gp_catch_up BOOLEAN NOT NULL DEFAULT FALSE,
		lp_ownership TEXT NOT NULL DEFAULT '0.9',
		preferred_return_pct TEXT NOT NULL DEFAULT '8'
	);

	CREATE TABLE waterfall_tier (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		project_id VARCHAR(36) NOT NULL,
		tier_number INTEGER NOT NULL,
		tier_name VARCHAR(100) NOT NULL DEFAULT '',
		irr_hurdle TEXT,
		emx_hurdle TEXT,
		lp_split_pct TEXT NOT NULL,
		gp_split_pct TEXT NOT NULL,
		FOREIGN KEY (project_id) REFERENCES project (id) ON DELETE CASCADE,
		CONSTRAINT unique_project_tier UNIQUE (project_id, tier_number)
	);

	CREATE TABLE cash_flow (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		project_id VARCHAR(36) NOT NULL,
		period_id INTEGER NOT NULL,
		date DATE NOT NULL,
		amount TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_id) REFERENCES project (id) ON DELETE CASCADE,
		CONSTRAINT unique_project_period UNIQUE (project_id, period_id)
	);

	CREATE INDEX idx_cash_flow_project_date ON cash_flow (project_id, date);

	CREATE TABLE waterfall_period_materialized (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		project_id VARCHAR(36) NOT NULL,
		period_id INTEGER NOT NULL,
		date DATE NOT NULL,
		net_cash_flow TEXT NOT NULL,
		cumulative_cash_flow TEXT NOT NULL,
		lp_contribution TEXT NOT NULL,
		gp_contribution TEXT NOT NULL,
		lp_distribution TEXT NOT NULL,
		gp_distribution TEXT NOT NULL,
		lp_irr TEXT,
		gp_irr TEXT,
		calculated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_id) REFERENCES project (id) ON DELETE CASCADE,
		CONSTRAINT unique_project_period_materialized UNIQUE (project_id, period_id)
	);

	CREATE INDEX idx_materialized_project_date ON waterfall_period_materialized (project_id, date);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanTables removes all rows from the given tables in order.
// Useful when one database is shared across subtests.
func CleanTables(t *testing.T, db *sql.DB, tables ...string) {
	t.Helper()

	for _, table := range tables {
		//nolint:gosec // G202: Table names come from test code, no SQL injection risk
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	count := CountRows(t, db, table)
	if count != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, count)
	}
}
