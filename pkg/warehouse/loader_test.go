package warehouse

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for testing

	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive across queries.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLLoaderLoadsAllTables(t *testing.T) {
	ds := testDataset(t)
	db := setupTestDB(t)

	loader := NewSQLLoader(db, "sqlite3", testLogger())
	require.NoError(t, loader.Load(context.Background(), ds))

	for table, want := range ds.Counts() {
		var got int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&got))
		assert.Equal(t, want, got, "row count mismatch for %s", table)
	}
}

func TestSQLLoaderNullsOptionalFields(t *testing.T) {
	ds := testDataset(t)
	db := setupTestDB(t)

	loader := NewSQLLoader(db, "sqlite3", testLogger())
	require.NoError(t, loader.Load(context.Background(), ds))

	var activeWithEnd int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM customers WHERE account_status = 'active' AND end_date IS NOT NULL`).
		Scan(&activeWithEnd))
	assert.Zero(t, activeWithEnd)

	var unresolvedWithScore int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM support_tickets WHERE resolved_date IS NULL AND satisfaction_score IS NOT NULL`).
		Scan(&unresolvedWithScore))
	assert.Zero(t, unresolvedWithScore)
}

func TestSQLLoaderReplacesPriorContent(t *testing.T) {
	ds := testDataset(t)
	db := setupTestDB(t)

	loader := NewSQLLoader(db, "sqlite3", testLogger())
	require.NoError(t, loader.Load(context.Background(), ds))
	require.NoError(t, loader.Load(context.Background(), ds))

	var got int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+saas.TableCustomers).Scan(&got))
	assert.Equal(t, len(ds.Customers), got, "reload must replace, not append")
}

func TestNoopLoaderSkips(t *testing.T) {
	loader := &NoopLoader{Logger: testLogger()}
	assert.NoError(t, loader.Load(context.Background(), testDataset(t)))
}

func TestDriverFor(t *testing.T) {
	assert.Equal(t, "postgres", DriverFor("postgres://user:pw@localhost:5432/warehouse"))
	assert.Equal(t, "postgres", DriverFor("postgresql://user:pw@localhost:5432/warehouse"))
	assert.Equal(t, "sqlite3", DriverFor("./data/warehouse/saas_analytics.db"))
}
