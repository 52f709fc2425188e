package quality

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func fixedNow(t *testing.T, s string) func() time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	require.NoError(t, err)
	return func() time.Time { return parsed }
}

func TestFreshnessRecentDataAgainstWallClock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT MAX\(updated_at\) FROM customers`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("2025-01-09 23:00:00"))

	monitor := NewFreshnessMonitor(db, testLogger())
	monitor.now = fixedNow(t, "2025-01-10 00:00:00")

	results, err := monitor.Check(context.Background(), []FreshnessCheck{
		{Table: "customers", LoadedAtField: "updated_at", WarnHours: 24, ErrorHours: 48},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, FreshnessOK, r.Status)
	require.NotNil(t, r.AgeHours)
	assert.InDelta(t, 1.0, *r.AgeHours, 0.001)
	assert.Equal(t, monitor.now().UTC(), r.ReferenceTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFreshnessHistoricalDatasetUsesNewestTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Everything is months older than "now": the newest timestamp becomes
	// the reference time, so the newest table is fresh and only tables
	// lagging it get flagged.
	mock.ExpectQuery(`SELECT MAX\(updated_at\) FROM customers`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("2024-12-31 00:00:00"))
	mock.ExpectQuery(`SELECT MAX\(created_at\) FROM payments`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("2024-12-28 00:00:00"))

	monitor := NewFreshnessMonitor(db, testLogger())
	monitor.now = fixedNow(t, "2025-06-01 00:00:00")

	results, err := monitor.Check(context.Background(), []FreshnessCheck{
		{Table: "customers", LoadedAtField: "updated_at", WarnHours: 24, ErrorHours: 48},
		{Table: "payments", LoadedAtField: "created_at", WarnHours: 24, ErrorHours: 48},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	byTable := make(map[string]FreshnessResult, len(results))
	for _, r := range results {
		byTable[r.TableName] = r
		assert.Equal(t, "2024-12-31 00:00:00",
			r.ReferenceTime.Format("2006-01-02 15:04:05"))
	}

	assert.Equal(t, FreshnessOK, byTable["customers"].Status)
	require.NotNil(t, byTable["customers"].AgeHours)
	assert.InDelta(t, 0.0, *byTable["customers"].AgeHours, 0.001)

	// 72 hours behind the reference exceeds the 48h error threshold.
	assert.Equal(t, FreshnessError, byTable["payments"].Status)
	require.NotNil(t, byTable["payments"].AgeHours)
	assert.InDelta(t, 72.0, *byTable["payments"].AgeHours, 0.001)

	// Report is ordered worst-first.
	assert.Equal(t, "payments", results[0].TableName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFreshnessEmptyTableIsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT MAX\(created_at\) FROM usage_events`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	monitor := NewFreshnessMonitor(db, testLogger())
	monitor.now = fixedNow(t, "2025-01-10 00:00:00")

	results, err := monitor.Check(context.Background(), []FreshnessCheck{
		{Table: "usage_events", LoadedAtField: "created_at", WarnHours: 24, ErrorHours: 48},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, FreshnessError, results[0].Status)
	assert.Nil(t, results[0].MaxLoadedAt)
	assert.Nil(t, results[0].AgeHours)
}

func TestFreshnessUnreadableTableIsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT MAX\(updated_at\) FROM subscriptions`).
		WillReturnError(assert.AnError)

	monitor := NewFreshnessMonitor(db, testLogger())
	monitor.now = fixedNow(t, "2025-01-10 00:00:00")

	results, err := monitor.Check(context.Background(), []FreshnessCheck{
		{Table: "subscriptions", LoadedAtField: "updated_at", WarnHours: 24, ErrorHours: 48},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, FreshnessError, results[0].Status)
}

func TestFreshnessWarnThreshold(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// 30 hours old: past the 24h warn threshold, short of the 48h error one.
	mock.ExpectQuery(`SELECT MAX\(updated_at\) FROM customers`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("2025-01-08 18:00:00"))

	monitor := NewFreshnessMonitor(db, testLogger())
	monitor.now = fixedNow(t, "2025-01-10 00:00:00")

	results, err := monitor.Check(context.Background(), []FreshnessCheck{
		{Table: "customers", LoadedAtField: "updated_at", WarnHours: 24, ErrorHours: 48},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, FreshnessWarn, results[0].Status)
}

func TestFreshnessExitCode(t *testing.T) {
	assert.Equal(t, 0, FreshnessExitCode([]FreshnessResult{{Status: FreshnessOK}}))
	assert.Equal(t, 1, FreshnessExitCode([]FreshnessResult{{Status: FreshnessOK}, {Status: FreshnessWarn}}))
	assert.Equal(t, 2, FreshnessExitCode([]FreshnessResult{{Status: FreshnessWarn}, {Status: FreshnessError}}))
	assert.Equal(t, 0, FreshnessExitCode(nil))
}

func TestDefaultChecksCoverAllTables(t *testing.T) {
	checks := DefaultChecks()
	require.Len(t, checks, 6)
	for _, c := range checks {
		assert.NotEmpty(t, c.Table)
		assert.NotEmpty(t, c.LoadedAtField)
		assert.Greater(t, c.ErrorHours, c.WarnHours)
	}
}

func TestParseTimestampVariants(t *testing.T) {
	ts, err := parseTimestamp("2024-06-01 12:30:00")
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.Equal(t, 12, ts.Hour())

	ts, err = parseTimestamp([]byte("2024-06-01"))
	require.NoError(t, err)
	require.NotNil(t, ts)

	native := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ts, err = parseTimestamp(native)
	require.NoError(t, err)
	assert.Equal(t, native, *ts)

	ts, err = parseTimestamp(nil)
	require.NoError(t, err)
	assert.Nil(t, ts)

	_, err = parseTimestamp("not a timestamp")
	assert.Error(t, err)
}
