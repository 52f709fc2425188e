package warehouse

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftacc41/saas-analytics-quality/pkg/generator"
	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// testDataset generates a small but complete dataset with a fixed seed.
func testDataset(t *testing.T) *saas.Dataset {
	t.Helper()
	cfg := generator.DefaultConfig()
	cfg.NumCustomers = 100
	cfg.NumSubscriptions = 300
	cfg.NumPayments = 400
	cfg.NumUsageEvents = 600
	cfg.NumSupportTickets = 150
	gen := generator.New(cfg, testLogger())

	plans := gen.Plans()
	customers := gen.Customers(cfg.NumCustomers)
	subscriptions := gen.Subscriptions(customers, plans, cfg.NumSubscriptions)
	payments, _ := gen.Payments(subscriptions, cfg.NumPayments)
	events, _ := gen.UsageEvents(customers, cfg.NumUsageEvents)
	tickets, _ := gen.SupportTickets(customers, cfg.NumSupportTickets)

	return &saas.Dataset{
		Plans:          plans,
		Customers:      customers,
		Subscriptions:  subscriptions,
		Payments:       payments,
		UsageEvents:    events,
		SupportTickets: tickets,
	}
}

func TestCSVWriterWritesAllTables(t *testing.T) {
	ds := testDataset(t)
	dir := t.TempDir()

	writer, err := NewCSVWriter(dir, testLogger())
	require.NoError(t, err)
	counts, err := writer.WriteAll(context.Background(), ds)
	require.NoError(t, err)

	for _, table := range saas.TableNames() {
		path := filepath.Join(dir, table+".csv")
		f, err := os.Open(path)
		require.NoError(t, err, "missing CSV for %s", table)

		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)
		// Header plus one record per row.
		assert.Len(t, records, counts[table]+1, "row count mismatch for %s", table)
	}
}

func TestCSVWriterNullableFieldsEmpty(t *testing.T) {
	ds := testDataset(t)
	dir := t.TempDir()

	writer, err := NewCSVWriter(dir, testLogger())
	require.NoError(t, err)
	_, err = writer.WriteAll(context.Background(), ds)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "customers.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	header := records[0]
	endDateCol, statusCol := -1, -1
	for i, name := range header {
		switch name {
		case "end_date":
			endDateCol = i
		case "account_status":
			statusCol = i
		}
	}
	require.GreaterOrEqual(t, endDateCol, 0)
	require.GreaterOrEqual(t, statusCol, 0)

	for _, rec := range records[1:] {
		if rec[statusCol] == string(saas.AccountStatusChurned) {
			assert.NotEmpty(t, rec[endDateCol])
		} else {
			assert.Empty(t, rec[endDateCol])
		}
	}
}

func TestCSVOutputDeterministicUnderFixedSeed(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()

	writerA, err := NewCSVWriter(dirA, testLogger())
	require.NoError(t, err)
	_, err = writerA.WriteAll(context.Background(), testDataset(t))
	require.NoError(t, err)

	writerB, err := NewCSVWriter(dirB, testLogger())
	require.NoError(t, err)
	_, err = writerB.WriteAll(context.Background(), testDataset(t))
	require.NoError(t, err)

	for _, table := range saas.TableNames() {
		bytesA, err := os.ReadFile(filepath.Join(dirA, table+".csv"))
		require.NoError(t, err)
		bytesB, err := os.ReadFile(filepath.Join(dirB, table+".csv"))
		require.NoError(t, err)
		assert.Equal(t, bytesA, bytesB, "CSV output for %s differs across identical runs", table)
	}
}
