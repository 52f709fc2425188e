package quality

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

// FreshnessStatus is the per-table outcome of a freshness check.
type FreshnessStatus string

const (
	FreshnessOK    FreshnessStatus = "ok"
	FreshnessWarn  FreshnessStatus = "warn"
	FreshnessError FreshnessStatus = "error"
)

// severityRank orders statuses worst-first for report sorting and exit codes.
func severityRank(s FreshnessStatus) int {
	switch s {
	case FreshnessError:
		return 0
	case FreshnessWarn:
		return 1
	default:
		return 2
	}
}

// FreshnessCheck declares one table to check: which timestamp field carries
// its load time and the age thresholds in hours.
type FreshnessCheck struct {
	Table         string
	LoadedAtField string
	WarnHours     int
	ErrorHours    int
}

// staleDatasetCutoffHours decides when the whole store is treated as a
// historical dataset: if no table has anything newer than this, ages are
// measured against the newest timestamp found instead of wall-clock now.
const staleDatasetCutoffHours = 48

// DefaultChecks returns the standard check list for the generated tables.
// Plans are a static dimension, so their thresholds are effectively never.
func DefaultChecks() []FreshnessCheck {
	return []FreshnessCheck{
		{Table: saas.TableCustomers, LoadedAtField: "updated_at", WarnHours: 24, ErrorHours: 48},
		{Table: saas.TableSubscriptions, LoadedAtField: "updated_at", WarnHours: 24, ErrorHours: 48},
		{Table: saas.TablePlans, LoadedAtField: "created_date", WarnHours: 24 * 3650, ErrorHours: 24 * 3650 * 2},
		{Table: saas.TablePayments, LoadedAtField: "created_at", WarnHours: 24, ErrorHours: 48},
		{Table: saas.TableUsageEvents, LoadedAtField: "created_at", WarnHours: 24, ErrorHours: 48},
		{Table: saas.TableSupportTickets, LoadedAtField: "created_at", WarnHours: 24, ErrorHours: 48},
	}
}

// FreshnessResult is one row of the freshness report.
type FreshnessResult struct {
	TableName       string
	LoadedAtField   string
	MaxLoadedAt     *time.Time
	AgeHours        *float64
	Status          FreshnessStatus
	WarnAfterHours  int
	ErrorAfterHours int
	ReferenceTime   time.Time
}

// FreshnessMonitor inspects an analytical store for stale tables.
type FreshnessMonitor struct {
	db     *sql.DB
	logger *logrus.Logger
	now    func() time.Time
}

// NewFreshnessMonitor creates a monitor over an open read-only store
// connection.
func NewFreshnessMonitor(db *sql.DB, logger *logrus.Logger) *FreshnessMonitor {
	if logger == nil {
		logger = logrus.New()
	}
	return &FreshnessMonitor{db: db, logger: logger, now: time.Now}
}

// Check runs the freshness checks and returns the report sorted by status
// severity, then descending age. An unreadable or empty table is an error:
// absence of data about freshness is itself a freshness failure.
func (m *FreshnessMonitor) Check(ctx context.Context, checks []FreshnessCheck) ([]FreshnessResult, error) {
	nowUTC := m.now().UTC()

	// First pass: max loaded-at per table.
	maxLoaded := make(map[string]*time.Time, len(checks))
	for _, c := range checks {
		ts, err := m.maxTimestamp(ctx, c.Table, c.LoadedAtField)
		if err != nil {
			m.logger.WithError(err).WithField("table", c.Table).
				Error("freshness query failed, treating table as unreadable")
			maxLoaded[c.Table] = nil
			continue
		}
		maxLoaded[c.Table] = ts
	}

	// Historical/static datasets: when nothing in the store is newer than the
	// cutoff, age everything against the newest timestamp found rather than
	// wall-clock now, so synthetic data does not trip constant alarms.
	referenceTime := nowUTC
	var newest *time.Time
	for _, ts := range maxLoaded {
		if ts != nil && (newest == nil || ts.After(*newest)) {
			newest = ts
		}
	}
	if newest != nil && nowUTC.Sub(*newest) > staleDatasetCutoffHours*time.Hour {
		referenceTime = *newest
	}

	// Second pass: status per table relative to the chosen reference time.
	results := make([]FreshnessResult, 0, len(checks))
	for _, c := range checks {
		r := FreshnessResult{
			TableName:       c.Table,
			LoadedAtField:   c.LoadedAtField,
			MaxLoadedAt:     maxLoaded[c.Table],
			Status:          FreshnessError,
			WarnAfterHours:  c.WarnHours,
			ErrorAfterHours: c.ErrorHours,
			ReferenceTime:   referenceTime,
		}
		if r.MaxLoadedAt != nil {
			age := referenceTime.Sub(*r.MaxLoadedAt).Hours()
			r.AgeHours = &age
			switch {
			case age >= float64(c.ErrorHours):
				r.Status = FreshnessError
			case age >= float64(c.WarnHours):
				r.Status = FreshnessWarn
			default:
				r.Status = FreshnessOK
			}
		}

		entry := m.logger.WithFields(logrus.Fields{
			"table":  r.TableName,
			"status": r.Status,
		})
		switch r.Status {
		case FreshnessError:
			entry.Error("freshness check")
		case FreshnessWarn:
			entry.Warn("freshness check")
		default:
			entry.Info("freshness check")
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := results[i], results[j]
		if severityRank(ri.Status) != severityRank(rj.Status) {
			return severityRank(ri.Status) < severityRank(rj.Status)
		}
		// Nil age (empty table) sorts as infinitely old.
		ai, aj := ageOrInf(ri.AgeHours), ageOrInf(rj.AgeHours)
		return ai > aj
	})
	return results, nil
}

func ageOrInf(age *float64) float64 {
	if age == nil {
		return float64(1<<62)
	}
	return *age
}

func (m *FreshnessMonitor) maxTimestamp(ctx context.Context, table, field string) (*time.Time, error) {
	query := fmt.Sprintf("SELECT MAX(%s) FROM %s", field, table)
	var raw any
	if err := m.db.QueryRowContext(ctx, query).Scan(&raw); err != nil {
		return nil, fmt.Errorf("max(%s.%s): %w", table, field, err)
	}
	return parseTimestamp(raw)
}

// parseTimestamp normalizes the driver-specific MAX() result: pq hands back
// time.Time, sqlite hands back text (or nil for an empty table).
func parseTimestamp(raw any) (*time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		t := v.UTC()
		return &t, nil
	case []byte:
		return parseTimestampString(string(v))
	case string:
		return parseTimestampString(v)
	default:
		return nil, fmt.Errorf("unsupported timestamp value %T", raw)
	}
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestampString(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unparseable timestamp %q", s)
}

// FreshnessExitCode maps a report to the process exit code: 2 if any table
// errored, 1 if any warned, else 0.
func FreshnessExitCode(results []FreshnessResult) int {
	code := 0
	for _, r := range results {
		switch r.Status {
		case FreshnessError:
			return 2
		case FreshnessWarn:
			code = 1
		}
	}
	return code
}
