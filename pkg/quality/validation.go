package quality

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Derived mart tables produced by the external transformation stage.
const (
	TableMRRFact          = "fct_monthly_recurring_revenue"
	TableMRRAnalysis      = "mrr_analysis"
	TableRevenueRetention = "net_revenue_retention"
	TableCohortRetention  = "cohort_retention"
)

// DefaultMRRTolerance is the maximum absolute difference allowed between the
// MRR fact rollup and the MRR analysis aggregate for a month.
const DefaultMRRTolerance = 0.01

// MRRRollupFailure is a month whose fact-table MRR total disagrees with the
// analysis aggregate beyond tolerance.
type MRRRollupFailure struct {
	Month            string
	FactTotalMRR     float64
	AnalysisTotalMRR float64
	AbsDiff          float64
}

func (f MRRRollupFailure) String() string {
	return fmt.Sprintf("%s: fact=%.2f analysis=%.2f diff=%.4f",
		f.Month, f.FactTotalMRR, f.AnalysisTotalMRR, f.AbsDiff)
}

// RetentionOrderFailure is a (month, segment) row where gross revenue
// retention exceeds net revenue retention, violating the GRR <= NRR
// structural invariant.
type RetentionOrderFailure struct {
	Month          string
	Segment        string
	GrossRetention float64
	NetRetention   float64
}

func (f RetentionOrderFailure) String() string {
	return fmt.Sprintf("%s/%s: grr=%.4f > nrr=%.4f",
		f.Month, f.Segment, f.GrossRetention, f.NetRetention)
}

// RetentionBoundsFailure is a cohort retention row whose rate falls outside
// [0, 1].
type RetentionBoundsFailure struct {
	CohortMonth       string
	Segment           string
	MonthsSinceSignup int
	RetentionRate     float64
}

func (f RetentionBoundsFailure) String() string {
	return fmt.Sprintf("%s/%s month %d: retention_rate=%.4f",
		f.CohortMonth, f.Segment, f.MonthsSinceSignup, f.RetentionRate)
}

// ValidationResult is the outcome of one business-rule check. An empty
// Failures slice means the check passed.
type ValidationResult struct {
	CheckName string
	RunAt     time.Time
	Failures  []string
}

// Passed reports whether the check produced no failing rows.
func (r ValidationResult) Passed() bool {
	return len(r.Failures) == 0
}

// MetricValidator cross-checks derived analytical tables for business-rule
// violations the transformation layer's own tests cannot express.
type MetricValidator struct {
	db     *sql.DB
	schema string
	logger *logrus.Logger
}

// NewMetricValidator creates a validator over an open read-only store
// connection. schema optionally prefixes mart table names (empty for sqlite).
func NewMetricValidator(db *sql.DB, schema string, logger *logrus.Logger) *MetricValidator {
	if logger == nil {
		logger = logrus.New()
	}
	return &MetricValidator{db: db, schema: schema, logger: logger}
}

func (v *MetricValidator) table(name string) string {
	if v.schema == "" {
		return name
	}
	return v.schema + "." + name
}

// ValidateMRRRollup checks that total MRR per month from the recurring
// revenue fact table matches the mrr_analysis aggregate within tolerance.
func (v *MetricValidator) ValidateMRRRollup(ctx context.Context, tolerance float64) ([]MRRRollupFailure, error) {
	query := fmt.Sprintf(`
		WITH mrr_fact AS (
			SELECT date_month, SUM(mrr_amount) AS total_mrr
			FROM %s
			GROUP BY date_month
		),
		mrr_analysis_agg AS (
			SELECT date_month, SUM(total_mrr) AS total_mrr
			FROM %s
			GROUP BY date_month
		)
		SELECT f.date_month, f.total_mrr, a.total_mrr
		FROM mrr_fact f
		JOIN mrr_analysis_agg a ON f.date_month = a.date_month
		ORDER BY f.date_month`,
		v.table(TableMRRFact), v.table(TableMRRAnalysis))

	rows, err := v.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("mrr rollup query: %w", err)
	}
	defer rows.Close()

	var failures []MRRRollupFailure
	for rows.Next() {
		var month any
		var factTotal, analysisTotal float64
		if err := rows.Scan(&month, &factTotal, &analysisTotal); err != nil {
			return nil, fmt.Errorf("mrr rollup scan: %w", err)
		}
		diff := math.Abs(factTotal - analysisTotal)
		if diff > tolerance {
			failures = append(failures, MRRRollupFailure{
				Month:            stringify(month),
				FactTotalMRR:     factTotal,
				AnalysisTotalMRR: analysisTotal,
				AbsDiff:          diff,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mrr rollup rows: %w", err)
	}

	if len(failures) > 0 {
		v.logger.WithField("months", len(failures)).Error("MRR rollup validation failed")
	} else {
		v.logger.WithField("tolerance", tolerance).Info("MRR rollup validation passed")
	}
	return failures, nil
}

// ValidateGRRLeqNRR checks gross revenue retention never exceeds net revenue
// retention for any segment-month row.
func (v *MetricValidator) ValidateGRRLeqNRR(ctx context.Context) ([]RetentionOrderFailure, error) {
	query := fmt.Sprintf(`
		SELECT date_month, customer_segment, gross_revenue_retention, net_revenue_retention
		FROM %s
		WHERE gross_revenue_retention > net_revenue_retention
		ORDER BY date_month, customer_segment`,
		v.table(TableRevenueRetention))

	rows, err := v.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("grr/nrr query: %w", err)
	}
	defer rows.Close()

	var failures []RetentionOrderFailure
	for rows.Next() {
		var month any
		var segment string
		var grr, nrr float64
		if err := rows.Scan(&month, &segment, &grr, &nrr); err != nil {
			return nil, fmt.Errorf("grr/nrr scan: %w", err)
		}
		failures = append(failures, RetentionOrderFailure{
			Month:          stringify(month),
			Segment:        segment,
			GrossRetention: grr,
			NetRetention:   nrr,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("grr/nrr rows: %w", err)
	}

	if len(failures) > 0 {
		v.logger.WithField("rows", len(failures)).Error("GRR <= NRR validation failed")
	} else {
		v.logger.Info("GRR <= NRR validation passed")
	}
	return failures, nil
}

// ValidateRetentionBounds checks every cohort retention rate lies in [0, 1].
func (v *MetricValidator) ValidateRetentionBounds(ctx context.Context) ([]RetentionBoundsFailure, error) {
	query := fmt.Sprintf(`
		SELECT cohort_month, customer_segment, months_since_signup, retention_rate
		FROM %s
		WHERE retention_rate < 0 OR retention_rate > 1
		ORDER BY cohort_month, customer_segment, months_since_signup`,
		v.table(TableCohortRetention))

	rows, err := v.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("retention bounds query: %w", err)
	}
	defer rows.Close()

	var failures []RetentionBoundsFailure
	for rows.Next() {
		var month any
		var segment string
		var monthsSince int
		var rate float64
		if err := rows.Scan(&month, &segment, &monthsSince, &rate); err != nil {
			return nil, fmt.Errorf("retention bounds scan: %w", err)
		}
		failures = append(failures, RetentionBoundsFailure{
			CohortMonth:       stringify(month),
			Segment:           segment,
			MonthsSinceSignup: monthsSince,
			RetentionRate:     rate,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("retention bounds rows: %w", err)
	}

	if len(failures) > 0 {
		v.logger.WithField("rows", len(failures)).Error("retention bounds validation failed")
	} else {
		v.logger.Info("retention bounds validation passed")
	}
	return failures, nil
}

// RunAll runs every check and returns their results in a fixed order.
func (v *MetricValidator) RunAll(ctx context.Context, tolerance float64) ([]ValidationResult, error) {
	runAt := time.Now().UTC()

	mrrFailures, err := v.ValidateMRRRollup(ctx, tolerance)
	if err != nil {
		return nil, err
	}
	grrFailures, err := v.ValidateGRRLeqNRR(ctx)
	if err != nil {
		return nil, err
	}
	boundsFailures, err := v.ValidateRetentionBounds(ctx)
	if err != nil {
		return nil, err
	}

	return []ValidationResult{
		{CheckName: "mrr_rollup_matches_analysis", RunAt: runAt, Failures: describe(mrrFailures)},
		{CheckName: "grr_leq_nrr", RunAt: runAt, Failures: describe(grrFailures)},
		{CheckName: "retention_rate_bounds", RunAt: runAt, Failures: describe(boundsFailures)},
	}, nil
}

// ValidationExitCode maps check results to the process exit code: 2 if any
// check has failures, else 0.
func ValidationExitCode(results []ValidationResult) int {
	for _, r := range results {
		if !r.Passed() {
			return 2
		}
	}
	return 0
}

func describe[T fmt.Stringer](failures []T) []string {
	out := make([]string, len(failures))
	for i, f := range failures {
		out[i] = f.String()
	}
	return out
}

// stringify normalizes the driver-specific month column value: text for
// sqlite, time.Time for postgres date columns.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC().Format("2006-01")
	default:
		return fmt.Sprintf("%v", t)
	}
}
