// Package quality implements data quality checks over the analytical store.
//
// # Overview
//
// Two kinds of checks run against the store:
//
// Freshness: per-table age of the newest loaded row against warn/error
// thresholds. When every table is older than the stale-dataset cutoff, ages
// are measured against the newest timestamp found instead of wall-clock now,
// so a static historical dataset does not alarm forever.
//
// Metric validation: business-rule cross-checks on the derived mart tables.
// The MRR fact rollup must match the analysis aggregate within tolerance,
// gross revenue retention can never exceed net revenue retention, and cohort
// retention rates must lie in [0, 1].
//
// # Usage Example
//
//	monitor := quality.NewFreshnessMonitor(db, logger)
//	results, err := monitor.Check(ctx, quality.DefaultChecks())
//	os.Exit(quality.FreshnessExitCode(results)) // 2 error, 1 warn, 0 ok
//
//	validator := quality.NewMetricValidator(db, "", logger)
//	checks, err := validator.RunAll(ctx, quality.DefaultMRRTolerance)
//	os.Exit(quality.ValidationExitCode(checks)) // 2 failed, 0 passed
//
// # Exit Codes
//
// Both check families are designed to run under a scheduler or CI job and
// speak through exit codes: 0 healthy, 1 degraded (freshness only), 2
// failing.
package quality
