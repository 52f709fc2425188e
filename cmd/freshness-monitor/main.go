package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ftacc41/saas-analytics-quality/pkg/config"
	"github.com/ftacc41/saas-analytics-quality/pkg/quality"
	"github.com/ftacc41/saas-analytics-quality/pkg/warehouse"
)

// freshness-monitor checks how recently each warehouse table was loaded and
// exits 0 (all ok), 1 (at least one warning) or 2 (at least one error).
// With -schedule it instead keeps running the check on a cron expression.
func main() {
	dsn := flag.String("db", "", "Analytical store DSN (overrides SAAS_DB_PATH)")
	schedule := flag.String("schedule", "", "Optional cron expression to run the check on a schedule")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := setupLogger(*logLevel)

	storeDSN := *dsn
	if storeDSN == "" {
		storeDSN = envStoreDSN()
	}

	if *schedule != "" {
		runScheduled(storeDSN, *schedule, logger)
		return
	}

	os.Exit(runOnce(storeDSN, logger))
}

func runOnce(storeDSN string, logger *logrus.Logger) int {
	db, err := warehouse.Open(storeDSN)
	if err != nil {
		logger.Errorf("Failed to open analytical store: %v", err)
		return 2
	}
	defer db.Close()

	monitor := quality.NewFreshnessMonitor(db, logger)
	results, err := monitor.Check(context.Background(), quality.DefaultChecks())
	if err != nil {
		logger.Errorf("Freshness check failed: %v", err)
		return 2
	}

	printReport(results)
	return quality.FreshnessExitCode(results)
}

// runScheduled blocks and re-runs the check on the cron schedule. Outcomes
// are logged rather than turned into exit codes.
func runScheduled(storeDSN, schedule string, logger *logrus.Logger) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		code := runOnce(storeDSN, logger)
		logger.WithField("exit_code", code).Info("scheduled freshness check finished")
	})
	if err != nil {
		logger.Fatalf("Invalid cron schedule %q: %v", schedule, err)
	}
	logger.WithField("schedule", schedule).Info("running freshness checks on a schedule")
	c.Run()
}

func printReport(results []quality.FreshnessResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "table_name\tloaded_at_field\tmax_loaded_at\tage_hours\tstatus\twarn_after_hours\terror_after_hours\treference_time")
	for _, r := range results {
		maxLoaded := ""
		if r.MaxLoadedAt != nil {
			maxLoaded = r.MaxLoadedAt.Format(time.RFC3339)
		}
		age := ""
		if r.AgeHours != nil {
			age = fmt.Sprintf("%.2f", *r.AgeHours)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.TableName, r.LoadedAtField, maxLoaded, age, r.Status,
			r.WarnAfterHours, r.ErrorAfterHours, r.ReferenceTime.Format(time.RFC3339))
	}
	w.Flush()
}

func envStoreDSN() string {
	if v := os.Getenv("SAAS_DB_PATH"); v != "" {
		return v
	}
	return config.DefaultStorePath
}

func setupLogger(logLevel string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
