package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ftacc41/saas-analytics-quality/pkg/config"
	"github.com/ftacc41/saas-analytics-quality/pkg/quality"
	"github.com/ftacc41/saas-analytics-quality/pkg/warehouse"
)

// metric-validator cross-checks the derived mart tables for business-rule
// violations and exits 0 when every check passes, 2 otherwise.
func main() {
	dsn := flag.String("db", "", "Analytical store DSN (overrides SAAS_DB_PATH)")
	schema := flag.String("schema", "", "Optional schema prefix for mart tables")
	tolerance := flag.Float64("tolerance", quality.DefaultMRRTolerance, "Allowed absolute MRR rollup difference per month")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := setupLogger(*logLevel)

	storeDSN := *dsn
	if storeDSN == "" {
		storeDSN = envStoreDSN()
	}

	os.Exit(run(storeDSN, *schema, *tolerance, logger))
}

// run performs the validation and returns the exit code, so the store
// connection closes before the process exits.
func run(storeDSN, schema string, tolerance float64, logger *logrus.Logger) int {
	db, err := warehouse.Open(storeDSN)
	if err != nil {
		logger.Errorf("Failed to open analytical store: %v", err)
		return 2
	}
	defer db.Close()

	validator := quality.NewMetricValidator(db, schema, logger)
	results, err := validator.RunAll(context.Background(), tolerance)
	if err != nil {
		logger.Errorf("Metric validation failed to run: %v", err)
		return 2
	}

	failed := 0
	for _, r := range results {
		if r.Passed() {
			continue
		}
		failed++
		for _, failure := range r.Failures {
			logger.WithField("check", r.CheckName).Error(failure)
		}
	}

	if failed > 0 {
		logger.Errorf("Metric validation failed: %d/%d checks have failures", failed, len(results))
	} else {
		logger.Infof("Metric validation passed: %d checks", len(results))
	}
	return quality.ValidationExitCode(results)
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
