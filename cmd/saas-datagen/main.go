package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ftacc41/saas-analytics-quality/pkg/config"
	"github.com/ftacc41/saas-analytics-quality/pkg/generator"
	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
	"github.com/ftacc41/saas-analytics-quality/pkg/warehouse"
)

type cliFlags struct {
	configFile string
	outputDir  string
	storeDSN   string
	seed       int64
	noLoad     bool
	logLevel   string
}

// saas-datagen generates the full synthetic SaaS dataset, persists it as CSV
// files, and bulk-loads it into the analytical store when one is reachable.
func main() {
	flags := parseFlags()
	logger := setupLogger(flags.logLevel)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if flags.configFile != "" {
		if err := cfg.ApplyFile(flags.configFile); err != nil {
			logger.Fatalf("Failed to apply config file: %v", err)
		}
	}
	if flags.outputDir != "" {
		cfg.OutputDir = flags.outputDir
	}
	if flags.storeDSN != "" {
		cfg.StoreDSN = flags.storeDSN
	}
	if flags.seed != 0 {
		cfg.Generator.Seed = flags.seed
	}
	cfg.Generator.ShowProgress = true

	runID := uuid.New().String()
	runLog := logger.WithField("run_id", runID)
	runLog.WithFields(logrus.Fields{
		"seed":       cfg.Generator.Seed,
		"output_dir": cfg.OutputDir,
	}).Info("starting SaaS data generation")

	gen := generator.New(cfg.Generator, logger)

	plans := gen.Plans()
	customers := gen.Customers(cfg.Generator.NumCustomers)
	subscriptions := gen.Subscriptions(customers, plans, cfg.Generator.NumSubscriptions)
	payments, payStats := gen.Payments(subscriptions, cfg.Generator.NumPayments)
	usageEvents, usageStats := gen.UsageEvents(customers, cfg.Generator.NumUsageEvents)
	tickets, ticketStats := gen.SupportTickets(customers, cfg.Generator.NumSupportTickets)

	ds := &saas.Dataset{
		Plans:          plans,
		Customers:      customers,
		Subscriptions:  subscriptions,
		Payments:       payments,
		UsageEvents:    usageEvents,
		SupportTickets: tickets,
	}

	ctx := context.Background()
	writer, err := warehouse.NewCSVWriter(cfg.OutputDir, logger)
	if err != nil {
		logger.Fatalf("Failed to create CSV writer: %v", err)
	}
	counts, err := writer.WriteAll(ctx, ds)
	if err != nil {
		logger.Fatalf("Failed to write CSV files: %v", err)
	}

	loader := selectLoader(cfg, flags.noLoad, logger)
	if err := loader.Load(ctx, ds); err != nil {
		logger.Fatalf("Failed to load analytical store: %v", err)
	}

	runLog.WithFields(logrus.Fields{
		"plans":                     counts[saas.TablePlans],
		"customers":                 counts[saas.TableCustomers],
		"subscriptions":             counts[saas.TableSubscriptions],
		"payments":                  counts[saas.TablePayments],
		"usage_events":              counts[saas.TableUsageEvents],
		"support_tickets":           counts[saas.TableSupportTickets],
		"payments_requested":        payStats.Requested,
		"usage_events_requested":    usageStats.Requested,
		"support_tickets_requested": ticketStats.Requested,
	}).Info("data generation complete")
}

// selectLoader picks the bulk loader by capability: a SQL loader when the
// store opens, otherwise the no-op loader that warns and skips. An
// unreachable store never fails the generation pipeline.
func selectLoader(cfg *config.Config, noLoad bool, logger *logrus.Logger) warehouse.BulkLoader {
	if noLoad || cfg.StoreDSN == "" {
		return &warehouse.NoopLoader{Logger: logger}
	}
	db, err := warehouse.Open(cfg.StoreDSN)
	if err != nil {
		logger.Warnf("Analytical store not reachable (%v), skipping bulk load", err)
		return &warehouse.NoopLoader{Logger: logger}
	}
	return warehouse.NewSQLLoader(db, warehouse.DriverFor(cfg.StoreDSN), logger)
}

func parseFlags() *cliFlags {
	flags := &cliFlags{}
	flag.StringVar(&flags.configFile, "config", "", "Optional YAML config file with generation parameters")
	flag.StringVar(&flags.outputDir, "output", "", "Output directory for CSV files (overrides SAAS_OUTPUT_DIR)")
	flag.StringVar(&flags.storeDSN, "db", "", "Analytical store DSN: sqlite path or postgres URL (overrides SAAS_DB_PATH)")
	flag.Int64Var(&flags.seed, "seed", 0, "Random seed (overrides SAAS_SEED; 0 keeps the configured seed)")
	flag.BoolVar(&flags.noLoad, "no-load", false, "Skip the bulk-load step")
	flag.StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()
	return flags
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
