package generator

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// testConfig keeps counts small enough for fast tests while still exercising
// churned customers, all subscription statuses and the skip paths.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.NumCustomers = 400
	cfg.NumSubscriptions = 1500
	cfg.NumPayments = 2000
	cfg.NumUsageEvents = 3000
	cfg.NumSupportTickets = 800
	return cfg
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestGenerator() *Generator {
	return New(testConfig(), testLogger())
}

func withinHorizon(cfg Config, t time.Time) bool {
	return !t.Before(cfg.HorizonStart) && !t.After(cfg.HorizonEnd)
}
