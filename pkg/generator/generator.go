package generator

import (
	"math/rand"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Config holds the generation parameters. HorizonStart and HorizonEnd bound
// every generated date; Seed fixes the shared random source so repeated runs
// produce identical output.
type Config struct {
	Seed         int64
	HorizonStart time.Time
	HorizonEnd   time.Time

	NumCustomers      int
	NumSubscriptions  int
	NumPayments       int
	NumUsageEvents    int
	NumSupportTickets int

	// ShowProgress renders a progress bar per entity on stderr.
	ShowProgress bool
}

// DefaultConfig returns the standard generation parameters.
func DefaultConfig() Config {
	return Config{
		Seed:              42,
		HorizonStart:      time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		HorizonEnd:        time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		NumCustomers:      10000,
		NumSubscriptions:  50000,
		NumPayments:       60000,
		NumUsageEvents:    200000,
		NumSupportTickets: 15000,
	}
}

// GenStats reports how many rows were requested versus actually produced.
// Samplers that draw with replacement skip draws whose date window is under
// one day, so Realized may fall below Requested.
type GenStats struct {
	Requested int
	Realized  int
}

// Generator produces the correlated synthetic SaaS dataset. All randomness
// flows through the single rng in program order: the sequence of draws across
// entities is part of the determinism contract, not an implementation detail.
type Generator struct {
	cfg    Config
	rng    *rand.Rand
	logger *logrus.Logger
}

// New creates a Generator with its random source seeded from cfg.Seed.
func New(cfg Config, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: logger,
	}
}

// Config returns the generation parameters the Generator was built with.
func (g *Generator) Config() Config {
	return g.cfg
}

func (g *Generator) newBar(n int, description string) *progressbar.ProgressBar {
	if !g.cfg.ShowProgress {
		return progressbar.DefaultSilent(int64(n), description)
	}
	return progressbar.Default(int64(n), description)
}

// weightedIndex draws an index from the cumulative distribution of weights.
// Weights must sum to 1.
func (g *Generator) weightedIndex(weights []float64) int {
	r := g.rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(weights) - 1
}

// intBetween draws a uniform integer in [low, high). When the interval is
// empty it returns low.
func (g *Generator) intBetween(low, high int) int {
	if high <= low {
		return low
	}
	return low + g.rng.Intn(high-low)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
