package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ftacc41/saas-analytics-quality/pkg/generator"
)

// DefaultStorePath is the analytical store location used when SAAS_DB_PATH
// is unset.
const DefaultStorePath = "./data/warehouse/saas_analytics.db"

// DefaultOutputDir is where generated CSV files land when SAAS_OUTPUT_DIR is
// unset.
const DefaultOutputDir = "./data/raw"

const dateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Generator generator.Config
	OutputDir string

	// StoreDSN locates the analytical store: a sqlite file path or a
	// postgres URL. Empty disables the bulk-load step.
	StoreDSN string
}

// Load builds configuration from defaults overridden by environment
// variables.
func Load() (*Config, error) {
	gen := generator.DefaultConfig()
	gen.Seed = getEnvInt64("SAAS_SEED", gen.Seed)
	gen.NumCustomers = getEnvInt("SAAS_NUM_CUSTOMERS", gen.NumCustomers)
	gen.NumSubscriptions = getEnvInt("SAAS_NUM_SUBSCRIPTIONS", gen.NumSubscriptions)
	gen.NumPayments = getEnvInt("SAAS_NUM_PAYMENTS", gen.NumPayments)
	gen.NumUsageEvents = getEnvInt("SAAS_NUM_USAGE_EVENTS", gen.NumUsageEvents)
	gen.NumSupportTickets = getEnvInt("SAAS_NUM_SUPPORT_TICKETS", gen.NumSupportTickets)

	var err error
	if gen.HorizonStart, err = getEnvDate("SAAS_HORIZON_START", gen.HorizonStart); err != nil {
		return nil, err
	}
	if gen.HorizonEnd, err = getEnvDate("SAAS_HORIZON_END", gen.HorizonEnd); err != nil {
		return nil, err
	}

	cfg := &Config{
		Generator: gen,
		OutputDir: getEnv("SAAS_OUTPUT_DIR", DefaultOutputDir),
		StoreDSN:  getEnv("SAAS_DB_PATH", DefaultStorePath),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// fileConfig is the YAML representation of the tunable generation
// parameters. Absent fields leave the current setting untouched.
type fileConfig struct {
	Seed              *int64 `yaml:"seed"`
	NumCustomers      *int   `yaml:"num_customers"`
	NumSubscriptions  *int   `yaml:"num_subscriptions"`
	NumPayments       *int   `yaml:"num_payments"`
	NumUsageEvents    *int   `yaml:"num_usage_events"`
	NumSupportTickets *int   `yaml:"num_support_tickets"`
	HorizonStart      string `yaml:"horizon_start"`
	HorizonEnd        string `yaml:"horizon_end"`
	OutputDir         string `yaml:"output_dir"`
	StoreDSN          string `yaml:"store_dsn"`
}

// ApplyFile overlays settings from a YAML file onto the configuration.
func (c *Config) ApplyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Seed != nil {
		c.Generator.Seed = *fc.Seed
	}
	if fc.NumCustomers != nil {
		c.Generator.NumCustomers = *fc.NumCustomers
	}
	if fc.NumSubscriptions != nil {
		c.Generator.NumSubscriptions = *fc.NumSubscriptions
	}
	if fc.NumPayments != nil {
		c.Generator.NumPayments = *fc.NumPayments
	}
	if fc.NumUsageEvents != nil {
		c.Generator.NumUsageEvents = *fc.NumUsageEvents
	}
	if fc.NumSupportTickets != nil {
		c.Generator.NumSupportTickets = *fc.NumSupportTickets
	}
	if fc.HorizonStart != "" {
		t, err := time.ParseInLocation(dateLayout, fc.HorizonStart, time.UTC)
		if err != nil {
			return fmt.Errorf("parse horizon_start: %w", err)
		}
		c.Generator.HorizonStart = t
	}
	if fc.HorizonEnd != "" {
		t, err := time.ParseInLocation(dateLayout, fc.HorizonEnd, time.UTC)
		if err != nil {
			return fmt.Errorf("parse horizon_end: %w", err)
		}
		c.Generator.HorizonEnd = t
	}
	if fc.OutputDir != "" {
		c.OutputDir = fc.OutputDir
	}
	if fc.StoreDSN != "" {
		c.StoreDSN = fc.StoreDSN
	}
	return c.Validate()
}

// Validate checks the configuration for internally inconsistent settings.
func (c *Config) Validate() error {
	if !c.Generator.HorizonStart.Before(c.Generator.HorizonEnd) {
		return fmt.Errorf("horizon start %s must precede horizon end %s",
			c.Generator.HorizonStart.Format(dateLayout),
			c.Generator.HorizonEnd.Format(dateLayout))
	}
	if c.Generator.NumCustomers <= 0 {
		return fmt.Errorf("num_customers must be positive, got %d", c.Generator.NumCustomers)
	}
	for name, n := range map[string]int{
		"num_subscriptions":   c.Generator.NumSubscriptions,
		"num_payments":        c.Generator.NumPayments,
		"num_usage_events":    c.Generator.NumUsageEvents,
		"num_support_tickets": c.Generator.NumSupportTickets,
	} {
		if n < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, n)
		}
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDate(key string, defaultValue time.Time) (time.Time, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", key, err)
	}
	return t, nil
}
