package warehouse

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ftacc41/saas-analytics-quality/pkg/async"
	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

// TimestampLayout is the wire format for every date and timestamp column.
// It sorts lexicographically, which the freshness monitor relies on when the
// store keeps timestamps as text.
const TimestampLayout = "2006-01-02 15:04:05"

// CSVWriter persists a generated dataset as one CSV file per table.
type CSVWriter struct {
	dir    string
	logger *logrus.Logger
}

// NewCSVWriter creates a CSVWriter that writes into dir, creating it if
// needed.
func NewCSVWriter(dir string, logger *logrus.Logger) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &CSVWriter{dir: dir, logger: logger}, nil
}

// csvExportTimeout bounds a single table export, header included.
const csvExportTimeout = 5 * time.Minute

// WriteAll writes every table of the dataset, one file per table in
// parallel, and returns the row count per table.
func (w *CSVWriter) WriteAll(ctx context.Context, ds *saas.Dataset) (map[string]int, error) {
	specs := loadSpecs()
	errs := async.Batch(ctx, specs, len(specs), "csv export", csvExportTimeout, w.logger,
		func(_ context.Context, spec tableSpec) error {
			return w.writeTable(spec.name, spec.header(), spec.records(ds))
		})
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return ds.Counts(), nil
}

func (w *CSVWriter) writeTable(table string, header []string, records [][]string) error {
	path := filepath.Join(w.dir, table+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header %s: %w", table, err)
	}
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %s: %w", table, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", table, err)
	}
	w.logger.WithFields(logrus.Fields{"table": table, "rows": len(records)}).
		Infof("saved %s", path)
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// formatTimePtr renders optional dates; nil becomes an empty field, matching
// a SQL NULL on load.
func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
