package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ftacc41/saas-analytics-quality/pkg/saas"
)

// BulkLoader loads a generated dataset into an analytical store, replacing
// any prior table contents. The no-op implementation makes the load step an
// explicit, testable capability instead of a runtime presence check.
type BulkLoader interface {
	Load(ctx context.Context, ds *saas.Dataset) error
}

// NoopLoader skips the load step with a warning. Used when no store is
// configured or the configured store cannot be opened; generation still
// succeeds with CSV output only.
type NoopLoader struct {
	Logger *logrus.Logger
}

// Load logs a warning and does nothing.
func (l *NoopLoader) Load(ctx context.Context, ds *saas.Dataset) error {
	if l.Logger != nil {
		l.Logger.Warn("analytical store unavailable, skipping bulk load")
	}
	return nil
}

// SQLLoader bulk-loads a dataset into a SQL store (sqlite or postgres).
type SQLLoader struct {
	db     *sql.DB
	driver string
	logger *logrus.Logger
}

// NewSQLLoader creates a loader for the given open store. driver must be the
// database/sql driver name the store was opened with.
func NewSQLLoader(db *sql.DB, driver string, logger *logrus.Logger) *SQLLoader {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLLoader{db: db, driver: driver, logger: logger}
}

// Load drops and recreates each table, then inserts all rows inside a single
// transaction per table.
func (l *SQLLoader) Load(ctx context.Context, ds *saas.Dataset) error {
	for _, spec := range loadSpecs() {
		if err := l.loadTable(ctx, spec, ds); err != nil {
			return fmt.Errorf("load table %s: %w", spec.name, err)
		}
	}
	return nil
}

func (l *SQLLoader) loadTable(ctx context.Context, spec tableSpec, ds *saas.Dataset) error {
	if _, err := l.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+spec.name); err != nil {
		return fmt.Errorf("drop: %w", err)
	}
	if _, err := l.db.ExecContext(ctx, spec.createDDL()); err != nil {
		return fmt.Errorf("create: %w", err)
	}

	records := spec.records(ds)

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, l.insertSQL(spec))
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		args := make([]any, len(rec))
		for i, v := range rec {
			// Empty CSV fields are SQL NULLs.
			if v == "" {
				args[i] = nil
			} else {
				args[i] = v
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	l.logger.WithFields(logrus.Fields{"table": spec.name, "rows": len(records)}).
		Info("loaded table")
	return nil
}

func (spec tableSpec) createDDL() string {
	cols := make([]string, len(spec.columns))
	for i, c := range spec.columns {
		cols[i] = c.name + " " + c.sqlType
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", spec.name, strings.Join(cols, ", "))
}

func (l *SQLLoader) insertSQL(spec tableSpec) string {
	placeholders := make([]string, len(spec.columns))
	for i := range spec.columns {
		if l.driver == "postgres" {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		spec.name, strings.Join(spec.header(), ", "), strings.Join(placeholders, ", "))
}
