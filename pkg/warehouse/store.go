package warehouse

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite driver for local file stores
)

// DriverFor maps a store DSN to its database/sql driver name. Anything that
// is not a postgres URL is treated as a sqlite file path.
func DriverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite3"
}

// Open opens the analytical store behind the DSN. For sqlite file stores the
// parent directory is created first, so the default store path works on a
// fresh checkout.
func Open(dsn string) (*sql.DB, error) {
	driver := DriverFor(dsn)
	if driver == "sqlite3" && dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store dir %q: %w", dir, err)
			}
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", dsn, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store %q: %w", dsn, err)
	}
	return db, nil
}
