package app

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/stockfn/config"
	"github.com/guttosm/stockfn/db/migrations"
	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
	goose "github.com/pressly/goose/v3"
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres initializes a PostgreSQL connection using the provided configuration.
//
// Behavior:
//   - Opens a database handle with the DSN built from cfg.Postgres.
//   - Immediately pings the database to validate connectivity.
//
// Returns:
//   - *sql.DB: an open database connection pool (safe for concurrent use).
//   - error: if opening or pinging the database fails.
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	db, err := sqlOpener("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// migrateUp is an indirection used by tests to skip goose.
var migrateUp = func(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

// MigratePostgres applies the embedded stock table migrations.
func MigratePostgres(db *sql.DB) error {
	if err := migrateUp(db); err != nil {
		return fmt.Errorf("failed to migrate postgres: %w", err)
	}
	return nil
}

// postgresOpener is an indirection used by OpenStore; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres
