package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate applies every pending migration for dialect. It runs on its own
// connection, which the migrate driver closes when done.
func Migrate(dialect Dialect, dsn string) error {
	var (
		migrateDB *sql.DB
		err       error
	)

	switch dialect {
	case Postgres:
		migrateDB, err = sql.Open("pgx", dsn)
	case SQLite:
		if err := ensureDir(dsn); err != nil {
			return err
		}

		migrateDB, err = sql.Open("sqlite", sqliteDSN(dsn))
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}

	driver, err := migrationDriver(dialect, migrateDB)
	if err != nil {
		migrateDB.Close()
		return err
	}

	src, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		driver.Close()
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dialect), driver)
	if err != nil {
		driver.Close()
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func migrationDriver(dialect Dialect, db *sql.DB) (migratedb.Driver, error) {
	if dialect == Postgres {
		driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		if err != nil {
			return nil, fmt.Errorf("create pgx driver: %w", err)
		}

		return driver, nil
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("create sqlite driver: %w", err)
	}

	return driver, nil
}
