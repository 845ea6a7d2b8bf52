package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL engine a DB talks to.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// DB is a connection pool that knows its dialect, so stores can write one
// query with ? placeholders and run it on either engine.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the given backend and verifies the connection.
func Open(dialect Dialect, dsn string) (*DB, error) {
	switch dialect {
	case Postgres:
		db, err := New(dsn)
		if err != nil {
			return nil, err
		}

		return &DB{DB: db, Dialect: Postgres}, nil
	case SQLite:
		db, err := openSQLite(dsn)
		if err != nil {
			return nil, err
		}

		return &DB{DB: db, Dialect: SQLite}, nil
	}

	return nil, fmt.Errorf("unsupported dialect %q", dialect)
}

// New opens a Postgres pool through the pgx stdlib driver.
func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	return db, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	return nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	return path + sep + sqlitePragmas
}

// Rebind rewrites ? placeholders into the dialect's native form.
func (db *DB) Rebind(query string) string {
	return Rebind(db.Dialect, query)
}

// Rebind rewrites ? placeholders into $1, $2, ... for Postgres and
// leaves the query untouched for SQLite.
func Rebind(dialect Dialect, query string) string {
	if dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0

	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}

		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}

	return b.String()
}
