package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Dialect captures the SQL differences between the supported engines.
type Dialect int

const (
	// Postgres covers both the pgx and lib/pq drivers.
	Postgres Dialect = iota
	// SQLite covers the mattn/go-sqlite3 driver.
	SQLite
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DialectFor maps a database/sql driver name onto its Dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return Postgres, nil
	case "sqlite3":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite3"
	}
	return "postgres"
}

// Rebind rewrites $N placeholders into the form the dialect expects.
// SQLite's ?NNN keeps the explicit numbering, so repeated parameters still work.
func (d Dialect) Rebind(query string) string {
	if d != SQLite {
		return query
	}
	return strings.ReplaceAll(query, "$", "?")
}

// IsUniqueViolation reports whether err was raised by a primary key or unique constraint.
func (d Dialect) IsUniqueViolation(err error) bool {
	if d == SQLite {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) {
			return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
				sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
		}
		return false
	}
	return pgCode(err) == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err was raised by a foreign key constraint.
func (d Dialect) IsForeignKeyViolation(err error) bool {
	if d == SQLite {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) {
			return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
		}
		return false
	}
	return pgCode(err) == pgForeignKeyViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
