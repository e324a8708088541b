// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Supported database types
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Postgres SQLSTATE codes
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// Open connects to the database and verifies the connection.
// SQLite connections get foreign keys enabled and a single-connection pool.
func Open(ctx context.Context, dialect, url string) (*sql.DB, error) {
	var (
		conn *sql.DB
		err  error
	)

	switch dialect {
	case DialectPostgres:
		conn, err = sql.Open("postgres", url)
	case DialectSQLite:
		conn, err = sql.Open("sqlite", sqliteDSN(url))
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == DialectSQLite {
		// SQLite allows one writer at a time
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// sqliteDSN adds the pragmas every connection needs: cascades rely on foreign_keys
func sqliteDSN(url string) string {
	if strings.Contains(url, "_pragma=foreign_keys") {
		return url
	}
	if !strings.HasPrefix(url, "file:") {
		url = "file:" + url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint failure
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}

	return false
}

// IsForeignKeyViolation reports whether err is a FOREIGN KEY constraint failure
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqForeignKeyViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "FOREIGN KEY constraint failed")
		}
	}

	return false
}
