// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, and driver error classification.

# Dialects

Two database types are supported:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (pure Go, no cgo)

Open connects and pings:

	conn, err := db.Open(ctx, db.DialectSQLite, "pollboard.db")

SQLite connections always run with foreign_keys enabled (cascading deletes
depend on it) and a pool of one connection. Queries in this module use $N
placeholders, which both drivers accept.

# Schema Creation

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: accounts, unique email, role ADMIN or USER
  - polls: poll metadata and status
  - poll_options: choices per poll, ordered by position
  - votes: one row per (poll_id, user_id)

# Relationships

	polls 1──* poll_options
	polls 1──* votes
	poll_options 1──* votes
	users 1──* votes

Deleting a poll cascades to its options and votes; deleting an option
cascades to its votes.

# Constraint Errors

The vote ledger relies on UNIQUE (poll_id, user_id). Driver errors are
classified without string matching where the driver exposes codes:

	db.IsUniqueViolation(err)      // 23505 / SQLITE_CONSTRAINT_UNIQUE
	db.IsForeignKeyViolation(err)  // 23503 / SQLITE_CONSTRAINT_FOREIGNKEY
*/
package db
