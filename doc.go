// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollboard API server.

Pollboard runs YES/NO and multiple-choice polls for signed-in users. Each
user gets exactly one vote per poll; administrators create and publish
polls and read live tallies and dashboards.

# Starting the Server

The server requires environment variables or CLI flags for configuration.
A .env file in the working directory is loaded first if present:

	DATABASE_URL=pollboard.db JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -jwt-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Secret for signing session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_TTL (--token-ttl): Session lifetime (default: 168h)
  - ADMIN_EMAIL / ADMIN_PASSWORD: Bootstrap or promote an admin at startup
  - LOG_LEVEL (--log-level): debug, info, warn, or error (default: info)
  - COOKIE_SECURE (--cookie-secure): Mark the session cookie Secure

# Architecture

  - handlers: HTTP request handlers (auth, polls, voting, results)
  - router: chi route definitions and middleware stack
  - middleware: Identity resolution, CORS, logging, JSON helpers
  - store: Users, poll repository, and the vote ledger
  - stats: Tallies, percentages, dashboards
  - auth: Session tokens, passwords, access policy
  - models: Request, response, and domain types; sentinel errors
  - db: Connection and schema for SQLite and PostgreSQL
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
