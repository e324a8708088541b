// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnvFile reads a .env file (if present) into the environment, then
ParseFlags returns a Config struct with all settings:

	_ = cliparse.LoadEnvFile(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

Variables already present in the environment are not overridden by .env.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Postgres URL or SQLite file path (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - JWTSecret: HMAC secret for session tokens (required)
  - TokenTTL: session token lifetime (default: 168h)
  - AdminEmail, AdminPassword: optional admin account created at startup
  - LogLevel: slog level (default: info)
  - CookieSecure: set the Secure attribute on the session cookie

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	--jwt-secret      JWT signing secret
	--token-ttl       Token lifetime
	--admin-email     Bootstrap admin email
	--admin-password  Bootstrap admin password
	--log-level       debug, info, warn, error
	--cookie-secure   Secure cookies

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	JWT_SECRET     → --jwt-secret
	TOKEN_TTL      → --token-ttl
	ADMIN_EMAIL    → --admin-email
	ADMIN_PASSWORD → --admin-password
	LOG_LEVEL      → --log-level
	COOKIE_SECURE  → --cookie-secure

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not sqlite or postgres
  - JWT_SECRET is missing
  - TOKEN_TTL or LOG_LEVEL cannot be parsed
  - only one of ADMIN_EMAIL / ADMIN_PASSWORD is set
*/
package cliparse
