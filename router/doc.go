// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pollboard API.

# Route Registration

NewRouter builds a chi router with all endpoints and the middleware stack
(request id, panic recovery, logging, CORS, identity resolution):

	handler, err := router.NewRouter(db, cfg)

It fails only when the JWT secret is empty.

# Endpoints

Health:

	GET /health
	GET /

Accounts:

	POST  /auth/register - Create a USER account
	POST  /auth/login    - Issue a session token (body and "token" cookie)
	POST  /auth/logout   - Clear the session cookie
	GET   /auth/me       - Current identity, or logged_in=false
	PATCH /auth/password - Reset a password by email

Voting:

	GET  /polls/active     - Active polls with options (public)
	GET  /polls/voted      - Poll ids the caller has voted in
	GET  /polls/{id}/voted - Whether the caller voted in this poll
	POST /polls/{id}/votes - Cast a vote

Administration (ADMIN only):

	GET    /admin/polls              - All polls
	POST   /admin/polls              - Create poll
	GET    /admin/polls/{id}         - Poll with options
	PUT    /admin/polls/{id}         - Replace poll fields and options
	DELETE /admin/polls/{id}         - Delete poll, options, and votes
	PATCH  /admin/polls/{id}/status  - Change status
	GET    /admin/polls/{id}/results - Counts and percentages
	GET    /admin/users              - All accounts (no password hashes)
	GET    /admin/results            - Results for every poll
	GET    /admin/dashboard          - Site-wide KPIs and charts
	GET    /admin/dashboard/{id}     - Per-poll KPIs and charts

# Handler Initialization

The router builds the stores once and injects them into the handlers:

	polls := store.NewPollRepository(db)
	pollHandler := handlers.NewPollHandler(polls)
	resultsHandler := handlers.NewResultsHandler(stats.NewEngine(db, polls))
*/
package router
