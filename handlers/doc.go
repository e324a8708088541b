// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pollboard API.

# Handler Types

Each handler is a thin struct over one store or engine:

  - AuthHandler: Registration, login, logout, password reset
  - PollHandler: Poll CRUD and status changes, public active list
  - VotingHandler: Casting votes and vote status
  - ResultsHandler: Results, per-poll dashboards, site overview

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(store.NewPollRepository(db))

# Identity

Handlers read the caller from the request context (see
middleware.IdentityFrom). Authorization lives in the stores, so an
admin mutation called by a non-admin fails even if a route forgets
middleware.RequireAdmin.

# Errors

Store errors are passed to middleware.WriteError, which maps the
sentinel errors in models to status codes:

	ErrUnauthorized, ErrInvalidCredentials → 401
	ErrForbidden                           → 403
	ErrNotFound                            → 404
	ErrAlreadyVoted, ErrPollNotVotable     → 409
	ErrEmailTaken                          → 409
	ErrInvalidOption, ErrInvalidInput      → 400

Malformed JSON bodies get 400; bodies over 1 MiB get 413.

# Voting Flow

	GET  /polls/active     → ListActive
	POST /polls/{id}/votes → CastVote (one vote per user per poll)
	GET  /polls/voted      → VotedPolls
*/
package handlers
