// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain, and error types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest, LoginRequest, ResetPasswordRequest: account operations
  - CreatePollRequest, UpdatePollRequest: title, type, status, options
  - UpdateStatusRequest: status
  - CastVoteRequest: option_id

# Response Types

  - LoginResponse: token, user
  - MeResponse: logged_in, user
  - CastVoteResponse: vote_id, message
  - HasVotedResponse, VotedPollsResponse
  - ErrorResponse: error, message

# Domain Types

  - User: account with bcrypt password hash and role
  - Poll, Option, PollWithOptions: poll metadata and its choices
  - Vote: one user's single choice in a poll
  - Identity: the caller resolved from a token (zero value is anonymous)

# Aggregation Types

  - OptionCount: per-option vote count (distribution row)
  - DailyTotal: votes per UTC calendar day
  - PollResults, OptionResult: counts with percentages
  - PollDashboard, Overview: KPIs plus chart series

# Errors

Sentinel errors classify failures at operation boundaries. Callers wrap them
with detail and match with errors.Is:

	ErrUnauthorized       401
	ErrForbidden          403
	ErrNotFound           404
	ErrAlreadyVoted       409
	ErrPollNotVotable     409
	ErrEmailTaken         409
	ErrInvalidOption      400
	ErrInvalidInput       400
	ErrInvalidCredentials 401

# Constants

Status values:

	StatusDraft  = "DRAFT"
	StatusActive = "ACTIVE"
	StatusClosed = "CLOSED"

Poll types:

	TypeYesNo          = "YES_NO"
	TypeMultipleChoice = "MULTIPLE_CHOICE"

Roles:

	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
*/
package models
