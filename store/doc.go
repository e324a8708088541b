// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds the persistence layer: users, polls, and the vote ledger.

Every type wraps a *sql.DB and takes a context on each call:

	users := store.NewUserStore(conn)
	polls := store.NewPollRepository(conn)
	ledger := store.NewLedger(conn)

Failures are reported with the sentinel errors from models, wrapped with
detail, so callers match with errors.Is.

# Vote Ledger

CastVote checks, in order:

  - the identity is not anonymous and names an existing user (ErrUnauthorized)
  - the poll exists and is ACTIVE (ErrPollNotVotable)
  - the option belongs to the poll (ErrInvalidOption)
  - the user has no vote in the poll yet (ErrAlreadyVoted)

then inserts. Two concurrent votes from the same user can both pass the
pre-check; the UNIQUE (poll_id, user_id) index rejects the second insert and
that violation is reported as ErrAlreadyVoted as well. There is no
application-level lock.

# Poll Repository

Mutations (Create, Update, UpdateStatus, Delete) take the acting identity
and require ADMIN. YES_NO polls always own exactly two options, YES and NO.
MULTIPLE_CHOICE polls need at least two non-empty labels; empty labels are
dropped.

Update on a MULTIPLE_CHOICE poll replaces the option set. The old options
are deleted and their votes go with them by cascade, so historical
attribution is lost. This is deliberate and logged as a warning.

Status changes are unrestricted: any of DRAFT, ACTIVE, CLOSED may follow any
other. Only ACTIVE polls accept votes.

# Users

Register, Authenticate, ResetPassword, and EnsureAdmin manage accounts.
Emails are trimmed and lower-cased; passwords are bcrypt hashed.
*/
package store
