// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/db"
	"github.com/danielhkuo/pollboard/models"
)

// Ledger is the append-only vote record. The UNIQUE (poll_id, user_id)
// index is what guarantees one vote per user per poll; the pre-insert
// check only avoids a round trip to the constraint in the common case.
type Ledger struct {
	db  *sql.DB
	now func() time.Time

	// beforeInsert runs after the pre-insert checks pass; nil outside tests
	beforeInsert func()
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// CastVote records the caller's vote for optionID in pollID
func (l *Ledger) CastVote(ctx context.Context, pollID, optionID string, voter models.Identity) (models.Vote, error) {
	if err := auth.RequireUser(voter); err != nil {
		return models.Vote{}, err
	}

	var known bool
	err := l.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)
	`, voter.UserID).Scan(&known)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to verify voter: %w", err)
	}
	if !known {
		return models.Vote{}, models.ErrUnauthorized
	}

	// Can only vote on active polls
	var status string
	err = l.db.QueryRowContext(ctx, `SELECT status FROM polls WHERE id = $1`, pollID).Scan(&status)
	if err == sql.ErrNoRows {
		return models.Vote{}, fmt.Errorf("%w: poll not found", models.ErrPollNotVotable)
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to query poll: %w", err)
	}
	if status != models.StatusActive {
		return models.Vote{}, models.ErrPollNotVotable
	}

	var optionOwned bool
	err = l.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM poll_options WHERE id = $1 AND poll_id = $2)
	`, optionID, pollID).Scan(&optionOwned)
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to verify option: %w", err)
	}
	if !optionOwned {
		return models.Vote{}, models.ErrInvalidOption
	}

	voted, err := l.HasVoted(ctx, pollID, voter.UserID)
	if err != nil {
		return models.Vote{}, err
	}
	if voted {
		return models.Vote{}, models.ErrAlreadyVoted
	}

	if l.beforeInsert != nil {
		l.beforeInsert()
	}

	vote := models.Vote{
		ID:        uuid.NewString(),
		PollID:    pollID,
		OptionID:  optionID,
		UserID:    voter.UserID,
		CreatedAt: l.now(),
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO votes (id, poll_id, option_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vote.ID, vote.PollID, vote.OptionID, vote.UserID, vote.CreatedAt)
	if err != nil {
		// Lost the race against a concurrent vote from the same user
		if db.IsUniqueViolation(err) {
			return models.Vote{}, models.ErrAlreadyVoted
		}
		// Poll or option removed between the checks and the insert
		if db.IsForeignKeyViolation(err) {
			return models.Vote{}, models.ErrPollNotVotable
		}
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	slog.Info("vote cast", "poll_id", pollID, "vote_id", vote.ID)
	return vote, nil
}

// HasVoted reports whether the user has a vote in the poll.
// Advisory only; the unique index is authoritative.
func (l *Ledger) HasVoted(ctx context.Context, pollID, userID string) (bool, error) {
	var exists bool
	err := l.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM votes
			WHERE poll_id = $1 AND user_id = $2
		)
	`, pollID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return exists, nil
}

// VotedPollIDs returns the ids of every poll the user has voted in, sorted
func (l *Ledger) VotedPollIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT DISTINCT poll_id FROM votes WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}
