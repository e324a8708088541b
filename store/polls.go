// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/models"
)

// PollRepository owns poll and option records
type PollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) *PollRepository {
	return &PollRepository{db: db}
}

const pollColumns = `id, title, description, type, status, image_url, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(row rowScanner) (models.Poll, error) {
	var p models.Poll
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Type, &p.Status, &p.ImageURL, &p.CreatedAt)
	return p, err
}

// optionSet resolves the options a poll of the given type should own.
// YES_NO polls always get YES and NO; multiple choice polls keep the non-empty labels.
func optionSet(pollType string, inputs []models.OptionInput) ([]models.OptionInput, error) {
	if pollType == models.TypeYesNo {
		return []models.OptionInput{{Label: "YES"}, {Label: "NO"}}, nil
	}

	var opts []models.OptionInput
	for _, in := range inputs {
		label := strings.TrimSpace(in.Label)
		if label == "" {
			continue
		}
		opts = append(opts, models.OptionInput{Label: label, ImageURL: in.ImageURL})
	}
	if len(opts) < 2 {
		return nil, fmt.Errorf("%w: multiple choice polls need at least 2 options", models.ErrInvalidInput)
	}
	return opts, nil
}

func validatePollFields(title, pollType, status string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", models.ErrInvalidInput)
	}
	if !models.ValidType(pollType) {
		return fmt.Errorf("%w: type must be YES_NO or MULTIPLE_CHOICE", models.ErrInvalidInput)
	}
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: status must be DRAFT, ACTIVE or CLOSED", models.ErrInvalidInput)
	}
	return nil
}

func insertOptions(ctx context.Context, tx *sql.Tx, pollID string, inputs []models.OptionInput) ([]models.Option, error) {
	options := make([]models.Option, 0, len(inputs))
	for i, in := range inputs {
		opt := models.Option{
			ID:       uuid.NewString(),
			PollID:   pollID,
			Label:    in.Label,
			ImageURL: in.ImageURL,
			Position: i,
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO poll_options (id, poll_id, label, image_url, position)
			VALUES ($1, $2, $3, $4, $5)
		`, opt.ID, opt.PollID, opt.Label, opt.ImageURL, opt.Position)
		if err != nil {
			return nil, fmt.Errorf("failed to insert option: %w", err)
		}
		options = append(options, opt)
	}
	return options, nil
}

// Create inserts a poll and its options in one transaction
func (r *PollRepository) Create(ctx context.Context, actor models.Identity, req models.CreatePollRequest) (models.PollWithOptions, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return models.PollWithOptions{}, err
	}
	if err := validatePollFields(req.Title, req.Type, req.Status); err != nil {
		return models.PollWithOptions{}, err
	}
	inputs, err := optionSet(req.Type, req.Options)
	if err != nil {
		return models.PollWithOptions{}, err
	}

	poll := models.Poll{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
		ImageURL:    req.ImageURL,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO polls (id, title, description, type, status, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, poll.ID, poll.Title, poll.Description, poll.Type, poll.Status, poll.ImageURL, poll.CreatedAt)
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to insert poll: %w", err)
	}

	options, err := insertOptions(ctx, tx, poll.ID, inputs)
	if err != nil {
		return models.PollWithOptions{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("poll created", "poll_id", poll.ID, "type", poll.Type, "options", len(options), "admin", actor.UserID)
	return models.PollWithOptions{Poll: poll, Options: options}, nil
}

// Get returns a poll with its options in definition order
func (r *PollRepository) Get(ctx context.Context, id string) (models.PollWithOptions, error) {
	poll, err := scanPoll(r.db.QueryRowContext(ctx, `
		SELECT `+pollColumns+` FROM polls WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return models.PollWithOptions{}, fmt.Errorf("%w: poll", models.ErrNotFound)
	}
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to query poll: %w", err)
	}

	options, err := r.Options(ctx, id)
	if err != nil {
		return models.PollWithOptions{}, err
	}
	return models.PollWithOptions{Poll: poll, Options: options}, nil
}

// Options lists a poll's options in definition order
func (r *PollRepository) Options(ctx context.Context, pollID string) ([]models.Option, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, poll_id, label, image_url, position
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY position, id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Label, &opt.ImageURL, &opt.Position); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}
	return options, nil
}

// List returns all polls, newest first
func (r *PollRepository) List(ctx context.Context) ([]models.Poll, error) {
	return r.queryPolls(ctx, `SELECT `+pollColumns+` FROM polls ORDER BY created_at DESC, id`)
}

// ListActive returns ACTIVE polls with their options, newest first
func (r *PollRepository) ListActive(ctx context.Context) ([]models.PollWithOptions, error) {
	polls, err := r.queryPolls(ctx, `
		SELECT `+pollColumns+` FROM polls WHERE status = $1 ORDER BY created_at DESC, id
	`, models.StatusActive)
	if err != nil {
		return nil, err
	}

	// Options are loaded after the poll rows are closed
	result := make([]models.PollWithOptions, 0, len(polls))
	for _, p := range polls {
		options, err := r.Options(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.PollWithOptions{Poll: p, Options: options})
	}
	return result, nil
}

func (r *PollRepository) queryPolls(ctx context.Context, query string, args ...any) ([]models.Poll, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read polls: %w", err)
	}
	return polls, nil
}

// Update replaces a poll's fields. For MULTIPLE_CHOICE polls the whole option
// set is replaced, which deletes the old options and every vote cast for them.
func (r *PollRepository) Update(ctx context.Context, actor models.Identity, id string, req models.UpdatePollRequest) (models.PollWithOptions, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return models.PollWithOptions{}, err
	}
	if err := validatePollFields(req.Title, req.Type, req.Status); err != nil {
		return models.PollWithOptions{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var previousType string
	err = tx.QueryRowContext(ctx, `SELECT type FROM polls WHERE id = $1`, id).Scan(&previousType)
	if err == sql.ErrNoRows {
		return models.PollWithOptions{}, fmt.Errorf("%w: poll", models.ErrNotFound)
	}
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to query poll: %w", err)
	}

	replaceOptions := req.Type == models.TypeMultipleChoice || previousType != models.TypeYesNo
	var inputs []models.OptionInput
	if replaceOptions {
		if inputs, err = optionSet(req.Type, req.Options); err != nil {
			return models.PollWithOptions{}, err
		}
	}

	if req.ImageURL != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE polls SET title = $1, description = $2, type = $3, status = $4, image_url = $5
			WHERE id = $6
		`, strings.TrimSpace(req.Title), req.Description, req.Type, req.Status, req.ImageURL, id)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE polls SET title = $1, description = $2, type = $3, status = $4
			WHERE id = $5
		`, strings.TrimSpace(req.Title), req.Description, req.Type, req.Status, id)
	}
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to update poll: %w", err)
	}

	if replaceOptions {
		res, err := tx.ExecContext(ctx, `DELETE FROM poll_options WHERE poll_id = $1`, id)
		if err != nil {
			return models.PollWithOptions{}, fmt.Errorf("failed to delete options: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			slog.Warn("poll options replaced, existing votes discarded", "poll_id", id, "old_options", n)
		}
		if _, err := insertOptions(ctx, tx, id, inputs); err != nil {
			return models.PollWithOptions{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("poll updated", "poll_id", id, "admin", actor.UserID)
	return r.Get(ctx, id)
}

// UpdateStatus sets a poll's status. Every transition is allowed.
func (r *PollRepository) UpdateStatus(ctx context.Context, actor models.Identity, id, status string) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: status must be DRAFT, ACTIVE or CLOSED", models.ErrInvalidInput)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE polls SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: poll", models.ErrNotFound)
	}

	slog.Info("poll status changed", "poll_id", id, "status", status, "admin", actor.UserID)
	return nil
}

// Delete removes a poll; options and votes cascade
func (r *PollRepository) Delete(ctx context.Context, actor models.Identity, id string) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: poll", models.ErrNotFound)
	}

	slog.Info("poll deleted", "poll_id", id, "admin", actor.UserID)
	return nil
}
