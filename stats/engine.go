// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/store"
)

// Engine computes tallies from the vote ledger. Reads are not isolated
// from concurrent votes; dashboards are refreshed by polling.
type Engine struct {
	db    *sql.DB
	polls *store.PollRepository
}

func NewEngine(db *sql.DB, polls *store.PollRepository) *Engine {
	return &Engine{db: db, polls: polls}
}

// Distribution returns one row per option of the poll, in definition order,
// including options nobody voted for
func (e *Engine) Distribution(ctx context.Context, pollID string) ([]models.OptionCount, error) {
	var exists bool
	err := e.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM polls WHERE id = $1)`, pollID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: poll", models.ErrNotFound)
	}

	rows, err := e.db.QueryContext(ctx, `
		SELECT o.id, o.label, o.image_url, COUNT(v.id)
		FROM poll_options o
		LEFT JOIN votes v ON v.option_id = o.id AND v.poll_id = o.poll_id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.label, o.image_url, o.position
		ORDER BY o.position, o.id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query distribution: %w", err)
	}
	defer rows.Close()

	dist := []models.OptionCount{}
	for rows.Next() {
		var oc models.OptionCount
		if err := rows.Scan(&oc.OptionID, &oc.Label, &oc.ImageURL, &oc.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan distribution: %w", err)
		}
		dist = append(dist, oc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read distribution: %w", err)
	}
	return dist, nil
}

// TopOption returns the leading option label for the poll, or NoTopOption
func (e *Engine) TopOption(ctx context.Context, pollID string) (string, error) {
	dist, err := e.Distribution(ctx, pollID)
	if err != nil {
		return "", err
	}
	return TopOption(dist), nil
}

// VotesOverTime returns daily vote totals for the poll, or for every poll
// when pollID is empty
func (e *Engine) VotesOverTime(ctx context.Context, pollID string) ([]models.DailyTotal, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if pollID == "" {
		rows, err = e.db.QueryContext(ctx, `SELECT created_at FROM votes`)
	} else {
		rows, err = e.db.QueryContext(ctx, `SELECT created_at FROM votes WHERE poll_id = $1`, pollID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	return BucketByDay(times), nil
}

// Results returns per-option counts and percentages for one poll
func (e *Engine) Results(ctx context.Context, pollID string) (models.PollResults, error) {
	pwo, err := e.polls.Get(ctx, pollID)
	if err != nil {
		return models.PollResults{}, err
	}

	dist, err := e.Distribution(ctx, pollID)
	if err != nil {
		return models.PollResults{}, err
	}

	return models.PollResults{
		Poll:       pwo.Poll,
		TotalVotes: TotalVotes(dist),
		Results:    WithPercentages(dist),
	}, nil
}

// AllResults returns results for every poll, newest first
func (e *Engine) AllResults(ctx context.Context) ([]models.PollResults, error) {
	polls, err := e.polls.List(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]models.PollResults, 0, len(polls))
	for _, p := range polls {
		dist, err := e.Distribution(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, models.PollResults{
			Poll:       p,
			TotalVotes: TotalVotes(dist),
			Results:    WithPercentages(dist),
		})
	}
	return all, nil
}

// PollDashboard assembles KPIs and chart series for one poll. The chart
// distribution is ordered by votes; TopOption still breaks ties by
// definition order.
func (e *Engine) PollDashboard(ctx context.Context, pollID string) (models.PollDashboard, error) {
	pwo, err := e.polls.Get(ctx, pollID)
	if err != nil {
		return models.PollDashboard{}, err
	}

	dist, err := e.Distribution(ctx, pollID)
	if err != nil {
		return models.PollDashboard{}, err
	}

	series, err := e.VotesOverTime(ctx, pollID)
	if err != nil {
		return models.PollDashboard{}, err
	}

	total := TotalVotes(dist)
	return models.PollDashboard{
		Poll: pwo.Poll,
		KPI: models.PollKPI{
			TotalVotes:      total,
			TotalVotesLabel: humanize.Comma(int64(total)),
			TopOption:       TopOption(dist),
		},
		Distribution:  SortByVotes(dist),
		VotesOverTime: series,
	}, nil
}

// Overview assembles site-wide KPIs. Its distribution groups votes by
// option label across all polls and lists only labels that received votes,
// most votes first.
func (e *Engine) Overview(ctx context.Context) (models.Overview, error) {
	var activePolls int
	err := e.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM polls WHERE status = $1
	`, models.StatusActive).Scan(&activePolls)
	if err != nil {
		return models.Overview{}, fmt.Errorf("failed to count active polls: %w", err)
	}

	rows, err := e.db.QueryContext(ctx, `
		SELECT o.label, COUNT(v.id)
		FROM votes v
		JOIN poll_options o ON o.id = v.option_id
		GROUP BY o.label
		ORDER BY MIN(v.created_at), o.label
	`)
	if err != nil {
		return models.Overview{}, fmt.Errorf("failed to query distribution: %w", err)
	}

	dist := []models.OptionCount{}
	for rows.Next() {
		var oc models.OptionCount
		if err := rows.Scan(&oc.Label, &oc.Votes); err != nil {
			rows.Close()
			return models.Overview{}, fmt.Errorf("failed to scan distribution: %w", err)
		}
		dist = append(dist, oc)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return models.Overview{}, fmt.Errorf("failed to read distribution: %w", err)
	}

	series, err := e.VotesOverTime(ctx, "")
	if err != nil {
		return models.Overview{}, err
	}

	total := TotalVotes(dist)
	return models.Overview{
		KPI: models.OverviewKPI{
			TotalVotes:      total,
			TotalVotesLabel: humanize.Comma(int64(total)),
			ActivePolls:     activePolls,
			TopOption:       TopOption(dist),
		},
		Distribution:  SortByVotes(dist),
		VotesOverTime: series,
	}, nil
}
