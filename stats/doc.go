// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats turns raw vote rows into counts, percentages, and time series.

# Pure Functions

	stats.Percentage(1, 3)      // 33
	stats.Percentage(0, 0)      // 0
	stats.TopOption(dist)       // label with the strictly highest count, or "—"
	stats.BucketByDay(times)    // votes per UTC calendar day, ascending

Percentage rounds half up. Each option is rounded on its own, so a poll's
percentages may sum to 99 or 101.

TopOption breaks ties by taking the earliest row. When every count is zero it
returns models.NoTopOption rather than naming a zero-vote option.

# Engine

Engine reads the votes table:

	engine := stats.NewEngine(conn, polls)
	dist, err := engine.Distribution(ctx, pollID)   // one row per option
	series, err := engine.VotesOverTime(ctx, "")    // all polls

Distribution is a LEFT JOIN from options to votes, so options with no votes
report 0 and the row count equals the option count. Rows come back in option
definition order. The dashboards reorder them with SortByVotes.

Composite views:

  - Results / AllResults: counts with percentages
  - PollDashboard: KPIs, distribution, and daily series for one poll
  - Overview: site-wide KPIs with a distribution grouped by option label
*/
package stats
