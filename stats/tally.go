// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"sort"
	"time"

	"github.com/danielhkuo/pollboard/models"
)

// Percentage returns count/total as a whole percent, rounded half up.
// A zero total yields 0. Percentages of one poll are rounded
// independently and may not add up to exactly 100.
func Percentage(count, total int) int {
	if total <= 0 || count <= 0 {
		return 0
	}
	// round(count*100/total) with half up, in integers
	return (200*count + total) / (2 * total)
}

// TopOption returns the label with strictly the highest count.
// Ties go to the earliest row. With no votes at all it returns NoTopOption.
func TopOption(dist []models.OptionCount) string {
	best := -1
	for i, oc := range dist {
		if best == -1 || oc.Votes > dist[best].Votes {
			best = i
		}
	}
	if best == -1 || dist[best].Votes == 0 {
		return models.NoTopOption
	}
	return dist[best].Label
}

// TotalVotes sums the counts of a distribution
func TotalVotes(dist []models.OptionCount) int {
	total := 0
	for _, oc := range dist {
		total += oc.Votes
	}
	return total
}

// SortByVotes returns a copy ordered by count descending, keeping
// definition order among equal counts
func SortByVotes(dist []models.OptionCount) []models.OptionCount {
	sorted := make([]models.OptionCount, len(dist))
	copy(sorted, dist)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Votes > sorted[j].Votes
	})
	return sorted
}

// WithPercentages turns a distribution into result rows
func WithPercentages(dist []models.OptionCount) []models.OptionResult {
	total := TotalVotes(dist)
	results := make([]models.OptionResult, 0, len(dist))
	for _, oc := range dist {
		results = append(results, models.OptionResult{
			OptionID:   oc.OptionID,
			Label:      oc.Label,
			ImageURL:   oc.ImageURL,
			Votes:      oc.Votes,
			Percentage: Percentage(oc.Votes, total),
		})
	}
	return results
}

// BucketByDay counts timestamps per UTC calendar date, ascending
func BucketByDay(times []time.Time) []models.DailyTotal {
	counts := make(map[string]int)
	for _, t := range times {
		counts[t.UTC().Format(time.DateOnly)]++
	}

	days := make([]string, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Strings(days)

	series := make([]models.DailyTotal, 0, len(days))
	for _, d := range days {
		series = append(series, models.DailyTotal{Date: d, Total: counts[d]})
	}
	return series
}
