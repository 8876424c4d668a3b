package xgstats

import (
	"sort"
	"time"
)

// DailyTotal sums goals and xG over all matches played on one date.
type DailyTotal struct {
	Date       time.Time
	TotalGoals int
	TotalXG    float64
}

// DailyTotals groups records by MatchDate, ascending.
func DailyTotals(records []EnrichedMatchRecord) []DailyTotal {
	byDate := make(map[time.Time]*DailyTotal)
	for _, rec := range records {
		item, ok := byDate[rec.MatchDate]
		if !ok {
			item = &DailyTotal{Date: rec.MatchDate}
			byDate[rec.MatchDate] = item
		}
		item.TotalGoals += rec.TotalGoals
		item.TotalXG += rec.TotalXG
	}

	out := make([]DailyTotal, 0, len(byDate))
	for _, item := range byDate {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out
}
