package xgstats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TeamPerformance is a team's mean of (goals scored - xG) over all appearances.
type TeamPerformance struct {
	Team               string
	AveragePerformance float64
	Appearances        int
}

// TeamXGPerformance averages every home and away appearance per team.
// Rows come back sorted by team name.
func TeamXGPerformance(records []EnrichedMatchRecord) []TeamPerformance {
	byTeam := make(map[string][]float64)
	for _, rec := range records {
		byTeam[rec.HomeTeam] = append(byTeam[rec.HomeTeam], float64(rec.HomeScore)-rec.XGHome)
		byTeam[rec.AwayTeam] = append(byTeam[rec.AwayTeam], float64(rec.AwayScore)-rec.XGAway)
	}

	out := make([]TeamPerformance, 0, len(byTeam))
	for team, values := range byTeam {
		out = append(out, TeamPerformance{
			Team:               team,
			AveragePerformance: stat.Mean(values, nil),
			Appearances:        len(values),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Team < out[j].Team
	})

	return out
}
