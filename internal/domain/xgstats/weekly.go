package xgstats

import (
	"sort"
	"time"
)

// WeekTeam keys one heatmap cell.
type WeekTeam struct {
	Week time.Time
	Team string
}

// WeeklyDelta maps each observed (week, team) pair to its mean xG delta.
type WeeklyDelta map[WeekTeam]float64

// DeltaCell is one slot of the dense grid. Observed is false for slots filled
// with zero because the team had no match that week.
type DeltaCell struct {
	Value    float64
	Observed bool
}

// DeltaGrid is the dense team x week layout of a WeeklyDelta.
// Cells[i][j] belongs to Teams[i] and Weeks[j].
type DeltaGrid struct {
	Teams []string
	Weeks []time.Time
	Cells [][]DeltaCell
}

// WeeklyDeltas averages XGDelta per (week, team), counting every record once
// for the home side and once for the away side.
func WeeklyDeltas(records []EnrichedMatchRecord) WeeklyDelta {
	sums := make(map[WeekTeam]float64)
	counts := make(map[WeekTeam]int)
	for _, rec := range records {
		for _, team := range [2]string{rec.HomeTeam, rec.AwayTeam} {
			key := WeekTeam{Week: rec.MatchWeek, Team: team}
			sums[key] += rec.XGDelta
			counts[key]++
		}
	}

	out := make(WeeklyDelta, len(sums))
	for key, sum := range sums {
		out[key] = sum / float64(counts[key])
	}

	return out
}

// Grid lays the deltas out densely. Missing (week, team) combinations are
// filled with 0 and marked unobserved.
func (w WeeklyDelta) Grid() DeltaGrid {
	teamSet := make(map[string]struct{})
	weekSet := make(map[time.Time]struct{})
	for key := range w {
		teamSet[key.Team] = struct{}{}
		weekSet[key.Week] = struct{}{}
	}

	teams := make([]string, 0, len(teamSet))
	for team := range teamSet {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	weeks := make([]time.Time, 0, len(weekSet))
	for week := range weekSet {
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].Before(weeks[j])
	})

	cells := make([][]DeltaCell, len(teams))
	for i, team := range teams {
		cells[i] = make([]DeltaCell, len(weeks))
		for j, week := range weeks {
			value, ok := w[WeekTeam{Week: week, Team: team}]
			if !ok {
				cells[i][j] = DeltaCell{Value: 0, Observed: false}
				continue
			}
			cells[i][j] = DeltaCell{Value: value, Observed: true}
		}
	}

	return DeltaGrid{Teams: teams, Weeks: weeks, Cells: cells}
}

func (g DeltaGrid) At(team string, week time.Time) (DeltaCell, bool) {
	for i, t := range g.Teams {
		if t != team {
			continue
		}
		for j, wk := range g.Weeks {
			if wk.Equal(week) {
				return g.Cells[i][j], true
			}
		}
	}
	return DeltaCell{}, false
}

// Values returns the plain z-matrix for a heatmap.
func (g DeltaGrid) Values() [][]float64 {
	out := make([][]float64, len(g.Cells))
	for i, row := range g.Cells {
		out[i] = make([]float64, len(row))
		for j, c := range row {
			out[i][j] = c.Value
		}
	}
	return out
}

func (g DeltaGrid) Max() float64 {
	peak := 0.0
	for _, row := range g.Cells {
		for _, c := range row {
			if c.Value > peak {
				peak = c.Value
			}
		}
	}
	return peak
}
