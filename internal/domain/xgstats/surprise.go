package xgstats

import "fmt"

// NoTeamLabel is shown when no match satisfies a surprise predicate.
const NoTeamLabel = "No team was found that met these criteria."

// TeamOutcomeResult names the team that most often produced a surprising result.
// Team is nil exactly when no record qualified.
type TeamOutcomeResult struct {
	Label string
	Team  *string
	Count int
}

func (r TeamOutcomeResult) Found() bool {
	return r.Team != nil
}

// TeamName returns the team or "" when none qualified.
func (r TeamOutcomeResult) TeamName() string {
	if r.Team == nil {
		return ""
	}
	return *r.Team
}

// qualifier reports which side of a match, if any, counts toward a tally.
type qualifier func(rec EnrichedMatchRecord) (string, bool)

// OverperformedButLost finds the team that most often had more xG than its
// opponent and still lost.
func OverperformedButLost(records []EnrichedMatchRecord) TeamOutcomeResult {
	return pluralityTeam(records, overperformedLoser)
}

// UnderperformedButWon finds the team that most often had less xG than its
// opponent and still won.
func UnderperformedButWon(records []EnrichedMatchRecord) TeamOutcomeResult {
	return pluralityTeam(records, underperformedWinner)
}

func overperformedLoser(rec EnrichedMatchRecord) (string, bool) {
	switch {
	case rec.XGHome > rec.XGAway && rec.HomeScore < rec.AwayScore:
		return rec.HomeTeam, true
	case rec.XGAway > rec.XGHome && rec.AwayScore < rec.HomeScore:
		return rec.AwayTeam, true
	default:
		return "", false
	}
}

func underperformedWinner(rec EnrichedMatchRecord) (string, bool) {
	switch {
	case rec.XGHome < rec.XGAway && rec.HomeScore > rec.AwayScore:
		return rec.HomeTeam, true
	case rec.XGAway < rec.XGHome && rec.AwayScore > rec.HomeScore:
		return rec.AwayTeam, true
	default:
		return "", false
	}
}

// pluralityTeam tallies qualifying teams and picks the highest count. Ties go
// to the team whose first qualifying match comes earliest in record order.
func pluralityTeam(records []EnrichedMatchRecord, qualifies qualifier) TeamOutcomeResult {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, rec := range records {
		team, ok := qualifies(rec)
		if !ok {
			continue
		}
		if _, seen := counts[team]; !seen {
			order = append(order, team)
		}
		counts[team]++
	}

	if len(order) == 0 {
		return TeamOutcomeResult{Label: NoTeamLabel}
	}

	best := order[0]
	for _, team := range order[1:] {
		if counts[team] > counts[best] {
			best = team
		}
	}

	return TeamOutcomeResult{
		Label: fmt.Sprintf("%s (%d matches)", best, counts[best]),
		Team:  &best,
		Count: counts[best],
	}
}
