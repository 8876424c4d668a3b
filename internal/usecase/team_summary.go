package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/derby-xg/internal/domain/xgstats"
)

// TeamSummary is one team's slice of the dashboard.
type TeamSummary struct {
	Performance xgstats.TeamPerformance
	Weeks       []TeamWeek
	Matches     []xgstats.EnrichedMatchRecord
}

// TeamWeek is an observed heatmap cell for the team.
type TeamWeek struct {
	Week  time.Time
	Delta float64
}

// TeamSummary looks the team up case-insensitively in the cached dashboard.
func (s *DashboardService) TeamSummary(ctx context.Context, team string) (TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.TeamSummary")
	defer span.End()

	name := strings.TrimSpace(team)
	if name == "" {
		return TeamSummary{}, errors.Wrap(ErrInvalidInput, "team name is required")
	}

	data, err := s.Get(ctx)
	if err != nil {
		return TeamSummary{}, err
	}

	return summarizeTeam(data, name)
}

func summarizeTeam(data DashboardData, name string) (TeamSummary, error) {
	var out TeamSummary
	found := false
	for _, perf := range data.TeamPerformance {
		if strings.EqualFold(perf.Team, name) {
			out.Performance = perf
			found = true
			break
		}
	}
	if !found {
		return TeamSummary{}, errors.Wrapf(ErrNotFound, "team %q", name)
	}

	team := out.Performance.Team
	for i, gridTeam := range data.DeltaGrid.Teams {
		if gridTeam != team {
			continue
		}
		for j, cell := range data.DeltaGrid.Cells[i] {
			if cell.Observed {
				out.Weeks = append(out.Weeks, TeamWeek{Week: data.DeltaGrid.Weeks[j], Delta: cell.Value})
			}
		}
		break
	}

	for _, rec := range data.Records {
		if rec.HomeTeam == team || rec.AwayTeam == team {
			out.Matches = append(out.Matches, rec)
		}
	}

	return out, nil
}
