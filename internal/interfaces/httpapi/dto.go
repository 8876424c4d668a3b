package httpapi

import (
	"time"

	"github.com/riskibarqy/derby-xg/internal/domain/xgstats"
	"github.com/riskibarqy/derby-xg/internal/render"
	"github.com/riskibarqy/derby-xg/internal/usecase"
)

const dateLayout = "2006-01-02"

type dashboardDTO struct {
	GeneratedAt          time.Time              `json:"generatedAt"`
	Matches              int                    `json:"matches"`
	Correlation          correlationDTO         `json:"correlation"`
	MeanPredictionError  float64                `json:"meanPredictionError"`
	DailyTotals          []dailyTotalDTO        `json:"dailyTotals"`
	TeamPerformance      []teamPerformanceDTO   `json:"teamPerformance"`
	WeeklyDelta          weeklyDeltaDTO         `json:"weeklyDelta"`
	OverperformedLoser   teamOutcomeDTO         `json:"overperformedLoser"`
	UnderperformedWinner teamOutcomeDTO         `json:"underperformedWinner"`
	Outliers             []predictionOutlierDTO `json:"outliers"`
}

type correlationDTO struct {
	Coefficient float64 `json:"coefficient"`
	PValue      float64 `json:"pValue"`
	N           int     `json:"n"`
}

type dailyTotalDTO struct {
	Date       string  `json:"date"`
	TotalGoals int     `json:"totalGoals"`
	TotalXG    float64 `json:"totalXG"`
}

type teamPerformanceDTO struct {
	Team               string  `json:"team"`
	AveragePerformance float64 `json:"averagePerformance"`
	Appearances        int     `json:"appearances"`
}

// weeklyDeltaDTO is the dense heatmap grid. Values[i][j] and Observed[i][j]
// belong to Teams[i] in Weeks[j].
type weeklyDeltaDTO struct {
	Teams    []string    `json:"teams"`
	Weeks    []string    `json:"weeks"`
	Values   [][]float64 `json:"values"`
	Observed [][]bool    `json:"observed"`
}

type teamOutcomeDTO struct {
	Label string  `json:"label"`
	Team  *string `json:"team"`
	Count int     `json:"count"`
}

type predictionOutlierDTO struct {
	MatchDate         string  `json:"matchDate"`
	HomeTeam          string  `json:"homeTeam"`
	AwayTeam          string  `json:"awayTeam"`
	HomeScore         int     `json:"homeScore"`
	AwayScore         int     `json:"awayScore"`
	XGDifference      float64 `json:"xgDifference"`
	XGPredictionError float64 `json:"xgPredictionError"`
}

type teamSummaryDTO struct {
	Performance teamPerformanceDTO `json:"performance"`
	Weeks       []teamWeekDTO      `json:"weeks"`
	Matches     []teamMatchDTO     `json:"matches"`
}

type teamWeekDTO struct {
	Week  string  `json:"week"`
	Delta float64 `json:"delta"`
}

type teamMatchDTO struct {
	MatchDate string  `json:"matchDate"`
	HomeTeam  string  `json:"homeTeam"`
	AwayTeam  string  `json:"awayTeam"`
	HomeScore int     `json:"homeScore"`
	AwayScore int     `json:"awayScore"`
	XGHome    float64 `json:"xgHome"`
	XGAway    float64 `json:"xgAway"`
}

type chartsDTO struct {
	Figures []render.Figure `json:"figures"`
}

func toDashboardDTO(data usecase.DashboardData) dashboardDTO {
	daily := make([]dailyTotalDTO, 0, len(data.DailyTotals))
	for _, d := range data.DailyTotals {
		daily = append(daily, dailyTotalDTO{
			Date:       d.Date.Format(dateLayout),
			TotalGoals: d.TotalGoals,
			TotalXG:    d.TotalXG,
		})
	}

	perf := make([]teamPerformanceDTO, 0, len(data.TeamPerformance))
	for _, p := range data.TeamPerformance {
		perf = append(perf, teamPerformanceDTO{
			Team:               p.Team,
			AveragePerformance: p.AveragePerformance,
			Appearances:        p.Appearances,
		})
	}

	outliers := make([]predictionOutlierDTO, 0, len(data.Outliers))
	for _, rec := range data.Outliers {
		outliers = append(outliers, predictionOutlierDTO{
			MatchDate:         rec.MatchDate.Format(dateLayout),
			HomeTeam:          rec.HomeTeam,
			AwayTeam:          rec.AwayTeam,
			HomeScore:         rec.HomeScore,
			AwayScore:         rec.AwayScore,
			XGDifference:      rec.XGDifference,
			XGPredictionError: rec.XGPredictionError,
		})
	}

	return dashboardDTO{
		GeneratedAt: data.GeneratedAt,
		Matches:     len(data.Records),
		Correlation: correlationDTO{
			Coefficient: data.Correlation.Coefficient,
			PValue:      data.Correlation.PValue,
			N:           data.Correlation.N,
		},
		MeanPredictionError:  data.MeanPredictionError,
		DailyTotals:          daily,
		TeamPerformance:      perf,
		WeeklyDelta:          toWeeklyDeltaDTO(data.DeltaGrid),
		OverperformedLoser:   toTeamOutcomeDTO(data.OverperformedLoser),
		UnderperformedWinner: toTeamOutcomeDTO(data.UnderperformedWinner),
		Outliers:             outliers,
	}
}

func toWeeklyDeltaDTO(grid xgstats.DeltaGrid) weeklyDeltaDTO {
	weeks := make([]string, 0, len(grid.Weeks))
	for _, w := range grid.Weeks {
		weeks = append(weeks, w.Format(dateLayout))
	}

	observed := make([][]bool, 0, len(grid.Cells))
	for _, row := range grid.Cells {
		flags := make([]bool, 0, len(row))
		for _, c := range row {
			flags = append(flags, c.Observed)
		}
		observed = append(observed, flags)
	}

	teams := grid.Teams
	if teams == nil {
		teams = []string{}
	}
	return weeklyDeltaDTO{
		Teams:    teams,
		Weeks:    weeks,
		Values:   grid.Values(),
		Observed: observed,
	}
}

func toTeamOutcomeDTO(result xgstats.TeamOutcomeResult) teamOutcomeDTO {
	return teamOutcomeDTO{
		Label: result.Label,
		Team:  result.Team,
		Count: result.Count,
	}
}

func toTeamSummaryDTO(summary usecase.TeamSummary) teamSummaryDTO {
	weeks := make([]teamWeekDTO, 0, len(summary.Weeks))
	for _, wk := range summary.Weeks {
		weeks = append(weeks, teamWeekDTO{Week: wk.Week.Format(dateLayout), Delta: wk.Delta})
	}

	matches := make([]teamMatchDTO, 0, len(summary.Matches))
	for _, rec := range summary.Matches {
		matches = append(matches, teamMatchDTO{
			MatchDate: rec.MatchDate.Format(dateLayout),
			HomeTeam:  rec.HomeTeam,
			AwayTeam:  rec.AwayTeam,
			HomeScore: rec.HomeScore,
			AwayScore: rec.AwayScore,
			XGHome:    rec.XGHome,
			XGAway:    rec.XGAway,
		})
	}

	return teamSummaryDTO{
		Performance: teamPerformanceDTO{
			Team:               summary.Performance.Team,
			AveragePerformance: summary.Performance.AveragePerformance,
			Appearances:        summary.Performance.Appearances,
		},
		Weeks:   weeks,
		Matches: matches,
	}
}
