package render

import (
	"github.com/riskibarqy/derby-xg/internal/domain/xgstats"
	"github.com/riskibarqy/derby-xg/internal/usecase"
)

const (
	FigureScatter     = "scatter-plot"
	FigureTrend       = "trend-graph"
	FigurePerformance = "xg-performance-graph"
	FigureHeatmap     = "xg-heatmap"

	titlePrefix    = "Trendyol Super League Derby Games (2024-2025)<br>"
	outlierName    = "Outliers (Error > 2)"
	outlierColor   = "yellow"
	backgroundFill = "white"
)

// BuildCharts returns the four dashboard figures in page order.
func BuildCharts(data usecase.DashboardData) []Figure {
	return []Figure{
		ScatterFigure(data.Records, data.Outliers),
		TrendFigure(data.DailyTotals),
		PerformanceFigure(data.TeamPerformance),
		HeatmapFigure(data.DeltaGrid),
	}
}

// ScatterFigure plots xG difference against score difference with one trace
// per home team and a highlighted overlay for outliers.
func ScatterFigure(records, outliers []xgstats.EnrichedMatchRecord) Figure {
	order := make([]string, 0)
	byTeam := make(map[string][]xgstats.EnrichedMatchRecord)
	for _, rec := range records {
		if _, ok := byTeam[rec.HomeTeam]; !ok {
			order = append(order, rec.HomeTeam)
		}
		byTeam[rec.HomeTeam] = append(byTeam[rec.HomeTeam], rec)
	}

	traces := make([]Trace, 0, len(order)+1)
	for _, team := range order {
		group := byTeam[team]
		x := make([]float64, 0, len(group))
		y := make([]int, 0, len(group))
		custom := make([][]string, 0, len(group))
		for _, rec := range group {
			x = append(x, rec.XGDifference)
			y = append(y, rec.ScoreDifference)
			custom = append(custom, []string{rec.HomeTeam, rec.AwayTeam})
		}
		traces = append(traces, Trace{
			Type:       "scatter",
			Mode:       "markers",
			Name:       team,
			X:          x,
			Y:          y,
			CustomData: custom,
			HoverTemplate: "<b>Home Team: %{customdata[0]}<br>" +
				"Away Team: %{customdata[1]}<br>" +
				"xG Difference: %{x}<br>" +
				"Score Difference: %{y}<extra></extra>",
			Marker: &Marker{Color: ColorFor(team)},
		})
	}

	ox := make([]float64, 0, len(outliers))
	oy := make([]int, 0, len(outliers))
	for _, rec := range outliers {
		ox = append(ox, rec.XGDifference)
		oy = append(oy, rec.ScoreDifference)
	}
	showLegend := true
	traces = append(traces, Trace{
		Type:         "scatter",
		Mode:         "markers+text",
		Name:         outlierName,
		X:            ox,
		Y:            oy,
		TextPosition: "top center",
		Marker: &Marker{
			Color: outlierColor,
			Size:  10,
			Line:  &MarkerLine{Color: "black", Width: 2},
		},
		ShowLegend: &showLegend,
	})

	return Figure{
		ID:   FigureScatter,
		Data: traces,
		Layout: Layout{
			Title:        Text{Text: titlePrefix + "xG Difference vs Score Difference"},
			XAxis:        Axis{Title: Text{Text: "xG Difference (Home - Away)"}},
			YAxis:        Axis{Title: Text{Text: "Score Difference (Home - Away)"}},
			Legend:       &Legend{Title: Text{Text: "Home Team"}},
			PaperBGColor: backgroundFill,
			PlotBGColor:  backgroundFill,
		},
	}
}

// TrendFigure groups total goals and total xG per match day.
func TrendFigure(daily []xgstats.DailyTotal) Figure {
	dates := make([]string, 0, len(daily))
	goals := make([]int, 0, len(daily))
	xg := make([]float64, 0, len(daily))
	for _, d := range daily {
		dates = append(dates, d.Date.Format("2006-01-02"))
		goals = append(goals, d.TotalGoals)
		xg = append(xg, d.TotalXG)
	}

	hover := "<b>Match Date: %{x|%d %b %Y}</b><br>%{data.name}: %{y}<extra></extra>"
	return Figure{
		ID: FigureTrend,
		Data: []Trace{
			{Type: "bar", Name: "Total Goals", X: dates, Y: goals, HoverTemplate: hover},
			{Type: "bar", Name: "Total xG", X: dates, Y: xg, HoverTemplate: hover},
		},
		Layout: Layout{
			Title:        Text{Text: titlePrefix + "Total xG vs Total Goals"},
			XAxis:        Axis{Title: Text{Text: "Match Date"}, Type: "date"},
			YAxis:        Axis{Title: Text{Text: "value"}},
			BarMode:      "group",
			PaperBGColor: backgroundFill,
			PlotBGColor:  backgroundFill,
		},
	}
}

// PerformanceFigure draws one coloured bar per team.
func PerformanceFigure(rows []xgstats.TeamPerformance) Figure {
	traces := make([]Trace, 0, len(rows))
	for _, row := range rows {
		traces = append(traces, Trace{
			Type:          "bar",
			Name:          row.Team,
			X:             []string{row.Team},
			Y:             []float64{row.AveragePerformance},
			HoverTemplate: "<b>%{x}</b><br>Average Goal - xG: %{y:.2f}<extra></extra>",
			Marker:        &Marker{Color: ColorFor(row.Team)},
		})
	}

	return Figure{
		ID:   FigurePerformance,
		Data: traces,
		Layout: Layout{
			Title:        Text{Text: titlePrefix + "Average Goal - xG Performance"},
			XAxis:        Axis{Title: Text{Text: "team"}},
			YAxis:        Axis{Title: Text{Text: "Average Goal - xG"}},
			PaperBGColor: backgroundFill,
			PlotBGColor:  backgroundFill,
		},
	}
}

// HeatmapFigure shows the dense weekly delta grid, zero-filled weeks included.
func HeatmapFigure(grid xgstats.DeltaGrid) Figure {
	weeks := make([]string, 0, len(grid.Weeks))
	for _, w := range grid.Weeks {
		weeks = append(weeks, w.Format("02 Jan"))
	}
	zmin, zmax := 0.0, grid.Max()

	return Figure{
		ID: FigureHeatmap,
		Data: []Trace{{
			Type:         "heatmap",
			X:            weeks,
			Y:            grid.Teams,
			Z:            grid.Values(),
			ColorScale:   "RdBu",
			ReverseScale: true,
			ZMin:         &zmin,
			ZMax:         &zmax,
			ColorBar:     &ColorBar{Title: Text{Text: "xG Delta"}},
		}},
		Layout: Layout{
			Title:        Text{Text: titlePrefix + "Weekly Average xG Delta"},
			XAxis:        Axis{Title: Text{Text: "Match Week"}, Type: "category"},
			YAxis:        Axis{Title: Text{Text: "Team"}},
			PaperBGColor: backgroundFill,
			PlotBGColor:  backgroundFill,
		},
	}
}
