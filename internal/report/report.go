package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/riskibarqy/derby-xg/internal/domain/xgstats"
	"github.com/riskibarqy/derby-xg/internal/usecase"
)

const dateLayout = "2006-01-02"

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	metricColor  = color.New(color.FgRed)
	aboveColor   = color.New(color.FgGreen)
	belowColor   = color.New(color.FgRed)
	teamColor    = color.New(color.FgYellow, color.Bold)
)

// Write prints the dashboard as terminal tables: the correlation summary,
// team performance, daily totals, outliers and the two surprise results.
func Write(w io.Writer, data usecase.DashboardData) error {
	if err := writeSummary(w, data); err != nil {
		return err
	}
	if err := writePerformance(w, data.TeamPerformance); err != nil {
		return err
	}
	if err := writeDailyTotals(w, data.DailyTotals); err != nil {
		return err
	}
	if err := writeOutliers(w, data.Outliers); err != nil {
		return err
	}
	return writeSurprises(w, data)
}

func writeSummary(w io.Writer, data usecase.DashboardData) error {
	if _, err := headingColor.Fprintf(w, "Derby xG summary (%d matches)\n", len(data.Records)); err != nil {
		return err
	}
	lines := []string{
		fmt.Sprintf("Pearson Correlation: %.6f", data.Correlation.Coefficient),
		fmt.Sprintf("P-value: %.6f", data.Correlation.PValue),
		fmt.Sprintf("Average xG Prediction Error: %.6f", data.MeanPredictionError),
	}
	for _, line := range lines {
		if _, err := metricColor.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writePerformance(w io.Writer, rows []xgstats.TeamPerformance) error {
	if _, err := headingColor.Fprintln(w, "Average Goal - xG Performance"); err != nil {
		return err
	}

	table := newTable(w)
	table.Header([]string{"Team", "Appearances", "Goal - xG"})

	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		value := fmt.Sprintf("%+.2f", row.AveragePerformance)
		switch {
		case row.AveragePerformance > 0:
			value = aboveColor.Sprint(value)
		case row.AveragePerformance < 0:
			value = belowColor.Sprint(value)
		}
		data = append(data, []string{row.Team, strconv.Itoa(row.Appearances), value})
	}
	return renderTable(w, table, data)
}

func writeDailyTotals(w io.Writer, daily []xgstats.DailyTotal) error {
	if _, err := headingColor.Fprintln(w, "Total xG vs Total Goals"); err != nil {
		return err
	}

	table := newTable(w)
	table.Header([]string{"Match Date", "Total Goals", "Total xG"})

	data := make([][]string, 0, len(daily))
	for _, d := range daily {
		data = append(data, []string{
			d.Date.Format(dateLayout),
			strconv.Itoa(d.TotalGoals),
			strconv.FormatFloat(d.TotalXG, 'f', 2, 64),
		})
	}
	return renderTable(w, table, data)
}

func writeOutliers(w io.Writer, outliers []xgstats.EnrichedMatchRecord) error {
	if _, err := headingColor.Fprintf(w, "Outliers (Error > %g)\n", xgstats.DefaultOutlierThreshold); err != nil {
		return err
	}
	if len(outliers) == 0 {
		_, err := fmt.Fprint(w, "none\n\n")
		return err
	}

	table := newTable(w)
	table.Header([]string{"Match Date", "Home", "Away", "Score", "xG Diff", "Error"})

	data := make([][]string, 0, len(outliers))
	for _, rec := range outliers {
		data = append(data, []string{
			rec.MatchDate.Format(dateLayout),
			rec.HomeTeam,
			rec.AwayTeam,
			fmt.Sprintf("%d-%d", rec.HomeScore, rec.AwayScore),
			strconv.FormatFloat(rec.XGDifference, 'f', 2, 64),
			strconv.FormatFloat(rec.XGPredictionError, 'f', 2, 64),
		})
	}
	return renderTable(w, table, data)
}

func writeSurprises(w io.Writer, data usecase.DashboardData) error {
	if _, err := headingColor.Fprintln(w, "Remarkable Statistics"); err != nil {
		return err
	}
	results := []struct {
		title  string
		result xgstats.TeamOutcomeResult
	}{
		{"More xG than the opponent but lost the most", data.OverperformedLoser},
		{"Less xG than the opponent but won the most", data.UnderperformedWinner},
	}
	for _, r := range results {
		label := r.result.Label
		if r.result.Found() {
			label = teamColor.Sprint(label)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", r.title, label); err != nil {
			return err
		}
	}
	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

func renderTable(w io.Writer, table *tablewriter.Table, data [][]string) error {
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
