package render

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/derby-xg/internal/domain/derby"
	"github.com/riskibarqy/derby-xg/internal/domain/xgstats"
	"github.com/riskibarqy/derby-xg/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/derby-xg/internal/usecase"
)

func seasonData(t *testing.T) usecase.DashboardData {
	t.Helper()

	repo := memory.NewMatchStatsRepository(memory.SeedMatches(), derby.DateWindow{})
	data, err := usecase.ComputeDashboardData(context.Background(), repo)
	if err != nil {
		t.Fatalf("compute dashboard: %v", err)
	}
	data.GeneratedAt = time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)
	return data
}

func TestColorFor(t *testing.T) {
	if got := ColorFor("Galatasaray"); got != "red" {
		t.Fatalf("expected red, got %s", got)
	}
	if got := ColorFor("Goztepe"); got != FallbackColor {
		t.Fatalf("expected fallback, got %s", got)
	}

	palette := TeamColors()
	palette["Galatasaray"] = "gold"
	if got := ColorFor("Galatasaray"); got != "red" {
		t.Fatalf("palette copy leaked into lookup: %s", got)
	}
}

func TestBuildCharts(t *testing.T) {
	data := seasonData(t)
	figures := BuildCharts(data)
	if len(figures) != 4 {
		t.Fatalf("expected 4 figures, got %d", len(figures))
	}

	wantIDs := []string{FigureScatter, FigureTrend, FigurePerformance, FigureHeatmap}
	for i, id := range wantIDs {
		if figures[i].ID != id {
			t.Fatalf("figure %d: expected %s, got %s", i, id, figures[i].ID)
		}
	}

	scatter := figures[0]
	if len(scatter.Data) != 5 {
		t.Fatalf("expected 4 home-team traces plus outliers, got %d", len(scatter.Data))
	}
	if scatter.Data[0].Name != "Fenerbahce" || scatter.Data[0].Marker.Color != "navy" {
		t.Fatalf("unexpected first trace: %+v", scatter.Data[0])
	}
	if last := scatter.Data[len(scatter.Data)-1]; last.Name != outlierName {
		t.Fatalf("expected outlier overlay last, got %s", last.Name)
	}

	if got := len(figures[1].Data); got != 2 {
		t.Fatalf("expected goals and xG bars, got %d", got)
	}
	if got := len(figures[2].Data); got != 4 {
		t.Fatalf("expected one bar per team, got %d", got)
	}

	heat := figures[3].Data[0]
	if len(heat.Z) != 4 {
		t.Fatalf("expected 4 heatmap rows, got %d", len(heat.Z))
	}
	for i, row := range heat.Z {
		if len(row) != 12 {
			t.Fatalf("row %d: expected 12 weeks, got %d", i, len(row))
		}
	}
	if heat.ZMax == nil || *heat.ZMax != data.DeltaGrid.Max() {
		t.Fatalf("expected zmax %v, got %v", data.DeltaGrid.Max(), heat.ZMax)
	}
	if heat.ZMin == nil || *heat.ZMin != 0 {
		t.Fatalf("expected zmin 0, got %v", heat.ZMin)
	}
}

func TestFiguresEncodeForPlotly(t *testing.T) {
	raw, err := sonic.Marshal(BuildCharts(seasonData(t)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(raw)
	for _, want := range []string{`"type":"heatmap"`, `"barmode":"group"`, `"id":"scatter-plot"`, `"reversescale":true`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestHeatmapFigure_EmptyGrid(t *testing.T) {
	fig := HeatmapFigure(xgstats.WeeklyDelta{}.Grid())
	if len(fig.Data) != 1 || len(fig.Data[0].Z) != 0 {
		t.Fatalf("expected one empty heatmap trace, got %+v", fig.Data)
	}
}

func TestWritePage(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePage(&buf, seasonData(t)); err != nil {
		t.Fatalf("write page: %v", err)
	}

	page := buf.String()
	for _, want := range []string{
		"plotly-2.35.2.min.js",
		`id="scatter-plot"`,
		`id="xg-heatmap"`,
		"Fenerbahce (3 matches)",
		"Besiktas (3 matches)",
		"background-color: navy",
		"Computed 2025-05-04 12:00 UTC",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestWritePage_NoQualifyingTeam(t *testing.T) {
	data := seasonData(t)
	data.OverperformedLoser = xgstats.TeamOutcomeResult{Label: xgstats.NoTeamLabel}

	var buf bytes.Buffer
	if err := WritePage(&buf, data); err != nil {
		t.Fatalf("write page: %v", err)
	}
	page := buf.String()
	if !strings.Contains(page, xgstats.NoTeamLabel) {
		t.Fatalf("expected fallback label in page")
	}
	if !strings.Contains(page, "background-color: "+FallbackColor) {
		t.Fatalf("expected fallback background in page")
	}
}
