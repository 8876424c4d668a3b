package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/derby-xg/internal/domain/derby"
	"github.com/riskibarqy/derby-xg/internal/infrastructure/repository/memory"
	derbymock "github.com/riskibarqy/derby-xg/internal/mocks/domain/derby"
	"github.com/stretchr/testify/mock"
)

func seededTable(t *testing.T) derby.Table {
	t.Helper()

	table, err := memory.NewMatchStatsRepository(memory.SeedMatches(), derby.DateWindow{}).ListMatchStats(context.Background())
	if err != nil {
		t.Fatalf("seed table: %v", err)
	}
	return table
}

type recordingMetrics struct {
	mu      sync.Mutex
	calls   int
	failed  int
	records int
}

func (m *recordingMetrics) ObserveDashboardCompute(_ time.Duration, records int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.records = records
	if err != nil {
		m.failed++
	}
}

func TestComputeDashboardData_SeedSeason(t *testing.T) {
	t.Parallel()

	repo := derbymock.NewRepository(t)
	repo.On("ListMatchStats", mock.Anything).Return(seededTable(t), nil).Once()

	data, err := ComputeDashboardData(context.Background(), repo)
	if err != nil {
		t.Fatalf("compute dashboard: %v", err)
	}

	if len(data.Records) != 12 {
		t.Fatalf("unexpected record count: %d", len(data.Records))
	}
	if data.Correlation.N != 12 {
		t.Fatalf("unexpected correlation sample size: %d", data.Correlation.N)
	}
	if data.Correlation.Coefficient < -1 || data.Correlation.Coefficient > 1 {
		t.Fatalf("coefficient out of range: %v", data.Correlation.Coefficient)
	}
	if data.OverperformedLoser.Label != "Fenerbahce (3 matches)" {
		t.Fatalf("unexpected overperformed loser: %q", data.OverperformedLoser.Label)
	}
	if data.UnderperformedWinner.Label != "Besiktas (3 matches)" {
		t.Fatalf("unexpected underperformed winner: %q", data.UnderperformedWinner.Label)
	}
	if len(data.TeamPerformance) != 4 || len(data.DeltaGrid.Teams) != 4 {
		t.Fatalf("expected four teams, got performance=%d grid=%d", len(data.TeamPerformance), len(data.DeltaGrid.Teams))
	}
	if len(data.DailyTotals) != 12 {
		t.Fatalf("expected one daily total per match day, got %d", len(data.DailyTotals))
	}
	for _, rec := range data.Outliers {
		if rec.XGPredictionError <= 2.0 {
			t.Fatalf("outlier below threshold: %+v", rec)
		}
	}
}

func TestComputeDashboardData_StoreUnavailable(t *testing.T) {
	t.Parallel()

	repo := derbymock.NewRepository(t)
	storeErr := errors.Mark(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), derby.ErrStoreConnection)
	repo.On("ListMatchStats", mock.Anything).Return(derby.Table{}, storeErr).Once()

	_, err := ComputeDashboardData(context.Background(), repo)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if !errors.Is(err, derby.ErrStoreConnection) {
		t.Fatalf("expected store cause to be preserved, got %v", err)
	}
}

func TestComputeDashboardData_UnprocessableInputs(t *testing.T) {
	t.Parallel()

	full := seededTable(t)
	badRow := derby.Row{}
	for k, v := range full.Rows[0] {
		badRow[k] = v
	}
	badRow[derby.ColumnXGHome] = "not-a-number"

	tests := []struct {
		name  string
		table derby.Table
		cause error
	}{
		{name: "empty table", table: derby.Table{Columns: full.Columns}, cause: derby.ErrEmptyInput},
		{name: "single match", table: derby.Table{Columns: full.Columns, Rows: full.Rows[:1]}, cause: derby.ErrInsufficientData},
		{name: "bad cell", table: derby.Table{Columns: full.Columns, Rows: []derby.Row{full.Rows[1], badRow}}, cause: derby.ErrSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := derbymock.NewRepository(t)
			repo.On("ListMatchStats", mock.Anything).Return(tt.table, nil).Once()

			_, err := ComputeDashboardData(context.Background(), repo)
			if !errors.Is(err, ErrUnprocessable) {
				t.Fatalf("expected ErrUnprocessable, got %v", err)
			}
			if !errors.Is(err, tt.cause) {
				t.Fatalf("expected cause %v, got %v", tt.cause, err)
			}
		})
	}
}

func TestDashboardService_WarmupThenGetUsesCache(t *testing.T) {
	t.Parallel()

	repo := derbymock.NewRepository(t)
	repo.On("ListMatchStats", mock.Anything).Return(seededTable(t), nil).Once()

	metrics := &recordingMetrics{}
	svc := NewDashboardService(repo, 0, metrics, nil)

	if err := svc.Warmup(context.Background()); err != nil {
		t.Fatalf("warmup: %v", err)
	}

	for i := 0; i < 3; i++ {
		data, err := svc.Get(context.Background())
		if err != nil {
			t.Fatalf("get dashboard: %v", err)
		}
		if len(data.Records) != 12 || data.GeneratedAt.IsZero() {
			t.Fatalf("unexpected cached dashboard: records=%d generatedAt=%v", len(data.Records), data.GeneratedAt)
		}
	}

	if metrics.calls != 1 || metrics.records != 12 {
		t.Fatalf("expected a single computation of 12 records, got calls=%d records=%d", metrics.calls, metrics.records)
	}
}

func TestDashboardService_FailedWarmupIsRetriedOnGet(t *testing.T) {
	t.Parallel()

	repo := derbymock.NewRepository(t)
	storeErr := errors.Mark(errors.New("database is locked"), derby.ErrStoreConnection)
	repo.On("ListMatchStats", mock.Anything).Return(derby.Table{}, storeErr).Once()
	repo.On("ListMatchStats", mock.Anything).Return(seededTable(t), nil).Once()

	metrics := &recordingMetrics{}
	svc := NewDashboardService(repo, time.Minute, metrics, nil)

	if err := svc.Warmup(context.Background()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected warmup to fail with ErrDependencyUnavailable, got %v", err)
	}

	data, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get after failed warmup: %v", err)
	}
	if len(data.Records) != 12 {
		t.Fatalf("unexpected record count: %d", len(data.Records))
	}
	if metrics.calls != 2 || metrics.failed != 1 {
		t.Fatalf("unexpected metrics: calls=%d failed=%d", metrics.calls, metrics.failed)
	}
}

func TestDashboardService_TeamSummary(t *testing.T) {
	t.Parallel()

	repo := derbymock.NewRepository(t)
	repo.On("ListMatchStats", mock.Anything).Return(seededTable(t), nil).Once()

	svc := NewDashboardService(repo, 0, nil, nil)

	summary, err := svc.TeamSummary(context.Background(), "  galatasaray ")
	if err != nil {
		t.Fatalf("team summary: %v", err)
	}
	if summary.Performance.Team != "Galatasaray" || summary.Performance.Appearances != 6 {
		t.Fatalf("unexpected performance: %+v", summary.Performance)
	}
	if len(summary.Matches) != 6 || len(summary.Weeks) != 6 {
		t.Fatalf("expected six matches and six observed weeks, got matches=%d weeks=%d", len(summary.Matches), len(summary.Weeks))
	}
	for _, rec := range summary.Matches {
		if rec.HomeTeam != "Galatasaray" && rec.AwayTeam != "Galatasaray" {
			t.Fatalf("match without the team: %+v", rec.MatchRecord)
		}
	}
	for i := 1; i < len(summary.Weeks); i++ {
		if !summary.Weeks[i-1].Week.Before(summary.Weeks[i].Week) {
			t.Fatalf("weeks out of order: %v then %v", summary.Weeks[i-1].Week, summary.Weeks[i].Week)
		}
	}
}

func TestDashboardService_TeamSummaryErrors(t *testing.T) {
	t.Parallel()

	repo := derbymock.NewRepository(t)
	repo.On("ListMatchStats", mock.Anything).Return(seededTable(t), nil).Once()

	svc := NewDashboardService(repo, 0, nil, nil)

	if _, err := svc.TeamSummary(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank team, got %v", err)
	}
	if _, err := svc.TeamSummary(context.Background(), "Kasimpasa"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}
}
