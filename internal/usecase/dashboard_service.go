package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/derby-xg/internal/domain/derby"
	"github.com/riskibarqy/derby-xg/internal/platform/cache"
	"github.com/riskibarqy/derby-xg/internal/platform/logging"
)

const dashboardCacheKey = "dashboard"

// DashboardMetrics receives one observation per dashboard computation.
type DashboardMetrics interface {
	ObserveDashboardCompute(elapsed time.Duration, records int, err error)
}

// DashboardService owns the process-wide dashboard value. Warmup computes it
// once at start; Get serves the cached value and recomputes only after the
// configured TTL has expired.
type DashboardService struct {
	repo    derby.Repository
	cache   *cache.Store[DashboardData]
	metrics DashboardMetrics
	logger  *logging.Logger
	now     func() time.Time
}

func NewDashboardService(repo derby.Repository, ttl time.Duration, metrics DashboardMetrics, logger *logging.Logger) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardService{
		repo:    repo,
		cache:   cache.NewStore[DashboardData](ttl),
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Warmup computes and caches the dashboard, replacing any cached value.
func (s *DashboardService) Warmup(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Warmup")
	defer span.End()

	data, err := s.cache.Reload(ctx, dashboardCacheKey, s.compute)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "dashboard computed",
		"records", len(data.Records),
		"teams", len(data.TeamPerformance),
		"correlation", data.Correlation.Coefficient,
	)
	return nil
}

func (s *DashboardService) Get(ctx context.Context) (DashboardData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	return s.cache.GetOrLoad(ctx, dashboardCacheKey, s.compute)
}

func (s *DashboardService) compute(ctx context.Context) (DashboardData, error) {
	started := s.now()
	data, err := ComputeDashboardData(ctx, s.repo)
	elapsed := s.now().Sub(started)

	if s.metrics != nil {
		s.metrics.ObserveDashboardCompute(elapsed, len(data.Records), err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "compute dashboard failed", "elapsed", elapsed, "error", err)
		return DashboardData{}, err
	}

	data.GeneratedAt = started.UTC()
	return data, nil
}
