package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/derby-xg/internal/config"
	"github.com/riskibarqy/derby-xg/internal/domain/derby"
	"github.com/riskibarqy/derby-xg/internal/interfaces/httpapi"
	"github.com/riskibarqy/derby-xg/internal/observability"
	"github.com/riskibarqy/derby-xg/internal/platform/logging"
	"github.com/riskibarqy/derby-xg/internal/usecase"
)

// NewHTTPServer builds the dashboard server and computes the dashboard once.
// A failed first computation is logged and retried on the first request. The
// returned cleanup func releases the match_stats store.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repo, cleanup, err := NewMatchStatsRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var (
		metrics        usecase.DashboardMetrics
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		m := observability.NewDashboardMetrics()
		metrics = m
		metricsHandler = m.Handler()
	}

	dashboardSvc := usecase.NewDashboardService(repo, cfg.DashboardCacheTTL, metrics, logger.Named("dashboard"))
	if err := dashboardSvc.Warmup(ctx); err != nil {
		logger.WarnContext(ctx, "initial dashboard computation failed", "error", err)
	}

	handler := httpapi.NewHandler(dashboardSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, metricsHandler)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func dateWindow(cfg config.Config) derby.DateWindow {
	return derby.DateWindow{From: cfg.MatchDateFrom, To: cfg.MatchDateTo}
}
