package app

import (
	"fmt"

	"github.com/riskibarqy/derby-xg/internal/config"
	"github.com/riskibarqy/derby-xg/internal/domain/derby"
	"github.com/riskibarqy/derby-xg/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/derby-xg/internal/infrastructure/repository/sqldb"
	"github.com/riskibarqy/derby-xg/internal/platform/logging"
	"github.com/riskibarqy/derby-xg/internal/platform/resilience"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// NewMatchStatsRepository opens the configured match_stats store. The memory
// driver serves the bundled derby season and needs no cleanup.
func NewMatchStatsRepository(cfg config.Config, logger *logging.Logger) (derby.Repository, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.DBDriver {
	case config.DriverMemory:
		logger.Info("match stats store ready", "driver", cfg.DBDriver, "matches", len(memory.SeedMatches()))
		return memory.NewMatchStatsRepository(memory.SeedMatches(), dateWindow(cfg)), func() error { return nil }, nil
	case config.DriverSQLite, config.DriverPostgres:
	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	dsn := cfg.DBURL
	if cfg.DBDriver == config.DriverPostgres {
		dsn = normalizeDBURL(dsn, cfg.DBDisablePreparedBinary)
	}

	db, err := otelsqlx.Open(cfg.DBDriver, dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver == config.DriverSQLite {
		// One connection keeps a file database free of writer contention.
		db.SetMaxOpenConns(1)
	}

	breaker := resilience.NewCircuitBreaker(resilience.BreakerConfig{
		FailureThreshold: cfg.DBBreakerFailureCount,
		OpenTimeout:      cfg.DBBreakerOpenTimeout,
	})

	repo := sqldb.NewMatchStatsRepository(db,
		sqldb.WithDateWindow(dateWindow(cfg)),
		sqldb.WithLoadTimeout(cfg.DBLoadTimeout),
		sqldb.WithCircuitBreaker(breaker),
	)

	logger.Info("match stats store ready",
		"driver", cfg.DBDriver,
		"db_name", dbNameFromURL(cfg.DBURL),
		"breaker_enabled", breaker != nil,
	)
	return repo, db.Close, nil
}
