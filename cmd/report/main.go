package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/riskibarqy/derby-xg/internal/app"
	"github.com/riskibarqy/derby-xg/internal/config"
	"github.com/riskibarqy/derby-xg/internal/platform/logging"
	"github.com/riskibarqy/derby-xg/internal/report"
	"github.com/riskibarqy/derby-xg/internal/usecase"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	driver  string
	dbURL   string
	from    string
	to      string
	noColor bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:           "derby-report",
		Short:         "Print the derby xG analysis as terminal tables",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.driver, "db-driver", "", "match_stats store: sqlite, postgres or memory (default from DB_DRIVER)")
	cmd.Flags().StringVar(&flags.dbURL, "db-url", "", "store DSN or sqlite path (default from DB_URL)")
	cmd.Flags().StringVar(&flags.from, "from", "", "first match date to include, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.to, "to", "", "last match date to include, YYYY-MM-DD")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	return cmd
}

func run(ctx context.Context, flags *reportFlags) error {
	if flags.noColor {
		color.NoColor = true
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg, flags); err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:       logging.LevelWarn,
		Service:     "derby-report",
		Environment: cfg.AppEnv,
		Output:      os.Stderr,
	})
	defer func() { _ = logger.Sync() }()

	repo, closeStore, err := app.NewMatchStatsRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	data, err := usecase.ComputeDashboardData(ctx, repo)
	if err != nil {
		return fmt.Errorf("compute dashboard: %w", err)
	}
	return report.Write(os.Stdout, data)
}

func applyFlags(cfg *config.Config, flags *reportFlags) error {
	if driver := strings.ToLower(strings.TrimSpace(flags.driver)); driver != "" {
		cfg.DBDriver = driver
		if driver == config.DriverSQLite && flags.dbURL == "" {
			cfg.DBURL = config.DefaultSQLitePath
		}
	}
	if flags.dbURL != "" {
		cfg.DBURL = strings.TrimSpace(flags.dbURL)
	}

	for _, f := range []struct {
		raw    string
		target *time.Time
		name   string
	}{
		{flags.from, &cfg.MatchDateFrom, "--from"},
		{flags.to, &cfg.MatchDateTo, "--to"},
	} {
		if f.raw == "" {
			continue
		}
		parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(f.raw))
		if err != nil {
			return fmt.Errorf("parse %s: %w", f.name, err)
		}
		*f.target = parsed
	}

	if !cfg.MatchDateFrom.IsZero() && !cfg.MatchDateTo.IsZero() && cfg.MatchDateTo.Before(cfg.MatchDateFrom) {
		return fmt.Errorf("--to must not be before --from")
	}
	return nil
}
