// Package sqldb reads match_stats from a SQL store through sqlx.
package sqldb

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/derby-xg/internal/domain/derby"
	"github.com/riskibarqy/derby-xg/internal/platform/resilience"
	qb "github.com/riskibarqy/derby-xg/internal/platform/querybuilder"
)

const matchStatsTable = "match_stats"

type MatchStatsRepository struct {
	db          *sqlx.DB
	window      derby.DateWindow
	loadTimeout time.Duration
	breaker     *resilience.CircuitBreaker
}

type Option func(*MatchStatsRepository)

// WithDateWindow limits reads to matches inside window.
func WithDateWindow(window derby.DateWindow) Option {
	return func(r *MatchStatsRepository) {
		r.window = window
	}
}

// WithLoadTimeout bounds a single ListMatchStats call.
func WithLoadTimeout(timeout time.Duration) Option {
	return func(r *MatchStatsRepository) {
		r.loadTimeout = timeout
	}
}

func WithCircuitBreaker(breaker *resilience.CircuitBreaker) Option {
	return func(r *MatchStatsRepository) {
		r.breaker = breaker
	}
}

func NewMatchStatsRepository(db *sqlx.DB, opts ...Option) *MatchStatsRepository {
	r := &MatchStatsRepository{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListMatchStats reads every row of match_stats ordered by id. Driver and
// connectivity failures are marked with derby.ErrStoreConnection.
func (r *MatchStatsRepository) ListMatchStats(ctx context.Context) (derby.Table, error) {
	query, args, err := r.selectQuery()
	if err != nil {
		return derby.Table{}, errors.Wrap(err, "build select match_stats query")
	}

	if r.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.loadTimeout)
		defer cancel()
	}

	// A schema mismatch means the store answered, so it never trips the breaker.
	var (
		table     derby.Table
		schemaErr error
	)
	err = r.breaker.Execute(ctx, func(ctx context.Context) error {
		var loadErr error
		table, loadErr = r.load(ctx, query, args)
		if errors.Is(loadErr, derby.ErrSchema) {
			schemaErr = loadErr
			return nil
		}
		return loadErr
	})
	if schemaErr != nil {
		return derby.Table{}, schemaErr
	}
	if err != nil {
		return derby.Table{}, errors.Mark(errors.Wrap(err, "read match_stats"), derby.ErrStoreConnection)
	}

	return table, nil
}

func (r *MatchStatsRepository) load(ctx context.Context, query string, args []any) (derby.Table, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return derby.Table{}, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return derby.Table{}, err
	}
	if err := requireColumns(columns); err != nil {
		return derby.Table{}, err
	}

	table := derby.Table{Columns: columns}
	for rows.Next() {
		row := make(map[string]any, len(columns))
		if err := rows.MapScan(row); err != nil {
			return derby.Table{}, err
		}
		table.Rows = append(table.Rows, derby.Row(row))
	}
	if err := rows.Err(); err != nil {
		return derby.Table{}, err
	}

	return table, nil
}

func (r *MatchStatsRepository) selectQuery() (string, []any, error) {
	format := qb.Question
	if r.db.DriverName() == DriverPostgres {
		format = qb.Dollar
	}

	var from, to qb.Condition
	if !r.window.From.IsZero() {
		from = qb.Gte(derby.ColumnMatchDate, r.window.From.Format(time.DateOnly))
	}
	// The upper bound is the next day, exclusive, so "YYYY-MM-DD hh:mm:ss"
	// text on the last day still sorts inside the window.
	if !r.window.To.IsZero() {
		to = qb.Lt(derby.ColumnMatchDate, r.window.To.AddDate(0, 0, 1).Format(time.DateOnly))
	}

	return qb.Select("*").
		From(matchStatsTable).
		Where(from, to).
		OrderBy("id").
		Placeholders(format).
		ToSQL()
}

func requireColumns(columns []string) error {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[strings.ToLower(c)] = struct{}{}
	}
	for _, required := range derby.RequiredColumns {
		if _, ok := present[required]; !ok {
			return errors.Wrapf(derby.ErrSchema, "match_stats is missing column %q", required)
		}
	}
	return nil
}
