package sqldb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/derby-xg/internal/domain/derby"
	"github.com/riskibarqy/derby-xg/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func migratedSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "derby_games.db")
	require.NoError(t, Migrate(DriverSQLite, path, -1))

	db, err := sqlx.Open(DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMatchStatsRepository_ListMatchStats(t *testing.T) {
	repo := NewMatchStatsRepository(migratedSQLite(t), WithLoadTimeout(5*time.Second))

	table, err := repo.ListMatchStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12, table.Len())
	assert.Contains(t, table.Columns, derby.ColumnXGHome)

	records, err := derby.DecodeTable(table)
	require.NoError(t, err)
	assert.Equal(t, "Fenerbahce", records[0].HomeTeam)
	assert.Equal(t, "Galatasaray", records[0].AwayTeam)
	assert.InDelta(t, 1.92, records[0].XGHome, 1e-9)
	assert.Equal(t, "2024-09-21", records[0].MatchDate.Format(time.DateOnly))
	assert.Equal(t, "2025-05-03", records[11].MatchDate.Format(time.DateOnly))
}

func TestMatchStatsRepository_DateWindow(t *testing.T) {
	repo := NewMatchStatsRepository(migratedSQLite(t), WithDateWindow(derby.DateWindow{
		From: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}))

	table, err := repo.ListMatchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, table.Len())
}

func TestMatchStatsRepository_DateWindowIncludesTimestampOnLastDay(t *testing.T) {
	db, err := sqlx.Open(DriverSQLite, filepath.Join(t.TempDir(), "original.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE match_stats (id INTEGER PRIMARY KEY, home_team TEXT, away_team TEXT, home_score INTEGER, away_score INTEGER, xG_home REAL, xG_away REAL, match_date TIMESTAMP)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO match_stats VALUES
		(1, 'Besiktas', 'Galatasaray', 2, 1, 0.97, 1.84, '2025-03-15 00:00:00'),
		(2, 'Fenerbahce', 'Trabzonspor', 4, 1, 2.41, 0.77, '2025-03-16 00:00:00')`)
	require.NoError(t, err)

	day := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	repo := NewMatchStatsRepository(db, WithDateWindow(derby.DateWindow{From: day, To: day}))

	table, err := repo.ListMatchStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	records, err := derby.DecodeTable(table)
	require.NoError(t, err)
	assert.Equal(t, "Besiktas", records[0].HomeTeam)
	assert.Equal(t, "2025-03-15", records[0].MatchDate.Format(time.DateOnly))
}

func TestMatchStatsRepository_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, Migrate(DriverSQLite, path, 1))

	db, err := sqlx.Open(DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	table, err := NewMatchStatsRepository(db).ListMatchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestMatchStatsRepository_MissingColumn(t *testing.T) {
	db, err := sqlx.Open(DriverSQLite, filepath.Join(t.TempDir(), "legacy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE match_stats (id INTEGER PRIMARY KEY, home_team TEXT, away_team TEXT, home_score INTEGER, away_score INTEGER, xg_home REAL, match_date TEXT)`)
	require.NoError(t, err)

	_, err = NewMatchStatsRepository(db).ListMatchStats(context.Background())
	if !errors.Is(err, derby.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
	if errors.Is(err, derby.ErrStoreConnection) {
		t.Fatalf("schema error must not be reported as a connection failure")
	}
}

func TestMatchStatsRepository_StoreUnavailable(t *testing.T) {
	db, err := sqlx.Open(DriverSQLite, filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	breaker := resilience.NewCircuitBreaker(resilience.BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute})
	repo := NewMatchStatsRepository(db, WithCircuitBreaker(breaker))

	_, err = repo.ListMatchStats(context.Background())
	if !errors.Is(err, derby.ErrStoreConnection) {
		t.Fatalf("expected ErrStoreConnection, got %v", err)
	}

	_, err = repo.ListMatchStats(context.Background())
	if !errors.Is(err, resilience.ErrCircuitOpen) || !errors.Is(err, derby.ErrStoreConnection) {
		t.Fatalf("expected open circuit marked as store failure, got %v", err)
	}
}

func TestSelectQuery_Placeholders(t *testing.T) {
	window := derby.DateWindow{
		From: time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
	}

	pg := NewMatchStatsRepository(sqlx.NewDb(nil, DriverPostgres), WithDateWindow(window))
	query, args, err := pg.selectQuery()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM match_stats WHERE match_date >= $1 AND match_date < $2 ORDER BY id", query)
	assert.Equal(t, []any{"2024-08-01", "2025-06-01"}, args)

	lite := NewMatchStatsRepository(sqlx.NewDb(nil, DriverSQLite))
	query, args, err = lite.selectQuery()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM match_stats ORDER BY id", query)
	assert.Empty(t, args)
}
