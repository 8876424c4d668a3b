package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/derby-xg/internal/domain/derby"
)

// MatchStatsRepository serves match_stats rows from memory, in insertion order.
type MatchStatsRepository struct {
	mu      sync.RWMutex
	matches []derby.MatchRecord
	window  derby.DateWindow
}

func NewMatchStatsRepository(matches []derby.MatchRecord, window derby.DateWindow) *MatchStatsRepository {
	return &MatchStatsRepository{
		matches: append([]derby.MatchRecord(nil), matches...),
		window:  window,
	}
}

func (r *MatchStatsRepository) ListMatchStats(ctx context.Context) (derby.Table, error) {
	if err := ctx.Err(); err != nil {
		return derby.Table{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]derby.Row, 0, len(r.matches))
	for i, item := range r.matches {
		if !r.window.Contains(item.MatchDate) {
			continue
		}
		rows = append(rows, derby.Row{
			"id":                  int64(i + 1),
			derby.ColumnHomeTeam:  item.HomeTeam,
			derby.ColumnAwayTeam:  item.AwayTeam,
			derby.ColumnHomeScore: int64(item.HomeScore),
			derby.ColumnAwayScore: int64(item.AwayScore),
			derby.ColumnXGHome:    item.XGHome,
			derby.ColumnXGAway:    item.XGAway,
			derby.ColumnMatchDate: item.MatchDate,
		})
	}

	columns := append([]string{"id"}, derby.RequiredColumns...)
	return derby.Table{Columns: columns, Rows: rows}, nil
}

// Append adds matches after the existing ones.
func (r *MatchStatsRepository) Append(items ...derby.MatchRecord) {
	r.mu.Lock()
	r.matches = append(r.matches, items...)
	r.mu.Unlock()
}
