package derby

import "time"

// MatchRecord is one row of the match_stats table after decoding.
type MatchRecord struct {
	HomeTeam  string    `validate:"required"`
	AwayTeam  string    `validate:"required"`
	HomeScore int       `validate:"gte=0"`
	AwayScore int       `validate:"gte=0"`
	XGHome    float64   `validate:"gte=0"`
	XGAway    float64   `validate:"gte=0"`
	MatchDate time.Time `validate:"required"`
}

// Table is the raw result of reading match_stats: rows keyed by column name,
// in store order.
type Table struct {
	Columns []string
	Rows    []Row
}

type Row map[string]any

func (t Table) Len() int {
	return len(t.Rows)
}

// DateWindow bounds match dates inclusively. A zero bound is open.
type DateWindow struct {
	From time.Time
	To   time.Time
}

func (w DateWindow) IsZero() bool {
	return w.From.IsZero() && w.To.IsZero()
}

func (w DateWindow) Contains(date time.Time) bool {
	if !w.From.IsZero() && date.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && date.After(w.To) {
		return false
	}
	return true
}
