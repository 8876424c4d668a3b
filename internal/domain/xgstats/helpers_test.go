package xgstats

import (
	"testing"
	"time"

	"github.com/riskibarqy/derby-xg/internal/domain/derby"
)

func match(home, away string, homeScore, awayScore int, xgHome, xgAway float64, date string) derby.MatchRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return derby.MatchRecord{
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: homeScore,
		AwayScore: awayScore,
		XGHome:    xgHome,
		XGAway:    xgAway,
		MatchDate: d,
	}
}

func enrichAll(t *testing.T, records ...derby.MatchRecord) []EnrichedMatchRecord {
	t.Helper()

	out, err := Preprocess(records)
	if err != nil {
		t.Fatalf("preprocess: %v", err)
	}
	return out
}
