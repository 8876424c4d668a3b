package memory

import (
	"time"

	"github.com/riskibarqy/derby-xg/internal/domain/derby"
)

// SeedMatches is the 2024/25 derby season between the four big clubs. It
// mirrors db/migrations/2_seed_derby_matches.up.sql.
func SeedMatches() []derby.MatchRecord {
	return []derby.MatchRecord{
		seed("Fenerbahce", "Galatasaray", 1, 3, 1.92, 1.35, "2024-09-21"),
		seed("Besiktas", "Trabzonspor", 2, 0, 1.48, 0.71, "2024-09-28"),
		seed("Galatasaray", "Besiktas", 2, 1, 1.71, 0.92, "2024-10-27"),
		seed("Trabzonspor", "Fenerbahce", 2, 3, 1.12, 1.86, "2024-11-03"),
		seed("Trabzonspor", "Galatasaray", 3, 4, 1.37, 2.24, "2024-12-01"),
		seed("Besiktas", "Fenerbahce", 1, 0, 0.88, 1.43, "2024-12-08"),
		seed("Trabzonspor", "Besiktas", 1, 1, 1.05, 1.30, "2025-02-02"),
		seed("Galatasaray", "Fenerbahce", 0, 0, 0.62, 0.81, "2025-02-24"),
		seed("Besiktas", "Galatasaray", 2, 1, 0.97, 1.84, "2025-03-15"),
		seed("Fenerbahce", "Trabzonspor", 4, 1, 2.41, 0.77, "2025-03-30"),
		seed("Galatasaray", "Trabzonspor", 2, 0, 1.58, 1.10, "2025-04-20"),
		seed("Fenerbahce", "Besiktas", 0, 1, 1.74, 0.96, "2025-05-03"),
	}
}

func seed(home, away string, homeScore, awayScore int, xgHome, xgAway float64, date string) derby.MatchRecord {
	matchDate, err := time.Parse(time.DateOnly, date)
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
		MatchDate: matchDate,
	}
}
