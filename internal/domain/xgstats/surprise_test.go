package xgstats

import "testing"

func TestOverperformedButLost(t *testing.T) {
	t.Run("no qualifying match", func(t *testing.T) {
		records := enrichAll(t,
			match("Galatasaray", "Fenerbahce", 2, 0, 1.9, 0.6, "2024-09-21"),
			match("Besiktas", "Trabzonspor", 1, 1, 1.0, 1.0, "2024-10-26"),
		)

		got := OverperformedButLost(records)
		if got.Team != nil {
			t.Fatalf("expected nil team, got %q", *got.Team)
		}
		if got.Label != NoTeamLabel {
			t.Fatalf("unexpected label: %q", got.Label)
		}
	})

	t.Run("plurality winner", func(t *testing.T) {
		records := enrichAll(t,
			match("Besiktas", "Fenerbahce", 0, 1, 2.0, 1.0, "2024-09-01"),
			match("Galatasaray", "Besiktas", 2, 1, 1.0, 2.5, "2024-09-15"),
			match("Besiktas", "Trabzonspor", 1, 2, 1.8, 0.7, "2024-10-06"),
			match("Fenerbahce", "Galatasaray", 0, 1, 2.2, 1.0, "2024-11-03"),
			match("Trabzonspor", "Fenerbahce", 0, 3, 1.5, 0.5, "2024-12-01"),
		)

		got := OverperformedButLost(records)
		if !got.Found() || got.TeamName() != "Besiktas" {
			t.Fatalf("expected Besiktas, got %+v", got)
		}
		if got.Label != "Besiktas (3 matches)" {
			t.Fatalf("unexpected label: %q", got.Label)
		}
		if got.Count != 3 {
			t.Fatalf("unexpected count: %d", got.Count)
		}
	})

	t.Run("equal xg never qualifies", func(t *testing.T) {
		records := enrichAll(t, match("Besiktas", "Fenerbahce", 0, 1, 1.2, 1.2, "2024-09-01"))
		if got := OverperformedButLost(records); got.Found() {
			t.Fatalf("expected no team, got %+v", got)
		}
	})
}

func TestOverperformedButLost_TieBreakIsFirstOccurrence(t *testing.T) {
	galatasarayFirst := enrichAll(t,
		match("Galatasaray", "Besiktas", 0, 1, 2.0, 0.5, "2024-09-01"),
		match("Fenerbahce", "Trabzonspor", 0, 2, 1.9, 0.4, "2024-09-08"),
		match("Trabzonspor", "Fenerbahce", 3, 1, 0.7, 1.6, "2024-09-15"),
		match("Besiktas", "Galatasaray", 2, 0, 0.6, 2.2, "2024-09-22"),
	)
	if got := OverperformedButLost(galatasarayFirst); got.TeamName() != "Galatasaray" {
		t.Fatalf("expected Galatasaray on tie, got %q", got.TeamName())
	}

	fenerbahceFirst := []EnrichedMatchRecord{galatasarayFirst[1], galatasarayFirst[0], galatasarayFirst[2], galatasarayFirst[3]}
	got := OverperformedButLost(fenerbahceFirst)
	if got.TeamName() != "Fenerbahce" {
		t.Fatalf("expected Fenerbahce on tie, got %q", got.TeamName())
	}
	if got.Label != "Fenerbahce (2 matches)" {
		t.Fatalf("unexpected label: %q", got.Label)
	}
}

func TestUnderperformedButWon(t *testing.T) {
	t.Run("no qualifying match", func(t *testing.T) {
		records := enrichAll(t, match("Galatasaray", "Fenerbahce", 2, 0, 1.9, 0.6, "2024-09-21"))
		got := UnderperformedButWon(records)
		if got.Team != nil || got.Label != NoTeamLabel {
			t.Fatalf("expected fallback result, got %+v", got)
		}
	})

	t.Run("home and away winners", func(t *testing.T) {
		records := enrichAll(t,
			match("Trabzonspor", "Galatasaray", 1, 0, 0.4, 2.0, "2024-09-21"),
			match("Fenerbahce", "Trabzonspor", 0, 2, 1.7, 0.9, "2024-10-20"),
			match("Besiktas", "Fenerbahce", 1, 0, 0.8, 1.1, "2024-12-08"),
		)

		got := UnderperformedButWon(records)
		if got.TeamName() != "Trabzonspor" || got.Count != 2 {
			t.Fatalf("expected Trabzonspor with 2, got %+v", got)
		}
		if got.Label != "Trabzonspor (2 matches)" {
			t.Fatalf("unexpected label: %q", got.Label)
		}
	})
}
